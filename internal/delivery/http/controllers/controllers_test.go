package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"eventpass/internal/delivery/http/helpers"
	"eventpass/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const testEventID = "5f3c1a52-7c2d-4b8e-9a3f-1d2e3f4a5b6c"

// envelope mirrors helpers.APIResponse with raw data for per-test decoding.
type envelope struct {
	Data  json.RawMessage   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr     error
	createdWithID string
	created       *domain.Event
	getResult     *domain.EventWithAttendeesAmount
	getErr        error
	lastGetID     string
	listResult    []*domain.AttendeeListItem
	listTotal     int
	listErr       error
	lastListID    string
	lastFilter    domain.AttendeeFilter
}

func (f *fakeEventService) CreateEvent(_ context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = f.createdWithID
	f.created = e
	return nil
}

func (f *fakeEventService) GetEventByID(_ context.Context, id string) (*domain.EventWithAttendeesAmount, error) {
	f.lastGetID = id
	return f.getResult, f.getErr
}

func (f *fakeEventService) ListAttendees(_ context.Context, id string, filter domain.AttendeeFilter) ([]*domain.AttendeeListItem, int, error) {
	f.lastListID = id
	f.lastFilter = filter
	return f.listResult, f.listTotal, f.listErr
}

// fakeAttendeeService implements domain.AttendeeService for handler tests.
type fakeAttendeeService struct {
	result      *domain.Attendee
	err         error
	lastEventID string
	lastName    string
	lastEmail   string
}

func (f *fakeAttendeeService) RegisterAttendee(_ context.Context, eventID, name, email string) (*domain.Attendee, error) {
	f.lastEventID, f.lastName, f.lastEmail = eventID, name, email
	return f.result, f.err
}

// fakeCheckInService implements domain.CheckInService for handler tests.
type fakeCheckInService struct {
	badge         *domain.AttendeeBadge
	badgeErr      error
	checkIn       *domain.CheckIn
	checkInErr    error
	lastAttendee  int64
	lastCheckInID string
}

func (f *fakeCheckInService) GetAttendeeBadge(_ context.Context, attendeeID int64, checkInID string) (*domain.AttendeeBadge, error) {
	f.lastAttendee, f.lastCheckInID = attendeeID, checkInID
	return f.badge, f.badgeErr
}

func (f *fakeCheckInService) CheckIn(_ context.Context, attendeeID int64, checkInID string) (*domain.CheckIn, error) {
	f.lastAttendee, f.lastCheckInID = attendeeID, checkInID
	return f.checkIn, f.checkInErr
}
