package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"eventpass/internal/domain"
)

// testLogger discards output so tests don't assert on log lines.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeStore is an in-memory backend shared by the fake repositories. The mutex plays
// the role of the event row lock taken by the Postgres repository.
type fakeStore struct {
	mu           sync.Mutex
	events       map[string]*domain.Event
	attendees    []*domain.Attendee
	checkIns     map[int64]*domain.CheckIn
	nextEvent    int
	nextAttendee int64
	nextCheckIn  int64

	// failCheckInIDs makes the next n inserts report a check_in_id collision.
	failCheckInIDs int
	collisions     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:   make(map[string]*domain.Event),
		checkIns: make(map[int64]*domain.CheckIn),
	}
}

func (s *fakeStore) addEvent(e *domain.Event) *domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		s.nextEvent++
		e.ID = fmt.Sprintf("ev-%d", s.nextEvent)
	}
	s.events[e.ID] = e
	return e
}

func (s *fakeStore) countLocked(eventID string) int {
	n := 0
	for _, a := range s.attendees {
		if a.EventID == eventID {
			n++
		}
	}
	return n
}

type fakeEventRepo struct {
	store     *fakeStore
	createErr error
	getErr    error
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, existing := range f.store.events {
		if existing.Slug == e.Slug {
			return domain.ErrDuplicateSlug
		}
	}
	f.store.nextEvent++
	e.ID = fmt.Sprintf("ev-%d", f.store.nextEvent)
	f.store.events[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	e, ok := f.store.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, e := range f.store.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetWithAttendeesAmount(ctx context.Context, id string) (*domain.EventWithAttendeesAmount, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	e, ok := f.store.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.EventWithAttendeesAmount{Event: e, AttendeesAmount: f.store.countLocked(id)}, nil
}

type fakeAttendeeRepo struct {
	store     *fakeStore
	createErr error
	getErr    error
	listErr   error
}

func (f *fakeAttendeeRepo) CreateWithinCapacity(ctx context.Context, a *domain.Attendee) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	e, ok := f.store.events[a.EventID]
	if !ok {
		return domain.ErrNotFound
	}
	if !e.HasCapacityFor(f.store.countLocked(a.EventID)) {
		return domain.ErrEventFull
	}
	if f.store.failCheckInIDs > 0 {
		f.store.failCheckInIDs--
		f.store.collisions++
		return domain.ErrCheckInIDTaken
	}
	for _, existing := range f.store.attendees {
		if existing.EventID == a.EventID && existing.Email == a.Email {
			return domain.ErrAlreadyRegistered
		}
		if existing.CheckInID == a.CheckInID {
			return domain.ErrCheckInIDTaken
		}
	}
	f.store.nextAttendee++
	a.ID = f.store.nextAttendee
	f.store.attendees = append(f.store.attendees, a)
	return nil
}

func (f *fakeAttendeeRepo) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Attendee, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, a := range f.store.attendees {
		if a.EventID == eventID && a.Email == email {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAttendeeRepo) GetByIDAndCheckInID(ctx context.Context, id int64, checkInID string) (*domain.Attendee, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, a := range f.store.attendees {
		if a.ID == id && a.CheckInID == checkInID {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAttendeeRepo) GetBadge(ctx context.Context, id int64, checkInID string) (*domain.AttendeeBadge, error) {
	a, err := f.GetByIDAndCheckInID(ctx, id, checkInID)
	if err != nil {
		return nil, err
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	e := f.store.events[a.EventID]
	return &domain.AttendeeBadge{
		AttendeeID: a.ID,
		CheckInID:  a.CheckInID,
		Name:       a.Name,
		Email:      a.Email,
		EventTitle: e.Title,
		EventDate:  e.EventDate,
	}, nil
}

func (f *fakeAttendeeRepo) CountByEventID(ctx context.Context, eventID string) (int, error) {
	if f.getErr != nil {
		return 0, f.getErr
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.countLocked(eventID), nil
}

func (f *fakeAttendeeRepo) ListByEventID(ctx context.Context, eventID string, filter domain.AttendeeFilter) ([]*domain.AttendeeListItem, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	var matched []*domain.Attendee
	for _, a := range f.store.attendees {
		if a.EventID == eventID && strings.Contains(a.Name, filter.Query) {
			matched = append(matched, a)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := len(matched)
	start := filter.Offset()
	if start > total {
		start = total
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}
	items := make([]*domain.AttendeeListItem, 0, end-start)
	for _, a := range matched[start:end] {
		it := &domain.AttendeeListItem{ID: a.ID, EventID: a.EventID, Name: a.Name, Email: a.Email, CreatedAt: a.CreatedAt}
		if c, ok := f.store.checkIns[a.ID]; ok {
			at := c.CreatedAt
			it.CheckInAt = &at
		}
		items = append(items, it)
	}
	return items, total, nil
}

type fakeCheckInRepo struct {
	store     *fakeStore
	createErr error
	getErr    error
	// skipPreCheck hides existing check-ins from GetByAttendeeID to simulate a concurrent check-in.
	skipPreCheck bool
}

func (f *fakeCheckInRepo) Create(ctx context.Context, c *domain.CheckIn) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if _, ok := f.store.checkIns[c.AttendeeID]; ok {
		return domain.ErrAlreadyCheckedIn
	}
	f.store.nextCheckIn++
	c.ID = f.store.nextCheckIn
	f.store.checkIns[c.AttendeeID] = c
	return nil
}

func (f *fakeCheckInRepo) GetByAttendeeID(ctx context.Context, attendeeID int64) (*domain.CheckIn, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.skipPreCheck {
		return nil, domain.ErrNotFound
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	c, ok := f.store.checkIns[attendeeID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// fakeEmailService records registration emails.
type fakeEmailService struct {
	mu        sync.Mutex
	sent      []*domain.RegistrationEmailData
	deadlines []time.Time
	err       error
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if deadline, ok := ctx.Deadline(); ok {
		f.deadlines = append(f.deadlines, deadline)
	}
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

type fakeLinks struct{}

func (fakeLinks) BadgeURL(attendeeID int64, checkInID string) string {
	return fmt.Sprintf("https://pass.test/attendees/%d/badge/%s", attendeeID, checkInID)
}

func (fakeLinks) CheckInURL(attendeeID int64, checkInID string) string {
	return fmt.Sprintf("https://pass.test/attendees/%d/check-in/%s", attendeeID, checkInID)
}
