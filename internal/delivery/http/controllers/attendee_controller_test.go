package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventpass/internal/delivery/http/helpers"
	"eventpass/internal/domain"
)

func TestAttendeeController_RegisterAttendee(t *testing.T) {
	tests := []struct {
		name       string
		eventID    string
		body       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{"created", testEventID, `{"name":"Diego Fernandes","email":"diego@x.com"}`, nil, http.StatusCreated, ""},
		{"invalid event id", "not-a-uuid", `{"name":"Diego Fernandes","email":"diego@x.com"}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"short name", testEventID, `{"name":"Dio","email":"diego@x.com"}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"bad email", testEventID, `{"name":"Diego Fernandes","email":"diego"}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"event missing", testEventID, `{"name":"Diego Fernandes","email":"diego@x.com"}`, domain.ErrNotFound, http.StatusNotFound, helpers.ErrCodeNotFound},
		{"already registered", testEventID, `{"name":"Diego Fernandes","email":"diego@x.com"}`, domain.ErrAlreadyRegistered, http.StatusConflict, helpers.ErrCodeConflict},
		{"inactive", testEventID, `{"name":"Diego Fernandes","email":"diego@x.com"}`, domain.ErrEventInactive, http.StatusConflict, helpers.ErrCodeConflict},
		{"full", testEventID, `{"name":"Diego Fernandes","email":"diego@x.com"}`, domain.ErrEventFull, http.StatusConflict, helpers.ErrCodeConflict},
		{"token collision", testEventID, `{"name":"Diego Fernandes","email":"diego@x.com"}`, domain.ErrCheckInIDTaken, http.StatusConflict, helpers.ErrCodeConflict},
		{"internal", testEventID, `{"name":"Diego Fernandes","email":"diego@x.com"}`, errors.New("boom"), http.StatusInternalServerError, helpers.ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAttendeeService{
				result: &domain.Attendee{ID: 42, EventID: testEventID, Name: "Diego Fernandes", Email: "diego@x.com", CheckInID: "ABC-1234"},
				err:    tt.serviceErr,
			}
			ctrl := NewAttendeeController(testLogger, svc)
			req := httptest.NewRequest(http.MethodPost, "/events/"+tt.eventID+"/attendees", strings.NewReader(tt.body))
			req.SetPathValue("eventId", tt.eventID)
			rr := httptest.NewRecorder()

			ctrl.RegisterAttendee(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			env := decode(t, rr)
			if tt.wantCode != "" {
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.wantCode, env.Error.Code)
				return
			}
			assert.JSONEq(t, `{"attendeeId":42}`, string(env.Data))
			assert.Equal(t, testEventID, svc.lastEventID)
			assert.Equal(t, "Diego Fernandes", svc.lastName)
			assert.Equal(t, "diego@x.com", svc.lastEmail)
		})
	}
}

func TestAttendeeController_RegisterAttendee_DoesNotLeakCheckInID(t *testing.T) {
	svc := &fakeAttendeeService{result: &domain.Attendee{ID: 1, CheckInID: "ABC-1234"}}
	ctrl := NewAttendeeController(testLogger, svc)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Diego Fernandes","email":"diego@x.com"}`))
	req.SetPathValue("eventId", testEventID)
	rr := httptest.NewRecorder()

	ctrl.RegisterAttendee(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotContains(t, rr.Body.String(), "ABC-1234")
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Nil(t, env.Error)
}
