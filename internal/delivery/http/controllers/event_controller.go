package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventpass/internal/delivery/http/helpers"
	"eventpass/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title            string     `json:"title" validate:"required,min=4,max=64" example:"Evento 1"`
	Details          *string    `json:"details"`
	MaximumAttendees *int       `json:"maximumAttendees" validate:"omitempty,gt=0" example:"120"`
	IsActive         *bool      `json:"isActive" validate:"required"`
	EventDate        *time.Time `json:"eventDate" validate:"required" example:"2024-04-18T22:30:00Z"`
}

// CreateEventResponse is the response body for POST /events.
type CreateEventResponse struct {
	EventID string `json:"eventId"`
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  CreateEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event. The slug is derived from the title and must be unique, so two events cannot share a title that differs only in case, accents or punctuation.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the new event id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate title)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := domain.NewEvent(req.Title, req.Details, req.MaximumAttendees, *req.IsActive, req.EventDate.UTC())
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateEventResponse{EventID: event.ID})
}

// GetEventByIDSuccessResponse is the success response envelope for GET /events/{eventId} (200).
type GetEventByIDSuccessResponse struct {
	Data  *domain.EventWithAttendeesAmount `json:"data"`
	Error *helpers.APIError                `json:"error"`
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Description Returns the event and how many attendees are registered.
// @Tags events
// @Produce json
// @Param eventId path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GetEventByIDSuccessResponse "data contains the event and attendeesAmount"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventId} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	event, err := c.Service.GetEventByID(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListAttendeesResponse is the response body for GET /events/{eventId}/attendees.
type ListAttendeesResponse struct {
	CurrentPage    int                        `json:"currentPage"`
	TotalPages     int                        `json:"totalPages"`
	TotalAttendees int                        `json:"totalAttendees"`
	Attendees      []*domain.AttendeeListItem `json:"attendees"`
}

// ListAttendeesSuccessResponse is the success response envelope for GET /events/{eventId}/attendees (200).
type ListAttendeesSuccessResponse struct {
	Data  ListAttendeesResponse `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ListAttendees godoc
// @Summary List an event's attendees
// @Description Returns one page of attendees, newest first, each with its check-in time when checked in. query filters by a case-sensitive substring of the name; totalAttendees counts the filtered attendees.
// @Tags events
// @Produce json
// @Param eventId path string true "Event ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param query query string false "Name substring"
// @Success 200 {object} controllers.ListAttendeesSuccessResponse "data contains the page and totals"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventId}/attendees [get]
func (c *EventController) ListAttendees(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	filter, err := helpers.ParseAttendeeFilter(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	attendees, total, err := c.Service.ListAttendees(r.Context(), eventID, filter)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListAttendeesResponse{
		CurrentPage:    filter.Page,
		TotalPages:     filter.TotalPages(total),
		TotalAttendees: total,
		Attendees:      attendees,
	})
}
