package controllers

import (
	"log/slog"
	"net/http"

	"eventpass/internal/delivery/http/helpers"
	"eventpass/internal/domain"
)

// RegisterAttendeeRequest is the request body for POST /events/{eventId}/attendees.
type RegisterAttendeeRequest struct {
	Name  string `json:"name" validate:"required,min=4,max=64" example:"Diego Fernandes"`
	Email string `json:"email" validate:"required,email" example:"diego@example.com"`
}

// RegisterAttendeeResponse is the response body for POST /events/{eventId}/attendees.
type RegisterAttendeeResponse struct {
	AttendeeID int64 `json:"attendeeId"`
}

// RegisterAttendeeSuccessResponse is the success response envelope for POST /events/{eventId}/attendees (201).
type RegisterAttendeeSuccessResponse struct {
	Data  RegisterAttendeeResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

type AttendeeController struct {
	Logger  *slog.Logger
	Service domain.AttendeeService
}

func NewAttendeeController(logger *slog.Logger, svc domain.AttendeeService) *AttendeeController {
	return &AttendeeController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterAttendee godoc
// @Summary Register an attendee for an event
// @Description Registers a person for the event and issues their check-in code. An email can register once per event; inactive and full events reject registrations.
// @Tags attendees
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID (UUID)"
// @Param attendee body RegisterAttendeeRequest true "Attendee data"
// @Success 201 {object} controllers.RegisterAttendeeSuccessResponse "data contains the new attendee id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already registered, inactive or full)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventId}/attendees [post]
func (c *AttendeeController) RegisterAttendee(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDParam(w, r)
	if !ok {
		return
	}
	var req RegisterAttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	attendee, err := c.Service.RegisterAttendee(r.Context(), eventID, req.Name, req.Email)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, RegisterAttendeeResponse{AttendeeID: attendee.ID})
}
