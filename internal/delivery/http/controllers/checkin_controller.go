package controllers

import (
	"log/slog"
	"net/http"

	"eventpass/internal/delivery/http/helpers"
	"eventpass/internal/domain"
)

// BadgeResponse is the response body for GET /attendees/{attendeeId}/badge/{checkInId}.
type BadgeResponse struct {
	*domain.AttendeeBadge
	CheckInURL string `json:"checkInURL"`
}

// BadgeSuccessResponse is the success response envelope for the badge route (200).
type BadgeSuccessResponse struct {
	Data  BadgeResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CheckInSuccessResponse is the success response envelope for the check-in route (201).
type CheckInSuccessResponse struct {
	Data  *domain.CheckIn   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type CheckInController struct {
	Logger  *slog.Logger
	Service domain.CheckInService
	// PublicBaseURL, when set, replaces the request-derived base of check-in links.
	PublicBaseURL string
	// TrustProxyHeaders enables X-Forwarded-Proto/Host when deriving links from the request.
	TrustProxyHeaders bool
}

func NewCheckInController(logger *slog.Logger, svc domain.CheckInService, publicBaseURL string, trustProxyHeaders bool) *CheckInController {
	return &CheckInController{
		Logger:            logger,
		Service:           svc,
		PublicBaseURL:     publicBaseURL,
		TrustProxyHeaders: trustProxyHeaders,
	}
}

// GetAttendeeBadge godoc
// @Summary Get an attendee's badge
// @Description Returns the badge for the attendee when the check-in code matches, with the URL that checks the attendee in.
// @Tags attendees
// @Produce json
// @Param attendeeId path int true "Attendee ID"
// @Param checkInId path string true "Check-in code"
// @Success 200 {object} controllers.BadgeSuccessResponse "data contains the badge"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeId}/badge/{checkInId} [get]
func (c *CheckInController) GetAttendeeBadge(w http.ResponseWriter, r *http.Request) {
	attendeeID, checkInID, ok := attendeeParams(w, r)
	if !ok {
		return
	}
	badge, err := c.Service.GetAttendeeBadge(r.Context(), attendeeID, checkInID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "attendee not found")
		return
	}
	base := c.PublicBaseURL
	if base == "" {
		base = helpers.RequestBaseURL(r, c.TrustProxyHeaders)
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, BadgeResponse{
		AttendeeBadge: badge,
		CheckInURL:    helpers.CheckInURL(base, attendeeID, badge.CheckInID),
	})
}

// CheckIn godoc
// @Summary Check an attendee in
// @Description Records the attendee's arrival. Succeeds once per attendee; the code must match the attendee.
// @Tags check-in
// @Produce json
// @Param attendeeId path int true "Attendee ID"
// @Param checkInId path string true "Check-in code"
// @Success 201 {object} controllers.CheckInSuccessResponse "data contains the check-in"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (code mismatch or already checked in)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /attendees/{attendeeId}/check-in/{checkInId} [get]
func (c *CheckInController) CheckIn(w http.ResponseWriter, r *http.Request) {
	attendeeID, checkInID, ok := attendeeParams(w, r)
	if !ok {
		return
	}
	checkIn, err := c.Service.CheckIn(r.Context(), attendeeID, checkInID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err, "attendee not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, checkIn)
}
