package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"eventpass/internal/delivery/http/helpers"
	"eventpass/internal/domain"
)

// writeServiceError maps a service error to its HTTP status. Unexpected errors are logged
// and reported without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, notFoundMessage)
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case domain.IsConflict(err):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
	}
}

// eventIDParam returns the eventId path value in canonical form, or writes a 400.
func eventIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(r.PathValue("eventId"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventId must be a valid UUID")
		return "", false
	}
	return id.String(), true
}

// attendeeParams returns the attendeeId and checkInId path values, or writes a 400.
func attendeeParams(w http.ResponseWriter, r *http.Request) (int64, string, bool) {
	attendeeID, err := strconv.ParseInt(r.PathValue("attendeeId"), 10, 64)
	if err != nil || attendeeID < 1 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "attendeeId must be a positive integer")
		return 0, "", false
	}
	checkInID := r.PathValue("checkInId")
	if checkInID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "checkInId is required")
		return 0, "", false
	}
	return attendeeID, checkInID, true
}
