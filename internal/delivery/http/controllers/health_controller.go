package controllers

import (
	"net/http"

	"eventpass/internal/delivery/http/helpers"
)

// HealthResponse is the response body for GET /.
type HealthResponse struct {
	Message string `json:"message"`
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.message: API online"
// @Router / [get]
func Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Message: "API online"})
}
