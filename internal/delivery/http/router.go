package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventpass/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController, attendeeController *controllers.AttendeeController, checkInController *controllers.CheckInController) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", controllers.Health)

	// Events
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("GET /events/{eventId}", eventController.GetEventByID)
	mux.HandleFunc("GET /events/{eventId}/attendees", eventController.ListAttendees)

	// Attendees
	mux.HandleFunc("POST /events/{eventId}/attendees", attendeeController.RegisterAttendee)
	mux.HandleFunc("GET /attendees/{attendeeId}/badge/{checkInId}", checkInController.GetAttendeeBadge)
	mux.HandleFunc("GET /attendees/{attendeeId}/check-in/{checkInId}", checkInController.CheckIn)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
