package domain

import (
	"context"
	"time"
)

// Event represents an event attendees can register for.
// swagger:model Event
type Event struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Details          *string   `json:"details"`
	MaximumAttendees *int      `json:"maximumAttendees"`
	IsActive         bool      `json:"isActive"`
	EventDate        time.Time `json:"eventDate"`
	CreatedAt        time.Time `json:"createdAt"`
}

// NewEvent returns a new Event with the given fields. ID, Slug and CreatedAt are set on create.
func NewEvent(title string, details *string, maximumAttendees *int, isActive bool, eventDate time.Time) *Event {
	return &Event{
		Title:            title,
		Details:          details,
		MaximumAttendees: maximumAttendees,
		IsActive:         isActive,
		EventDate:        eventDate,
	}
}

// HasCapacityFor reports whether an event currently holding count attendees can accept one more.
// A nil MaximumAttendees means unlimited.
func (e *Event) HasCapacityFor(count int) bool {
	if e.MaximumAttendees == nil {
		return true
	}
	return count < *e.MaximumAttendees
}

// EventWithAttendeesAmount is an event plus its current attendee count, computed at read time.
// swagger:model EventWithAttendeesAmount
type EventWithAttendeesAmount struct {
	*Event
	AttendeesAmount int `json:"attendeesAmount"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	GetWithAttendeesAmount(ctx context.Context, id string) (*EventWithAttendeesAmount, error)
}

// EventService defines the event registry operations.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, eventID string) (*EventWithAttendeesAmount, error)
	// ListAttendees returns one page of the event's attendees (newest first) and the total matching the filter.
	ListAttendees(ctx context.Context, eventID string, filter AttendeeFilter) ([]*AttendeeListItem, int, error)
}
