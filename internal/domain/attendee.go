package domain

import (
	"context"
	"time"
)

// Attendee represents a person registered for an event. CheckInID is issued once on creation.
// swagger:model Attendee
type Attendee struct {
	ID        int64     `json:"id"`
	EventID   string    `json:"eventId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CheckInID string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewAttendee creates a new Attendee. ID is set by the repository on create.
func NewAttendee(eventID, name, email, checkInID string, createdAt time.Time) *Attendee {
	return &Attendee{
		EventID:   eventID,
		Name:      name,
		Email:     email,
		CheckInID: checkInID,
		CreatedAt: createdAt,
	}
}

// AttendeeListItem is an attendee as shown in an event's attendee list.
// CheckInAt is nil until the attendee checks in.
// swagger:model AttendeeListItem
type AttendeeListItem struct {
	ID        int64      `json:"id"`
	EventID   string     `json:"eventId"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"createdAt"`
	CheckInAt *time.Time `json:"checkInAt"`
}

// AttendeeFilter selects a page of an event's attendees, optionally by name substring.
type AttendeeFilter struct {
	PaginationParams
	Query string
}

// AttendeeBadge is the read-only view of a registration shown on a badge.
// swagger:model AttendeeBadge
type AttendeeBadge struct {
	AttendeeID int64     `json:"-"`
	CheckInID  string    `json:"checkInId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	EventTitle string    `json:"eventTitle"`
	EventDate  time.Time `json:"eventDate"`
}

// AttendeeRepository defines storage operations for attendees.
type AttendeeRepository interface {
	// CreateWithinCapacity inserts the attendee while holding a lock on the event row, so the
	// event's maximum is never exceeded. Returns ErrNotFound, ErrEventFull, ErrAlreadyRegistered
	// or ErrCheckInIDTaken.
	CreateWithinCapacity(ctx context.Context, attendee *Attendee) error
	GetByEventAndEmail(ctx context.Context, eventID, email string) (*Attendee, error)
	GetByIDAndCheckInID(ctx context.Context, id int64, checkInID string) (*Attendee, error)
	GetBadge(ctx context.Context, id int64, checkInID string) (*AttendeeBadge, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
	// ListByEventID reads the page and the filtered total from one snapshot.
	ListByEventID(ctx context.Context, eventID string, filter AttendeeFilter) ([]*AttendeeListItem, int, error)
}

// AttendeeService defines attendee registration.
type AttendeeService interface {
	RegisterAttendee(ctx context.Context, eventID, name, email string) (*Attendee, error)
}
