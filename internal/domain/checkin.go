package domain

import (
	"context"
	"time"
)

// CheckIn records that an attendee arrived. At most one exists per attendee and it is never changed.
// swagger:model CheckIn
type CheckIn struct {
	ID         int64     `json:"id"`
	AttendeeID int64     `json:"attendeeId"`
	CheckInID  string    `json:"checkInId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CheckInRepository defines storage operations for check-ins.
type CheckInRepository interface {
	// Create returns ErrAlreadyCheckedIn when the attendee already has a check-in.
	Create(ctx context.Context, checkIn *CheckIn) error
	GetByAttendeeID(ctx context.Context, attendeeID int64) (*CheckIn, error)
}

// CheckInService validates check-in credentials and performs the one-time check-in.
type CheckInService interface {
	GetAttendeeBadge(ctx context.Context, attendeeID int64, checkInID string) (*AttendeeBadge, error)
	CheckIn(ctx context.Context, attendeeID int64, checkInID string) (*CheckIn, error)
}
