package domain

import "errors"

// ErrNotFound is returned when a referenced event, attendee or token pair does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned when a value passed the transport validation but cannot be used (e.g. a title whose slug is empty).
var ErrInvalidInput = errors.New("invalid input")

// Conflict errors: business-rule violations. They are terminal and never retried by the services,
// except ErrCheckInIDTaken which the registrar retries with a fresh token.
var (
	ErrDuplicateSlug     = errors.New("an event with this title already exists")
	ErrAlreadyRegistered = errors.New("attendee already registered for this event")
	ErrEventInactive     = errors.New("event is not active")
	ErrEventFull         = errors.New("event reached the maximum number of attendees")
	ErrCheckInMismatch   = errors.New("attendee id and check-in id do not match")
	ErrAlreadyCheckedIn  = errors.New("attendee already checked in")
	ErrCheckInIDTaken    = errors.New("check-in id already in use, try again")
)

var conflictErrors = []error{
	ErrDuplicateSlug,
	ErrAlreadyRegistered,
	ErrEventInactive,
	ErrEventFull,
	ErrCheckInMismatch,
	ErrAlreadyCheckedIn,
	ErrCheckInIDTaken,
}

// IsConflict reports whether err is (or wraps) one of the conflict errors.
func IsConflict(err error) bool {
	for _, c := range conflictErrors {
		if errors.Is(err, c) {
			return true
		}
	}
	return false
}
