package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"eventpass/internal/domain"
	"eventpass/internal/observability"
)

type checkInService struct {
	attendeeRepo   domain.AttendeeRepository
	checkInRepo    domain.CheckInRepository
	contextTimeout time.Duration
}

func NewCheckInService(attendeeRepo domain.AttendeeRepository, checkInRepo domain.CheckInRepository, timeout time.Duration) domain.CheckInService {
	return &checkInService{
		attendeeRepo:   attendeeRepo,
		checkInRepo:    checkInRepo,
		contextTimeout: timeout,
	}
}

func (s *checkInService) GetAttendeeBadge(ctx context.Context, attendeeID int64, checkInID string) (_ *domain.AttendeeBadge, err error) {
	ctx, span := observability.StartSpan(ctx, "attendees.badge", attribute.Int64("attendee.id", attendeeID))
	defer func() { observability.EndSpan(span, err) }()
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	badge, err := s.attendeeRepo.GetBadge(ctx, attendeeID, checkInID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get badge: %w", err)
	}
	return badge, nil
}

// CheckIn moves the attendee from registered to checked in. The transition happens once;
// every later call fails with ErrAlreadyCheckedIn, which callers retrying idempotently
// can treat as done.
func (s *checkInService) CheckIn(ctx context.Context, attendeeID int64, checkInID string) (_ *domain.CheckIn, err error) {
	ctx, span := observability.StartSpan(ctx, "check_ins.create", attribute.Int64("attendee.id", attendeeID))
	defer func() { observability.EndSpan(span, err) }()
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.attendeeRepo.GetByIDAndCheckInID(ctx, attendeeID, checkInID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCheckInMismatch
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}

	if _, err := s.checkInRepo.GetByAttendeeID(ctx, attendeeID); err == nil {
		return nil, domain.ErrAlreadyCheckedIn
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get check-in: %w", err)
	}

	checkIn := &domain.CheckIn{
		AttendeeID: attendeeID,
		CheckInID:  checkInID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.checkInRepo.Create(ctx, checkIn); err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyCheckedIn):
			return nil, domain.ErrAlreadyCheckedIn
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.ErrCheckInMismatch
		}
		return nil, fmt.Errorf("create check-in: %w", err)
	}
	return checkIn, nil
}
