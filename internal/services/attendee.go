package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"eventpass/internal/domain"
	"eventpass/internal/observability"
)

// maxCheckInIDAttempts bounds how many fresh check-in ids are tried when the generated one
// collides with an existing attendee's.
const maxCheckInIDAttempts = 3

// confirmationEmailTimeout bounds the registration email send, which runs outside the
// request's persistence timeout.
const confirmationEmailTimeout = 10 * time.Second

type attendeeService struct {
	logger         *slog.Logger
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	emailService   domain.EmailService
	links          domain.LinkBuilder
	contextTimeout time.Duration
}

// NewAttendeeService creates an AttendeeService. emailService may be nil to skip confirmation emails.
func NewAttendeeService(
	logger *slog.Logger,
	eventRepo domain.EventRepository,
	attendeeRepo domain.AttendeeRepository,
	emailService domain.EmailService,
	links domain.LinkBuilder,
	timeout time.Duration,
) domain.AttendeeService {
	return &attendeeService{
		logger:         logger,
		eventRepo:      eventRepo,
		attendeeRepo:   attendeeRepo,
		emailService:   emailService,
		links:          links,
		contextTimeout: timeout,
	}
}

// RegisterAttendee applies the registration rules in order, first failure wins:
// duplicate email, missing event, inactive event, full event. The duplicate check
// comes first so a re-submission never reports a misleading capacity error.
func (s *attendeeService) RegisterAttendee(ctx context.Context, eventID, name, email string) (_ *domain.Attendee, err error) {
	ctx, span := observability.StartSpan(ctx, "attendees.register", attribute.String("event.id", eventID))
	defer func() { observability.EndSpan(span, err) }()
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.attendeeRepo.GetByEventAndEmail(ctx, eventID, email); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get attendee by email: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.IsActive {
		return nil, domain.ErrEventInactive
	}
	if event.MaximumAttendees != nil {
		count, err := s.attendeeRepo.CountByEventID(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("count attendees: %w", err)
		}
		if !event.HasCapacityFor(count) {
			return nil, domain.ErrEventFull
		}
	}

	attendee, err := s.create(ctx, eventID, name, email)
	if err != nil {
		return nil, err
	}
	s.sendConfirmation(ctx, event, attendee)
	return attendee, nil
}

// create inserts the attendee, regenerating the check-in id on collisions. The insert
// re-checks capacity under a row lock, so ErrEventFull can still surface here.
func (s *attendeeService) create(ctx context.Context, eventID, name, email string) (*domain.Attendee, error) {
	for attempt := 1; ; attempt++ {
		checkInID, err := generateCheckInID()
		if err != nil {
			return nil, fmt.Errorf("generate check-in id: %w", err)
		}
		attendee := domain.NewAttendee(eventID, name, email, checkInID, time.Now().UTC())
		err = s.attendeeRepo.CreateWithinCapacity(ctx, attendee)
		switch {
		case err == nil:
			return attendee, nil
		case errors.Is(err, domain.ErrCheckInIDTaken) && attempt < maxCheckInIDAttempts:
			observability.AddEvent(ctx, "check_in_id.collision", attribute.Int("attempt", attempt))
			continue
		case errors.Is(err, domain.ErrNotFound), domain.IsConflict(err):
			return nil, err
		default:
			return nil, fmt.Errorf("create attendee: %w", err)
		}
	}
}

func (s *attendeeService) sendConfirmation(ctx context.Context, event *domain.Event, attendee *domain.Attendee) {
	if s.emailService == nil || s.links == nil {
		return
	}
	data := &domain.RegistrationEmailData{
		Email:      attendee.Email,
		Name:       attendee.Name,
		EventTitle: event.Title,
		EventDate:  event.EventDate,
		CheckInID:  attendee.CheckInID,
		BadgeURL:   s.links.BadgeURL(attendee.ID, attendee.CheckInID),
		CheckInURL: s.links.CheckInURL(attendee.ID, attendee.CheckInID),
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), confirmationEmailTimeout)
	defer cancel()
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "registration email failed", "attendee_id", attendee.ID, "event_id", event.ID, "err", err)
	}
}
