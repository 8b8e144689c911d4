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

type eventService struct {
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, attendeeRepo domain.AttendeeRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		attendeeRepo:   attendeeRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) (err error) {
	ctx, span := observability.StartSpan(ctx, "events.create")
	defer func() { observability.EndSpan(span, err) }()
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slug := domain.GenerateSlug(event.Title)
	if slug == "" {
		return fmt.Errorf("%w: title must contain letters or digits", domain.ErrInvalidInput)
	}
	observability.AddEvent(ctx, "slug.generated", attribute.String("event.slug", slug))

	if _, err := s.eventRepo.GetBySlug(ctx, slug); err == nil {
		return domain.ErrDuplicateSlug
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get event by slug: %w", err)
	}

	event.Slug = slug
	event.CreatedAt = time.Now().UTC()
	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrDuplicateSlug) {
			return domain.ErrDuplicateSlug
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (_ *domain.EventWithAttendeesAmount, err error) {
	ctx, span := observability.StartSpan(ctx, "events.get", attribute.String("event.id", eventID))
	defer func() { observability.EndSpan(span, err) }()
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetWithAttendeesAmount(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListAttendees(ctx context.Context, eventID string, filter domain.AttendeeFilter) (_ []*domain.AttendeeListItem, _ int, err error) {
	ctx, span := observability.StartSpan(ctx, "events.list_attendees",
		attribute.String("event.id", eventID),
		attribute.Int("page", filter.Page),
		attribute.Int("limit", filter.PageSize),
	)
	defer func() { observability.EndSpan(span, err) }()
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if filter.Page < 1 || filter.PageSize < 1 {
		return nil, 0, fmt.Errorf("%w: page and limit must be positive", domain.ErrInvalidInput)
	}

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}

	items, total, err := s.attendeeRepo.ListByEventID(ctx, eventID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list attendees: %w", err)
	}
	if items == nil {
		items = []*domain.AttendeeListItem{}
	}
	return items, total, nil
}
