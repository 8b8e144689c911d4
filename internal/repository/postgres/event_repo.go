package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventpass/internal/domain"
)

const eventColumns = `e.id, e.title, e.slug, e.details, e.maximum_attendees, e.is_active, e.event_date, e.created_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, slug, details, maximum_attendees, is_active, event_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var maxAttendees sql.NullInt64
	if e.MaximumAttendees != nil {
		maxAttendees = sql.NullInt64{Int64: int64(*e.MaximumAttendees), Valid: true}
	}
	var details sql.NullString
	if e.Details != nil {
		details = sql.NullString{String: *e.Details, Valid: true}
	}
	err := r.DB.QueryRowContext(ctx, query,
		e.Title, e.Slug, details, maxAttendees, e.IsActive, e.EventDate, e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		if violates(err, codeUniqueViolation, constraintEventSlug) {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.slug = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetWithAttendeesAmount(ctx context.Context, id string) (*domain.EventWithAttendeesAmount, error) {
	query := `
		SELECT ` + eventColumns + `,
			(SELECT COUNT(*) FROM attendees a WHERE a.event_id = e.id) AS attendees_amount
		FROM events e
		WHERE e.id = $1
	`
	var amount int
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id), &amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &domain.EventWithAttendeesAmount{Event: e, AttendeesAmount: amount}, nil
}

// scanEvent scans eventColumns followed by any extra destinations.
func scanEvent(row rowScanner, extra ...any) (*domain.Event, error) {
	e := &domain.Event{}
	var detailsNull sql.NullString
	var maxNull sql.NullInt64
	dest := []any{&e.ID, &e.Title, &e.Slug, &detailsNull, &maxNull, &e.IsActive, &e.EventDate, &e.CreatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if detailsNull.Valid {
		e.Details = &detailsNull.String
	}
	if maxNull.Valid {
		maxAttendees := int(maxNull.Int64)
		e.MaximumAttendees = &maxAttendees
	}
	return e, nil
}
