package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventpass/internal/domain"
)

type attendeeRepository struct {
	DB *sql.DB
}

func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &attendeeRepository{
		DB: db,
	}
}

// CreateWithinCapacity locks the event row so concurrent registrations for the same event
// are serialised; under READ COMMITTED the count that follows the lock sees every attendee
// committed before it was granted.
func (r *attendeeRepository) CreateWithinCapacity(ctx context.Context, a *domain.Attendee) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var maxNull sql.NullInt64
	err = tx.QueryRowContext(ctx, `SELECT maximum_attendees FROM events WHERE id = $1 FOR UPDATE`, a.EventID).Scan(&maxNull)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if maxNull.Valid {
		var count int64
		err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM attendees WHERE event_id = $1`, a.EventID).Scan(&count)
		if err != nil {
			return err
		}
		if count >= maxNull.Int64 {
			return domain.ErrEventFull
		}
	}

	query := `
		INSERT INTO attendees (event_id, name, email, check_in_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query, a.EventID, a.Name, a.Email, a.CheckInID, a.CreatedAt).Scan(&a.ID)
	if err != nil {
		switch {
		case violates(err, codeUniqueViolation, constraintAttendeeEventEmail):
			return domain.ErrAlreadyRegistered
		case violates(err, codeUniqueViolation, constraintAttendeeCheckInID):
			return domain.ErrCheckInIDTaken
		case violates(err, codeForeignKeyViolation, ""):
			return domain.ErrNotFound
		}
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *attendeeRepository) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Attendee, error) {
	query := `
		SELECT id, event_id, name, email, check_in_id, created_at
		FROM attendees
		WHERE event_id = $1 AND email = $2
	`
	return r.getOne(ctx, query, eventID, email)
}

func (r *attendeeRepository) GetByIDAndCheckInID(ctx context.Context, id int64, checkInID string) (*domain.Attendee, error) {
	query := `
		SELECT id, event_id, name, email, check_in_id, created_at
		FROM attendees
		WHERE id = $1 AND check_in_id = $2
	`
	return r.getOne(ctx, query, id, checkInID)
}

func (r *attendeeRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Attendee, error) {
	a := &domain.Attendee{}
	err := r.DB.QueryRowContext(ctx, query, args...).
		Scan(&a.ID, &a.EventID, &a.Name, &a.Email, &a.CheckInID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *attendeeRepository) GetBadge(ctx context.Context, id int64, checkInID string) (*domain.AttendeeBadge, error) {
	query := `
		SELECT a.id, a.check_in_id, a.name, a.email, e.title, e.event_date
		FROM attendees a
		JOIN events e ON e.id = a.event_id
		WHERE a.id = $1 AND a.check_in_id = $2
	`
	b := &domain.AttendeeBadge{}
	err := r.DB.QueryRowContext(ctx, query, id, checkInID).
		Scan(&b.AttendeeID, &b.CheckInID, &b.Name, &b.Email, &b.EventTitle, &b.EventDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *attendeeRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM attendees WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *attendeeRepository) ListByEventID(ctx context.Context, eventID string, filter domain.AttendeeFilter) (items []*domain.AttendeeListItem, total int, err error) {
	where := []string{"a.event_id = $1"}
	args := []any{eventID}
	if filter.Query != "" {
		args = append(args, filter.Query)
		where = append(where, fmt.Sprintf("strpos(a.name, $%d) > 0", len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	pageArgs := append(append([]any{}, args...), filter.PageSize, filter.Offset())
	query := fmt.Sprintf(`
		SELECT a.id, a.event_id, a.name, a.email, a.created_at, c.created_at
		FROM attendees a
		LEFT JOIN check_ins c ON c.attendee_id = a.id
		WHERE %s
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, len(args)+1, len(args)+2)
	rows, err := tx.QueryContext(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items = make([]*domain.AttendeeListItem, 0)
	for rows.Next() {
		it := &domain.AttendeeListItem{}
		var checkInAt sql.NullTime
		if err = rows.Scan(&it.ID, &it.EventID, &it.Name, &it.Email, &it.CreatedAt, &checkInAt); err != nil {
			return nil, 0, err
		}
		if checkInAt.Valid {
			it.CheckInAt = &checkInAt.Time
		}
		items = append(items, it)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM attendees a WHERE %s`, whereClause)
	if err = tx.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if err = tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("commit: %w", err)
	}
	return items, total, nil
}
