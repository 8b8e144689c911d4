package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventpass/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var eventRowColumns = []string{"id", "title", "slug", "details", "maximum_attendees", "is_active", "event_date", "created_at"}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	eventDate := time.Date(2025, 4, 18, 22, 30, 0, 0, time.UTC)
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	details := "Talks and workshops"
	maxAttendees := 120

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success with optional fields",
			event: &domain.Event{
				Title: "Go Conf", Slug: "go-conf", Details: &details, MaximumAttendees: &maxAttendees,
				IsActive: true, EventDate: eventDate, CreatedAt: createdAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(title, slug, details, maximum_attendees, is_active, event_date, created_at\)`).
					WithArgs("Go Conf", "go-conf", "Talks and workshops", int64(120), true, eventDate, createdAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))
			},
			wantID: "ev-uuid-1",
		},
		{
			name: "success without optional fields",
			event: &domain.Event{
				Title: "Meetup", Slug: "meetup", IsActive: false, EventDate: eventDate, CreatedAt: createdAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WithArgs("Meetup", "meetup", nil, nil, false, eventDate, createdAt).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-2"))
			},
			wantID: "ev-uuid-2",
		},
		{
			name:  "duplicate slug",
			event: &domain.Event{Title: "Meetup", Slug: "meetup", EventDate: eventDate, CreatedAt: createdAt},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "events_slug_key"})
			},
			wantErr: domain.ErrDuplicateSlug,
		},
		{
			name:  "db error",
			event: &domain.Event{Title: "Meetup", Slug: "meetup", EventDate: eventDate, CreatedAt: createdAt},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	eventDate := time.Date(2025, 4, 18, 22, 30, 0, 0, time.UTC)
	createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	details := "Details"
	maxAttendees := 5

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		wantErr error
	}{
		{
			name: "success",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT e.id, e.title, e.slug, e.details, e.maximum_attendees, e.is_active, e.event_date, e.created_at FROM events e WHERE e.id = \$1`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows(eventRowColumns).
						AddRow("ev-1", "Evento 1", "evento-1", "Details", int64(5), true, eventDate, createdAt))
			},
			want: &domain.Event{
				ID: "ev-1", Title: "Evento 1", Slug: "evento-1", Details: &details, MaximumAttendees: &maxAttendees,
				IsActive: true, EventDate: eventDate, CreatedAt: createdAt,
			},
		},
		{
			name: "null optional columns",
			id:   "ev-2",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events e WHERE e.id = \$1`).
					WithArgs("ev-2").
					WillReturnRows(sqlmock.NewRows(eventRowColumns).
						AddRow("ev-2", "Evento 2", "evento-2", nil, nil, false, eventDate, createdAt))
			},
			want: &domain.Event{
				ID: "ev-2", Title: "Evento 2", Slug: "evento-2", IsActive: false, EventDate: eventDate, CreatedAt: createdAt,
			},
		},
		{
			name: "not found",
			id:   "ev-missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events e WHERE e.id = \$1`).
					WithArgs("ev-missing").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetBySlug(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM events e WHERE e.slug = \$1`).
		WithArgs("evento-x").
		WillReturnRows(sqlmock.NewRows(eventRowColumns).
			AddRow("ev-9", "Evento X", "evento-x", nil, nil, true, now, now))
	mock.ExpectQuery(`FROM events e WHERE e.slug = \$1`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	repo := NewEventRepository(db)
	got, err := repo.GetBySlug(ctx, "evento-x")
	require.NoError(t, err)
	require.Equal(t, "ev-9", got.ID)

	_, err = repo.GetBySlug(ctx, "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_GetWithAttendeesAmount(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cols := append(append([]string{}, eventRowColumns...), "attendees_amount")
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM attendees a WHERE a.event_id = e.id`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("ev-1", "Evento 1", "evento-1", nil, int64(10), true, now, now, int64(3)))
	mock.ExpectQuery(`attendees_amount`).
		WithArgs("ev-missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewEventRepository(db)
	got, err := repo.GetWithAttendeesAmount(ctx, "ev-1")
	require.NoError(t, err)
	require.Equal(t, "ev-1", got.ID)
	require.Equal(t, 3, got.AttendeesAmount)
	require.Equal(t, 10, *got.MaximumAttendees)

	_, err = repo.GetWithAttendeesAmount(ctx, "ev-missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
