package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS events`).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, Migrate(ctx, db))

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS check_ins`).WillReturnError(errors.New("permission denied"))
	err = Migrate(ctx, db)
	require.Error(t, err)
	require.Contains(t, err.Error(), "apply schema")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaDeclaresConstraints(t *testing.T) {
	for _, name := range []string{
		constraintEventSlug,
		constraintAttendeeEventEmail,
		constraintAttendeeCheckInID,
		constraintCheckInAttendee,
	} {
		require.Contains(t, schema, name)
	}
}
