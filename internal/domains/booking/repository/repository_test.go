package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	otelMocks "hotelier/infras/otel/mocks"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/repository"
)

func newMockTx(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock, *sqlx.Tx) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	mock.ExpectBegin()

	tx, err := sqlxDB.Beginx()
	require.NoError(t, err)

	return &postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mock, tx
}

func TestBookingRoomRepository_FindAvailableRoomsTx(t *testing.T) {
	conn, mock, tx := newMockTx(t)
	repo := repository.NewBookingRoom(conn, otelMocks.NewOtel())

	checkIn := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	// The candidate query must exclude overlapping stays and take the row
	// locks in the same statement, otherwise two allocators can pick the
	// same room.
	mock.ExpectPrepare(`(?s)FROM rooms r.*NOT EXISTS.*br\.room_id = r\.id.*FOR UPDATE OF r`).
		ExpectQuery().
		WithArgs("rt-1", "MAINTENANCE", model.StateCheckedOut, checkOut, checkIn, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_type_id", "status", "price_per_night"}).
			AddRow("room-1", "rt-1", "AVAILABLE", int64(500000)).
			AddRow("room-2", "rt-1", "AVAILABLE", int64(500000)))

	candidates, err := repo.FindAvailableRoomsTx(context.Background(), tx, "rt-1", checkIn, checkOut, 2)

	assert.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "room-1", candidates[0].ID)
	assert.Equal(t, int64(500000), candidates[0].PricePerNight)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRoomRepository_OverlapExistsTx(t *testing.T) {
	checkIn := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name   string
		exists bool
	}{
		{name: "room already allocated for the range", exists: true},
		{name: "room free for the range", exists: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conn, mock, tx := newMockTx(t)
			repo := repository.NewBookingRoom(conn, otelMocks.NewOtel())

			mock.ExpectPrepare(`(?s)SELECT EXISTS.*br\.room_id = \$1`).
				ExpectQuery().
				WithArgs("room-1", model.StateCheckedOut, checkOut, checkIn).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tc.exists))

			exists, err := repo.OverlapExistsTx(context.Background(), tx, "room-1", checkIn, checkOut)

			assert.NoError(t, err)
			assert.Equal(t, tc.exists, exists)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
