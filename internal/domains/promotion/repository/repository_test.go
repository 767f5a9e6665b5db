package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	otelMocks "hotelier/infras/otel/mocks"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/promotion/repository"
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

func TestPromotionRepository_ConsumeQuotaTx(t *testing.T) {
	// The decrement and the quota guard must be a single statement so two
	// concurrent redeemers can never both take the last unit.
	quotaGuard := `UPDATE promotions\s+SET remaining_qty = remaining_qty - 1\s+` +
		`WHERE id = \$1\s+AND remaining_qty IS NOT NULL\s+AND remaining_qty > 0`

	t.Run("decrements while quota remains", func(t *testing.T) {
		conn, mock, tx := newMockTx(t)
		repo := repository.New(conn, otelMocks.NewOtel())

		mock.ExpectExec(quotaGuard).
			WithArgs("promo-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		consumed, err := repo.ConsumeQuotaTx(context.Background(), tx, "promo-1")

		assert.NoError(t, err)
		assert.True(t, consumed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exhausted quota matches no row", func(t *testing.T) {
		conn, mock, tx := newMockTx(t)
		repo := repository.New(conn, otelMocks.NewOtel())

		mock.ExpectExec(quotaGuard).
			WithArgs("promo-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		consumed, err := repo.ConsumeQuotaTx(context.Background(), tx, "promo-1")

		assert.NoError(t, err)
		assert.False(t, consumed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedemptionRepository_CountTx(t *testing.T) {
	conn, mock, tx := newMockTx(t)
	repo := repository.NewPromotionRedemption(conn, otelMocks.NewOtel())

	mock.ExpectPrepare(`SELECT COUNT\(\*\)\s+FROM promotion_redemptions`).
		ExpectQuery().
		WithArgs("promo-1", "cust-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountTx(context.Background(), tx, "promo-1", "cust-1")

	assert.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
