package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/report/model"
	"hotelier/shared/constant"
	"hotelier/shared/logger"
)

// Report reads aggregate projections off the ledger. Queries run on the read
// connection and add no new invariants.
type Report interface {
	GetRevenue(ctx context.Context, start, end time.Time) ([]model.RevenueRow, error)
	GetOccupancy(ctx context.Context, start, end time.Time) (model.OccupancyRow, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Report {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

const revenueQuery = `
SELECT t.type,
       COUNT(*)                 AS transaction_count,
       COALESCE(SUM(t.base_amount), 0)     AS total_base,
       COALESCE(SUM(t.discount_amount), 0) AS total_discount,
       COALESCE(SUM(t.amount), 0)          AS total_amount
FROM transactions t
WHERE t.created_at >= :start
  AND t.created_at < :end
GROUP BY t.type
ORDER BY t.type`

func (repo *repositoryImpl) GetRevenue(ctx context.Context, start, end time.Time) ([]model.RevenueRow, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.GetRevenue")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, revenueQuery)

	var rows []model.RevenueRow

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, revenueQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (revenue report): %w", err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &rows, map[string]any{"start": start, "end": end})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get revenue report: %w", err)
	}

	return rows, nil
}

const occupancyQuery = `
SELECT COUNT(*) AS total_rooms,
       COUNT(*) FILTER (WHERE r.status <> 'MAINTENANCE') AS rooms_in_service,
       COUNT(*) FILTER (WHERE EXISTS (
         SELECT 1
         FROM booking_rooms br
         JOIN bookings b ON br.booking_id = b.id
         WHERE br.room_id = r.id
           AND br.state <> 'CHECKED_OUT'
           AND b.check_in_date < :end
           AND b.check_out_date > :start
       )) AS occupied_rooms
FROM rooms r`

func (repo *repositoryImpl) GetOccupancy(ctx context.Context, start, end time.Time) (model.OccupancyRow, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.GetOccupancy")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, occupancyQuery)

	var row model.OccupancyRow

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, occupancyQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return row, fmt.Errorf("failed to prepare statement (occupancy report): %w", err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &row, map[string]any{"start": start, "end": end})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return row, fmt.Errorf("failed to get occupancy report: %w", err)
	}

	return row, nil
}
