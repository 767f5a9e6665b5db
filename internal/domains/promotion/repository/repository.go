package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/promotion/model"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/logger"
	gRepo "hotelier/shared/repository"
)

type Promotion interface {
	Insert(ctx context.Context, model model.Promotion) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Promotion, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Promotion, bool, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Promotion, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error

	// ConsumeQuotaTx decrements remaining_qty by one, conditioned on quota
	// still being available. Returns false when the quota is exhausted. The
	// conditional update is what makes concurrent redemptions safe: the
	// database applies the WHERE check and the decrement as one step, so
	// remaining_qty can never go below zero.
	ConsumeQuotaTx(ctx context.Context, sqltx *sqlx.Tx, promotionID string) (bool, error)
}

type PromotionRedemption interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.PromotionRedemption) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.PromotionRedemption, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)

	// CountTx counts redemptions inside the caller's transaction so the
	// per-customer check observes claims made by concurrent transactions that
	// committed before this one acquired the promotion lock.
	CountTx(ctx context.Context, sqltx *sqlx.Tx, promotionID, customerID string) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Promotion]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Promotion {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Promotion](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const consumeQuotaQuery = `
UPDATE promotions
SET remaining_qty = remaining_qty - 1
WHERE id = :id
  AND remaining_qty IS NOT NULL
  AND remaining_qty > 0`

func (repo *repositoryImpl) ConsumeQuotaTx(ctx context.Context, sqltx *sqlx.Tx, promotionID string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".promotion.ConsumeQuotaTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, consumeQuotaQuery)

	result, err := sqltx.NamedExecContext(ctx, consumeQuotaQuery, map[string]any{"id": promotionID})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to consume promotion quota: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected == 1, nil
}

type redemptionRepositoryImpl struct {
	gRepo.Repository[model.PromotionRedemption]
	db   *postgres.Connection
	otel otel.Otel
}

func NewPromotionRedemption(db *postgres.Connection, otel otel.Otel) PromotionRedemption {
	return &redemptionRepositoryImpl{
		Repository: gRepo.NewRepository[model.PromotionRedemption](model.RedemptionEntityName, model.RedemptionTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const countRedemptionsQuery = `
SELECT COUNT(*)
FROM promotion_redemptions
WHERE promotion_id = :promotion_id
  AND customer_id = :customer_id`

func (repo *redemptionRepositoryImpl) CountTx(ctx context.Context, sqltx *sqlx.Tx, promotionID, customerID string) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".promotion_redemption.CountTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, countRedemptionsQuery)

	prepare, err := sqltx.PrepareNamedContext(ctx, countRedemptionsQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to prepare statement (count redemptions): %w", err)
	}
	defer prepare.Close()

	count := 0

	err = prepare.GetContext(ctx, &count, map[string]any{
		"promotion_id": promotionID,
		"customer_id":  customerID,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count redemptions: %w", err)
	}

	return count, nil
}
