package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/transaction/model"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"
)

type GuestFolio interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.GuestFolio) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.GuestFolio, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.GuestFolio, bool, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type Transaction interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Transaction) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Transaction, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Transaction, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) ([]model.Transaction, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateCountTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type TransactionDetail interface {
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.TransactionDetail) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.TransactionDetail, error)
}

type folioRepositoryImpl struct {
	gRepo.Repository[model.GuestFolio]
	db   *postgres.Connection
	otel otel.Otel
}

func NewGuestFolio(db *postgres.Connection, otel otel.Otel) GuestFolio {
	return &folioRepositoryImpl{
		Repository: gRepo.NewRepository[model.GuestFolio](model.FolioEntityName, model.FolioTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type repositoryImpl struct {
	gRepo.Repository[model.Transaction]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Transaction {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Transaction](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type detailRepositoryImpl struct {
	gRepo.Repository[model.TransactionDetail]
	db   *postgres.Connection
	otel otel.Otel
}

func NewTransactionDetail(db *postgres.Connection, otel otel.Otel) TransactionDetail {
	return &detailRepositoryImpl{
		Repository: gRepo.NewRepository[model.TransactionDetail](model.DetailEntityName, model.DetailTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
