package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/inspection/model"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"
)

type Inspection interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Inspection) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Inspection, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Inspection, bool, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Inspection]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Inspection {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Inspection](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
