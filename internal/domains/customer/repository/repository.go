package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/customer/model"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"
)

type CustomerTier interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.CustomerTier, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.CustomerTier, error)
}

type tierRepositoryImpl struct {
	gRepo.Repository[model.CustomerTier]
	db   *postgres.Connection
	otel otel.Otel
}

func NewCustomerTier(db *postgres.Connection, otel otel.Otel) CustomerTier {
	return &tierRepositoryImpl{
		Repository: gRepo.NewRepository[model.CustomerTier](model.TierEntityName, model.TierTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
