package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/hotelservice/model"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"
)

type HotelService interface {
	Insert(ctx context.Context, model model.HotelService) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.HotelService, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.HotelService, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type ServiceUsage interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.ServiceUsage) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ServiceUsage, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.ServiceUsage, bool, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ServiceUsage, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.HotelService]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) HotelService {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.HotelService](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type usageRepositoryImpl struct {
	gRepo.Repository[model.ServiceUsage]
	db   *postgres.Connection
	otel otel.Otel
}

func NewServiceUsage(db *postgres.Connection, otel otel.Otel) ServiceUsage {
	return &usageRepositoryImpl{
		Repository: gRepo.NewRepository[model.ServiceUsage](model.UsageEntityName, model.UsageTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
