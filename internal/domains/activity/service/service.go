package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Recorder=MockRecorderService

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/internal/domains/activity/model"
	"hotelier/internal/domains/activity/model/dto"
	"hotelier/internal/domains/activity/repository"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
)

// Recorder appends audit entries. RecordTx joins the caller's transaction so
// the entry commits or rolls back with the mutation it describes; the Kafka
// copy is best-effort fan-out for downstream consumers, held back until the
// transaction commits so a rolled-back mutation never emits an event.
type Recorder interface {
	Record(ctx context.Context, entry dto.Entry) error
	RecordTx(ctx context.Context, sqltx *sqlx.Tx, entry dto.Entry) error
	List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetActivitiesResponse, error)
}

type recorderImpl struct {
	repo  repository.Activity
	kafka kafka.Client
	cfg   *config.Config
	otel  otel.Otel
}

func New(repo repository.Activity, kafkaClient kafka.Client, cfg *config.Config, otel otel.Otel) Recorder {
	return &recorderImpl{
		repo:  repo,
		kafka: kafkaClient,
		cfg:   cfg,
		otel:  otel,
	}
}

func (s *recorderImpl) Record(ctx context.Context, entry dto.Entry) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".activity.Record")
	defer scope.End()
	defer scope.TraceIfError(err)

	mod := s.buildModel(ctx, entry)

	if err = s.repo.Insert(ctx, mod); err != nil {
		log.Error().Err(err).Msg("failed to record activity")

		return fmt.Errorf("failed to record activity: %w", err)
	}

	s.publish(ctx, mod)

	return nil
}

func (s *recorderImpl) RecordTx(ctx context.Context, sqltx *sqlx.Tx, entry dto.Entry) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".activity.RecordTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	mod := s.buildModel(ctx, entry)

	if err = s.repo.InsertTx(ctx, sqltx, mod); err != nil {
		log.Error().Err(err).Msg("failed to record activity")

		return fmt.Errorf("failed to record activity: %w", err)
	}

	postgres.OnCommit(ctx, func(ctx context.Context) {
		s.publish(ctx, mod)
	})

	return nil
}

func (s *recorderImpl) List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetActivitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".activity.List")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count activities")

		return res, fmt.Errorf("failed to count activities: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get activities")

		return res, fmt.Errorf("failed to get activities: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *recorderImpl) buildModel(ctx context.Context, entry dto.Entry) model.Activity {
	actorID, _ := ctx.Value(constant.ContextKeyActorID).(string)
	actorRole, _ := ctx.Value(constant.ContextKeyActorRole).(string)

	return entry.ToModel(actorID, actorRole)
}

func (s *recorderImpl) publish(ctx context.Context, mod model.Activity) {
	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.ActivityTopic, kafka.Message{
			Key:   mod.SubjectID,
			Value: mod,
		})
		if err != nil {
			log.Error().Err(err).Str("activityID", mod.ID).Msg("failed to publish activity")
		}
	}()
}
