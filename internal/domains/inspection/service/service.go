package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Inspection=MockInspectionService

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	activityModel "hotelier/internal/domains/activity/model"
	activityDto "hotelier/internal/domains/activity/model/dto"
	activitySvc "hotelier/internal/domains/activity/service"
	bookingModel "hotelier/internal/domains/booking/model"
	bookingRepo "hotelier/internal/domains/booking/repository"
	"hotelier/internal/domains/inspection/model"
	"hotelier/internal/domains/inspection/model/dto"
	"hotelier/internal/domains/inspection/repository"
	"hotelier/shared"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
)

type Inspection interface {
	Create(ctx context.Context, req dto.CreateInspectionRequest) (dto.InspectionResponse, error)
	Approve(ctx context.Context, id string) (dto.InspectionResponse, error)
	GetByBookingRoom(ctx context.Context, bookingRoomID string) (dto.InspectionResponse, error)
}

type serviceImpl struct {
	repo            repository.Inspection
	bookingRoomRepo bookingRepo.BookingRoom
	activity        activitySvc.Recorder
	transactor      postgres.Transactor
	otel            otel.Otel
}

func New(
	repo repository.Inspection,
	bookingRoomRepo bookingRepo.BookingRoom,
	activity activitySvc.Recorder,
	transactor postgres.Transactor,
	otel otel.Otel,
) Inspection {
	return &serviceImpl{
		repo:            repo,
		bookingRoomRepo: bookingRoomRepo,
		activity:        activity,
		transactor:      transactor,
		otel:            otel,
	}
}

// Create records the post-stay audit for a room awaiting inspection. The room
// must already be in INSPECTION_PENDING and can only carry one inspection.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateInspectionRequest) (res dto.InspectionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inspection.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyActorID).(string)
	mod := req.ToModel(user)

	err = s.transactor.Transact(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		room, found, err := s.bookingRoomRepo.GetForUpdateTx(ctx, tx,
			shared.FilterByID(req.BookingRoomID, bookingModel.FieldID, bookingModel.RoomTableName))
		if err != nil {
			return fmt.Errorf("failed to lock booking room: %w", err)
		}

		if !found {
			return failure.NotFound("booking room not found") // nolint:wrapcheck
		}

		if room.State != bookingModel.StateInspectionPending {
			return failure.UnprocessableEntity( // nolint:wrapcheck
				fmt.Sprintf("booking room %s is %s, inspection requires %s", room.ID, room.State, bookingModel.StateInspectionPending))
		}

		exists, err := s.repo.Exist(ctx, shared.FilterByID(req.BookingRoomID, model.FieldBookingRoomID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to check existing inspection: %w", err)
		}

		if exists {
			return failure.Conflict(fmt.Sprintf("booking room %s already has an inspection", room.ID)) // nolint:wrapcheck
		}

		if err = s.repo.InsertTx(ctx, tx, mod); err != nil {
			return fmt.Errorf("failed to create inspection: %w", err)
		}

		return s.activity.RecordTx(ctx, tx, activityDto.Entry{
			Type:        activityModel.TypeInspectionCreated,
			SubjectType: model.EntityName,
			SubjectID:   mod.ID,
		})
	})
	if err != nil {
		log.Error().Err(err).Str("bookingRoomID", req.BookingRoomID).Msg("failed to create inspection")

		return res, err
	}

	res.FromModel(mod)

	return res, nil
}

// Approve marks the inspection approved and advances the booking room to
// INSPECTED, making it eligible for checkout.
func (s *serviceImpl) Approve(ctx context.Context, id string) (res dto.InspectionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inspection.Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyActorID).(string)

	var mod model.Inspection

	err = s.transactor.Transact(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		var found bool

		mod, found, err = s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock inspection: %w", err)
		}

		if !found {
			return failure.NotFound("inspection not found") // nolint:wrapcheck
		}

		if mod.IsApproved {
			return failure.Conflict(fmt.Sprintf("inspection %s is already approved", id)) // nolint:wrapcheck
		}

		room, found, err := s.bookingRoomRepo.GetForUpdateTx(ctx, tx,
			shared.FilterByID(mod.BookingRoomID, bookingModel.FieldID, bookingModel.RoomTableName))
		if err != nil {
			return fmt.Errorf("failed to lock booking room: %w", err)
		}

		if !found {
			return failure.NotFound("booking room not found") // nolint:wrapcheck
		}

		if !bookingModel.CanTransition(room.State, bookingModel.StateInspected) {
			return failure.UnprocessableEntity( // nolint:wrapcheck
				fmt.Sprintf("booking room %s cannot move from %s to %s", room.ID, room.State, bookingModel.StateInspected))
		}

		now := timezone.Now()

		err = s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldIsApproved: true,
			"modified_at":         now,
			"modified_by":         user,
		}, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to approve inspection: %w", err)
		}

		err = s.bookingRoomRepo.UpdateTx(ctx, tx, map[string]any{
			bookingModel.FieldState: bookingModel.StateInspected,
			"modified_at":           now,
			"modified_by":           user,
		}, shared.FilterByID(room.ID, bookingModel.FieldID, bookingModel.RoomTableName))
		if err != nil {
			return fmt.Errorf("failed to update booking room state: %w", err)
		}

		return s.activity.RecordTx(ctx, tx, activityDto.Entry{
			Type:        activityModel.TypeInspectionApproved,
			SubjectType: model.EntityName,
			SubjectID:   id,
		})
	})
	if err != nil {
		log.Error().Err(err).Str("inspectionID", id).Msg("failed to approve inspection")

		return res, err
	}

	mod.IsApproved = true
	res.FromModel(mod)

	return res, nil
}

func (s *serviceImpl) GetByBookingRoom(ctx context.Context, bookingRoomID string) (res dto.InspectionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inspection.GetByBookingRoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	mod, err := s.repo.Get(ctx, shared.FilterByID(bookingRoomID, model.FieldBookingRoomID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get inspection")

		return res, fmt.Errorf("failed to get inspection: %w", err)
	}

	if mod.ID == "" {
		return res, failure.NotFound("inspection not found") // nolint:wrapcheck
	}

	res.FromModel(mod)

	return res, nil
}
