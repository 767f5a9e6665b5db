package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=HotelService=MockHotelServiceService

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	activityModel "hotelier/internal/domains/activity/model"
	activityDto "hotelier/internal/domains/activity/model/dto"
	activitySvc "hotelier/internal/domains/activity/service"
	bookingModel "hotelier/internal/domains/booking/model"
	bookingRepo "hotelier/internal/domains/booking/repository"
	"hotelier/internal/domains/hotelservice/model"
	"hotelier/internal/domains/hotelservice/model/dto"
	"hotelier/internal/domains/hotelservice/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

const cacheGetAllServices = "hotel_service:gets"

type HotelService interface {
	CreateService(ctx context.Context, req dto.CreateServiceRequest) (dto.ServiceResponse, error)
	UpdateService(ctx context.Context, req dto.UpdateServiceRequest, id string) error
	ListServices(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetServicesResponse, error)
	AddUsage(ctx context.Context, req dto.AddUsageRequest) (dto.UsageResponse, error)
	ListUsages(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsagesResponse, error)
}

type serviceImpl struct {
	repo            repository.HotelService
	usageRepo       repository.ServiceUsage
	bookingRoomRepo bookingRepo.BookingRoom
	activity        activitySvc.Recorder
	transactor      postgres.Transactor
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	repo repository.HotelService,
	usageRepo repository.ServiceUsage,
	bookingRoomRepo bookingRepo.BookingRoom,
	activity activitySvc.Recorder,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) HotelService {
	return &serviceImpl{
		repo:            repo,
		usageRepo:       usageRepo,
		bookingRoomRepo: bookingRoomRepo,
		activity:        activity,
		transactor:      transactor,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

func (s *serviceImpl) CreateService(ctx context.Context, req dto.CreateServiceRequest) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel_service.CreateService")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyActorID).(string)
	mod := req.ToModel(user)

	nameTaken, err := s.repo.Exist(ctx, shared.FilterByID(req.Name, model.FieldName, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check service name uniqueness")

		return res, fmt.Errorf("failed to check service name uniqueness: %w", err)
	}

	if nameTaken {
		return res, failure.Conflict(fmt.Sprintf("service %s already exists", req.Name)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, mod); err != nil {
		log.Error().Err(err).Msg("failed to create service")

		return res, fmt.Errorf("failed to create service: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllServices)
	}()

	res.FromModel(mod)

	return res, nil
}

func (s *serviceImpl) UpdateService(ctx context.Context, req dto.UpdateServiceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel_service.UpdateService")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateServiceRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyActorID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !exist {
		return failure.NotFound("service not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update service")

		return fmt.Errorf("failed to update service: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllServices)
	}()

	return nil
}

func (s *serviceImpl) ListServices(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel_service.ListServices")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllServices, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for services")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count services")

		return res, fmt.Errorf("failed to count services: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return res, fmt.Errorf("failed to get services: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save services to cache")
		}
	}()

	return res, nil
}

// AddUsage records consumption of a hotel service. A usage tied to a booking
// room requires the room to be occupied; recording it flips a freshly
// checked-in room to IN_STAY.
func (s *serviceImpl) AddUsage(ctx context.Context, req dto.AddUsageRequest) (res dto.UsageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel_service.AddUsage")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyActorID).(string)

	svc, err := s.repo.Get(ctx, shared.FilterByID(req.ServiceID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if svc.ID == "" {
		return res, failure.NotFound("service not found") // nolint:wrapcheck
	}

	if !svc.IsActive {
		return res, failure.BadRequestFromString(fmt.Sprintf("service %s is inactive", svc.Name)) // nolint:wrapcheck
	}

	now := timezone.Now()

	usage := model.ServiceUsage{
		ID:            uuid.NewString(),
		ServiceID:     svc.ID,
		BookingID:     req.BookingID,
		BookingRoomID: req.BookingRoomID,
		Quantity:      req.Quantity,
		UnitPrice:     svc.Price,
		Status:        model.UsageStatusUnbilled,
		Metadata:      gModel.NewMetadata(now, user),
	}

	err = s.transactor.Transact(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if req.BookingRoomID != nil {
			room, found, err := s.bookingRoomRepo.GetForUpdateTx(ctx, tx,
				shared.FilterByID(*req.BookingRoomID, bookingModel.FieldID, bookingModel.RoomTableName))
			if err != nil {
				return fmt.Errorf("failed to lock booking room: %w", err)
			}

			if !found {
				return failure.NotFound("booking room not found") // nolint:wrapcheck
			}

			if room.State != bookingModel.StateCheckedIn && room.State != bookingModel.StateInStay {
				return failure.UnprocessableEntity(fmt.Sprintf( // nolint:wrapcheck
					"booking room %s is %s, service usage requires an occupied room", room.ID, room.State))
			}

			if room.State == bookingModel.StateCheckedIn {
				err = s.bookingRoomRepo.UpdateTx(ctx, tx, map[string]any{
					bookingModel.FieldState: bookingModel.StateInStay,
					"modified_at":           now,
					"modified_by":           user,
				}, shared.FilterByID(room.ID, bookingModel.FieldID, bookingModel.RoomTableName))
				if err != nil {
					return fmt.Errorf("failed to update booking room state: %w", err)
				}
			}
		}

		if err := s.usageRepo.InsertTx(ctx, tx, usage); err != nil {
			return fmt.Errorf("failed to record service usage: %w", err)
		}

		return s.activity.RecordTx(ctx, tx, activityDto.Entry{
			Type:        activityModel.TypeServiceUsageAdded,
			SubjectType: model.UsageEntityName,
			SubjectID:   usage.ID,
		})
	})
	if err != nil {
		log.Error().Err(err).Str("serviceID", req.ServiceID).Msg("failed to add service usage")

		return res, err
	}

	res.FromModel(usage)

	return res, nil
}

func (s *serviceImpl) ListUsages(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel_service.ListUsages")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.usageRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count service usages")

		return res, fmt.Errorf("failed to count service usages: %w", err)
	}

	models, err := s.usageRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get service usages")

		return res, fmt.Errorf("failed to get service usages: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}
