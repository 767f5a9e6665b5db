package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Promotion=MockPromotionService

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	activityModel "hotelier/internal/domains/activity/model"
	activityDto "hotelier/internal/domains/activity/model/dto"
	activitySvc "hotelier/internal/domains/activity/service"
	"hotelier/internal/domains/promotion/model"
	"hotelier/internal/domains/promotion/model/dto"
	"hotelier/internal/domains/promotion/repository"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type Promotion interface {
	Create(ctx context.Context, req dto.CreatePromotionRequest) (dto.PromotionResponse, error)
	Update(ctx context.Context, req dto.UpdatePromotionRequest, id string) error
	Disable(ctx context.Context, id string) error
	List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPromotionsResponse, error)
	Redeem(ctx context.Context, req dto.RedeemPromotionRequest) (dto.RedemptionResult, error)

	// RedeemTx runs the full claim inside the caller's transaction so a
	// failed ledger write also rolls back the quota decrement.
	RedeemTx(ctx context.Context, sqltx *sqlx.Tx, req dto.RedeemPromotionRequest, transactionID *string) (dto.RedemptionResult, error)
}

type serviceImpl struct {
	repo           repository.Promotion
	redemptionRepo repository.PromotionRedemption
	activity       activitySvc.Recorder
	transactor     postgres.Transactor
	otel           otel.Otel
}

func New(
	repo repository.Promotion,
	redemptionRepo repository.PromotionRedemption,
	activity activitySvc.Recorder,
	transactor postgres.Transactor,
	otel otel.Otel,
) Promotion {
	return &serviceImpl{
		repo:           repo,
		redemptionRepo: redemptionRepo,
		activity:       activity,
		transactor:     transactor,
		otel:           otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePromotionRequest) (res dto.PromotionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".promotion.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyActorID).(string)

	mod, err := req.ToModel(user)
	if err != nil {
		return res, failure.BadRequestFromString("invalid promotion dates") // nolint:wrapcheck
	}

	if !mod.StartDate.Before(mod.EndDate) {
		return res, failure.BadRequestFromString("start date must be before end date") // nolint:wrapcheck
	}

	codeTaken, err := s.repo.Exist(ctx, shared.FilterByID(req.Code, model.FieldCode, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check promotion code uniqueness")

		return res, fmt.Errorf("failed to check promotion code uniqueness: %w", err)
	}

	if codeTaken {
		return res, failure.Conflict(fmt.Sprintf("promotion code %s already exists", req.Code)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, mod); err != nil {
		log.Error().Err(err).Msg("failed to create promotion")

		return res, fmt.Errorf("failed to create promotion: %w", err)
	}

	res.FromModel(mod)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePromotionRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".promotion.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdatePromotionRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyActorID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if promotion exists")

		return fmt.Errorf("failed to check if promotion exists: %w", err)
	}

	if !exist {
		return failure.NotFound("promotion not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	// TransformFields copies end_date as the raw request string; the column
	// is a date, so it has to be parsed before it reaches the database.
	if req.EndDate != nil {
		end, err := timezone.Parse(constant.DateOnlyFormat, *req.EndDate)
		if err != nil {
			return failure.BadRequestFromString("end_date must be in YYYY-MM-DD format") // nolint:wrapcheck
		}

		updatedFields[model.FieldEndDate] = end
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update promotion")

		return fmt.Errorf("failed to update promotion: %w", err)
	}

	return nil
}

// Disable soft-disables the promotion. Existing redemptions keep their
// discounts; new claims fail validation.
func (s *serviceImpl) Disable(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".promotion.Disable")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyActorID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	mod, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get promotion")

		return fmt.Errorf("failed to get promotion: %w", err)
	}

	if mod.ID == "" {
		return failure.NotFound("promotion not found") // nolint:wrapcheck
	}

	if mod.DisabledAt != nil {
		return failure.Conflict(fmt.Sprintf("promotion %s is already disabled", id)) // nolint:wrapcheck
	}

	now := timezone.Now()

	err = s.repo.Update(ctx, map[string]any{
		model.FieldDisabledAt: now,
		"modified_at":         now,
		"modified_by":         user,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to disable promotion")

		return fmt.Errorf("failed to disable promotion: %w", err)
	}

	return nil
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPromotionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".promotion.List")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count promotions")

		return res, fmt.Errorf("failed to count promotions: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get promotions")

		return res, fmt.Errorf("failed to get promotions: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

// Redeem is the standalone claim path. CustomerID comes from the request
// body, so customer-role callers may only claim for themselves; staff can
// claim on any customer's behalf.
func (s *serviceImpl) Redeem(ctx context.Context, req dto.RedeemPromotionRequest) (res dto.RedemptionResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".promotion.Redeem")
	defer scope.End()
	defer scope.TraceIfError(err)

	role, _ := ctx.Value(constant.ContextKeyActorRole).(string)
	if role == constant.RoleCustomer {
		actorID, _ := ctx.Value(constant.ContextKeyActorID).(string)
		if req.CustomerID != actorID {
			return res, failure.Forbidden("customers can only redeem promotions for themselves") // nolint:wrapcheck
		}
	}

	err = s.transactor.Transact(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		res, err = s.RedeemTx(ctx, tx, req, nil)

		return err
	})
	if err != nil {
		log.Error().Err(err).Str("code", req.Code).Msg("failed to redeem promotion")

		return res, err
	}

	return res, nil
}

// RedeemTx validates and claims the promotion. The promotion row lock
// linearizes concurrent claims of the same code; the quota decrement is a
// conditional update that only applies while quota remains, so with k
// remaining and N concurrent claims exactly min(N, k) succeed.
//
// Validation order, first failure wins: existence, disabled, active window,
// scope, minimum booking amount, per-customer limit, quota.
func (s *serviceImpl) RedeemTx(ctx context.Context, sqltx *sqlx.Tx, req dto.RedeemPromotionRequest, transactionID *string) (res dto.RedemptionResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".promotion.RedeemTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	promo, found, err := s.repo.GetForUpdateTx(ctx, sqltx, shared.FilterByID(req.Code, model.FieldCode, model.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to lock promotion: %w", err)
	}

	if !found {
		return res, failure.NotFound(fmt.Sprintf("promotion %s not found", req.Code)) // nolint:wrapcheck
	}

	if promo.DisabledAt != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("promotion %s is disabled", req.Code)) // nolint:wrapcheck
	}

	now := timezone.Now()
	if !promo.ActiveAt(now) {
		return res, failure.BadRequestFromString(fmt.Sprintf("promotion %s is not active", req.Code)) // nolint:wrapcheck
	}

	if !model.ScopeAllows(promo.Scope, req.Scope) {
		return res, failure.BadRequestFromString(fmt.Sprintf( // nolint:wrapcheck
			"promotion %s applies to %s charges, not %s", req.Code, promo.Scope, req.Scope))
	}

	if req.BaseAmount < promo.MinBookingAmount {
		return res, failure.BadRequestFromString(fmt.Sprintf( // nolint:wrapcheck
			"promotion %s requires a minimum amount of %d", req.Code, promo.MinBookingAmount))
	}

	if promo.PerCustomerLimit != nil {
		redeemed, err := s.redemptionRepo.CountTx(ctx, sqltx, promo.ID, req.CustomerID)
		if err != nil {
			return res, fmt.Errorf("failed to count prior redemptions: %w", err)
		}

		if redeemed >= *promo.PerCustomerLimit {
			return res, failure.Conflict(fmt.Sprintf( // nolint:wrapcheck
				"customer has reached the redemption limit for promotion %s", req.Code))
		}
	}

	if !promo.Unlimited() {
		consumed, err := s.repo.ConsumeQuotaTx(ctx, sqltx, promo.ID)
		if err != nil {
			return res, fmt.Errorf("failed to consume promotion quota: %w", err)
		}

		if !consumed {
			return res, failure.Conflict(fmt.Sprintf("promotion %s quota is exhausted", req.Code)) // nolint:wrapcheck
		}
	}

	discount := model.ComputeDiscount(promo, req.BaseAmount)
	user, _ := ctx.Value(constant.ContextKeyActorID).(string)

	redemption := model.PromotionRedemption{
		ID:             uuid.NewString(),
		PromotionID:    promo.ID,
		CustomerID:     req.CustomerID,
		TransactionID:  transactionID,
		BaseAmount:     req.BaseAmount,
		DiscountAmount: discount,
		Metadata:       gModel.NewMetadata(now, user),
	}

	if err = s.redemptionRepo.InsertTx(ctx, sqltx, redemption); err != nil {
		return res, fmt.Errorf("failed to record redemption: %w", err)
	}

	err = s.activity.RecordTx(ctx, sqltx, activityDto.Entry{
		Type:        activityModel.TypePromotionRedeemed,
		SubjectType: model.EntityName,
		SubjectID:   promo.ID,
		Detail:      fmt.Sprintf("code=%s customer=%s discount=%d", promo.Code, req.CustomerID, discount),
	})
	if err != nil {
		return res, err
	}

	return dto.RedemptionResult{
		PromotionID:    promo.ID,
		Code:           promo.Code,
		BaseAmount:     req.BaseAmount,
		DiscountAmount: discount,
		FinalAmount:    req.BaseAmount - discount,
	}, nil
}
