package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Transaction=MockTransactionService

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	activityModel "hotelier/internal/domains/activity/model"
	activityDto "hotelier/internal/domains/activity/model/dto"
	activitySvc "hotelier/internal/domains/activity/service"
	bookingModel "hotelier/internal/domains/booking/model"
	bookingRepo "hotelier/internal/domains/booking/repository"
	usageModel "hotelier/internal/domains/hotelservice/model"
	usageRepo "hotelier/internal/domains/hotelservice/repository"
	promotionModel "hotelier/internal/domains/promotion/model"
	promotionDto "hotelier/internal/domains/promotion/model/dto"
	promotionSvc "hotelier/internal/domains/promotion/service"
	"hotelier/internal/domains/transaction/model"
	"hotelier/internal/domains/transaction/model/dto"
	"hotelier/internal/domains/transaction/repository"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
)

type Transaction interface {
	Create(ctx context.Context, req dto.CreateTransactionRequest) (dto.TransactionResponse, error)
	Get(ctx context.Context, id string) (dto.TransactionResponse, error)
	List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTransactionsResponse, error)
}

type serviceImpl struct {
	repo            repository.Transaction
	detailRepo      repository.TransactionDetail
	folioRepo       repository.GuestFolio
	bookingRepo     bookingRepo.Booking
	bookingRoomRepo bookingRepo.BookingRoom
	usageRepo       usageRepo.ServiceUsage
	promotion       promotionSvc.Promotion
	activity        activitySvc.Recorder
	transactor      postgres.Transactor
	otel            otel.Otel
}

func New(
	repo repository.Transaction,
	detailRepo repository.TransactionDetail,
	folioRepo repository.GuestFolio,
	bookingRepository bookingRepo.Booking,
	bookingRoomRepository bookingRepo.BookingRoom,
	usageRepository usageRepo.ServiceUsage,
	promotion promotionSvc.Promotion,
	activity activitySvc.Recorder,
	transactor postgres.Transactor,
	otel otel.Otel,
) Transaction {
	return &serviceImpl{
		repo:            repo,
		detailRepo:      detailRepo,
		folioRepo:       folioRepo,
		bookingRepo:     bookingRepository,
		bookingRoomRepo: bookingRoomRepository,
		usageRepo:       usageRepository,
		promotion:       promotion,
		activity:        activity,
		transactor:      transactor,
		otel:            otel,
	}
}

// ledgerLine is one resolved charge line before discount allocation.
type ledgerLine struct {
	bookingRoomID  *string
	serviceUsageID *string
	baseAmount     int64
}

// Create records a monetary movement for one of the four payment shapes:
// full booking, split rooms, booking-tied service, or standalone service.
// The whole resolution, optional promotion claim, and persistence run in one
// atomic unit, so a transaction is never committed without its details or
// with a half-applied quota decrement.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTransactionRequest) (res dto.TransactionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".transaction.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	scenario := req.Scenario()
	if scenario == "" {
		return res, failure.BadRequestFromString( // nolint:wrapcheck
			"exactly one payment shape is allowed: booking, booking with rooms, booking with service usage, or service usage alone")
	}

	signed := model.IsSignedType(req.Type)

	if signed && req.Amount == nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("%s requires an explicit amount", req.Type)) // nolint:wrapcheck
	}

	if signed && req.PromotionCode != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("%s cannot carry a promotion", req.Type)) // nolint:wrapcheck
	}

	if req.Type == model.TypeRoomCharge && scenario != dto.ScenarioFullBooking && scenario != dto.ScenarioSplitRooms {
		return res, failure.BadRequestFromString("room charges require a booking payment shape") // nolint:wrapcheck
	}

	if req.Type == model.TypeServiceCharge && scenario != dto.ScenarioBookingService && scenario != dto.ScenarioStandaloneService {
		return res, failure.BadRequestFromString("service charges require a service usage") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyActorID).(string)
	now := timezone.Now()
	transactionID := uuid.NewString()

	var (
		transaction model.Transaction
		details     []model.TransactionDetail
	)

	err = s.transactor.Transact(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if req.BookingID != nil {
			exists, err := s.bookingRepo.Exist(ctx, shared.FilterByID(*req.BookingID, bookingModel.FieldID, bookingModel.TableName))
			if err != nil {
				return fmt.Errorf("failed to check booking: %w", err)
			}

			if !exists {
				return failure.NotFound("booking not found") // nolint:wrapcheck
			}
		}

		lines, chargeScope, err := s.resolveLinesTx(ctx, tx, scenario, req, now, user)
		if err != nil {
			return err
		}

		var totalBase int64
		for _, line := range lines {
			totalBase += line.baseAmount
		}

		var (
			discount    int64
			promotionID *string
		)

		if !signed && req.PromotionCode != nil {
			result, err := s.promotion.RedeemTx(ctx, tx, promotionDto.RedeemPromotionRequest{
				Code:       *req.PromotionCode,
				CustomerID: req.CustomerID,
				Scope:      chargeScope,
				BaseAmount: totalBase,
			}, &transactionID)
			if err != nil {
				return err
			}

			discount = result.DiscountAmount
			promotionID = &result.PromotionID
		}

		amount := totalBase - discount
		if signed {
			amount = *req.Amount
			totalBase = amount
			discount = 0
		}

		folioID, err := s.resolveFolioTx(ctx, req.BookingID)
		if err != nil {
			return err
		}

		transaction = model.Transaction{
			ID:             transactionID,
			GuestFolioID:   folioID,
			BookingID:      req.BookingID,
			PromotionID:    promotionID,
			Type:           req.Type,
			Method:         req.Method,
			BaseAmount:     totalBase,
			DiscountAmount: discount,
			Amount:         amount,
			Metadata:       gModel.NewMetadata(now, user),
		}

		details = buildDetails(transactionID, lines, signed, amount, discount, now, user)

		if err := s.repo.InsertTx(ctx, tx, transaction); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		if err := s.detailRepo.InsertBulkTx(ctx, tx, details); err != nil {
			return fmt.Errorf("failed to create transaction details: %w", err)
		}

		return s.activity.RecordTx(ctx, tx, activityDto.Entry{
			Type:        activityModel.TypeTransactionCreated,
			SubjectType: model.EntityName,
			SubjectID:   transactionID,
			Detail:      fmt.Sprintf("type=%s amount=%d", req.Type, amount),
		})
	})
	if err != nil {
		log.Error().Err(err).Str("scenario", scenario).Msg("failed to create transaction")

		return res, err
	}

	res.FromModel(transaction, details)

	return res, nil
}

// resolveLinesTx locks and validates the charge lines for the scenario,
// marking rooms paid and usages billed as a side effect. Signed types skip
// the paid/billed flips: a deposit or refund never settles a charge.
func (s *serviceImpl) resolveLinesTx(ctx context.Context, tx *sqlx.Tx, scenario string, req dto.CreateTransactionRequest, now time.Time, user string) ([]ledgerLine, string, error) {
	signed := model.IsSignedType(req.Type)

	switch scenario {
	case dto.ScenarioFullBooking, dto.ScenarioSplitRooms:
		rooms, err := s.lockRoomsTx(ctx, tx, scenario, req)
		if err != nil {
			return nil, "", err
		}

		lines := make([]ledgerLine, len(rooms))

		for i := range rooms {
			roomID := rooms[i].ID
			lines[i] = ledgerLine{bookingRoomID: &roomID, baseAmount: rooms[i].RoomCharge()}

			if signed {
				continue
			}

			err = s.bookingRoomRepo.UpdateTx(ctx, tx, map[string]any{
				bookingModel.FieldIsPaid: true,
				"modified_at":            now,
				"modified_by":            user,
			}, shared.FilterByID(roomID, bookingModel.FieldID, bookingModel.RoomTableName))
			if err != nil {
				return nil, "", fmt.Errorf("failed to mark booking room paid: %w", err)
			}
		}

		return lines, promotionModel.ScopeRoom, nil

	case dto.ScenarioBookingService, dto.ScenarioStandaloneService:
		usage, found, err := s.usageRepo.GetForUpdateTx(ctx, tx,
			shared.FilterByID(*req.ServiceUsageID, usageModel.FieldID, usageModel.UsageTableName))
		if err != nil {
			return nil, "", fmt.Errorf("failed to lock service usage: %w", err)
		}

		if !found {
			return nil, "", failure.NotFound("service usage not found") // nolint:wrapcheck
		}

		if scenario == dto.ScenarioBookingService {
			if usage.BookingID == nil || *usage.BookingID != *req.BookingID {
				return nil, "", failure.BadRequestFromString(fmt.Sprintf( // nolint:wrapcheck
					"service usage %s does not belong to booking %s", usage.ID, *req.BookingID))
			}
		}

		if !signed {
			if usage.Status == usageModel.UsageStatusBilled {
				return nil, "", failure.Conflict(fmt.Sprintf("service usage %s is already billed", usage.ID)) // nolint:wrapcheck
			}

			err = s.usageRepo.UpdateTx(ctx, tx, map[string]any{
				usageModel.FieldStatus: usageModel.UsageStatusBilled,
				"modified_at":          now,
				"modified_by":          user,
			}, shared.FilterByID(usage.ID, usageModel.FieldID, usageModel.UsageTableName))
			if err != nil {
				return nil, "", fmt.Errorf("failed to mark service usage billed: %w", err)
			}
		}

		usageID := usage.ID

		return []ledgerLine{{serviceUsageID: &usageID, baseAmount: usage.Charge()}}, promotionModel.ScopeService, nil

	default:
		return nil, "", failure.BadRequestFromString("unsupported payment shape") // nolint:wrapcheck
	}
}

// lockRoomsTx locks the booking rooms a room payment settles. Full payments
// take every unpaid room of the booking; split payments take exactly the
// listed rooms, each of which must belong to the booking and be unpaid.
func (s *serviceImpl) lockRoomsTx(ctx context.Context, tx *sqlx.Tx, scenario string, req dto.CreateTransactionRequest) ([]bookingModel.BookingRoom, error) {
	filters := []any{
		gDto.Filter{
			Field:    bookingModel.FieldBookingID,
			Value:    *req.BookingID,
			Operator: gDto.FilterOperatorEq,
			Table:    bookingModel.RoomTableName,
		},
	}

	if scenario == dto.ScenarioSplitRooms {
		filters = append(filters, gDto.Filter{
			Field:    bookingModel.FieldID,
			Value:    req.BookingRoomIDs,
			Operator: gDto.FilterOperatorIn,
			Table:    bookingModel.RoomTableName,
		})
	} else {
		filters = append(filters, gDto.Filter{
			Field:    bookingModel.FieldIsPaid,
			Value:    false,
			Operator: gDto.FilterOperatorEq,
			Table:    bookingModel.RoomTableName,
		})
	}

	rooms, err := s.bookingRoomRepo.GetAllTx(ctx, tx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to lock booking rooms: %w", err)
	}

	if scenario == dto.ScenarioSplitRooms {
		if len(rooms) != len(req.BookingRoomIDs) {
			return nil, failure.BadRequestFromString("every booking room must belong to the booking") // nolint:wrapcheck
		}

		if !model.IsSignedType(req.Type) {
			for _, room := range rooms {
				if room.IsPaid {
					return nil, failure.Conflict(fmt.Sprintf("booking room %s is already paid", room.ID)) // nolint:wrapcheck
				}
			}
		}

		return rooms, nil
	}

	if len(rooms) == 0 && req.Type == model.TypeRoomCharge {
		return nil, failure.Conflict("booking has no unpaid room charges") // nolint:wrapcheck
	}

	return rooms, nil
}

// resolveFolioTx attaches the transaction to the booking's open folio when
// one exists. Payments taken before check-in simply carry no folio.
func (s *serviceImpl) resolveFolioTx(ctx context.Context, bookingID *string) (*string, error) {
	if bookingID == nil {
		return nil, nil
	}

	folio, err := s.folioRepo.Get(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Value:    *bookingID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.FolioTableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.FolioStatusOpen,
				Operator: gDto.FilterOperatorEq,
				Table:    model.FolioTableName,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get guest folio: %w", err)
	}

	if folio.ID == "" {
		return nil, nil
	}

	return &folio.ID, nil
}

// buildDetails materializes one TransactionDetail per line with the discount
// spread proportionally, so detail amounts always sum to the transaction
// amount. A signed transaction gets a single line carrying the full amount.
func buildDetails(transactionID string, lines []ledgerLine, signed bool, amount, discount int64, now time.Time, user string) []model.TransactionDetail {
	if signed {
		detail := model.TransactionDetail{
			ID:            uuid.NewString(),
			TransactionID: transactionID,
			BaseAmount:    amount,
			Amount:        amount,
			Metadata:      gModel.NewMetadata(now, user),
		}

		if len(lines) == 1 {
			detail.BookingRoomID = lines[0].bookingRoomID
			detail.ServiceUsageID = lines[0].serviceUsageID
		}

		return []model.TransactionDetail{detail}
	}

	bases := make([]int64, len(lines))
	for i, line := range lines {
		bases[i] = line.baseAmount
	}

	shares := model.AllocateDiscount(bases, discount)
	details := make([]model.TransactionDetail, len(lines))

	for i, line := range lines {
		details[i] = model.TransactionDetail{
			ID:             uuid.NewString(),
			TransactionID:  transactionID,
			BookingRoomID:  line.bookingRoomID,
			ServiceUsageID: line.serviceUsageID,
			BaseAmount:     line.baseAmount,
			DiscountAmount: shares[i],
			Amount:         line.baseAmount - shares[i],
			Metadata:       gModel.NewMetadata(now, user),
		}
	}

	return details
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TransactionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".transaction.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	transaction, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get transaction")

		return res, fmt.Errorf("failed to get transaction: %w", err)
	}

	if transaction.ID == "" {
		return res, failure.NotFound("transaction not found") // nolint:wrapcheck
	}

	details, err := s.detailRepo.GetAll(ctx, gDto.QueryParams{},
		shared.FilterByID(id, model.FieldTransactionID, model.DetailTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get transaction details")

		return res, fmt.Errorf("failed to get transaction details: %w", err)
	}

	res.FromModel(transaction, details)

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTransactionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".transaction.List")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count transactions")

		return res, fmt.Errorf("failed to count transactions: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get transactions")

		return res, fmt.Errorf("failed to get transactions: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}
