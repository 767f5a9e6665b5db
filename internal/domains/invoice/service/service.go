package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Invoice=MockInvoiceService

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
	"hotelier/internal/domains/invoice/model"
	"hotelier/internal/domains/invoice/model/dto"
	"hotelier/internal/domains/invoice/repository"
	transactionModel "hotelier/internal/domains/transaction/model"
	transactionRepo "hotelier/internal/domains/transaction/repository"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
)

type Invoice interface {
	Create(ctx context.Context, req dto.CreateInvoiceRequest) (dto.InvoiceResponse, error)
	Void(ctx context.Context, id string, req dto.VoidInvoiceRequest) (dto.InvoiceResponse, error)
	Get(ctx context.Context, id string) (dto.InvoiceResponse, error)
	List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetInvoicesResponse, error)
}

type serviceImpl struct {
	repo            repository.Invoice
	transactionRepo transactionRepo.Transaction
	folioRepo       transactionRepo.GuestFolio
	activity        activitySvc.Recorder
	transactor      postgres.Transactor
	otel            otel.Otel
}

func New(
	repo repository.Invoice,
	transactionRepository transactionRepo.Transaction,
	folioRepo transactionRepo.GuestFolio,
	activity activitySvc.Recorder,
	transactor postgres.Transactor,
	otel otel.Otel,
) Invoice {
	return &serviceImpl{
		repo:            repo,
		transactionRepo: transactionRepository,
		folioRepo:       folioRepo,
		activity:        activity,
		transactor:      transactor,
		otel:            otel,
	}
}

// Create issues an invoice over a folio's unbilled transactions and closes
// the folio. The transactions are row-locked and the invoice binding is a
// conditional update, so two concurrent invoices can never bill the same
// transaction.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateInvoiceRequest) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyActorID).(string)
	now := timezone.Now()

	var invoice model.Invoice

	err = s.transactor.Transact(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		folio, found, err := s.folioRepo.GetForUpdateTx(ctx, tx,
			shared.FilterByID(req.GuestFolioID, transactionModel.FieldID, transactionModel.FolioTableName))
		if err != nil {
			return fmt.Errorf("failed to lock guest folio: %w", err)
		}

		if !found {
			return failure.NotFound("guest folio not found") // nolint:wrapcheck
		}

		if folio.Status != transactionModel.FolioStatusOpen {
			return failure.Conflict(fmt.Sprintf("guest folio %s is already closed", folio.ID)) // nolint:wrapcheck
		}

		transactions, err := s.transactionRepo.GetAllTx(ctx, tx, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{
					Field:    transactionModel.FieldID,
					Value:    req.TransactionIDs,
					Operator: gDto.FilterOperatorIn,
					Table:    transactionModel.TableName,
				},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to lock transactions: %w", err)
		}

		if len(transactions) != len(req.TransactionIDs) {
			return failure.NotFound("one or more transactions not found") // nolint:wrapcheck
		}

		var total int64

		for _, transaction := range transactions {
			if transaction.GuestFolioID == nil || *transaction.GuestFolioID != folio.ID {
				return failure.BadRequestFromString(fmt.Sprintf( // nolint:wrapcheck
					"transaction %s does not belong to folio %s", transaction.ID, folio.ID))
			}

			if transaction.InvoiceID != nil {
				return failure.Conflict(fmt.Sprintf("transaction %s is already billed", transaction.ID)) // nolint:wrapcheck
			}

			total += transaction.Amount
		}

		invoice = req.ToModel(total, user)

		if err := s.repo.InsertTx(ctx, tx, invoice); err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		bound, err := s.transactionRepo.UpdateCountTx(ctx, tx, map[string]any{
			transactionModel.FieldInvoiceID: invoice.ID,
			"modified_at":                   now,
			"modified_by":                   user,
		}, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{
					Field:    transactionModel.FieldID,
					Value:    req.TransactionIDs,
					Operator: gDto.FilterOperatorIn,
					Table:    transactionModel.TableName,
				},
				gDto.Filter{
					Field:    transactionModel.FieldInvoiceID,
					Operator: gDto.FilterIsNull,
					Table:    transactionModel.TableName,
				},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to bind transactions to invoice: %w", err)
		}

		if bound != int64(len(req.TransactionIDs)) {
			return failure.Conflict("one or more transactions were billed concurrently") // nolint:wrapcheck
		}

		err = s.folioRepo.UpdateTx(ctx, tx, map[string]any{
			transactionModel.FieldStatus: transactionModel.FolioStatusClosed,
			"modified_at":                now,
			"modified_by":                user,
		}, shared.FilterByID(folio.ID, transactionModel.FieldID, transactionModel.FolioTableName))
		if err != nil {
			return fmt.Errorf("failed to close guest folio: %w", err)
		}

		return s.activity.RecordTx(ctx, tx, activityDto.Entry{
			Type:        activityModel.TypeInvoiceCreated,
			SubjectType: model.EntityName,
			SubjectID:   invoice.ID,
			Detail:      fmt.Sprintf("code=%s total=%d", invoice.Code, total),
		})
	})
	if err != nil {
		log.Error().Err(err).Str("guestFolioID", req.GuestFolioID).Msg("failed to create invoice")

		return res, err
	}

	res.FromModel(invoice)

	return res, nil
}

// Void marks the invoice voided and releases its transactions back to an
// unbilled state, reopening the folio so they can be re-invoiced. The
// document itself stays on record.
func (s *serviceImpl) Void(ctx context.Context, id string, req dto.VoidInvoiceRequest) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Void")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyActorID).(string)
	now := timezone.Now()

	var invoice model.Invoice

	err = s.transactor.Transact(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		var found bool

		invoice, found, err = s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock invoice: %w", err)
		}

		if !found {
			return failure.NotFound("invoice not found") // nolint:wrapcheck
		}

		if invoice.IsVoided {
			return failure.Conflict(fmt.Sprintf("invoice %s is already voided", id)) // nolint:wrapcheck
		}

		err = s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldIsVoided:   true,
			model.FieldVoidReason: req.Reason,
			model.FieldVoidedAt:   now,
			"modified_at":         now,
			"modified_by":         user,
		}, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to void invoice: %w", err)
		}

		_, err = s.transactionRepo.UpdateCountTx(ctx, tx, map[string]any{
			transactionModel.FieldInvoiceID: nil,
			"modified_at":                   now,
			"modified_by":                   user,
		}, shared.FilterByID(id, transactionModel.FieldInvoiceID, transactionModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to release invoice transactions: %w", err)
		}

		err = s.folioRepo.UpdateTx(ctx, tx, map[string]any{
			transactionModel.FieldStatus: transactionModel.FolioStatusOpen,
			"modified_at":                now,
			"modified_by":                user,
		}, shared.FilterByID(invoice.GuestFolioID, transactionModel.FieldID, transactionModel.FolioTableName))
		if err != nil {
			return fmt.Errorf("failed to reopen guest folio: %w", err)
		}

		return s.activity.RecordTx(ctx, tx, activityDto.Entry{
			Type:        activityModel.TypeInvoiceVoided,
			SubjectType: model.EntityName,
			SubjectID:   id,
			Detail:      req.Reason,
		})
	})
	if err != nil {
		log.Error().Err(err).Str("invoiceID", id).Msg("failed to void invoice")

		return res, err
	}

	invoice.IsVoided = true
	invoice.VoidReason = &req.Reason
	invoice.VoidedAt = &now
	res.FromModel(invoice)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	invoice, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice")

		return res, fmt.Errorf("failed to get invoice: %w", err)
	}

	if invoice.ID == "" {
		return res, failure.NotFound("invoice not found") // nolint:wrapcheck
	}

	res.FromModel(invoice)

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInvoicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".invoice.List")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count invoices")

		return res, fmt.Errorf("failed to count invoices: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoices")

		return res, fmt.Errorf("failed to get invoices: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}
