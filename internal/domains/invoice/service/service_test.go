package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "hotelier/infras/otel/mocks"
	postgresMocks "hotelier/infras/postgres/mocks"
	activityMocks "hotelier/internal/domains/activity/mocks"
	invoiceMocks "hotelier/internal/domains/invoice/mocks"
	"hotelier/internal/domains/invoice/model"
	"hotelier/internal/domains/invoice/model/dto"
	"hotelier/internal/domains/invoice/service"
	transactionMocks "hotelier/internal/domains/transaction/mocks"
	transactionModel "hotelier/internal/domains/transaction/model"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
)

func strPtr(v string) *string { return &v }

func newInvoiceService(ctrl *gomock.Controller) (
	service.Invoice,
	*invoiceMocks.MockInvoice,
	*transactionMocks.MockTransaction,
	*transactionMocks.MockGuestFolio,
	*activityMocks.MockRecorderService,
) {
	mockRepo := invoiceMocks.NewMockInvoice(ctrl)
	mockTransactionRepo := transactionMocks.NewMockTransaction(ctrl)
	mockFolioRepo := transactionMocks.NewMockGuestFolio(ctrl)
	mockActivity := activityMocks.NewMockRecorderService(ctrl)

	svc := service.New(mockRepo, mockTransactionRepo, mockFolioRepo, mockActivity,
		postgresMocks.NewTransactor(), otelMocks.NewOtel())

	return svc, mockRepo, mockTransactionRepo, mockFolioRepo, mockActivity
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyActorID, "test-user-id")
}

func openFolio() transactionModel.GuestFolio {
	return transactionModel.GuestFolio{
		ID:         "folio-1",
		BookingID:  "booking-1",
		CustomerID: "cust-1",
		Status:     transactionModel.FolioStatusOpen,
	}
}

func folioTransaction(id string, amount int64) transactionModel.Transaction {
	return transactionModel.Transaction{
		ID:           id,
		GuestFolioID: strPtr("folio-1"),
		Type:         transactionModel.TypeRoomCharge,
		Amount:       amount,
	}
}

func TestInvoiceService_Create(t *testing.T) {
	req := dto.CreateInvoiceRequest{
		GuestFolioID:        "folio-1",
		InvoiceToCustomerID: "cust-1",
		TransactionIDs:      []string{"trx-1", "trx-2"},
	}

	t.Run("issues the invoice and closes the folio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockTransactionRepo, mockFolioRepo, mockActivity := newInvoiceService(ctrl)

		mockFolioRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(openFolio(), true, nil)
		mockTransactionRepo.EXPECT().
			GetAllTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]transactionModel.Transaction{
				folioTransaction("trx-1", 1000000),
				folioTransaction("trx-2", 450000),
			}, nil)

		var issued model.Invoice

		mockRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, invoice model.Invoice) error {
				issued = invoice

				return nil
			})
		mockTransactionRepo.EXPECT().
			UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(2), nil)

		var folioUpdate map[string]any

		mockFolioRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, update map[string]any, _ any) error {
				folioUpdate = update

				return nil
			})
		mockActivity.EXPECT().
			RecordTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.Create(testContext(), req)

		assert.NoError(t, err)
		assert.Equal(t, int64(1450000), res.TotalAmount)
		assert.NotEmpty(t, res.Code)
		assert.Equal(t, issued.Code, res.Code)
		assert.Equal(t, transactionModel.FolioStatusClosed, folioUpdate[transactionModel.FieldStatus])
	})

	t.Run("closed folio conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, _, mockFolioRepo, _ := newInvoiceService(ctrl)

		closed := openFolio()
		closed.Status = transactionModel.FolioStatusClosed

		mockFolioRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(closed, true, nil)

		_, err := svc.Create(testContext(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("transaction from another folio is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, mockTransactionRepo, mockFolioRepo, _ := newInvoiceService(ctrl)

		foreign := folioTransaction("trx-2", 450000)
		foreign.GuestFolioID = strPtr("folio-other")

		mockFolioRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(openFolio(), true, nil)
		mockTransactionRepo.EXPECT().
			GetAllTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]transactionModel.Transaction{folioTransaction("trx-1", 1000000), foreign}, nil)

		_, err := svc.Create(testContext(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("already billed transaction conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, mockTransactionRepo, mockFolioRepo, _ := newInvoiceService(ctrl)

		billed := folioTransaction("trx-2", 450000)
		billed.InvoiceID = strPtr("inv-0")

		mockFolioRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(openFolio(), true, nil)
		mockTransactionRepo.EXPECT().
			GetAllTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]transactionModel.Transaction{folioTransaction("trx-1", 1000000), billed}, nil)

		_, err := svc.Create(testContext(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("concurrent billing loses on the conditional bind", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockTransactionRepo, mockFolioRepo, _ := newInvoiceService(ctrl)

		mockFolioRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(openFolio(), true, nil)
		mockTransactionRepo.EXPECT().
			GetAllTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]transactionModel.Transaction{
				folioTransaction("trx-1", 1000000),
				folioTransaction("trx-2", 450000),
			}, nil)
		mockRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		mockTransactionRepo.EXPECT().
			UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(1), nil)

		_, err := svc.Create(testContext(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("missing transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, mockTransactionRepo, mockFolioRepo, _ := newInvoiceService(ctrl)

		mockFolioRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(openFolio(), true, nil)
		mockTransactionRepo.EXPECT().
			GetAllTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]transactionModel.Transaction{folioTransaction("trx-1", 1000000)}, nil)

		_, err := svc.Create(testContext(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestInvoiceService_Void(t *testing.T) {
	issued := model.Invoice{
		ID:                  "inv-1",
		Code:                "INV-20260831-abcd1234",
		GuestFolioID:        "folio-1",
		InvoiceToCustomerID: "cust-1",
		TotalAmount:         1450000,
	}

	t.Run("void releases transactions and reopens the folio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockTransactionRepo, mockFolioRepo, mockActivity := newInvoiceService(ctrl)

		mockRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(issued, true, nil)
		mockRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		var releaseUpdate map[string]any

		mockTransactionRepo.EXPECT().
			UpdateCountTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, update map[string]any, _ any) (int64, error) {
				releaseUpdate = update

				return 2, nil
			})

		var folioUpdate map[string]any

		mockFolioRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, update map[string]any, _ any) error {
				folioUpdate = update

				return nil
			})
		mockActivity.EXPECT().
			RecordTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.Void(testContext(), "inv-1", dto.VoidInvoiceRequest{Reason: "wrong folio"})

		assert.NoError(t, err)
		assert.True(t, res.IsVoided)
		assert.Equal(t, "wrong folio", *res.VoidReason)
		assert.Nil(t, releaseUpdate[transactionModel.FieldInvoiceID])
		assert.Equal(t, transactionModel.FolioStatusOpen, folioUpdate[transactionModel.FieldStatus])
	})

	t.Run("double void conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _, _, _ := newInvoiceService(ctrl)

		voided := issued
		voided.IsVoided = true

		mockRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(voided, true, nil)

		_, err := svc.Void(testContext(), "inv-1", dto.VoidInvoiceRequest{Reason: "again"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("invoice not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _, _, _ := newInvoiceService(ctrl)

		mockRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Invoice{}, false, nil)

		_, err := svc.Void(testContext(), "missing", dto.VoidInvoiceRequest{Reason: "n/a"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestInvoiceService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _, _ := newInvoiceService(ctrl)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Invoice{}, nil)

	_, err := svc.Get(testContext(), "missing")

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
