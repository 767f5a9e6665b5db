package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "hotelier/infras/otel/mocks"
	postgresMocks "hotelier/infras/postgres/mocks"
	activityMocks "hotelier/internal/domains/activity/mocks"
	promotionMocks "hotelier/internal/domains/promotion/mocks"
	"hotelier/internal/domains/promotion/model"
	"hotelier/internal/domains/promotion/model/dto"
	"hotelier/internal/domains/promotion/service"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func activePromotion() model.Promotion {
	now := timezone.Now()

	return model.Promotion{
		ID:               "promo-1",
		Code:             "WELCOME2024",
		Type:             model.TypePercentage,
		Scope:            model.ScopeAll,
		Value:            10,
		MaxDiscount:      int64Ptr(500000),
		MinBookingAmount: 1000000,
		StartDate:        now.AddDate(0, -1, 0),
		EndDate:          now.AddDate(0, 1, 0),
		TotalQty:         intPtr(100),
		RemainingQty:     intPtr(42),
		PerCustomerLimit: intPtr(1),
	}
}

func TestPromotionService_Redeem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := promotionMocks.NewMockPromotion(ctrl)
	mockRedemptionRepo := promotionMocks.NewMockPromotionRedemption(ctrl)
	mockActivity := activityMocks.NewMockRecorderService(ctrl)
	mockOtel := otelMocks.NewOtel()

	svc := service.New(mockRepo, mockRedemptionRepo, mockActivity, postgresMocks.NewTransactor(), mockOtel)

	validReq := dto.RedeemPromotionRequest{
		Code:       "WELCOME2024",
		CustomerID: "cust-1",
		Scope:      model.ScopeRoom,
		BaseAmount: 2000000,
	}

	tests := []struct {
		name         string
		req          dto.RedeemPromotionRequest
		setupMock    func()
		wantErr      bool
		wantCode     int
		wantDiscount int64
	}{
		{
			name: "successful percentage redemption",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(activePromotion(), true, nil)
				mockRedemptionRepo.EXPECT().
					CountTx(gomock.Any(), gomock.Any(), "promo-1", "cust-1").
					Return(0, nil)
				mockRepo.EXPECT().
					ConsumeQuotaTx(gomock.Any(), gomock.Any(), "promo-1").
					Return(true, nil)
				mockRedemptionRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
				mockActivity.EXPECT().
					RecordTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr:      false,
			wantDiscount: 200000,
		},
		{
			name: "discount capped at max discount",
			req: dto.RedeemPromotionRequest{
				Code:       "WELCOME2024",
				CustomerID: "cust-1",
				Scope:      model.ScopeRoom,
				BaseAmount: 10000000,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(activePromotion(), true, nil)
				mockRedemptionRepo.EXPECT().
					CountTx(gomock.Any(), gomock.Any(), "promo-1", "cust-1").
					Return(0, nil)
				mockRepo.EXPECT().
					ConsumeQuotaTx(gomock.Any(), gomock.Any(), "promo-1").
					Return(true, nil)
				mockRedemptionRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
				mockActivity.EXPECT().
					RecordTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr:      false,
			wantDiscount: 500000,
		},
		{
			name: "unknown code",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Promotion{}, false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "disabled promotion",
			req:  validReq,
			setupMock: func() {
				promo := activePromotion()
				disabledAt := timezone.Now().Add(-time.Hour)
				promo.DisabledAt = &disabledAt

				mockRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(promo, true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "expired promotion",
			req:  validReq,
			setupMock: func() {
				promo := activePromotion()
				promo.StartDate = timezone.Now().AddDate(0, -2, 0)
				promo.EndDate = timezone.Now().AddDate(0, -1, 0)

				mockRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(promo, true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "scope mismatch",
			req:  validReq,
			setupMock: func() {
				promo := activePromotion()
				promo.Scope = model.ScopeService

				mockRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(promo, true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "below minimum booking amount",
			req: dto.RedeemPromotionRequest{
				Code:       "WELCOME2024",
				CustomerID: "cust-1",
				Scope:      model.ScopeRoom,
				BaseAmount: 500000,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(activePromotion(), true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "per-customer limit reached",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(activePromotion(), true, nil)
				mockRedemptionRepo.EXPECT().
					CountTx(gomock.Any(), gomock.Any(), "promo-1", "cust-1").
					Return(1, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "quota exhausted",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(activePromotion(), true, nil)
				mockRedemptionRepo.EXPECT().
					CountTx(gomock.Any(), gomock.Any(), "promo-1", "cust-1").
					Return(0, nil)
				mockRepo.EXPECT().
					ConsumeQuotaTx(gomock.Any(), gomock.Any(), "promo-1").
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "unlimited promotion skips quota consumption",
			req:  validReq,
			setupMock: func() {
				promo := activePromotion()
				promo.TotalQty = nil
				promo.RemainingQty = nil

				mockRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(promo, true, nil)
				mockRedemptionRepo.EXPECT().
					CountTx(gomock.Any(), gomock.Any(), "promo-1", "cust-1").
					Return(0, nil)
				mockRedemptionRepo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
				mockActivity.EXPECT().
					RecordTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr:      false,
			wantDiscount: 200000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyActorID, "test-user-id")
			res, err := svc.Redeem(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantDiscount, res.DiscountAmount)
			assert.Equal(t, tt.req.BaseAmount-tt.wantDiscount, res.FinalAmount)
		})
	}
}

func TestPromotionService_Redeem_RecordsRedemption(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := promotionMocks.NewMockPromotion(ctrl)
	mockRedemptionRepo := promotionMocks.NewMockPromotionRedemption(ctrl)
	mockActivity := activityMocks.NewMockRecorderService(ctrl)
	mockOtel := otelMocks.NewOtel()

	svc := service.New(mockRepo, mockRedemptionRepo, mockActivity, postgresMocks.NewTransactor(), mockOtel)

	promo := activePromotion()
	promo.PerCustomerLimit = nil

	mockRepo.EXPECT().
		GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(promo, true, nil)
	mockRepo.EXPECT().
		ConsumeQuotaTx(gomock.Any(), gomock.Any(), "promo-1").
		Return(true, nil)

	var recorded model.PromotionRedemption

	mockRedemptionRepo.EXPECT().
		InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ any, redemption model.PromotionRedemption) error {
			recorded = redemption

			return nil
		})
	mockActivity.EXPECT().
		RecordTx(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	ctx := context.WithValue(context.Background(), constant.ContextKeyActorID, "test-user-id")
	res, err := svc.Redeem(ctx, dto.RedeemPromotionRequest{
		Code:       "WELCOME2024",
		CustomerID: "cust-7",
		Scope:      model.ScopeAll,
		BaseAmount: 3000000,
	})

	assert.NoError(t, err)
	assert.Equal(t, "promo-1", recorded.PromotionID)
	assert.Equal(t, "cust-7", recorded.CustomerID)
	assert.Nil(t, recorded.TransactionID)
	assert.Equal(t, res.DiscountAmount, recorded.DiscountAmount)
	assert.Equal(t, int64(3000000), recorded.BaseAmount)
}

func TestPromotionService_Redeem_CustomerOwnership(t *testing.T) {
	customerCtx := func(actorID string) context.Context {
		ctx := context.WithValue(context.Background(), constant.ContextKeyActorID, actorID)

		return context.WithValue(ctx, constant.ContextKeyActorRole, constant.RoleCustomer)
	}

	t.Run("customer cannot redeem under another customer's id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := promotionMocks.NewMockPromotion(ctrl)
		mockRedemptionRepo := promotionMocks.NewMockPromotionRedemption(ctrl)
		mockActivity := activityMocks.NewMockRecorderService(ctrl)

		svc := service.New(mockRepo, mockRedemptionRepo, mockActivity, postgresMocks.NewTransactor(), otelMocks.NewOtel())

		_, err := svc.Redeem(customerCtx("cust-1"), dto.RedeemPromotionRequest{
			Code:       "WELCOME2024",
			CustomerID: "cust-2",
			Scope:      model.ScopeAll,
			BaseAmount: 2000000,
		})

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("customer redeeming for themselves passes the gate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := promotionMocks.NewMockPromotion(ctrl)
		mockRedemptionRepo := promotionMocks.NewMockPromotionRedemption(ctrl)
		mockActivity := activityMocks.NewMockRecorderService(ctrl)

		svc := service.New(mockRepo, mockRedemptionRepo, mockActivity, postgresMocks.NewTransactor(), otelMocks.NewOtel())

		mockRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(activePromotion(), true, nil)
		mockRedemptionRepo.EXPECT().
			CountTx(gomock.Any(), gomock.Any(), "promo-1", "cust-1").
			Return(0, nil)
		mockRepo.EXPECT().
			ConsumeQuotaTx(gomock.Any(), gomock.Any(), "promo-1").
			Return(true, nil)
		mockRedemptionRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		mockActivity.EXPECT().
			RecordTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.Redeem(customerCtx("cust-1"), dto.RedeemPromotionRequest{
			Code:       "WELCOME2024",
			CustomerID: "cust-1",
			Scope:      model.ScopeAll,
			BaseAmount: 2000000,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(200000), res.DiscountAmount)
	})

	t.Run("staff may redeem on a customer's behalf", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockRepo := promotionMocks.NewMockPromotion(ctrl)
		mockRedemptionRepo := promotionMocks.NewMockPromotionRedemption(ctrl)
		mockActivity := activityMocks.NewMockRecorderService(ctrl)

		svc := service.New(mockRepo, mockRedemptionRepo, mockActivity, postgresMocks.NewTransactor(), otelMocks.NewOtel())

		mockRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(activePromotion(), true, nil)
		mockRedemptionRepo.EXPECT().
			CountTx(gomock.Any(), gomock.Any(), "promo-1", "cust-9").
			Return(0, nil)
		mockRepo.EXPECT().
			ConsumeQuotaTx(gomock.Any(), gomock.Any(), "promo-1").
			Return(true, nil)
		mockRedemptionRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)
		mockActivity.EXPECT().
			RecordTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyActorID, "emp-1")
		ctx = context.WithValue(ctx, constant.ContextKeyActorRole, constant.RoleEmployee)

		_, err := svc.Redeem(ctx, dto.RedeemPromotionRequest{
			Code:       "WELCOME2024",
			CustomerID: "cust-9",
			Scope:      model.ScopeAll,
			BaseAmount: 2000000,
		})

		assert.NoError(t, err)
	})
}

func TestPromotionService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := promotionMocks.NewMockPromotion(ctrl)
	mockRedemptionRepo := promotionMocks.NewMockPromotionRedemption(ctrl)
	mockActivity := activityMocks.NewMockRecorderService(ctrl)
	mockOtel := otelMocks.NewOtel()

	svc := service.New(mockRepo, mockRedemptionRepo, mockActivity, postgresMocks.NewTransactor(), mockOtel)

	validReq := dto.CreatePromotionRequest{
		Code:             "ROOM50K",
		Type:             model.TypeFixedAmount,
		Scope:            model.ScopeRoom,
		Value:            50000,
		MinBookingAmount: 250000,
		StartDate:        "2026-01-01",
		EndDate:          "2026-12-31",
		TotalQty:         intPtr(500),
	}

	tests := []struct {
		name      string
		req       dto.CreatePromotionRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "duplicate code",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "end date before start date",
			req: dto.CreatePromotionRequest{
				Code:      "BACKWARDS",
				Type:      model.TypePercentage,
				Scope:     model.ScopeAll,
				Value:     10,
				StartDate: "2026-12-31",
				EndDate:   "2026-01-01",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "repository error",
			req:  validReq,
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyActorID, "test-user-id")
			res, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.req.Code, res.Code)
		})
	}
}

func TestPromotionService_Disable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := promotionMocks.NewMockPromotion(ctrl)
	mockRedemptionRepo := promotionMocks.NewMockPromotionRedemption(ctrl)
	mockActivity := activityMocks.NewMockRecorderService(ctrl)
	mockOtel := otelMocks.NewOtel()

	svc := service.New(mockRepo, mockRedemptionRepo, mockActivity, postgresMocks.NewTransactor(), mockOtel)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful disable",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activePromotion(), nil)
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "already disabled",
			setupMock: func() {
				promo := activePromotion()
				disabledAt := timezone.Now()
				promo.DisabledAt = &disabledAt

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(promo, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Promotion{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyActorID, "test-user-id")
			err := svc.Disable(ctx, "promo-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestPromotionService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := promotionMocks.NewMockPromotion(ctrl)
	mockRedemptionRepo := promotionMocks.NewMockPromotionRedemption(ctrl)
	mockActivity := activityMocks.NewMockRecorderService(ctrl)
	mockOtel := otelMocks.NewOtel()

	svc := service.New(mockRepo, mockRedemptionRepo, mockActivity, postgresMocks.NewTransactor(), mockOtel)

	strPtr := func(v string) *string { return &v }

	t.Run("end_date is stored as a parsed date", func(t *testing.T) {
		var written map[string]any

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				written = fields

				return nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyActorID, "test-user-id")
		err := svc.Update(ctx, dto.UpdatePromotionRequest{EndDate: strPtr("2026-12-31")}, "promo-1")

		assert.NoError(t, err)

		end, ok := written[model.FieldEndDate].(time.Time)
		assert.True(t, ok, "end_date should reach the repository as a time, not a string")
		assert.Equal(t, "2026-12-31", end.Format(constant.DateOnlyFormat))
	})

	t.Run("malformed end_date is a bad request", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyActorID, "test-user-id")
		err := svc.Update(ctx, dto.UpdatePromotionRequest{EndDate: strPtr("2026-13-45")}, "promo-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("empty request is rejected", func(t *testing.T) {
		err := svc.Update(context.Background(), dto.UpdatePromotionRequest{}, "promo-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
