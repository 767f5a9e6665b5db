package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	otelMocks "hotelier/infras/otel/mocks"
	"hotelier/internal/domains/customer/mocks"
	"hotelier/internal/domains/customer/model"
	"hotelier/internal/domains/customer/service"
	cacheMocks "hotelier/shared/cache/mocks"
	gDto "hotelier/shared/dto"
)

func newCustomerService(ctrl *gomock.Controller) (service.Customer, *mocks.MockCustomerTier, *cacheMocks.MockRedisCache) {
	mockTierRepo := mocks.NewMockCustomerTier(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockTierRepo, cfg, mockCache, otelMocks.NewOtel())

	return svc, mockTierRepo, mockCache
}

func TestCustomerService_ListTiers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("lists tiers ordered by points required", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockTierRepo, mockCache := newCustomerService(ctrl)

		tiers := []model.CustomerTier{
			{ID: "tier-1", Name: "BRONZE", PointsRequired: 0, RoomDiscountFactor: 0, ServiceDiscountFactor: 0},
			{ID: "tier-2", Name: "SILVER", PointsRequired: 1000, RoomDiscountFactor: 5, ServiceDiscountFactor: 3},
			{ID: "tier-3", Name: "GOLD", PointsRequired: 5000, RoomDiscountFactor: 10, ServiceDiscountFactor: 5},
		}

		var searchedParams gDto.QueryParams

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockTierRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.CustomerTier, error) {
				searchedParams = params

				return tiers, nil
			})
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.ListTiers(ctx)

		assert.NoError(t, err)
		assert.Len(t, res.Tiers, 3)
		assert.Equal(t, "SILVER", res.Tiers[1].Name)
		assert.Equal(t, 5, res.Tiers[1].RoomDiscountFactor)
		assert.Equal(t, model.FieldPointsRequired, searchedParams.SortBy)
		assert.Equal(t, "ASC", searchedParams.SortDir)
	})

	t.Run("serves cached tiers without hitting the repository", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, mockCache := newCustomerService(ctrl)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.ListTiers(ctx)

		assert.NoError(t, err)
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockTierRepo, mockCache := newCustomerService(ctrl)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockTierRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

		_, err := svc.ListTiers(ctx)

		assert.Error(t, err)
	})
}
