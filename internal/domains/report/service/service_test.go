package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotelier/config"
	otelMocks "hotelier/infras/otel/mocks"
	"hotelier/internal/domains/report/mocks"
	"hotelier/internal/domains/report/model"
	"hotelier/internal/domains/report/service"
	cacheMocks "hotelier/shared/cache/mocks"
	"hotelier/shared/failure"
)

func newReportService(ctrl *gomock.Controller) (service.Report, *mocks.MockReport, *cacheMocks.MockRedisCache) {
	mockRepo := mocks.NewMockReport(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, otelMocks.NewOtel())

	return svc, mockRepo, mockCache
}

func TestReportService_GetRevenue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("aggregates rows per transaction type", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockCache := newReportService(ctrl)

		rows := []model.RevenueRow{
			{Type: "FULL_BOOKING", TransactionCount: 2, TotalBase: 2500000, TotalDiscount: 200000, TotalAmount: 2300000},
			{Type: "STANDALONE_SERVICE", TransactionCount: 1, TotalBase: 150000, TotalDiscount: 0, TotalAmount: 150000},
		}

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().GetRevenue(gomock.Any(), gomock.Any(), gomock.Any()).Return(rows, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.GetRevenue(ctx, "2026-08-01", "2026-08-31")

		assert.NoError(t, err)
		assert.Equal(t, "2026-08-01", res.StartDate)
		assert.Equal(t, "2026-08-31", res.EndDate)
		assert.Len(t, res.Lines, 2)
		assert.Equal(t, "FULL_BOOKING", res.Lines[0].Type)
		assert.Equal(t, int64(2300000), res.Lines[0].TotalAmount)
		assert.Equal(t, int64(2450000), res.GrandTotal)
	})

	t.Run("serves cached report without hitting the repository", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, mockCache := newReportService(ctrl)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.GetRevenue(ctx, "2026-08-01", "2026-08-31")

		assert.NoError(t, err)
	})

	t.Run("rejects malformed start date", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, _ := newReportService(ctrl)

		_, err := svc.GetRevenue(ctx, "31-08-2026", "2026-08-31")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("rejects end date before start date", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, _ := newReportService(ctrl)

		_, err := svc.GetRevenue(ctx, "2026-08-31", "2026-08-01")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockCache := newReportService(ctrl)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().GetRevenue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

		_, err := svc.GetRevenue(ctx, "2026-08-01", "2026-08-31")

		assert.Error(t, err)
	})
}

func TestReportService_GetOccupancy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("computes rate over rooms in service", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockCache := newReportService(ctrl)

		row := model.OccupancyRow{TotalRooms: 20, OccupiedRooms: 12, RoomsInService: 16}

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().GetOccupancy(gomock.Any(), gomock.Any(), gomock.Any()).Return(row, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.GetOccupancy(ctx, "2026-08-01", "2026-08-31")

		assert.NoError(t, err)
		assert.Equal(t, 20, res.TotalRooms)
		assert.Equal(t, 16, res.RoomsInService)
		assert.Equal(t, 12, res.OccupiedRooms)
		assert.InDelta(t, 0.75, res.OccupancyRate, 0.0001)
	})

	t.Run("zero rooms in service yields zero rate", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockCache := newReportService(ctrl)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().GetOccupancy(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.OccupancyRow{TotalRooms: 5}, nil)
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := svc.GetOccupancy(ctx, "2026-08-01", "2026-08-31")

		assert.NoError(t, err)
		assert.Zero(t, res.OccupancyRate)
	})

	t.Run("rejects malformed end date", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _, _ := newReportService(ctrl)

		_, err := svc.GetOccupancy(ctx, "2026-08-01", "not-a-date")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
