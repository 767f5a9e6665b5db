package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Report=MockReportService

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/internal/domains/report/model/dto"
	"hotelier/internal/domains/report/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
)

const (
	cacheRevenueReport   = "report:revenue"
	cacheOccupancyReport = "report:occupancy"
)

type Report interface {
	GetRevenue(ctx context.Context, startDate, endDate string) (dto.RevenueReportResponse, error)
	GetOccupancy(ctx context.Context, startDate, endDate string) (dto.OccupancyReportResponse, error)
}

type serviceImpl struct {
	repo  repository.Report
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Report, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Report {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetRevenue(ctx context.Context, startDate, endDate string) (res dto.RevenueReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.GetRevenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheRevenueReport, startDate, endDate)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	rows, err := s.repo.GetRevenue(ctx, start, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to get revenue report")

		return res, fmt.Errorf("failed to get revenue report: %w", err)
	}

	res.FromModels(rows, startDate, endDate)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save revenue report to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetOccupancy(ctx context.Context, startDate, endDate string) (res dto.OccupancyReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.GetOccupancy")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheOccupancyReport, startDate, endDate)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	row, err := s.repo.GetOccupancy(ctx, start, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to get occupancy report")

		return res, fmt.Errorf("failed to get occupancy report: %w", err)
	}

	res.FromModel(row, startDate, endDate)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save occupancy report to cache")
		}
	}()

	return res, nil
}

// parseRange parses the inclusive date range into [start, end) timestamps.
func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := timezone.Parse(constant.DateOnlyFormat, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("invalid start date") // nolint:wrapcheck
	}

	end, err := timezone.Parse(constant.DateOnlyFormat, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("invalid end date") // nolint:wrapcheck
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("end date must not be before start date") // nolint:wrapcheck
	}

	return start, end.AddDate(0, 0, 1), nil
}
