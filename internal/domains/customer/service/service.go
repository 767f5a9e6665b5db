package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Customer=MockCustomerService

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/internal/domains/customer/model"
	"hotelier/internal/domains/customer/model/dto"
	"hotelier/internal/domains/customer/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
)

const cacheGetAllTiers = "customer_tier:gets"

type Customer interface {
	ListTiers(ctx context.Context) (dto.GetTiersResponse, error)
}

type serviceImpl struct {
	tierRepo repository.CustomerTier
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(tierRepo repository.CustomerTier, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Customer {
	return &serviceImpl{
		tierRepo: tierRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// ListTiers returns the loyalty tier reference, ordered by points required.
// Tiers change rarely, so the list is cached.
func (s *serviceImpl) ListTiers(ctx context.Context) (res dto.GetTiersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.ListTiers")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllTiers)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	models, err := s.tierRepo.GetAll(ctx, gDto.QueryParams{
		SortBy:  model.FieldPointsRequired,
		SortDir: "ASC",
	}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer tiers")

		return res, fmt.Errorf("failed to get customer tiers: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customer tiers to cache")
		}
	}()

	return res, nil
}
