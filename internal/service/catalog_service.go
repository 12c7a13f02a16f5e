package service

import (
	"context"
	"time"

	"the-family-be/internal/dto"
	"the-family-be/internal/repository/unitofwork"

	"github.com/patrickmn/go-cache"
)

const catalogCacheKey = "catalog:enabled"

type ICatalogService interface {
	GetModels(ctx context.Context) ([]*dto.CatalogModelResponse, error)
}

type catalogService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
}

func NewCatalogService(uowFactory unitofwork.RepositoryFactory, ttl time.Duration) ICatalogService {
	return &catalogService{
		uowFactory: uowFactory,
		cache:      cache.New(ttl, 2*ttl),
	}
}

func (s *catalogService) GetModels(ctx context.Context) ([]*dto.CatalogModelResponse, error) {
	if cached, found := s.cache.Get(catalogCacheKey); found {
		return cached.([]*dto.CatalogModelResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	models, err := uow.CatalogRepository().FindEnabled(ctx)
	if err != nil {
		// One retry with a short pause. The catalog fetch sits on the
		// member create path and a transient hiccup should not bubble up.
		time.Sleep(200 * time.Millisecond)
		models, err = uow.CatalogRepository().FindEnabled(ctx)
		if err != nil {
			return nil, err
		}
	}

	result := make([]*dto.CatalogModelResponse, 0, len(models))
	for _, m := range models {
		result = append(result, &dto.CatalogModelResponse{
			Id:       m.Id,
			Provider: m.Provider,
			Model:    m.Model,
			Alias:    m.Alias,
		})
	}

	s.cache.Set(catalogCacheKey, result, cache.DefaultExpiration)
	return result, nil
}
