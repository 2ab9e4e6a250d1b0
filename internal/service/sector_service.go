package service

import (
	"context"
	"time"

	"stockflow/internal/cache"
	"stockflow/internal/model"
	"stockflow/internal/repository"
)

const (
	sectorCacheKey = "sectors:all"
	sectorCacheTTL = time.Hour
)

// SectorService exposes the read-only sector catalog.
type SectorService interface {
	ListSectors(ctx context.Context) ([]model.Sector, error)
}

type sectorService struct {
	repo  repository.SectorRepository
	cache *cache.Client
}

// NewSectorService builds a SectorService with repository and cache.
func NewSectorService(repo repository.SectorRepository, cache *cache.Client) SectorService {
	return &sectorService{repo: repo, cache: cache}
}

func (s *sectorService) ListSectors(ctx context.Context) ([]model.Sector, error) {
	var sectors []model.Sector
	if s.cache.GetJSON(ctx, sectorCacheKey, &sectors) {
		return sectors, nil
	}

	sectors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, sectorCacheKey, sectors, sectorCacheTTL)
	return sectors, nil
}
