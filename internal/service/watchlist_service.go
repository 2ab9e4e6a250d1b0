package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "stockflow/internal/errors"
	"stockflow/internal/model"
	"stockflow/internal/repository"
)

// WatchlistService manages product subscriptions. Watchers receive the same
// low stock alerts as the product's creator.
type WatchlistService interface {
	Watch(ctx context.Context, userID, productID uint) error
	Unwatch(ctx context.Context, userID, productID uint) error
	List(ctx context.Context, userID uint) ([]model.ProductView, error)
}

type watchlistService struct {
	repo        repository.WatchlistRepository
	productRepo repository.ProductRepository
}

// NewWatchlistService creates a new watchlist service.
func NewWatchlistService(repo repository.WatchlistRepository, productRepo repository.ProductRepository) WatchlistService {
	return &watchlistService{repo: repo, productRepo: productRepo}
}

func (s *watchlistService) Watch(ctx context.Context, userID, productID uint) error {
	if userID == 0 {
		return apperrors.ErrUnauthorized
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProductNotFound
		}
		return fmt.Errorf("load product: %w", err)
	}
	return s.repo.Add(ctx, userID, productID)
}

// Unwatch removes a subscription. Removing one that does not exist is not an error.
func (s *watchlistService) Unwatch(ctx context.Context, userID, productID uint) error {
	if userID == 0 {
		return apperrors.ErrUnauthorized
	}
	_, err := s.repo.Remove(ctx, userID, productID)
	return err
}

func (s *watchlistService) List(ctx context.Context, userID uint) ([]model.ProductView, error) {
	if userID == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	return s.repo.ListProducts(ctx, userID)
}
