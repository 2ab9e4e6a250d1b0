package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "stockflow/internal/errors"
	"stockflow/internal/repository"
	"stockflow/internal/stock"
)

// Stats is the dashboard summary for a user.
type Stats struct {
	TotalProducts       int             `json:"totalProducts"`
	LowStockItems       int             `json:"lowStockItems"`
	TotalValue          decimal.Decimal `json:"totalValue"`
	UnreadNotifications int64           `json:"unreadNotifications"`
}

// StatsService computes inventory statistics.
type StatsService interface {
	GetStats(ctx context.Context, userID uint) (*Stats, error)
}

type statsService struct {
	productRepo      repository.ProductRepository
	notificationRepo repository.NotificationRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(productRepo repository.ProductRepository, notificationRepo repository.NotificationRepository) StatsService {
	return &statsService{productRepo: productRepo, notificationRepo: notificationRepo}
}

// GetStats counts products, low stock items and inventory value across the
// catalog, plus the user's unread notifications.
func (s *statsService) GetStats(ctx context.Context, userID uint) (*Stats, error) {
	if userID == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	levels, err := s.productRepo.ListStockLevels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}

	stats := &Stats{TotalProducts: len(levels), TotalValue: decimal.Zero}
	for _, l := range levels {
		if stock.IsLow(l.StockQuantity, l.MinStock) {
			stats.LowStockItems++
		}
		stats.TotalValue = stats.TotalValue.Add(l.Price.Mul(decimal.NewFromInt(int64(l.StockQuantity))))
	}

	stats.UnreadNotifications, err = s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count unread: %w", err)
	}
	return stats, nil
}
