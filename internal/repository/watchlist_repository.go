package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stockflow/internal/model"
)

// WatchlistRepository defines watchlist persistence operations.
type WatchlistRepository interface {
	Add(ctx context.Context, userID, productID uint) error
	Remove(ctx context.Context, userID, productID uint) (int64, error)
	ListWatchers(ctx context.Context, productID uint) ([]model.User, error)
	ListProducts(ctx context.Context, userID uint) ([]model.ProductView, error)
}

type watchlistRepository struct {
	db *gorm.DB
}

// NewWatchlistRepository creates a new watchlist repository.
func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

// Add subscribes a user to a product. Subscribing twice is a no-op.
func (r *watchlistRepository) Add(ctx context.Context, userID, productID uint) error {
	entry := model.WatchlistEntry{UserID: userID, ProductID: productID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&entry).Error
}

// Remove unsubscribes a user from a product.
func (r *watchlistRepository) Remove(ctx context.Context, userID, productID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.WatchlistEntry{})
	return res.RowsAffected, res.Error
}

// ListWatchers returns the users subscribed to a product.
func (r *watchlistRepository) ListWatchers(ctx context.Context, productID uint) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN user_watchlist w ON w.user_id = users.id").
		Where("w.product_id = ?", productID).
		Order("users.id").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListProducts returns the products a user watches.
func (r *watchlistRepository) ListProducts(ctx context.Context, userID uint) ([]model.ProductView, error) {
	views := []model.ProductView{}
	if err := r.db.WithContext(ctx).Table("products AS p").
		Select(productViewColumns).
		Joins("JOIN user_watchlist w ON w.product_id = p.id").
		Joins("JOIN sectors s ON p.sector_id = s.id").
		Joins("LEFT JOIN users u ON p.created_by = u.id").
		Where("w.user_id = ?", userID).
		Order("w.created_at DESC").
		Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}
