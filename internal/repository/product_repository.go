package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stockflow/internal/model"
)

const productViewColumns = "p.*, s.name AS sector_name, s.icon AS sector_icon, COALESCE(u.username, '') AS created_by_name"

// ProductRepository defines product persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	FindViewByID(ctx context.Context, id uint) (*model.ProductView, error)
	FindBySKU(ctx context.Context, normalizedSKU string, excludeID uint) (*model.Product, error)
	List(ctx context.Context) ([]model.ProductView, error)
	ListSKUs(ctx context.Context) ([]model.SKUEntry, error)
	Delete(ctx context.Context, id uint) (int64, error)
	ListStockLevels(ctx context.Context) ([]model.StockLevel, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a product. A taken SKU fails with gorm.ErrDuplicatedKey.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

// Update overwrites the mutable columns of an existing product.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Model(&model.Product{ID: product.ID}).
		Select("name", "sku", "description", "sector_id", "price", "stock_quantity", "min_stock").
		Updates(product).Error
}

// FindByID finds a product by ID.
func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindViewByID finds a product with its sector and creator details.
func (r *productRepository) FindViewByID(ctx context.Context, id uint) (*model.ProductView, error) {
	var views []model.ProductView
	if err := r.views(ctx).Where("p.id = ?", id).Limit(1).Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &views[0], nil
}

// FindBySKU finds another product whose normalized SKU matches. excludeID is
// skipped so a product never conflicts with itself; pass 0 on create.
func (r *productRepository) FindBySKU(ctx context.Context, normalizedSKU string, excludeID uint) (*model.Product, error) {
	var product model.Product
	q := r.db.WithContext(ctx).Where("UPPER(TRIM(sku)) = ?", normalizedSKU)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns every product, newest first.
func (r *productRepository) List(ctx context.Context) ([]model.ProductView, error) {
	views := []model.ProductView{}
	if err := r.views(ctx).Order("p.created_at DESC, p.id DESC").Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// ListSKUs returns stored SKUs next to their normalized form.
func (r *productRepository) ListSKUs(ctx context.Context) ([]model.SKUEntry, error) {
	entries := []model.SKUEntry{}
	if err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("id, name, sku, UPPER(TRIM(sku)) AS normalized_sku").
		Order("id").
		Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes a product together with its notifications and watchlist rows.
// It returns the number of products removed; nothing is removed when the product is missing.
func (r *productRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.WatchlistEntry{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		affected = res.RowsAffected
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return affected, err
}

// ListStockLevels returns the stock position of every product.
func (r *productRepository) ListStockLevels(ctx context.Context) ([]model.StockLevel, error) {
	levels := []model.StockLevel{}
	if err := r.db.WithContext(ctx).Model(&model.Product{}).
		Select("id, stock_quantity, min_stock, price").
		Scan(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

func (r *productRepository) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("products AS p").
		Select(productViewColumns).
		Joins("JOIN sectors s ON p.sector_id = s.id").
		Joins("LEFT JOIN users u ON p.created_by = u.id")
}
