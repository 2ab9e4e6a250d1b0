package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "stockflow/internal/errors"
	"stockflow/internal/logger"
	"stockflow/internal/model"
	"stockflow/internal/repository"
	"stockflow/internal/stock"
)

// ProductInput carries the writable fields of a product.
// StockQuantity is required. A nil MinStock means "default" on create and
// "unchanged" on update.
type ProductInput struct {
	Name          string
	SKU           string
	Description   string
	SectorID      uint
	Price         decimal.Decimal
	StockQuantity *int
	MinStock      *int
}

// ProductService handles product catalog operations.
type ProductService interface {
	CreateProduct(ctx context.Context, userID uint, in ProductInput) (uint, error)
	UpdateProduct(ctx context.Context, id uint, in ProductInput) error
	DeleteProduct(ctx context.Context, id uint) error
	GetProduct(ctx context.Context, id uint) (*model.ProductView, error)
	ListProducts(ctx context.Context) ([]model.ProductView, error)
	ListLowStockProducts(ctx context.Context) ([]model.ProductView, error)
	ListSKUs(ctx context.Context) ([]model.SKUEntry, error)
}

type productService struct {
	repo       repository.ProductRepository
	sectorRepo repository.SectorRepository
	alerts     AlertService
	sanitizer  *bluemonday.Policy
	logger     *zap.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	repo repository.ProductRepository,
	sectorRepo repository.SectorRepository,
	alerts AlertService,
	log *zap.Logger,
) ProductService {
	return &productService{
		repo:       repo,
		sectorRepo: sectorRepo,
		alerts:     alerts,
		sanitizer:  bluemonday.UGCPolicy(),
		logger:     logger.OrNop(log),
	}
}

// NormalizeSKU trims surrounding whitespace and upper-cases a SKU.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// priceScale matches the decimal(12,2) price column.
const priceScale = 2

func validateInput(in ProductInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	case NormalizeSKU(in.SKU) == "":
		return fmt.Errorf("%w: sku is required", apperrors.ErrValidation)
	case in.SectorID == 0:
		return fmt.Errorf("%w: sector_id is required", apperrors.ErrValidation)
	case !in.Price.IsPositive():
		return fmt.Errorf("%w: price must be greater than zero", apperrors.ErrValidation)
	case !in.Price.Equal(in.Price.Round(priceScale)):
		return fmt.Errorf("%w: price must have at most %d decimal places", apperrors.ErrValidation, priceScale)
	case in.StockQuantity == nil:
		return fmt.Errorf("%w: stock_quantity is required", apperrors.ErrValidation)
	case *in.StockQuantity < 0:
		return fmt.Errorf("%w: stock_quantity must not be negative", apperrors.ErrValidation)
	case in.MinStock != nil && *in.MinStock < 0:
		return fmt.Errorf("%w: min_stock must not be negative", apperrors.ErrValidation)
	}
	return nil
}

func (s *productService) checkSector(ctx context.Context, sectorID uint) error {
	ok, err := s.sectorRepo.Exists(ctx, sectorID)
	if err != nil {
		return fmt.Errorf("check sector: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: sector %d does not exist", apperrors.ErrValidation, sectorID)
	}
	return nil
}

// checkSKU fails with ErrDuplicateSKU when another product already holds sku.
func (s *productService) checkSKU(ctx context.Context, sku string, excludeID uint) error {
	_, err := s.repo.FindBySKU(ctx, sku, excludeID)
	if err == nil {
		return apperrors.ErrDuplicateSKU
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check sku: %w", err)
	}
	return nil
}

// CreateProduct validates and stores a new product and returns its ID.
func (s *productService) CreateProduct(ctx context.Context, userID uint, in ProductInput) (uint, error) {
	if userID == 0 {
		return 0, apperrors.ErrUnauthorized
	}
	if err := validateInput(in); err != nil {
		return 0, err
	}
	if err := s.checkSector(ctx, in.SectorID); err != nil {
		return 0, err
	}

	sku := NormalizeSKU(in.SKU)
	if err := s.checkSKU(ctx, sku, 0); err != nil {
		return 0, err
	}

	minStock := model.DefaultMinStock
	if in.MinStock != nil {
		minStock = *in.MinStock
	}

	product := &model.Product{
		Name:          strings.TrimSpace(in.Name),
		SKU:           sku,
		Description:   s.sanitizer.Sanitize(in.Description),
		SectorID:      in.SectorID,
		Price:         in.Price,
		StockQuantity: *in.StockQuantity,
		MinStock:      minStock,
		CreatedBy:     userID,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, apperrors.ErrDuplicateSKU
		}
		return 0, fmt.Errorf("create product: %w", err)
	}

	s.logger.Info("product created",
		zap.Uint("product_id", product.ID),
		zap.String("sku", product.SKU),
		zap.Uint("created_by", userID),
	)

	s.afterWrite(ctx, product)
	return product.ID, nil
}

// UpdateProduct overwrites an existing product's fields.
func (s *productService) UpdateProduct(ctx context.Context, id uint, in ProductInput) error {
	if err := validateInput(in); err != nil {
		return err
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProductNotFound
		}
		return fmt.Errorf("load product: %w", err)
	}

	if err := s.checkSector(ctx, in.SectorID); err != nil {
		return err
	}

	sku := NormalizeSKU(in.SKU)
	if err := s.checkSKU(ctx, sku, id); err != nil {
		return err
	}

	product.Name = strings.TrimSpace(in.Name)
	product.SKU = sku
	product.Description = s.sanitizer.Sanitize(in.Description)
	product.SectorID = in.SectorID
	product.Price = in.Price
	product.StockQuantity = *in.StockQuantity
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicateSKU
		}
		return fmt.Errorf("update product: %w", err)
	}

	s.logger.Info("product updated", zap.Uint("product_id", id), zap.String("sku", sku))

	s.afterWrite(ctx, product)
	return nil
}

// DeleteProduct removes a product along with its notifications and watchlist rows.
func (s *productService) DeleteProduct(ctx context.Context, id uint) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrProductNotFound
	}
	s.logger.Info("product deleted", zap.Uint("product_id", id))
	return nil
}

func (s *productService) GetProduct(ctx context.Context, id uint) (*model.ProductView, error) {
	view, err := s.repo.FindViewByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}
	return view, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]model.ProductView, error) {
	return s.repo.List(ctx)
}

// ListLowStockProducts returns products at or below their threshold, emptiest first.
func (s *productService) ListLowStockProducts(ctx context.Context) ([]model.ProductView, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	low := make([]model.ProductView, 0, len(products))
	for _, p := range products {
		if stock.IsLow(p.StockQuantity, p.MinStock) {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		if low[i].StockQuantity != low[j].StockQuantity {
			return low[i].StockQuantity < low[j].StockQuantity
		}
		return low[i].ID < low[j].ID
	})
	return low, nil
}

func (s *productService) ListSKUs(ctx context.Context) ([]model.SKUEntry, error) {
	return s.repo.ListSKUs(ctx)
}

// afterWrite runs the alert pipeline for a low product. Failures never undo the write.
func (s *productService) afterWrite(ctx context.Context, product *model.Product) {
	if s.alerts == nil || !stock.IsLow(product.StockQuantity, product.MinStock) {
		return
	}
	created, err := s.alerts.NotifyIfLowStock(ctx, product.ID)
	if err != nil {
		s.logger.Error("low stock alert pipeline failed",
			zap.Uint("product_id", product.ID),
			zap.Error(err),
		)
		return
	}
	if created > 0 {
		s.logger.Info("low stock alerts raised",
			zap.Uint("product_id", product.ID),
			zap.Int("notifications", created),
		)
	}
}
