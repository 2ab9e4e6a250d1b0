package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinStock is the low stock threshold applied when none is given.
const DefaultMinStock = 10

// Product is a catalog item. SKU is always stored in normalized form.
type Product struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"size:255;not null"`
	SKU           string          `json:"sku" gorm:"column:sku;uniqueIndex;size:100;not null"`
	Description   string          `json:"description" gorm:"type:text"`
	SectorID      uint            `json:"sector_id" gorm:"not null;index"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	StockQuantity int             `json:"stock_quantity" gorm:"not null"`
	MinStock      int             `json:"min_stock" gorm:"not null"`
	CreatedBy     uint            `json:"created_by" gorm:"not null;index"`
	CreatedAt     time.Time       `json:"created_at"`

	// Relations
	Sector  *Sector `json:"-" gorm:"foreignKey:SectorID;constraint:OnDelete:RESTRICT"`
	Creator *User   `json:"-" gorm:"foreignKey:CreatedBy;constraint:OnDelete:RESTRICT"`
}

// ProductView is a product joined with its sector and creator for listings.
type ProductView struct {
	Product
	SectorName    string `json:"sector_name"`
	SectorIcon    string `json:"sector_icon"`
	CreatedByName string `json:"created_by_name,omitempty"`
}

// SKUEntry is a product SKU alongside its normalized form.
type SKUEntry struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	NormalizedSKU string `json:"normalized_sku"`
}

// StockLevel is the stock position of one product, used for aggregation.
type StockLevel struct {
	ID            uint            `json:"id"`
	StockQuantity int             `json:"stock_quantity"`
	MinStock      int             `json:"min_stock"`
	Price         decimal.Decimal `json:"price"`
}
