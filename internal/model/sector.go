package model

import "time"

// Sector groups products into a fixed catalog of business areas.
type Sector struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description string    `json:"description" gorm:"size:255"`
	Icon        string    `json:"icon" gorm:"size:16;default:'📦'"`
	CreatedAt   time.Time `json:"created_at"`
}

// DefaultSectors is the catalog seeded at initialization.
var DefaultSectors = []Sector{
	{Name: "Electronics", Description: "Electronic devices and gadgets", Icon: "📱"},
	{Name: "Clothing", Description: "Apparel and fashion items", Icon: "👕"},
	{Name: "Food & Beverages", Description: "Food items and drinks", Icon: "🍎"},
	{Name: "Home & Garden", Description: "Home improvement and garden supplies", Icon: "🏠"},
	{Name: "Health & Beauty", Description: "Healthcare and cosmetic products", Icon: "💄"},
	{Name: "Books & Media", Description: "Books, movies, and educational content", Icon: "📚"},
	{Name: "Sports & Outdoors", Description: "Athletic and outdoor equipment", Icon: "⚽"},
	{Name: "Automotive", Description: "Car parts and accessories", Icon: "🚗"},
	{Name: "Toys & Games", Description: "Children toys and entertainment", Icon: "🧸"},
	{Name: "Office Supplies", Description: "Business and office equipment", Icon: "📎"},
}
