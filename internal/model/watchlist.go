package model

import "time"

// WatchlistEntry subscribes a user to low stock alerts for a product.
type WatchlistEntry struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	ProductID uint      `json:"product_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User    *User    `json:"-" gorm:"foreignKey:UserID"`
	Product *Product `json:"-" gorm:"foreignKey:ProductID"`
}

// TableName keeps the watchlist table name stable.
func (WatchlistEntry) TableName() string {
	return "user_watchlist"
}
