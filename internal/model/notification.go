package model

import "time"

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationTypeLowStock NotificationType = "low_stock"
)

// Notification is an in-app alert for a user. At most one unread notification
// exists per (user, product, type).
type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"user_id" gorm:"not null;index:idx_notification_open"`
	ProductID *uint            `json:"product_id,omitempty" gorm:"index:idx_notification_open"`
	Type      NotificationType `json:"type" gorm:"type:varchar(32);not null;index:idx_notification_open"`
	Title     string           `json:"title" gorm:"size:255;not null"`
	Message   string           `json:"message" gorm:"type:text;not null"`
	IsRead    bool             `json:"is_read" gorm:"not null;default:false;index:idx_notification_open"`
	IsSent    bool             `json:"is_sent" gorm:"not null;default:false"`
	CreatedAt time.Time        `json:"created_at"`

	// Relations
	User    *User    `json:"-" gorm:"foreignKey:UserID"`
	Product *Product `json:"-" gorm:"foreignKey:ProductID"`
}
