package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stockflow/internal/model"
)

// NotificationRepository defines notification persistence operations.
type NotificationRepository interface {
	CreateIfNoneOpen(ctx context.Context, notification *model.Notification) (bool, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, id, userID uint) (int64, error)
	Exists(ctx context.Context, id, userID uint) (bool, error)
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	MarkSent(ctx context.Context, id uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// CreateIfNoneOpen inserts notification unless the same user already has an
// unread notification of the same type for the same product. The lookup and the
// insert share one transaction. It reports whether a row was created.
func (r *notificationRepository) CreateIfNoneOpen(ctx context.Context, notification *model.Notification) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&model.Notification{}).
			Where("user_id = ? AND type = ? AND is_read = ?", notification.UserID, notification.Type, false)
		if notification.ProductID != nil {
			q = q.Where("product_id = ?", *notification.ProductID)
		} else {
			q = q.Where("product_id IS NULL")
		}

		var open int64
		if err := q.Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return nil
		}

		if err := tx.Omit(clause.Associations).Create(notification).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

// ListByUser returns a user's notifications, newest first.
func (r *notificationRepository) ListByUser(ctx context.Context, userID uint) ([]model.Notification, error) {
	notifications := []model.Notification{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// CountUnread returns the number of unread notifications for a user.
func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead acknowledges one of the user's notifications.
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

// Exists reports whether the notification belongs to the user.
func (r *notificationRepository) Exists(ctx context.Context, id, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	return count > 0, err
}

// MarkAllRead acknowledges all of the user's unread notifications.
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

// MarkSent records successful external delivery.
func (r *notificationRepository) MarkSent(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Update("is_sent", true).Error
}
