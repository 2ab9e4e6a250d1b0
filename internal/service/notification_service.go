package service

import (
	"context"

	apperrors "stockflow/internal/errors"
	"stockflow/internal/model"
	"stockflow/internal/repository"
)

// NotificationService exposes a user's in-app notifications.
type NotificationService interface {
	List(ctx context.Context, userID uint) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, userID, id uint) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, userID uint) ([]model.Notification, error) {
	if userID == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	if userID == 0 {
		return 0, apperrors.ErrUnauthorized
	}
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead acknowledges a notification. Marking it again is a no-op. Once read,
// the next low stock write for the same product raises a fresh alert.
func (s *notificationService) MarkRead(ctx context.Context, userID, id uint) error {
	if userID == 0 {
		return apperrors.ErrUnauthorized
	}
	affected, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		// mysql reports 0 affected rows when the notification is already read
		ok, err := s.repo.Exists(ctx, id, userID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ErrNotificationNotFound
		}
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	if userID == 0 {
		return 0, apperrors.ErrUnauthorized
	}
	return s.repo.MarkAllRead(ctx, userID)
}
