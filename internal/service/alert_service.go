package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "stockflow/internal/errors"
	"stockflow/internal/logger"
	"stockflow/internal/model"
	"stockflow/internal/notifier"
	"stockflow/internal/repository"
	"stockflow/internal/stock"
)

// AlertDispatcher hands alerts to an external delivery channel.
type AlertDispatcher interface {
	Enabled() bool
	Dispatch(alert notifier.Alert)
}

// AlertService runs the low stock notification pipeline.
type AlertService interface {
	// NotifyIfLowStock creates one unread low stock notification per interested
	// user that does not already have one, and returns how many were created.
	NotifyIfLowStock(ctx context.Context, productID uint) (int, error)
}

type alertService struct {
	productRepo      repository.ProductRepository
	notificationRepo repository.NotificationRepository
	resolver         RecipientResolver
	dispatcher       AlertDispatcher
	logger           *zap.Logger
}

// NewAlertService builds the alert pipeline. dispatcher may be nil.
func NewAlertService(
	productRepo repository.ProductRepository,
	notificationRepo repository.NotificationRepository,
	resolver RecipientResolver,
	dispatcher AlertDispatcher,
	log *zap.Logger,
) AlertService {
	return &alertService{
		productRepo:      productRepo,
		notificationRepo: notificationRepo,
		resolver:         resolver,
		dispatcher:       dispatcher,
		logger:           logger.OrNop(log),
	}
}

func (s *alertService) NotifyIfLowStock(ctx context.Context, productID uint) (int, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.ErrProductNotFound
		}
		return 0, fmt.Errorf("load product: %w", err)
	}

	if !stock.IsLow(product.StockQuantity, product.MinStock) {
		return 0, nil
	}

	recipients, err := s.resolver.Resolve(ctx, product)
	if err != nil {
		return 0, err
	}

	title := fmt.Sprintf("Low Stock Alert: %s", product.Name)
	message := fmt.Sprintf("Product \"%s\" (%s) is running low. Current stock: %d, Minimum: %d",
		product.Name, product.SKU, product.StockQuantity, product.MinStock)

	created := 0
	var errs []error
	for _, recipient := range recipients {
		productID := product.ID
		notification := &model.Notification{
			UserID:    recipient.ID,
			ProductID: &productID,
			Type:      model.NotificationTypeLowStock,
			Title:     title,
			Message:   message,
		}

		ok, err := s.notificationRepo.CreateIfNoneOpen(ctx, notification)
		if err != nil {
			errs = append(errs, fmt.Errorf("notify user %d: %w", recipient.ID, err))
			continue
		}
		if !ok {
			continue
		}
		created++

		s.logger.Info("low stock notification created",
			zap.Uint("notification_id", notification.ID),
			zap.Uint("user_id", recipient.ID),
			zap.Uint("product_id", product.ID),
		)

		if recipient.EmailNotifications && s.dispatcher != nil && s.dispatcher.Enabled() {
			s.dispatcher.Dispatch(notifier.Alert{
				NotificationID: notification.ID,
				Recipient:      recipient.Email,
				RecipientName:  recipient.Username,
				Subject:        title,
				Message:        message,
				ProductName:    product.Name,
				SKU:            product.SKU,
				StockQuantity:  product.StockQuantity,
				MinStock:       product.MinStock,
			})
		}
	}

	return created, errors.Join(errs...)
}
