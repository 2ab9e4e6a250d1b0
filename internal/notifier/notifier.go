// Package notifier delivers low stock alerts over external channels and records
// the delivery outcome.
package notifier

import (
	"context"
	"fmt"

	"stockflow/internal/config"
)

// Alert is one notification ready for external delivery.
type Alert struct {
	NotificationID uint
	Recipient      string
	RecipientName  string
	Subject        string
	Message        string
	ProductName    string
	SKU            string
	StockQuantity  int
	MinStock       int
}

// Notifier sends an alert through an external channel.
type Notifier interface {
	Send(ctx context.Context, alert Alert) error
}

// SentMarker records that a notification was delivered.
type SentMarker interface {
	MarkSent(ctx context.Context, id uint) error
}

// New builds the notifier selected by cfg.Notifier. It returns nil when
// delivery is disabled.
func New(cfg *config.Config) (Notifier, error) {
	switch cfg.Notifier {
	case "", config.NotifierNone:
		return nil, nil
	case config.NotifierSMTP:
		n, err := NewSMTPNotifier(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
		if err != nil {
			return nil, err
		}
		return n, nil
	case config.NotifierWebhook:
		n, err := NewWebhookNotifier(cfg.WebhookURL, nil)
		if err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unsupported NOTIFIER %q", cfg.Notifier)
	}
}
