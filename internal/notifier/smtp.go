package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPConfig configures the SMTP notifier.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPNotifier sends alerts as HTML email.
type SMTPNotifier struct {
	client *mail.Client
	from   string
}

// NewSMTPNotifier creates an SMTP notifier. Authentication is used only when a
// username is configured.
func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp notifier: SMTP_HOST is required")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp notifier: %w", err)
	}
	return &SMTPNotifier{client: client, from: cfg.From}, nil
}

// Send delivers one alert email.
func (n *SMTPNotifier) Send(ctx context.Context, alert Alert) error {
	msg, err := n.buildMessage(alert)
	if err != nil {
		return err
	}
	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send email to %s: %w", alert.Recipient, err)
	}
	return nil
}

func (n *SMTPNotifier) buildMessage(alert Alert) (*mail.Msg, error) {
	body, err := RenderEmail(alert)
	if err != nil {
		return nil, fmt.Errorf("render email: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", n.from, err)
	}
	if err := msg.To(alert.Recipient); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", alert.Recipient, err)
	}
	msg.Subject(alert.Subject)
	msg.SetBodyString(mail.TypeTextHTML, body)
	msg.AddAlternativeString(mail.TypeTextPlain, alert.Message)
	return msg, nil
}
