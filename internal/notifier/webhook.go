package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const webhookUsername = "StockFlow"

// WebhookField is one attachment field of a Slack-compatible payload.
type WebhookField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// WebhookAttachment is one attachment of a Slack-compatible payload.
type WebhookAttachment struct {
	Color     string         `json:"color"`
	Title     string         `json:"title"`
	Text      string         `json:"text"`
	Fields    []WebhookField `json:"fields"`
	Footer    string         `json:"footer"`
	Timestamp int64          `json:"ts"`
}

// WebhookRequest is the JSON body posted to the webhook.
type WebhookRequest struct {
	Username    string              `json:"username"`
	IconEmoji   string              `json:"icon_emoji,omitempty"`
	Text        string              `json:"text"`
	Attachments []WebhookAttachment `json:"attachments"`
}

// WebhookNotifier posts alerts to a Slack-compatible incoming webhook.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier creates a webhook notifier. A nil client uses a client with a 10s timeout.
func NewWebhookNotifier(url string, client *http.Client) (*WebhookNotifier, error) {
	if url == "" {
		return nil, errors.New("webhook notifier: WEBHOOK_URL is required")
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WebhookNotifier{url: url, client: client}, nil
}

// Send posts one alert.
func (n *WebhookNotifier) Send(ctx context.Context, alert Alert) error {
	payload := WebhookRequest{
		Username:  webhookUsername,
		IconEmoji: ":package:",
		Text:      fmt.Sprintf(":warning: *%s*", alert.Subject),
		Attachments: []WebhookAttachment{
			{
				Color: "warning",
				Title: alert.Subject,
				Text:  alert.Message,
				Fields: []WebhookField{
					{Title: "Product", Value: alert.ProductName, Short: true},
					{Title: "SKU", Value: alert.SKU, Short: true},
					{Title: "Current Stock", Value: fmt.Sprintf("%d", alert.StockQuantity), Short: true},
					{Title: "Minimum Stock", Value: fmt.Sprintf("%d", alert.MinStock), Short: true},
					{Title: "Recipient", Value: alert.RecipientName, Short: false},
				},
				Footer:    "StockFlow Inventory Management System",
				Timestamp: time.Now().Unix(),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
