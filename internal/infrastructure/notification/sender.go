package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	notificationapp "github.com/horologe/storefront/internal/application/notification"
	"github.com/horologe/storefront/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// LogSender writes messages to the log instead of delivering them.
// Used in development and whenever no gateway is configured.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a LogSender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message
func (s *LogSender) Send(ctx context.Context, msg notificationapp.Message) error {
	logger.Enrich(ctx, s.logger).Info("Notification",
		zap.String("channel", string(msg.Channel)),
		zap.String("recipient", msg.Recipient),
		zap.String("order_id", msg.OrderID),
		zap.String("subject", msg.Subject),
		zap.Int("body_length", len(msg.Body)),
		zap.String("link", msg.Link),
	)
	return nil
}

// WebhookSender posts each message as JSON to a gateway that fans out to
// email, SMS and WhatsApp providers
type WebhookSender struct {
	url    string
	client *http.Client
}

// NewWebhookSender creates a WebhookSender
func NewWebhookSender(url string, timeout time.Duration) *WebhookSender {
	return &WebhookSender{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Send posts the message. Any non-2xx answer is an error.
func (s *WebhookSender) Send(ctx context.Context, msg notificationapp.Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if id := logger.GetRequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification gateway returned %d", resp.StatusCode)
	}
	return nil
}

var (
	_ notificationapp.Sender = (*LogSender)(nil)
	_ notificationapp.Sender = (*WebhookSender)(nil)
)
