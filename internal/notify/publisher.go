package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rmsato/todoapi/internal/config"
	"github.com/rmsato/todoapi/internal/platform/logger"
)

// publishTimeout bounds a single publish request to the queue.
const publishTimeout = 10 * time.Second

// WelcomeMessage is the payload forwarded through the queue to the
// welcome-email webhook.
type WelcomeMessage struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

// Publisher schedules a welcome notification for asynchronous delivery.
// Implementations are best-effort: the caller treats errors as
// non-fatal and never retries.
type Publisher interface {
	PublishWelcomeEmail(ctx context.Context, msg WelcomeMessage) error
}

// QStashPublisher publishes messages to Upstash QStash, which delivers
// them to this service's webhook endpoint with a signed callback.
type QStashPublisher struct {
	client         *http.Client
	qstashURL      string
	token          string
	webhookBaseURL string
	logger         *slog.Logger
}

// NewQStashPublisher creates a publisher from the notification config.
func NewQStashPublisher(cfg config.NotifyConfig, logger *slog.Logger) *QStashPublisher {
	if logger == nil {
		logger = slog.Default()
	}

	return &QStashPublisher{
		client:         &http.Client{Timeout: publishTimeout},
		qstashURL:      strings.TrimSuffix(cfg.QStashURL, "/"),
		token:          cfg.QStashToken,
		webhookBaseURL: strings.TrimSuffix(cfg.WebhookBaseURL, "/"),
		logger:         logger.With(slog.String("component", "qstash_publisher")),
	}
}

// Ensure QStashPublisher implements the Publisher interface
var _ Publisher = (*QStashPublisher)(nil)

// PublishWelcomeEmail implements Publisher.PublishWelcomeEmail
//
// The message is POSTed to the QStash publish endpoint with the webhook
// URL embedded in the path. The bearer token authenticates to QStash;
// the Upstash-Forward-Authorization header is forwarded by QStash to
// the webhook receiver. A non-2xx response is an error so the caller
// can log it, but delivery retries belong to QStash, not to us.
func (p *QStashPublisher) PublishWelcomeEmail(ctx context.Context, msg WelcomeMessage) error {
	log := logger.FromContextOrDefault(ctx, p.logger)

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal welcome message: %w", err)
	}

	webhookURL := p.webhookBaseURL + "/api/v1/webhooks/send-welcome-email"
	publishURL := p.qstashURL + "/v2/publish/" + webhookURL

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, publishURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build publish request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Upstash-Forward-Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to publish to queue: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("queue publish returned status %d", resp.StatusCode)
	}

	var published struct {
		MessageID string `json:"messageId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&published); err == nil && published.MessageID != "" {
		log.Info("welcome notification published",
			slog.String("message_id", published.MessageID))
	} else {
		log.Info("welcome notification published")
	}

	return nil
}
