package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/rmsato/todoapi/internal/config"
	"github.com/rmsato/todoapi/internal/platform/logger"
)

// sendTimeout bounds a single send request to the email provider.
const sendTimeout = 10 * time.Second

// resendEndpoint is the Resend email send API.
const resendEndpoint = "https://api.resend.com/emails"

// Mailer performs the actual email send on the webhook receive side.
type Mailer interface {
	// SendWelcomeEmail sends the welcome email to a newly registered
	// account. Errors surface to the webhook caller so the queue can
	// retry the delivery.
	SendWelcomeEmail(ctx context.Context, email, firstName string) error
}

// welcomeBodyTemplate renders the welcome email HTML.
// html/template escapes the first name, so user input cannot inject markup.
var welcomeBodyTemplate = template.Must(template.New("welcome").Parse(`<html>
	<body>
		<h1>Welcome, {{.FirstName}}!</h1>
		<p>Thank you for registering.</p>
		<p>We're excited to have you on board!</p>
		<p><a href="{{.DashboardURL}}">Get Started</a></p>
	</body>
</html>`))

// ResendMailer implements Mailer against the Resend HTTP API.
type ResendMailer struct {
	client      *http.Client
	endpoint    string
	apiKey      string
	from        string
	frontendURL string
	logger      *slog.Logger
}

// NewResendMailer creates a mailer from the notification config.
func NewResendMailer(cfg config.NotifyConfig, logger *slog.Logger) *ResendMailer {
	if logger == nil {
		logger = slog.Default()
	}

	return &ResendMailer{
		client:      &http.Client{Timeout: sendTimeout},
		endpoint:    resendEndpoint,
		apiKey:      cfg.ResendAPIKey,
		from:        cfg.EmailFrom,
		frontendURL: cfg.FrontendURL,
		logger:      logger.With(slog.String("component", "resend_mailer")),
	}
}

// Ensure ResendMailer implements the Mailer interface
var _ Mailer = (*ResendMailer)(nil)

// resendRequest is the Resend send-email payload.
type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendWelcomeEmail implements Mailer.SendWelcomeEmail
func (m *ResendMailer) SendWelcomeEmail(ctx context.Context, email, firstName string) error {
	log := logger.FromContextOrDefault(ctx, m.logger)

	var html bytes.Buffer
	err := welcomeBodyTemplate.Execute(&html, struct {
		FirstName    string
		DashboardURL string
	}{
		FirstName:    firstName,
		DashboardURL: m.frontendURL + "/dashboard",
	})
	if err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}

	payload, err := json.Marshal(resendRequest{
		From:    m.from,
		To:      []string{email},
		Subject: fmt.Sprintf("Welcome, %s!", firstName),
		HTML:    html.String(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}

	var sent struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&sent); err == nil && sent.ID != "" {
		log.Info("welcome email sent", slog.String("email_id", sent.ID))
	} else {
		log.Info("welcome email sent")
	}

	return nil
}
