package api

import (
	"net/http"

	"github.com/rmsato/todoapi/internal/api/shared"
	"github.com/rmsato/todoapi/internal/notify"
)

// WebhookHandler handles the callbacks the message queue delivers back
// to this service. Signature verification happens in middleware before
// any of these handlers run.
type WebhookHandler struct {
	mailer notify.Mailer
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(mailer notify.Mailer) *WebhookHandler {
	return &WebhookHandler{mailer: mailer}
}

// SendWelcomeEmail handles POST /api/v1/webhooks/send-welcome-email.
// A mailer failure returns 500 so the queue redelivers; there is no
// delivery dedup, so a redelivered message sends a duplicate email.
func (h *WebhookHandler) SendWelcomeEmail(w http.ResponseWriter, r *http.Request) {
	var req WelcomeEmailRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	if req.Email == "" || req.FirstName == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Email and first name are required.", nil)
		return
	}

	if err := h.mailer.SendWelcomeEmail(r.Context(), req.Email, req.FirstName); err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to send welcome email.", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DetailResponse{Detail: "Welcome email sent."})
}
