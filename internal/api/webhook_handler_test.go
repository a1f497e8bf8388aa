package api_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmsato/todoapi/internal/api"
	"github.com/rmsato/todoapi/internal/api/middleware"
	"github.com/rmsato/todoapi/internal/mocks"
	"github.com/rmsato/todoapi/internal/notify"
)

func newWebhookRouter(mailer *mocks.MockMailer, verifier *notify.SignatureVerifier) chi.Router {
	handler := api.NewWebhookHandler(mailer)
	signature := middleware.NewSignatureMiddleware(verifier)

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(signature.Verify)
		r.Post("/api/v1/webhooks/send-welcome-email", handler.SendWelcomeEmail)
	})
	return router
}

func postWebhook(t *testing.T, router chi.Router, body []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/send-welcome-email", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(notify.SignatureHeader, signature)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestWebhookHandler_SendWelcomeEmail(t *testing.T) {
	t.Parallel()

	verifier := notify.NewSignatureVerifier("current-key", "next-key")
	body := []byte(`{"email":"new@example.com","first_name":"Ada"}`)

	t.Run("signed request sends the email", func(t *testing.T) {
		t.Parallel()

		mailer := &mocks.MockMailer{}
		router := newWebhookRouter(mailer, verifier)

		recorder := postWebhook(t, router, body, "v1="+verifier.Sign(body))

		require.Equal(t, http.StatusOK, recorder.Code)
		require.Len(t, mailer.Sent, 1)
		assert.Equal(t, "new@example.com", mailer.Sent[0].Email)
		assert.Equal(t, "Ada", mailer.Sent[0].FirstName)
	})

	t.Run("missing signature rejected before any side effect", func(t *testing.T) {
		t.Parallel()

		mailer := &mocks.MockMailer{}
		router := newWebhookRouter(mailer, verifier)

		recorder := postWebhook(t, router, body, "")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Empty(t, mailer.Sent, "no email may be sent for unsigned requests")
	})

	t.Run("wrong signature rejected", func(t *testing.T) {
		t.Parallel()

		mailer := &mocks.MockMailer{}
		router := newWebhookRouter(mailer, verifier)

		wrong := notify.NewSignatureVerifier("other-key", "other-key")
		recorder := postWebhook(t, router, body, "v1="+wrong.Sign(body))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Empty(t, mailer.Sent)
	})

	t.Run("signature over a different body rejected", func(t *testing.T) {
		t.Parallel()

		mailer := &mocks.MockMailer{}
		router := newWebhookRouter(mailer, verifier)

		tampered := []byte(`{"email":"attacker@example.com","first_name":"Ada"}`)
		recorder := postWebhook(t, router, tampered, "v1="+verifier.Sign(body))

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Empty(t, mailer.Sent)
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		t.Parallel()

		mailer := &mocks.MockMailer{}
		router := newWebhookRouter(mailer, verifier)

		partial := []byte(`{"email":"new@example.com"}`)
		recorder := postWebhook(t, router, partial, "v1="+verifier.Sign(partial))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Empty(t, mailer.Sent)
	})

	t.Run("mailer failure returns 500 for queue retry", func(t *testing.T) {
		t.Parallel()

		mailer := &mocks.MockMailer{
			SendFn: func(_ context.Context, _, _ string) error {
				return errors.New("provider down")
			},
		}
		router := newWebhookRouter(mailer, verifier)

		recorder := postWebhook(t, router, body, "v1="+verifier.Sign(body))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}
