package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/rmsato/todoapi/internal/api/shared"
	"github.com/rmsato/todoapi/internal/notify"
)

// maxWebhookBody caps how much of a webhook request body is read for
// signature verification.
const maxWebhookBody = 1 << 20 // 1 MiB

// SignatureMiddleware verifies the queue's HMAC signature on incoming
// webhook requests before any handler runs. Requests with a missing,
// malformed, or mismatched signature are rejected with 401 and produce
// no side effects.
type SignatureMiddleware struct {
	verifier *notify.SignatureVerifier
}

// NewSignatureMiddleware creates a new SignatureMiddleware.
func NewSignatureMiddleware(verifier *notify.SignatureVerifier) *SignatureMiddleware {
	return &SignatureMiddleware{verifier: verifier}
}

// Verify checks the Upstash-Signature header against the raw request
// body. The body is restored afterwards so the handler can decode it.
func (m *SignatureMiddleware) Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Could not read request body.", err)
			return
		}
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		if err := m.verifier.Verify(r.Header.Get(notify.SignatureHeader), body); err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid signature.", err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
