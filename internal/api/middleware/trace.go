// Package middleware contains the HTTP middleware chain: request
// tracing, cookie/bearer authentication, webhook signature checks, and
// registration rate limiting.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/rmsato/todoapi/internal/api/shared"
	"github.com/rmsato/todoapi/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context and attaches a
// trace-scoped logger, so every log line downstream carries the ID.
// Apply it first in the chain.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := slog.With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
