package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// ErrorResponse is the standard error payload: a single human-readable
// detail message, plus the trace ID for support correlation.
type ErrorResponse struct {
	Detail  string `json:"detail"`
	TraceID string `json:"trace_id,omitempty"`
}

// FieldErrors maps request field names to their validation messages,
// mirroring how form-level validation errors are conventionally keyed.
type FieldErrors map[string][]string

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err, "path", r.URL.Path)
	}
}

// RespondWithError writes a detail-style JSON error response and logs
// it with the trace ID. The optional err is logged, never sent to the
// client.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, detail string, err error) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("detail", detail),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", err.Error()),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	switch {
	case status >= http.StatusInternalServerError:
		logLevel = slog.LevelError
	case status == http.StatusTooManyRequests:
		logLevel = slog.LevelWarn
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{Detail: detail, TraceID: traceID})
}

// RespondWithFieldErrors writes a 400 response mapping field names to
// validation messages.
func RespondWithFieldErrors(w http.ResponseWriter, r *http.Request, fields FieldErrors) {
	slog.LogAttrs(r.Context(), slog.LevelDebug, "request validation failed",
		slog.String("trace_id", GetTraceID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.Int("field_count", len(fields)))

	RespondWithJSON(w, r, http.StatusBadRequest, fields)
}
