package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/rmsato/todoapi/internal/api/shared"
)

// IPRateLimit limits requests per client IP to requestLimit per
// window. The limiter keys on the request IP, so the cap is per
// address, not global; endpoints outside the wrapped route are
// unaffected.
func IPRateLimit(requestLimit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requestLimit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			shared.RespondWithError(w, r, http.StatusTooManyRequests,
				"Too many requests. Please try again later.", nil)
		}),
	)
}
