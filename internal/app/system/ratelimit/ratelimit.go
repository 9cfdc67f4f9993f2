// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// Message is the body sent with a 429 response.
const Message = "Too many requests. Please wait a minute before trying again."

// ByIP returns middleware that allows each client IP perMinute requests per
// minute. A non-positive perMinute disables limiting.
//
// HTMX requests get the status with HX-Reswap: none so the current partial
// stays in place.
func ByIP(perMinute int, logger *zap.Logger) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		perMinute,
		time.Minute,
		httprate.WithKeyByRealIP(),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.Warn("rate limit exceeded",
				zap.String("path", r.URL.Path),
				zap.String("remote", r.RemoteAddr))
			if r.Header.Get("HX-Request") == "true" {
				w.Header().Set("HX-Reswap", "none")
			}
			http.Error(w, Message, http.StatusTooManyRequests)
		}),
	)
}
