package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/KrrishNichanii/Todo-Backend/internal/cache"
)

// CredentialLimiter checks the per-IP budget for credential endpoints.
type CredentialLimiter interface {
	CheckAuthRateLimit(ctx context.Context, ip string, ratePerMinute, burst int) (*cache.RateLimitResult, error)
}

// RateLimitConfig holds configuration for credential rate limiting.
type RateLimitConfig struct {
	Logger    *slog.Logger
	Limiter   CredentialLimiter
	Enabled   bool
	PerMinute int
	Burst     int
}

// RateLimitCredentials throttles register and login attempts per client
// IP. The limiter fails open, so a Redis outage slows nothing down.
func RateLimitCredentials(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !cfg.Enabled || cfg.Limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := cfg.Limiter.CheckAuthRateLimit(r.Context(), clientIP(r), cfg.PerMinute, cfg.Burst)
			if err != nil {
				cfg.Logger.Warn("rate limit check failed",
					"request_id", GetRequestID(r.Context()),
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			if !result.Allowed {
				retryAfter := int(result.RetryAfter.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				writeEnvelope(w, http.StatusTooManyRequests, "too many attempts, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr. Behind chi's RealIP
// middleware RemoteAddr already carries the forwarded client address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
