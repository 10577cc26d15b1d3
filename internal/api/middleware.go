package api

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/revtradingpros/backend/pkg/logger"
	pkgredis "github.com/revtradingpros/backend/pkg/redis"
)

// clientLimiters holds one in-process token bucket per client IP. Used
// when Redis is disabled; the Redis sliding window takes over otherwise
// so limits hold across instances.
type clientLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newClientLimiters(perMinute int) *clientLimiters {
	return &clientLimiters{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(float64(perMinute) / 60.0),
		burst:    perMinute,
	}
}

func (c *clientLimiters) get(ip string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.limiters[ip]
	if !ok {
		l = rate.NewLimiter(c.rate, c.burst)
		c.limiters[ip] = l
	}
	return l
}

// rateLimitMiddleware throttles analytics requests per client IP
func rateLimitMiddleware(limiter *pkgredis.RateLimiter, log *logger.Logger) mux.MiddlewareFunc {
	local := newClientLimiters(pkgredis.APIRateLimit.Limit)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			if limiter != nil {
				cfg := pkgredis.APIRateLimit
				cfg.Key = "api:" + ip

				allowed, remaining, err := limiter.Allow(r.Context(), cfg)
				if err != nil {
					// Redis trouble must not take the API down
					log.WithError(err).Warn("Rate limit check failed, allowing request")
				} else if !allowed {
					rejectRateLimited(w, remaining)
					return
				}
			}

			if !local.get(ip).Allow() {
				rejectRateLimited(w, 0)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rejectRateLimited(w http.ResponseWriter, remaining int) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	w.WriteHeader(http.StatusTooManyRequests)
	json.NewEncoder(w).Encode(map[string]string{
		"error": "Rate limit exceeded",
	})
}

// clientIP extracts the remote address without the port. X-Forwarded-For
// may carry a client-controlled comma-separated chain; only its first
// element is used, and a blank one falls back to RemoteAddr.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i >= 0 {
			fwd = fwd[:i]
		}
		if ip := strings.TrimSpace(fwd); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
