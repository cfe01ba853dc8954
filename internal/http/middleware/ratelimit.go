package middleware

import (
	"net"
	"net/http"

	"github.com/rogerio-castellano/catalog-api/internal/apperr"
	"github.com/rogerio-castellano/catalog-api/internal/http/ban"
	"github.com/rogerio-castellano/catalog-api/internal/http/rate_limiter"
)

// RateLimit rejects banned clients with 403 and clients over their rate with
// 429. Each 429 counts as a strike towards a ban. m may be nil.
func RateLimit(limiter *rate_limiter.Limiter, tracker *ban.Tracker, m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			client := clientIP(r)

			if tracker.IsBanned(ctx, client) {
				m.rejected("banned")
				apperr.Write(w, apperr.Forbidden("client is temporarily banned"))
				return
			}

			if !limiter.Allow(client) {
				m.rejected("rate")
				tracker.Strike(ctx, client, r.URL.Path)
				w.Header().Set("Retry-After", "1")
				apperr.Write(w, apperr.TooManyRequests("too many requests"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (m *Metrics) rejected(reason string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(reason).Inc()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
