package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"bilio-backend/internal/auth"
	"bilio-backend/internal/domain"
	"bilio-backend/internal/logger"
)

type contextKey string

const identityContextKey contextKey = "identity"

const (
	rateLimitMaxRequests = 100
	rateLimitWindow      = 1 * time.Minute
)

// Middleware bundles the cross-cutting request handling: session
// resolution, rate limiting, request ids.
type Middleware struct {
	authenticator auth.Authenticator
	cookieName    string
	redisClient   *redis.Client // nil disables rate limiting
}

func NewMiddleware(authenticator auth.Authenticator, cookieName string, redisClient *redis.Client) *Middleware {
	return &Middleware{
		authenticator: authenticator,
		cookieName:    cookieName,
		redisClient:   redisClient,
	}
}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	ident, ok := ctx.Value(identityContextKey).(domain.Identity)
	return ident, ok
}

func (m *Middleware) sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// RequireAuth rejects requests without a valid session.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.sessionToken(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
			return
		}
		ident, err := m.authenticator.Verify(r.Context(), token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid or expired session")
			return
		}
		ctx := context.WithValue(r.Context(), identityContextKey, *ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth attaches the identity when a valid session is present and
// lets the request through either way. Used by UI-gating reads.
func (m *Middleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := m.sessionToken(r); token != "" {
			if ident, err := m.authenticator.Verify(r.Context(), token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), identityContextKey, *ident))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit applies a fixed per-IP request window via Redis. A nil client
// disables limiting; a Redis outage fails open.
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	if m.redisClient == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := fmt.Sprintf("rate_limit:%s", clientIP(r))
		allowed, err := m.checkRateLimit(r.Context(), key)
		if err != nil {
			logger.Warn("rate limiter unavailable, failing open", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			respondError(w, http.StatusTooManyRequests, ErrCodeRateLimit, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) checkRateLimit(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	count, err := m.redisClient.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		m.redisClient.Expire(ctx, key, rateLimitWindow)
	}
	return count <= rateLimitMaxRequests, nil
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// RequestID tags every request with an id for log correlation.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}
