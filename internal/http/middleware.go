package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/example/campus-events/internal/application"
	"github.com/example/campus-events/internal/logging"
)

// IdentityResolver verifies a raw token and returns the identity it carries.
type IdentityResolver interface {
	Resolve(token string) (application.Identity, error)
}

// RequireIdentity rejects requests without a verifiable token and attaches
// the resolved identity to the request context. The token comes from the
// Authorization header or the token cookie; nothing in the request body is
// ever consulted.
func RequireIdentity(resolver IdentityResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractTokenFromRequest(r)
			if token == "" {
				responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingToken)
				return
			}

			identity, err := resolver.Resolve(token)
			if err != nil {
				if errors.Is(err, application.ErrUnauthenticated) {
					responder.writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Message: "Authentication required"})
					return
				}
				responder.writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Message: "Invalid or expired token"})
				return
			}

			ctx := ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger attaches a request scoped logger to the context and records
// request start and completion.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	var counter atomic.Uint64

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := counter.Add(1)
			logger := base.With(
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
			)

			ctx := logging.ContextWithLogger(r.Context(), logger)
			start := time.Now()
			logger.InfoContext(ctx, "request started")
			next.ServeHTTP(w, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "duration", time.Since(start))
		})
	}
}

func extractTokenFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		const prefix = "Bearer "
		if strings.HasPrefix(header, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(header, prefix))
		}
	}
	if cookie, err := r.Cookie(tokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
