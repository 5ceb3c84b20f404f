package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "eventura/internal/delivery/http/helpers"
	"eventura/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

var (
	errMissingHeader = errors.New("missing authorization header")
	errBadFormat     = errors.New("invalid authorization format")
	errMissingToken  = errors.New("missing token")
)

// SetPrincipal returns a context carrying the authenticated caller.
func SetPrincipal(ctx context.Context, p *domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the authenticated caller, if any.
func PrincipalFromContext(ctx context.Context) (*domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*domain.Principal)
	return p, ok && p != nil
}

// UserIDFromContext returns the authenticated user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	p, ok := PrincipalFromContext(ctx)
	if !ok {
		return 0, false
	}
	return p.UserID, true
}

func bearerToken(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", errMissingHeader
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", errBadFormat
	}
	token := strings.TrimSpace(auth[len(prefix):])
	if token == "" {
		return "", errMissingToken
	}
	return token, nil
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the principal in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, err.Error())
				return
			}
			p, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			next(w, r.WithContext(SetPrincipal(r.Context(), p)))
		}
	}
}

// OptionalAuth lets anonymous requests through unchanged. A request that does
// present a token must present a valid one.
func OptionalAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	required := RequireAuth(verifier, logger)
	return func(next http.HandlerFunc) http.HandlerFunc {
		withAuth := required(next)
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next(w, r)
				return
			}
			withAuth(w, r)
		}
	}
}

// RequireRole must run after RequireAuth. It responds with 403 unless the caller holds role.
func RequireRole(role string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "unauthorized")
				return
			}
			if !p.HasRole(role) {
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "requires role "+role)
				return
			}
			next(w, r)
		}
	}
}
