package session

import (
	"context"
	"log/slog"
	"moapyr/internal/adapters/handlers/http/chi/apierror"
	"moapyr/internal/core/domain"
	"moapyr/internal/core/port"
	"net/http"
	"strings"
)

type adminContextKey struct{}

// RequireAdmin rejects requests without a valid bearer session token
func RequireAdmin(authenticator port.Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				apierror.Write(w, r, logger, domain.ErrUnauthorized)
				return
			}

			claims, err := authenticator.Authenticate(r.Context(), credential)
			if err != nil {
				logger.Warn("admin authentication failed", "path", r.URL.Path, "error", err)
				apierror.Write(w, r, logger, err)
				return
			}

			ctx := context.WithValue(r.Context(), adminContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext returns the claims stored by RequireAdmin
func AdminFromContext(ctx context.Context) (*domain.SessionClaims, bool) {
	claims, ok := ctx.Value(adminContextKey{}).(*domain.SessionClaims)
	return claims, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
