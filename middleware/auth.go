package middleware

import (
	"context"
	"net/http"
	"strings"

	"frozo-api/apperrors"
	"frozo-api/logger"
	"frozo-api/models"
	"frozo-api/responses"
	"frozo-api/utils"
)

// Key type for context
type contextKey string

const claimsContextKey = contextKey("claims")

type TokenParser interface {
	Parse(tokenString string) (*utils.Claims, error)
}

// ClaimsFromContext returns the verified token claims attached by Auth.
func ClaimsFromContext(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*utils.Claims)
	return claims, ok && claims != nil
}

func WithClaims(ctx context.Context, claims *utils.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// Auth verifies bearer tokens and attaches the claims to the context
func Auth(tokens TokenParser, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				responses.WriteError(r.Context(), logg, w, apperrors.New(apperrors.CodeUnauthorized, "authorization header missing"))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				responses.WriteError(r.Context(), logg, w, apperrors.New(apperrors.CodeUnauthorized, "invalid authorization header format"))
				return
			}

			claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, apperrors.Wrap(apperrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithClaims(r.Context(), claims)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.Email)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly ensures that the caller has admin privileges
func AdminOnly(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				responses.WriteError(r.Context(), logg, w, apperrors.New(apperrors.CodeUnauthorized, "authentication required"))
				return
			}
			if claims.Role != models.RoleAdmin {
				responses.WriteError(r.Context(), logg, w, apperrors.New(apperrors.CodeForbidden, "admins only"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
