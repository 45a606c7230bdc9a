package middlewares

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/clipstream/clipstream/internal/logger"
	"github.com/clipstream/clipstream/internal/models"
	"github.com/clipstream/clipstream/internal/tokens"
)

// Tokener defines the minimal token interface needed by the middleware.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetAccessClaims(ctx context.Context, tokenString string) (*tokens.AccessClaims, error)
}

// IdentityReader resolves the authenticated user's public profile.
type IdentityReader interface {
	GetProfileByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type contextKey string

const identityKey contextKey = "identity"

// IdentityFromContext returns the authenticated user attached by
// AuthMiddleware, or nil when the request was not authenticated.
func IdentityFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(identityKey).(*models.User)
	return user
}

// ContextWithIdentity attaches a user the way AuthMiddleware does.
func ContextWithIdentity(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, identityKey, user)
}

// AuthMiddleware returns a middleware that verifies the access token
// (cookie first, then Authorization header), resolves the token's
// subject to a live user record and attaches it to the request
// context. Requests with a missing, invalid or orphaned token get 401.
func AuthMiddleware(tokener Tokener, users IdentityReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			claims, err := tokener.GetAccessClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			user, err := users.GetProfileByID(ctx, claims.UserID)
			if err != nil {
				logger.Log.Errorw("failed to resolve token subject", "user_id", claims.UserID, "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if user == nil {
				// Token verifies but its subject no longer exists.
				logger.Log.Infow("access token for missing user", "user_id", claims.UserID)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx = context.WithValue(ctx, identityKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
