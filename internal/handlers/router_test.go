package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/clipstream/clipstream/internal/middlewares"
	"github.com/clipstream/clipstream/internal/models"
	"github.com/clipstream/clipstream/internal/tokens"
)

// Session checks against a real token service behind the middleware,
// the way the router wires it.
func TestProtectedRoute_AccessTokenLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	jwtSvc := tokens.New("access-secret", "refresh-secret", time.Minute, time.Hour)
	expiredSvc := tokens.New("access-secret", "refresh-secret", -time.Minute, time.Hour)

	users := middlewares.NewMockIdentityReader(ctrl)
	users.EXPECT().
		GetProfileByID(gomock.Any(), userID).
		Return(&models.User{UserID: userID, Username: "john_doe"}, nil).
		AnyTimes()

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(jwtSvc, users))
		r.Get("/api/v1/users/me", NewCurrentUserHandler())
	})

	t.Run("fresh token passes", func(t *testing.T) {
		access, err := jwtSvc.GenerateAccessToken(context.Background(), userID, "john@example.com", "john_doe", "John Doe")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.AddCookie(&http.Cookie{Name: tokens.AccessCookieName, Value: access})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("expired token gets 401", func(t *testing.T) {
		access, err := expiredSvc.GenerateAccessToken(context.Background(), userID, "john@example.com", "john_doe", "John Doe")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
		req.AddCookie(&http.Cookie{Name: tokens.AccessCookieName, Value: access})

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("no token gets 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
