package tokens

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestJWT(accessExp, refreshExp time.Duration) *JWT {
	return New("access-secret", "refresh-secret", accessExp, refreshExp)
}

func TestJWT_AccessTokenRoundTrip(t *testing.T) {
	j := newTestJWT(time.Minute, time.Hour)
	ctx := context.Background()
	userID := uuid.New()

	token, err := j.GenerateAccessToken(ctx, userID, "alice@example.com", "alice1", "Alice Smith")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := j.GetAccessClaims(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "alice1", claims.Username)
	assert.Equal(t, "Alice Smith", claims.Fullname)
}

func TestJWT_RefreshTokenRoundTrip(t *testing.T) {
	j := newTestJWT(time.Minute, time.Hour)
	ctx := context.Background()
	userID := uuid.New()

	token, err := j.GenerateRefreshToken(ctx, userID)
	assert.NoError(t, err)

	claims, err := j.GetRefreshClaims(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := newTestJWT(-time.Minute, -time.Minute) // already expired
	ctx := context.Background()
	userID := uuid.New()

	access, err := j.GenerateAccessToken(ctx, userID, "a@b.c", "alice1", "Alice")
	assert.NoError(t, err)
	refresh, err := j.GenerateRefreshToken(ctx, userID)
	assert.NoError(t, err)

	claims, err := j.GetAccessClaims(ctx, access)
	assert.Error(t, err)
	assert.Nil(t, claims)

	rclaims, err := j.GetRefreshClaims(ctx, refresh)
	assert.Error(t, err)
	assert.Nil(t, rclaims)
}

func TestJWT_SecretsAreNotInterchangeable(t *testing.T) {
	j := newTestJWT(time.Minute, time.Hour)
	ctx := context.Background()
	userID := uuid.New()

	access, _ := j.GenerateAccessToken(ctx, userID, "a@b.c", "alice1", "Alice")
	refresh, _ := j.GenerateRefreshToken(ctx, userID)

	// An access token must not verify as a refresh token and vice versa.
	_, err := j.GetRefreshClaims(ctx, access)
	assert.Error(t, err)
	_, err = j.GetAccessClaims(ctx, refresh)
	assert.Error(t, err)
}

func TestJWT_InvalidToken(t *testing.T) {
	j := newTestJWT(time.Minute, time.Hour)
	ctx := context.Background()

	claims, err := j.GetAccessClaims(ctx, "invalid.token.string")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWT_TamperedSignature(t *testing.T) {
	j := newTestJWT(time.Minute, time.Hour)
	other := New("different-secret", "different-secret", time.Minute, time.Hour)
	ctx := context.Background()

	token, _ := other.GenerateAccessToken(ctx, uuid.New(), "a@b.c", "alice1", "Alice")

	claims, err := j.GetAccessClaims(ctx, token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := newTestJWT(time.Minute, time.Hour)
	ctx := context.Background()

	tests := []struct {
		name          string
		cookie        string
		header        string
		expectedToken string
		expectError   bool
	}{
		{"CookieOnly", "cookietoken", "", "cookietoken", false},
		{"HeaderOnly", "", "Bearer headertoken", "headertoken", false},
		{"LowercaseBearer", "", "bearer headertoken", "headertoken", false},
		{"CookieWinsOverHeader", "cookietoken", "Bearer headertoken", "cookietoken", false},
		{"Neither", "", "", "", true},
		{"BadHeaderFormat", "", "Token abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, err := j.GetTokenFromRequest(ctx, req)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedToken, token)
		})
	}
}
