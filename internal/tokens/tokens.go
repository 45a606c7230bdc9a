package tokens

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessCookieName is the cookie holding the access token. The cookie
// takes precedence over the Authorization header.
const AccessCookieName = "accessToken"

// RefreshCookieName is the cookie holding the refresh token.
const RefreshCookieName = "refreshToken"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenMissing = errors.New("no bearer token in request")
)

// AccessClaims are the identity claims carried by a stateless access
// token. Verification needs no database lookup.
type AccessClaims struct {
	UserID   uuid.UUID
	Email    string
	Username string
	Fullname string
}

// RefreshClaims are the minimal claims carried by a refresh token.
type RefreshClaims struct {
	UserID uuid.UUID
}

type accessJWTClaims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	jwt.RegisteredClaims
}

type refreshJWTClaims struct {
	jwt.RegisteredClaims
}

// JWT signs and verifies access and refresh tokens. The two token
// kinds use distinct secrets so an access token can never pass as a
// refresh token or vice versa.
type JWT struct {
	accessSecret  string
	refreshSecret string
	accessExp     time.Duration
	refreshExp    time.Duration
}

// New creates a JWT service. Expirations are config-driven: access
// tokens are short-lived (minutes to hours), refresh tokens are
// long-lived (days).
func New(accessSecret, refreshSecret string, accessExp, refreshExp time.Duration) *JWT {
	return &JWT{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessExp:     accessExp,
		refreshExp:    refreshExp,
	}
}

// GenerateAccessToken signs a stateless access token embedding the
// user's identity claims.
func (j *JWT) GenerateAccessToken(ctx context.Context, userID uuid.UUID, email, username, fullname string) (string, error) {
	now := time.Now()
	claims := accessJWTClaims{
		Email:    email,
		Username: username,
		Fullname: fullname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessExp)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.accessSecret))
}

// GenerateRefreshToken signs a refresh token embedding only the user id.
func (j *JWT) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := refreshJWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.refreshExp)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.refreshSecret))
}

// GetAccessClaims verifies an access token's signature and expiry and
// returns its identity claims.
func (j *JWT) GetAccessClaims(ctx context.Context, tokenString string) (*AccessClaims, error) {
	var claims accessJWTClaims
	if err := j.parse(tokenString, &claims, j.accessSecret); err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &AccessClaims{
		UserID:   userID,
		Email:    claims.Email,
		Username: claims.Username,
		Fullname: claims.Fullname,
	}, nil
}

// GetRefreshClaims verifies a refresh token's signature and expiry and
// returns the claimed user id.
func (j *JWT) GetRefreshClaims(ctx context.Context, tokenString string) (*RefreshClaims, error) {
	var claims refreshJWTClaims
	if err := j.parse(tokenString, &claims, j.refreshSecret); err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &RefreshClaims{UserID: userID}, nil
}

func (j *JWT) parse(tokenString string, claims jwt.Claims, secret string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// GetTokenFromRequest extracts the bearer access token from the
// request: the accessToken cookie wins over the Authorization header.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	if c, err := r.Cookie(AccessCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrTokenMissing
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", ErrTokenMissing
	}

	return parts[1], nil
}
