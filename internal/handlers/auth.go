package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/clipstream/clipstream/internal/logger"
	"github.com/clipstream/clipstream/internal/middlewares"
	"github.com/clipstream/clipstream/internal/models"
	"github.com/clipstream/clipstream/internal/services"
	"github.com/clipstream/clipstream/internal/tokens"
)

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, username, email, fullname, plainPassword, avatarPath, coverPath string) (*models.User, error)
}

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, email *string, plainPassword string) (*models.User, string, string, error)
}

// Refresher defines the interface that the token rotation service must implement.
type Refresher interface {
	Refresh(ctx context.Context, presented string) (string, string, error)
}

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, userID uuid.UUID) error
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Username (this or email is required)
	// default: john_doe
	Username string `json:"username"`

	// Email (this or username is required)
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// LoginData is the payload of a successful login response.
// swagger:model LoginData
type LoginData struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// RefreshRequest carries the refresh token when it is not presented as
// a cookie.
// swagger:model RefreshRequest
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenPairData is the payload of a successful refresh response.
// swagger:model TokenPairData
type TokenPairData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account from a multipart form. The avatar file is required, the cover image is optional. Username and email must be unique; the password is hashed before storing.
// @Tags auth
// @Accept mpfd
// @Produce json
// @Param username formData string true "Unique handle"
// @Param email formData string true "Unique email"
// @Param fullname formData string true "Display name"
// @Param password formData string true "Password"
// @Param avatar formData file true "Avatar image"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} handlers.APIResponse "User successfully registered"
// @Failure 400 {object} handlers.APIErrorResponse "Validation failed / avatar missing"
// @Failure 409 {object} handlers.APIErrorResponse "Username or email already exists"
// @Router /users/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}

		username := r.FormValue("username")
		email := r.FormValue("email")
		fullname := r.FormValue("fullname")
		password := r.FormValue("password")

		if errs := validateRegistration(username, email, fullname, password); len(errs) > 0 {
			writeError(w, http.StatusBadRequest, "Validation failed", errs...)
			return
		}

		avatarPath, err := stageUpload(r, "avatar")
		if err != nil {
			logger.Log.Errorw("failed to stage avatar upload", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		coverPath, err := stageUpload(r, "coverImage")
		if err != nil {
			logger.Log.Errorw("failed to stage cover upload", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		user, err := svc.Register(r.Context(), username, email, fullname, password, avatarPath, coverPath)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeError(w, http.StatusConflict, "Username or email already exists")
			case errors.Is(err, services.ErrAvatarRequired):
				writeError(w, http.StatusBadRequest, "Avatar file is required")
			case errors.Is(err, services.ErrAssetUploadFailed):
				writeError(w, http.StatusBadRequest, "Failed to upload avatar")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeSuccess(w, http.StatusCreated, user, "User registered successfully")
	}
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticates by username or email and sets the credential pair as HttpOnly cookies. The body carries the public user and both tokens.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login request"
// @Success 200 {object} handlers.APIResponse "Logged in, cookies set"
// @Failure 400 {object} handlers.APIErrorResponse "Invalid request body / invalid password"
// @Failure 404 {object} handlers.APIErrorResponse "User not found"
// @Router /users/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Username == "" && req.Email == "" {
			writeError(w, http.StatusBadRequest, "Username or email is required")
			return
		}

		var username, email *string
		if req.Username != "" {
			username = &req.Username
		}
		if req.Email != "" {
			email = &req.Email
		}

		user, access, refresh, err := svc.Login(r.Context(), username, email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserDoesNotExist):
				writeError(w, http.StatusNotFound, "User not found")
			case errors.Is(err, services.ErrInvalidPassword):
				writeError(w, http.StatusBadRequest, "Invalid password")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		setAuthCookies(w, access, refresh)
		writeSuccess(w, http.StatusOK, LoginData{
			User:         user,
			AccessToken:  access,
			RefreshToken: refresh,
		}, "User logged in successfully")
	}
}

// NewRefreshHandler returns an HTTP handler for refresh-token rotation.
// @Summary Rotate the credential pair
// @Description Verifies the presented refresh token (cookie first, then body) against the single stored token and issues a fresh pair. A superseded, revoked or malformed token gets 401.
// @Tags auth
// @Accept json
// @Produce json
// @Param refreshRequest body handlers.RefreshRequest false "Refresh token when not sent as a cookie"
// @Success 200 {object} handlers.APIResponse "New pair in cookies and body"
// @Failure 401 {object} handlers.APIErrorResponse "Invalid refresh token"
// @Router /users/refresh [post]
func NewRefreshHandler(svc Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		presented := refreshTokenFromRequest(r)
		if presented == "" {
			writeError(w, http.StatusUnauthorized, "Refresh token is missing")
			return
		}

		access, refresh, err := svc.Refresh(r.Context(), presented)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidRefreshToken):
				writeError(w, http.StatusUnauthorized, "Invalid refresh token")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		setAuthCookies(w, access, refresh)
		writeSuccess(w, http.StatusOK, TokenPairData{
			AccessToken:  access,
			RefreshToken: refresh,
		}, "Access token refreshed")
	}
}

// refreshTokenFromRequest reads the refresh token, cookie first, then
// the JSON body.
func refreshTokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(tokens.RefreshCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return ""
	}
	return req.RefreshToken
}

// NewLogoutHandler returns an HTTP handler for logout.
// @Summary User logout
// @Description Clears the stored refresh token and expires both credential cookies.
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} handlers.APIResponse "Logged out"
// @Failure 401 {object} handlers.APIErrorResponse "Unauthorized"
// @Router /users/logout [post]
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.IdentityFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		if err := svc.Logout(r.Context(), user.UserID); err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		clearAuthCookies(w)
		writeSuccess(w, http.StatusOK, nil, "User logged out successfully")
	}
}
