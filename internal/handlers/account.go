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
)

// AccountUpdater defines the interface that the account update service must implement.
type AccountUpdater interface {
	UpdateAccount(ctx context.Context, userID uuid.UUID, fullname, email, username *string) (*models.User, error)
}

// PasswordChanger defines the interface that the password change service must implement.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
}

// UpdateAccountRequest is the partial-update body; absent fields are
// left untouched.
// swagger:model UpdateAccountRequest
type UpdateAccountRequest struct {
	// Display name
	Fullname *string `json:"fullname"`

	// Unique email
	Email *string `json:"email"`

	// Unique handle
	Username *string `json:"username"`
}

// ChangePasswordRequest represents the JSON body for a password change
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password
	// required: true
	OldPassword string `json:"oldPassword"`

	// New password
	// required: true
	NewPassword string `json:"newPassword"`
}

// NewCurrentUserHandler returns an HTTP handler serving the
// authenticated user's own profile.
// @Summary Current user
// @Description Returns the public profile attached to the session.
// @Tags account
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} handlers.APIResponse "Current user"
// @Failure 401 {object} handlers.APIErrorResponse "Unauthorized"
// @Router /users/me [get]
func NewCurrentUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.IdentityFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}
		writeSuccess(w, http.StatusOK, user, "Current user fetched successfully")
	}
}

// NewUpdateAccountHandler returns an HTTP handler for partial account updates.
// @Summary Update account details
// @Description Patches fullname, email and/or username. Handles are case-folded and checked for uniqueness against every other user.
// @Tags account
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param updateAccountRequest body handlers.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} handlers.APIResponse "Updated user"
// @Failure 400 {object} handlers.APIErrorResponse "No fields / validation failed"
// @Failure 409 {object} handlers.APIErrorResponse "Username or email already exists"
// @Router /users/account [patch]
func NewUpdateAccountHandler(svc AccountUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.IdentityFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		var req UpdateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		var errs []string
		if req.Username != nil && !validUsername(*req.Username) {
			errs = append(errs, "username must be 3-16 characters: letters, digits or underscore")
		}
		if req.Email != nil && !validEmail(*req.Email) {
			errs = append(errs, "email is not a valid address")
		}
		if req.Fullname != nil && !validFullname(*req.Fullname) {
			errs = append(errs, "fullname must be one or two alphabetic words")
		}
		if len(errs) > 0 {
			writeError(w, http.StatusBadRequest, "Validation failed", errs...)
			return
		}

		updated, err := svc.UpdateAccount(r.Context(), user.UserID, req.Fullname, req.Email, req.Username)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNoFieldsToUpdate):
				writeError(w, http.StatusBadRequest, "No fields to update")
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeError(w, http.StatusConflict, "Username or email already exists")
			case errors.Is(err, services.ErrUserDoesNotExist):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeSuccess(w, http.StatusOK, updated, "Account details updated successfully")
	}
}

// NewChangePasswordHandler returns an HTTP handler for password changes.
// @Summary Change password
// @Description Verifies the current password and stores a digest of the new one.
// @Tags account
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param changePasswordRequest body handlers.ChangePasswordRequest true "Password change request"
// @Success 200 {object} handlers.APIResponse "Password changed"
// @Failure 400 {object} handlers.APIErrorResponse "Invalid password"
// @Failure 401 {object} handlers.APIErrorResponse "Unauthorized"
// @Router /users/password [post]
func NewChangePasswordHandler(svc PasswordChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.IdentityFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		var req ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if !validPassword(req.NewPassword) {
			writeError(w, http.StatusBadRequest, "Validation failed",
				"password must be 5-16 characters: letters, digits or special characters")
			return
		}

		err := svc.ChangePassword(r.Context(), user.UserID, req.OldPassword, req.NewPassword)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidPassword):
				writeError(w, http.StatusBadRequest, "Invalid password")
			case errors.Is(err, services.ErrUserDoesNotExist):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeSuccess(w, http.StatusOK, nil, "Password changed successfully")
	}
}
