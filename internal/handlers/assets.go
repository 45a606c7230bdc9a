package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/clipstream/clipstream/internal/logger"
	"github.com/clipstream/clipstream/internal/middlewares"
	"github.com/clipstream/clipstream/internal/models"
	"github.com/clipstream/clipstream/internal/services"
)

// AssetSwapper defines the interface that the asset-swap service must implement.
type AssetSwapper interface {
	UpdateAvatar(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error)
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error)
}

// NewUpdateAvatarHandler returns an HTTP handler that replaces the
// user's avatar through the asset-swap pipeline.
// @Summary Update avatar
// @Description Uploads the new avatar to object storage, swaps the reference with a single conditional update, deletes the new asset if the swap fails and the old one only after it commits.
// @Tags account
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param avatar formData file true "New avatar image"
// @Success 200 {object} handlers.APIResponse "Updated user"
// @Failure 400 {object} handlers.APIErrorResponse "File missing / upload or swap failed"
// @Failure 401 {object} handlers.APIErrorResponse "Unauthorized"
// @Router /users/avatar [patch]
func NewUpdateAvatarHandler(svc AssetSwapper) http.HandlerFunc {
	return swapHandler("avatar", "Avatar file is missing", "Avatar updated successfully", svc.UpdateAvatar)
}

// NewUpdateCoverImageHandler returns an HTTP handler that replaces the
// user's cover image through the asset-swap pipeline.
// @Summary Update cover image
// @Description Same pipeline as the avatar update; a prior cover image may be absent.
// @Tags account
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param coverImage formData file true "New cover image"
// @Success 200 {object} handlers.APIResponse "Updated user"
// @Failure 400 {object} handlers.APIErrorResponse "File missing / upload or swap failed"
// @Failure 401 {object} handlers.APIErrorResponse "Unauthorized"
// @Router /users/cover [patch]
func NewUpdateCoverImageHandler(svc AssetSwapper) http.HandlerFunc {
	return swapHandler("coverImage", "Cover image file is missing", "Cover image updated successfully", svc.UpdateCoverImage)
}

type swapFunc func(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error)

// swapHandler is the shared shape of the two asset endpoints: stage
// the multipart file, run the pipeline, map the sentinels.
func swapHandler(field, missingMsg, okMsg string, swap swapFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.IdentityFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}

		localPath, err := stageUpload(r, field)
		if err != nil {
			logger.Log.Errorw("failed to stage upload", "field", field, "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if localPath == "" {
			writeError(w, http.StatusBadRequest, missingMsg)
			return
		}

		updated, err := swap(r.Context(), user.UserID, localPath)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrAssetUploadFailed):
				writeError(w, http.StatusBadRequest, "Failed to upload file")
			case errors.Is(err, services.ErrAssetSwapFailed):
				writeError(w, http.StatusBadRequest, "Failed to update file reference")
			case errors.Is(err, services.ErrUserDoesNotExist):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeSuccess(w, http.StatusOK, updated, okMsg)
	}
}
