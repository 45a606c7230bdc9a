package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/clipstream/clipstream/internal/logger"
	"github.com/clipstream/clipstream/internal/models"
)

// ProfileService handles account detail updates and the asset-swap
// pipeline for avatar and cover-image replacement.
type ProfileService struct {
	reader UserReader
	writer UserWriter
	assets AssetUploader
	events EventWriter
}

// NewProfileService creates a new ProfileService instance.
func NewProfileService(reader UserReader, writer UserWriter, assets AssetUploader, events EventWriter) *ProfileService {
	return &ProfileService{
		reader: reader,
		writer: writer,
		assets: assets,
		events: events,
	}
}

// UpdateAccount patches fullname, email and/or username. Handle and
// email are case-folded, and uniqueness is checked against every user
// except the one being updated.
func (svc *ProfileService) UpdateAccount(ctx context.Context, userID uuid.UUID, fullname, email, username *string) (*models.User, error) {
	if fullname == nil && email == nil && username == nil {
		return nil, ErrNoFieldsToUpdate
	}

	if email != nil {
		normalized := NormalizeHandle(*email)
		email = &normalized
	}
	if username != nil {
		normalized := NormalizeHandle(*username)
		username = &normalized
	}

	if username != nil || email != nil {
		existing, err := svc.reader.GetByUsernameOrEmailExcluding(ctx, username, email, userID)
		if err != nil {
			logger.Log.Errorw("failed to check uniqueness", "err", err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrUserAlreadyExists
		}
	}

	updated, err := svc.writer.UpdateAccount(ctx, userID, fullname, email, username)
	if err != nil {
		logger.Log.Errorw("failed to update account", "user_id", userID, "err", err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserDoesNotExist
	}

	return updated, nil
}

// UpdateAvatar replaces a user's avatar through the asset-swap
// pipeline: upload the new asset, commit the reference swap with a
// single conditional update, compensate by deleting the new asset if
// the commit fails, and reap the old asset only after the commit.
func (svc *ProfileService) UpdateAvatar(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error) {
	current, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to read current avatar", "user_id", userID, "err", err)
		removeStagedFiles(localPath)
		return nil, err
	}
	if current == nil {
		removeStagedFiles(localPath)
		return nil, ErrUserDoesNotExist
	}

	updated, err := svc.swapAsset(ctx, userID, localPath, current.AvatarKey, svc.writer.UpdateAvatar)
	if err != nil {
		return nil, err
	}

	publishAccountEvent(ctx, svc.events, userID, models.EventAvatarUpdated)

	return updated, nil
}

// UpdateCoverImage replaces a user's cover image; same pipeline as
// UpdateAvatar, but a prior cover may be absent.
func (svc *ProfileService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error) {
	current, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to read current cover image", "user_id", userID, "err", err)
		removeStagedFiles(localPath)
		return nil, err
	}
	if current == nil {
		removeStagedFiles(localPath)
		return nil, ErrUserDoesNotExist
	}

	var oldKey string
	if current.CoverImageKey != nil {
		oldKey = *current.CoverImageKey
	}

	updated, err := svc.swapAsset(ctx, userID, localPath, oldKey, svc.writer.UpdateCoverImage)
	if err != nil {
		return nil, err
	}

	publishAccountEvent(ctx, svc.events, userID, models.EventCoverUpdated)

	return updated, nil
}

// swapAsset runs steps 2-4 of the pipeline. The ordering is the
// correctness property: the record never references an asset that
// failed to upload, and an asset still referenced by the committed
// record is never deleted.
func (svc *ProfileService) swapAsset(
	ctx context.Context,
	userID uuid.UUID,
	localPath, oldKey string,
	commit func(ctx context.Context, userID uuid.UUID, asset *models.Asset) (*models.User, error),
) (*models.User, error) {
	newAsset, err := svc.assets.Upload(ctx, localPath)
	if err != nil {
		logger.Log.Errorw("failed to upload new asset", "user_id", userID, "err", err)
		return nil, ErrAssetUploadFailed
	}

	updated, err := commit(ctx, userID, newAsset)
	if err != nil || updated == nil {
		// Commit failed: delete the just-uploaded asset so no orphan
		// survives. Compensation is best effort; its own failure is
		// logged, the caller sees the swap failure.
		if delErr := svc.assets.Delete(ctx, newAsset.Key); delErr != nil {
			logger.Log.Errorw("failed to delete orphaned asset", "key", newAsset.Key, "err", delErr)
		}
		logger.Log.Errorw("failed to commit asset swap", "user_id", userID, "err", err)
		return nil, ErrAssetSwapFailed
	}

	if oldKey != "" {
		// An orphaned old asset is acceptable; a broken user record is not.
		if delErr := svc.assets.Delete(ctx, oldKey); delErr != nil {
			logger.Log.Warnw("failed to delete replaced asset", "key", oldKey, "err", delErr)
		}
	}

	return updated, nil
}
