package services

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/clipstream/clipstream/internal/logger"
	"github.com/clipstream/clipstream/internal/models"
	"github.com/clipstream/clipstream/internal/tokens"
)

// Error variables
var (
	ErrUserAlreadyExists   = errors.New("username or email already exists")
	ErrUserDoesNotExist    = errors.New("user not found")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrAvatarRequired      = errors.New("avatar file is required")
	ErrAssetUploadFailed   = errors.New("failed to upload asset")
	ErrAssetSwapFailed     = errors.New("failed to update asset reference")
	ErrNoFieldsToUpdate    = errors.New("no fields to update")
	ErrChannelNotFound     = errors.New("channel not found")
	ErrSelfSubscription    = errors.New("cannot subscribe to own channel")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.UserDB, error)
	GetByUsernameOrEmailExcluding(ctx context.Context, username, email *string, excludeID uuid.UUID) (*models.UserDB, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	GetProfileByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetProfileByUsername(ctx context.Context, username string) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, user *models.UserDB) (*models.User, error)
	UpdateAccount(ctx context.Context, userID uuid.UUID, fullname, email, username *string) (*models.User, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, asset *models.Asset) (*models.User, error)
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, asset *models.Asset) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error
}

// TokenIssuer signs and verifies session credentials.
type TokenIssuer interface {
	GenerateAccessToken(ctx context.Context, userID uuid.UUID, email, username, fullname string) (string, error)
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)
	GetRefreshClaims(ctx context.Context, tokenString string) (*tokens.RefreshClaims, error)
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// AssetUploader uploads and deletes externally hosted media assets.
type AssetUploader interface {
	Upload(ctx context.Context, localPath string) (*models.Asset, error)
	Delete(ctx context.Context, key string) error
}

// AuthService handles registration and the session credential
// lifecycle: login, logout, refresh-token rotation, password change.
type AuthService struct {
	reader UserReader
	writer UserWriter
	tokens TokenIssuer
	hasher PasswordHasher
	assets AssetUploader
	events EventWriter
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, tokens TokenIssuer, hasher PasswordHasher, assets AssetUploader, events EventWriter) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		tokens: tokens,
		hasher: hasher,
		assets: assets,
		events: events,
	}
}

// NormalizeHandle case-folds and trims a username or email.
func NormalizeHandle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// removeStagedFiles drops temp upload files that will never reach the
// object store (e.g. registration rejected before upload).
func removeStagedFiles(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil {
			logger.Log.Warnw("failed to remove staged upload", "path", p, "error", err)
		}
	}
}

// Register creates a new user account. The avatar is required and
// uploaded before the record is created; the cover image is optional
// and its upload failure is tolerated. If the record insert itself
// fails, already-uploaded assets are not reaped.
func (svc *AuthService) Register(ctx context.Context, username, email, fullname, plainPassword, avatarPath, coverPath string) (*models.User, error) {
	username = NormalizeHandle(username)
	email = NormalizeHandle(email)

	existing, err := svc.reader.GetByUsernameOrEmail(ctx, &username, &email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		removeStagedFiles(avatarPath, coverPath)
		return nil, err
	}
	if existing != nil {
		logger.Log.Infow("user already exists", "username", username, "email", email)
		removeStagedFiles(avatarPath, coverPath)
		return nil, ErrUserAlreadyExists
	}

	if avatarPath == "" {
		removeStagedFiles(coverPath)
		return nil, ErrAvatarRequired
	}

	avatar, err := svc.assets.Upload(ctx, avatarPath)
	if err != nil {
		logger.Log.Errorw("failed to upload avatar", "err", err)
		removeStagedFiles(coverPath)
		return nil, ErrAssetUploadFailed
	}

	var cover *models.Asset
	if coverPath != "" {
		cover, err = svc.assets.Upload(ctx, coverPath)
		if err != nil {
			// Cover image is optional; account creation proceeds without it.
			logger.Log.Warnw("failed to upload cover image", "err", err)
			cover = nil
		}
	}

	hashed, err := svc.hasher.Hash(plainPassword)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user := &models.UserDB{
		Username:     username,
		Email:        email,
		Fullname:     strings.TrimSpace(fullname),
		PasswordHash: hashed,
		AvatarURL:    avatar.URL,
		AvatarKey:    avatar.Key,
	}
	if cover != nil {
		user.CoverImageURL = &cover.URL
		user.CoverImageKey = &cover.Key
	}

	created, err := svc.writer.Create(ctx, user)
	if err != nil {
		logger.Log.Errorw("failed to create user", "err", err)
		return nil, err
	}

	publishAccountEvent(ctx, svc.events, created.UserID, models.EventUserRegistered)

	return created, nil
}

// Login authenticates a user by username or email and returns the
// public profile with a fresh credential pair. The stored refresh
// token is overwritten, invalidating any previously issued one.
func (svc *AuthService) Login(ctx context.Context, username, email *string, plainPassword string) (*models.User, string, string, error) {
	user, err := svc.reader.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, "", "", err
	}
	if user == nil {
		logger.Log.Infow("user does not exist")
		return nil, "", "", ErrUserDoesNotExist
	}

	if !svc.hasher.Verify(plainPassword, user.PasswordHash) {
		logger.Log.Infow("invalid password", "username", user.Username)
		return nil, "", "", ErrInvalidPassword
	}

	access, refresh, err := svc.issuePair(ctx, user)
	if err != nil {
		return nil, "", "", err
	}

	publishAccountEvent(ctx, svc.events, user.UserID, models.EventUserLoggedIn)

	return user.Public(), access, refresh, nil
}

// Refresh rotates a credential pair. The presented refresh token must
// verify and byte-equal the single token currently stored for the
// claimed user; a superseded or revoked token fails. Every failure
// collapses to ErrInvalidRefreshToken so callers cannot distinguish a
// missing user from a bad token.
func (svc *AuthService) Refresh(ctx context.Context, presented string) (string, string, error) {
	claims, err := svc.tokens.GetRefreshClaims(ctx, presented)
	if err != nil {
		logger.Log.Infow("refresh token rejected", "err", err)
		return "", "", ErrInvalidRefreshToken
	}

	user, err := svc.reader.GetByID(ctx, claims.UserID)
	if err != nil {
		logger.Log.Errorw("failed to get user for refresh", "err", err)
		return "", "", err
	}
	if user == nil {
		logger.Log.Infow("refresh token for missing user", "user_id", claims.UserID)
		return "", "", ErrInvalidRefreshToken
	}

	if user.RefreshToken == nil || *user.RefreshToken != presented {
		logger.Log.Infow("superseded or revoked refresh token", "user_id", user.UserID)
		return "", "", ErrInvalidRefreshToken
	}

	access, refresh, err := svc.issuePair(ctx, user)
	if err != nil {
		return "", "", err
	}

	publishAccountEvent(ctx, svc.events, user.UserID, models.EventTokenRotated)

	return access, refresh, nil
}

// Logout clears the stored refresh token; subsequent Refresh calls
// with the old token fail.
func (svc *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := svc.writer.UpdateRefreshToken(ctx, userID, nil); err != nil {
		logger.Log.Errorw("failed to clear refresh token", "user_id", userID, "err", err)
		return err
	}

	publishAccountEvent(ctx, svc.events, userID, models.EventUserLoggedOut)

	return nil
}

// ChangePassword verifies the current password and stores a fresh
// digest of the new one. This is one of exactly two code paths that
// hash a password; nothing else touches the stored digest.
func (svc *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		return ErrUserDoesNotExist
	}

	if !svc.hasher.Verify(currentPassword, user.PasswordHash) {
		logger.Log.Infow("invalid current password", "user_id", userID)
		return ErrInvalidPassword
	}

	hashed, err := svc.hasher.Hash(newPassword)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if err := svc.writer.UpdatePassword(ctx, userID, hashed); err != nil {
		logger.Log.Errorw("failed to update password", "user_id", userID, "err", err)
		return err
	}

	publishAccountEvent(ctx, svc.events, userID, models.EventPasswordChanged)

	return nil
}

// issuePair signs a new access+refresh pair and persists the refresh
// token as the user's single active one.
func (svc *AuthService) issuePair(ctx context.Context, user *models.UserDB) (string, string, error) {
	access, err := svc.tokens.GenerateAccessToken(ctx, user.UserID, user.Email, user.Username, user.Fullname)
	if err != nil {
		logger.Log.Errorw("failed to generate access token", "err", err)
		return "", "", err
	}

	refresh, err := svc.tokens.GenerateRefreshToken(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate refresh token", "err", err)
		return "", "", err
	}

	if err := svc.writer.UpdateRefreshToken(ctx, user.UserID, &refresh); err != nil {
		logger.Log.Errorw("failed to persist refresh token", "user_id", user.UserID, "err", err)
		return "", "", err
	}

	return access, refresh, nil
}
