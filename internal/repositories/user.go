package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clipstream/clipstream/internal/logger"
	"github.com/clipstream/clipstream/internal/models"
)

// publicColumns is the projection returned to callers outside the
// auth flows: never includes password_hash or refresh_token.
const publicColumns = "user_id, username, email, fullname, avatar_url, cover_image_url, created_at, updated_at"

const allColumns = "user_id, username, email, fullname, password_hash, avatar_url, avatar_key, cover_image_url, cover_image_key, refresh_token, created_at, updated_at"

// UserReadRepository reads user rows. Lookups that find no row return
// (nil, nil) so callers can distinguish absence from failure.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.UserDB, error) {
	const query = `
		SELECT ` + allColumns + `
		FROM users
		WHERE ($1::VARCHAR IS NOT NULL AND username = $1)
		   OR ($2::VARCHAR IS NOT NULL AND email = $2)
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, username, email)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username, email},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByUsernameOrEmailExcluding is the uniqueness probe for account
// updates: it ignores the row of the user performing the update.
func (r *UserReadRepository) GetByUsernameOrEmailExcluding(ctx context.Context, username, email *string, excludeID uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT ` + allColumns + `
		FROM users
		WHERE user_id <> $3
		  AND (($1::VARCHAR IS NOT NULL AND username = $1)
		    OR ($2::VARCHAR IS NOT NULL AND email = $2))
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, username, email, excludeID)

	logger.Log.Infow("user uniqueness query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username, email, excludeID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT ` + allColumns + `
		FROM users
		WHERE user_id = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID)

	logger.Log.Infow("user query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetProfileByID returns the public projection of a user, excluding
// the password hash and refresh token at the query level.
func (r *UserReadRepository) GetProfileByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	const query = `
		SELECT ` + publicColumns + `
		FROM users
		WHERE user_id = $1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, userID)

	logger.Log.Infow("user profile query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserReadRepository) GetProfileByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `
		SELECT ` + publicColumns + `
		FROM users
		WHERE username = $1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, username)

	logger.Log.Infow("user profile query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UserWriteRepository mutates user rows. Every method is a single
// statement: the row-level atomicity of one UPDATE is the only
// concurrency guard, there is no read-modify-write across calls.
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Create inserts a new user and returns its public projection.
func (r *UserWriteRepository) Create(ctx context.Context, user *models.UserDB) (*models.User, error) {
	const query = `
		INSERT INTO users (username, email, fullname, password_hash, avatar_url, avatar_key, cover_image_url, cover_image_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING ` + publicColumns + `
	`
	args := []any{user.Username, user.Email, user.Fullname, user.PasswordHash, user.AvatarURL, user.AvatarKey, user.CoverImageURL, user.CoverImageKey}

	var created models.User
	err := r.db.GetContext(ctx, &created, query, args...)

	logger.Log.Infow("user insert",
		"query", strings.Join(strings.Fields(query), " "),
		"username", user.Username,
		"email", user.Email,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateAccount patches only the provided fields. Returns (nil, nil)
// when the user no longer exists.
func (r *UserWriteRepository) UpdateAccount(ctx context.Context, userID uuid.UUID, fullname, email, username *string) (*models.User, error) {
	const query = `
		UPDATE users
		SET fullname = COALESCE($2, fullname),
		    email = COALESCE($3, email),
		    username = COALESCE($4, username),
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + publicColumns + `
	`

	var updated models.User
	err := r.db.GetContext(ctx, &updated, query, userID, fullname, email, username)

	logger.Log.Infow("user account update",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, fullname, email, username},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// UpdateAvatar commits the avatar swap in one conditional statement.
// Returns (nil, nil) when the user vanished, signalling the caller to
// compensate.
func (r *UserWriteRepository) UpdateAvatar(ctx context.Context, userID uuid.UUID, asset *models.Asset) (*models.User, error) {
	const query = `
		UPDATE users
		SET avatar_url = $2, avatar_key = $3, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + publicColumns + `
	`

	var updated models.User
	err := r.db.GetContext(ctx, &updated, query, userID, asset.URL, asset.Key)

	logger.Log.Infow("user avatar update",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, asset.URL, asset.Key},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// UpdateCoverImage commits the cover-image swap, same contract as
// UpdateAvatar.
func (r *UserWriteRepository) UpdateCoverImage(ctx context.Context, userID uuid.UUID, asset *models.Asset) (*models.User, error) {
	const query = `
		UPDATE users
		SET cover_image_url = $2, cover_image_key = $3, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + publicColumns + `
	`

	var updated models.User
	err := r.db.GetContext(ctx, &updated, query, userID, asset.URL, asset.Key)

	logger.Log.Infow("user cover image update",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, asset.URL, asset.Key},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// UpdatePassword replaces the stored digest. This is the only
// statement besides Create that touches password_hash.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	const query = `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE user_id = $1
	`

	res, err := r.db.ExecContext(ctx, query, userID, passwordHash)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("user password update",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// UpdateRefreshToken overwrites the single active refresh token.
// Passing nil clears it (logout).
func (r *UserWriteRepository) UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error {
	const query = `
		UPDATE users
		SET refresh_token = $2, updated_at = NOW()
		WHERE user_id = $1
	`

	res, err := r.db.ExecContext(ctx, query, userID, token)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("user refresh token update",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"result", rowsAffected,
		"error", err,
	)

	return err
}
