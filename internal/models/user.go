package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a full user row in the database, including the
// password hash and the currently active refresh token. It never
// crosses the handler boundary.
type UserDB struct {
	UserID        uuid.UUID `json:"id" db:"user_id"`                 // Primary key
	Username      string    `json:"username" db:"username"`          // Unique handle, case-folded
	Email         string    `json:"email" db:"email"`                // Unique email, case-folded
	Fullname      string    `json:"fullname" db:"fullname"`          // Display name
	PasswordHash  string    `json:"-" db:"password_hash"`            // bcrypt digest
	AvatarURL     string    `json:"avatar" db:"avatar_url"`          // Public URL of the avatar asset
	AvatarKey     string    `json:"-" db:"avatar_key"`               // Object storage key of the avatar asset
	CoverImageURL *string   `json:"coverImage" db:"cover_image_url"` // Public URL of the cover image, optional
	CoverImageKey *string   `json:"-" db:"cover_image_key"`          // Object storage key of the cover image, optional
	RefreshToken  *string   `json:"-" db:"refresh_token"`            // Currently active refresh token, nil when logged out
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`       // Creation timestamp
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`       // Last update timestamp
}

// User is the public projection of a user record. It excludes the
// password hash and refresh token by construction.
type User struct {
	UserID        uuid.UUID `json:"id" db:"user_id"`
	Username      string    `json:"username" db:"username"`
	Email         string    `json:"email" db:"email"`
	Fullname      string    `json:"fullname" db:"fullname"`
	AvatarURL     string    `json:"avatar" db:"avatar_url"`
	CoverImageURL *string   `json:"coverImage" db:"cover_image_url"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// Public returns the public projection of a full user row.
func (u *UserDB) Public() *User {
	return &User{
		UserID:        u.UserID,
		Username:      u.Username,
		Email:         u.Email,
		Fullname:      u.Fullname,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// Asset is a reference to a file held in external object storage.
type Asset struct {
	URL string `json:"url"` // Public URL of the uploaded object
	Key string `json:"id"`  // Storage key used for deletion
}
