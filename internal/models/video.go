package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoDB represents a video row. Only the fields needed by the
// watch-history join are modeled.
type VideoDB struct {
	VideoID      uuid.UUID `json:"id" db:"video_id"`
	OwnerID      uuid.UUID `json:"owner" db:"owner_id"`
	Title        string    `json:"title" db:"title"`
	ThumbnailURL string    `json:"thumbnail" db:"thumbnail_url"`
	Duration     int64     `json:"duration" db:"duration_seconds"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// VideoOwner is the public subset of a video owner's profile embedded
// in watch-history entries.
type VideoOwner struct {
	UserID    uuid.UUID `json:"id" db:"owner_user_id"`
	Username  string    `json:"username" db:"owner_username"`
	Fullname  string    `json:"fullname" db:"owner_fullname"`
	AvatarURL string    `json:"avatar" db:"owner_avatar_url"`
}

// WatchHistoryEntry is one watched video joined with its owner,
// ordered most recent first.
type WatchHistoryEntry struct {
	VideoID      uuid.UUID  `json:"id" db:"video_id"`
	Title        string     `json:"title" db:"title"`
	ThumbnailURL string     `json:"thumbnail" db:"thumbnail_url"`
	Duration     int64      `json:"duration" db:"duration_seconds"`
	WatchedAt    time.Time  `json:"watchedAt" db:"watched_at"`
	Owner        VideoOwner `json:"owner" db:""`
}
