package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clipstream/clipstream/internal/logger"
	"github.com/clipstream/clipstream/internal/models"
)

// WatchHistoryRepository stores and reads the per-user watch history.
type WatchHistoryRepository struct {
	db *sqlx.DB
}

func NewWatchHistoryRepository(db *sqlx.DB) *WatchHistoryRepository {
	return &WatchHistoryRepository{db: db}
}

// Add appends a video to a user's watch history.
func (r *WatchHistoryRepository) Add(ctx context.Context, userID, videoID uuid.UUID) error {
	const query = `
		INSERT INTO watch_history (user_id, video_id, watched_at)
		VALUES ($1, $2, NOW())
	`

	_, err := r.db.ExecContext(ctx, query, userID, videoID)

	logger.Log.Infow("watch history insert",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"video_id", videoID,
		"error", err,
	)

	return err
}

// watchHistoryRow is the flat scan target for the watch-history join.
type watchHistoryRow struct {
	VideoID        uuid.UUID `db:"video_id"`
	Title          string    `db:"title"`
	ThumbnailURL   string    `db:"thumbnail_url"`
	Duration       int64     `db:"duration_seconds"`
	WatchedAt      time.Time `db:"watched_at"`
	OwnerUserID    uuid.UUID `db:"owner_user_id"`
	OwnerUsername  string    `db:"owner_username"`
	OwnerFullname  string    `db:"owner_fullname"`
	OwnerAvatarURL string    `db:"owner_avatar_url"`
}

// GetByUserID returns the user's watched videos joined with each
// video's owner (public fields only), most recent first.
func (r *WatchHistoryRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.WatchHistoryEntry, error) {
	const query = `
		SELECT v.video_id,
		       v.title,
		       v.thumbnail_url,
		       v.duration_seconds,
		       h.watched_at,
		       o.user_id AS owner_user_id,
		       o.username AS owner_username,
		       o.fullname AS owner_fullname,
		       o.avatar_url AS owner_avatar_url
		FROM watch_history h
		JOIN videos v ON v.video_id = h.video_id
		JOIN users o ON o.user_id = v.owner_id
		WHERE h.user_id = $1
		ORDER BY h.watched_at DESC
	`

	var rows []watchHistoryRow
	err := r.db.SelectContext(ctx, &rows, query, userID)

	logger.Log.Infow("watch history query",
		"query", strings.Join(strings.Fields(query), " "),
		"user_id", userID,
		"rows", len(rows),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	entries := make([]models.WatchHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.WatchHistoryEntry{
			VideoID:      row.VideoID,
			Title:        row.Title,
			ThumbnailURL: row.ThumbnailURL,
			Duration:     row.Duration,
			WatchedAt:    row.WatchedAt,
			Owner: models.VideoOwner{
				UserID:    row.OwnerUserID,
				Username:  row.OwnerUsername,
				Fullname:  row.OwnerFullname,
				AvatarURL: row.OwnerAvatarURL,
			},
		})
	}

	return entries, nil
}
