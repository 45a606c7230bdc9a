package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestWatchHistoryRepository(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db)
	ctx := context.Background()

	watcher := seedUser(t, writeRepo, "watcher", "watcher@example.com")
	creator := seedUser(t, writeRepo, "creator", "creator@example.com")

	seedVideo := func(title string) uuid.UUID {
		var videoID uuid.UUID
		err := db.Get(&videoID, `
			INSERT INTO videos (owner_id, title, thumbnail_url, duration_seconds)
			VALUES ($1, $2, $3, $4)
			RETURNING video_id
		`, creator.UserID, title, "https://cdn/"+title+".jpg", 120)
		assert.NoError(t, err)
		return videoID
	}

	first := seedVideo("first")
	second := seedVideo("second")

	repo := NewWatchHistoryRepository(db)

	t.Run("empty history", func(t *testing.T) {
		entries, err := repo.GetByUserID(ctx, watcher.UserID)
		assert.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("entries come back most recent first with owners joined", func(t *testing.T) {
		assert.NoError(t, repo.Add(ctx, watcher.UserID, first))
		time.Sleep(10 * time.Millisecond)
		assert.NoError(t, repo.Add(ctx, watcher.UserID, second))

		entries, err := repo.GetByUserID(ctx, watcher.UserID)
		assert.NoError(t, err)
		assert.Len(t, entries, 2)

		assert.Equal(t, "second", entries[0].Title)
		assert.Equal(t, "first", entries[1].Title)
		assert.True(t, entries[0].WatchedAt.After(entries[1].WatchedAt) || entries[0].WatchedAt.Equal(entries[1].WatchedAt))

		assert.Equal(t, creator.UserID, entries[0].Owner.UserID)
		assert.Equal(t, "creator", entries[0].Owner.Username)
		assert.Equal(t, int64(120), entries[0].Duration)
	})

	t.Run("another user's history is untouched", func(t *testing.T) {
		entries, err := repo.GetByUserID(ctx, creator.UserID)
		assert.NoError(t, err)
		assert.Empty(t, entries)
	})
}
