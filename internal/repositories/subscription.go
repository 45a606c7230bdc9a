package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clipstream/clipstream/internal/logger"
)

// SubscriptionRepository stores directed subscriber->channel edges,
// one row per subscribe action. Whether duplicate edges are allowed
// is configurable: the source data model never enforced uniqueness,
// so the constraint is opt-in.
type SubscriptionRepository struct {
	db     *sqlx.DB
	unique bool
}

func NewSubscriptionRepository(db *sqlx.DB, unique bool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db, unique: unique}
}

// Save records a subscribe action. With the uniqueness constraint
// enabled, re-subscribing is a no-op instead of a duplicate edge.
func (r *SubscriptionRepository) Save(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	query := `
		INSERT INTO subscriptions (subscriber_id, channel_id, created_at)
		VALUES ($1, $2, NOW())
	`
	if r.unique {
		query += ` ON CONFLICT (subscriber_id, channel_id) DO NOTHING`
	}

	res, err := r.db.ExecContext(ctx, query, subscriberID, channelID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("subscription insert",
		"query", strings.Join(strings.Fields(query), " "),
		"subscriber_id", subscriberID,
		"channel_id", channelID,
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// Delete removes every edge between subscriber and channel.
func (r *SubscriptionRepository) Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	const query = `
		DELETE FROM subscriptions
		WHERE subscriber_id = $1 AND channel_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, subscriberID, channelID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("subscription delete",
		"query", strings.Join(strings.Fields(query), " "),
		"subscriber_id", subscriberID,
		"channel_id", channelID,
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// CountSubscribers counts the edges pointing at a channel.
func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error) {
	const query = `SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1`

	var count int64
	err := r.db.GetContext(ctx, &count, query, channelID)

	logger.Log.Infow("subscriber count query",
		"channel_id", channelID,
		"result", count,
		"error", err,
	)

	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountSubscribedTo counts the channels a user follows.
func (r *SubscriptionRepository) CountSubscribedTo(ctx context.Context, subscriberID uuid.UUID) (int64, error) {
	const query = `SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = $1`

	var count int64
	err := r.db.GetContext(ctx, &count, query, subscriberID)

	logger.Log.Infow("subscribed-to count query",
		"subscriber_id", subscriberID,
		"result", count,
		"error", err,
	)

	if err != nil {
		return 0, err
	}
	return count, nil
}

// Exists reports whether at least one edge links subscriber and channel.
func (r *SubscriptionRepository) Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, subscriberID, channelID)

	logger.Log.Infow("subscription exists query",
		"subscriber_id", subscriberID,
		"channel_id", channelID,
		"result", exists,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return exists, nil
}
