package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/clipstream/clipstream/internal/logger"
	"github.com/clipstream/clipstream/internal/models"
)

// SubscriptionReader reads subscription edges and their aggregates.
type SubscriptionReader interface {
	CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error)
	CountSubscribedTo(ctx context.Context, subscriberID uuid.UUID) (int64, error)
	Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
}

// SubscriptionWriter writes subscription edges.
type SubscriptionWriter interface {
	Save(ctx context.Context, subscriberID, channelID uuid.UUID) error
	Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error
}

// SubscriberCountCache caches channel subscriber counts.
type SubscriberCountCache interface {
	Get(ctx context.Context, channelID uuid.UUID) (int64, error)
	Set(ctx context.Context, channelID uuid.UUID, count int64) error
	Invalidate(ctx context.Context, channelID uuid.UUID) error
}

// WatchHistoryReader reads a user's watch history join.
type WatchHistoryReader interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.WatchHistoryEntry, error)
}

// ChannelService serves channel profiles (with subscription
// aggregates), subscription writes and watch history.
type ChannelService struct {
	users   UserReader
	subs    SubscriptionReader
	subsW   SubscriptionWriter
	cache   SubscriberCountCache
	history WatchHistoryReader
	events  EventWriter
}

// NewChannelService creates a new ChannelService instance.
func NewChannelService(users UserReader, subs SubscriptionReader, subsW SubscriptionWriter, cache SubscriberCountCache, history WatchHistoryReader, events EventWriter) *ChannelService {
	return &ChannelService{
		users:   users,
		subs:    subs,
		subsW:   subsW,
		cache:   cache,
		history: history,
		events:  events,
	}
}

// GetChannelProfile returns the channel's public profile with its
// subscriber count (read through the cache), the number of channels
// it follows, and whether the viewer is subscribed.
func (svc *ChannelService) GetChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*models.ChannelProfile, error) {
	profile, err := svc.users.GetProfileByUsername(ctx, NormalizeHandle(username))
	if err != nil {
		logger.Log.Errorw("failed to get channel profile", "username", username, "err", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrChannelNotFound
	}

	subscribers, err := svc.subscriberCount(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}

	subscribedTo, err := svc.subs.CountSubscribedTo(ctx, profile.UserID)
	if err != nil {
		logger.Log.Errorw("failed to count subscribed-to channels", "channel_id", profile.UserID, "err", err)
		return nil, err
	}

	isSubscribed, err := svc.subs.Exists(ctx, viewerID, profile.UserID)
	if err != nil {
		logger.Log.Errorw("failed to check subscription", "channel_id", profile.UserID, "err", err)
		return nil, err
	}

	return &models.ChannelProfile{
		UserID:            profile.UserID,
		Username:          profile.Username,
		Fullname:          profile.Fullname,
		AvatarURL:         profile.AvatarURL,
		CoverImageURL:     profile.CoverImageURL,
		SubscribersCount:  subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
		CreatedAt:         profile.CreatedAt,
	}, nil
}

// subscriberCount reads the count through the cache, falling back to
// the database aggregation and repopulating the cache on a miss.
func (svc *ChannelService) subscriberCount(ctx context.Context, channelID uuid.UUID) (int64, error) {
	count, err := svc.cache.Get(ctx, channelID)
	if err == nil {
		return count, nil
	}

	count, err = svc.subs.CountSubscribers(ctx, channelID)
	if err != nil {
		logger.Log.Errorw("failed to count subscribers", "channel_id", channelID, "err", err)
		return 0, err
	}

	if err := svc.cache.Set(ctx, channelID, count); err != nil {
		logger.Log.Warnw("failed to cache subscriber count", "channel_id", channelID, "err", err)
	}

	return count, nil
}

// Subscribe records a subscription edge from the viewer to the named
// channel and invalidates the channel's cached subscriber count.
func (svc *ChannelService) Subscribe(ctx context.Context, subscriberID uuid.UUID, channelUsername string) error {
	channel, err := svc.users.GetProfileByUsername(ctx, NormalizeHandle(channelUsername))
	if err != nil {
		logger.Log.Errorw("failed to resolve channel", "username", channelUsername, "err", err)
		return err
	}
	if channel == nil {
		return ErrChannelNotFound
	}
	if channel.UserID == subscriberID {
		return ErrSelfSubscription
	}

	if err := svc.subsW.Save(ctx, subscriberID, channel.UserID); err != nil {
		logger.Log.Errorw("failed to save subscription", "channel_id", channel.UserID, "err", err)
		return err
	}

	if err := svc.cache.Invalidate(ctx, channel.UserID); err != nil {
		logger.Log.Warnw("failed to invalidate subscriber count cache", "channel_id", channel.UserID, "err", err)
	}

	publishAccountEvent(ctx, svc.events, subscriberID, models.EventUserSubscribed)

	return nil
}

// Unsubscribe removes the subscription edge(s) from the viewer to the
// named channel.
func (svc *ChannelService) Unsubscribe(ctx context.Context, subscriberID uuid.UUID, channelUsername string) error {
	channel, err := svc.users.GetProfileByUsername(ctx, NormalizeHandle(channelUsername))
	if err != nil {
		logger.Log.Errorw("failed to resolve channel", "username", channelUsername, "err", err)
		return err
	}
	if channel == nil {
		return ErrChannelNotFound
	}

	if err := svc.subsW.Delete(ctx, subscriberID, channel.UserID); err != nil {
		logger.Log.Errorw("failed to delete subscription", "channel_id", channel.UserID, "err", err)
		return err
	}

	if err := svc.cache.Invalidate(ctx, channel.UserID); err != nil {
		logger.Log.Warnw("failed to invalidate subscriber count cache", "channel_id", channel.UserID, "err", err)
	}

	publishAccountEvent(ctx, svc.events, subscriberID, models.EventUserUnsubscribed)

	return nil
}

// GetWatchHistory returns the user's watched videos joined with their
// owners, most recent first.
func (svc *ChannelService) GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]models.WatchHistoryEntry, error) {
	entries, err := svc.history.GetByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get watch history", "user_id", userID, "err", err)
		return nil, err
	}
	return entries, nil
}
