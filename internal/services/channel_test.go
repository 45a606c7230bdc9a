package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/clipstream/clipstream/internal/models"
	"github.com/clipstream/clipstream/internal/repositories"
	"github.com/clipstream/clipstream/internal/services"
)

type channelMocks struct {
	users   *services.MockUserReader
	subs    *services.MockSubscriptionReader
	subsW   *services.MockSubscriptionWriter
	cache   *services.MockSubscriberCountCache
	history *services.MockWatchHistoryReader
}

func newChannelService(ctrl *gomock.Controller) (*services.ChannelService, channelMocks) {
	m := channelMocks{
		users:   services.NewMockUserReader(ctrl),
		subs:    services.NewMockSubscriptionReader(ctrl),
		subsW:   services.NewMockSubscriptionWriter(ctrl),
		cache:   services.NewMockSubscriberCountCache(ctrl),
		history: services.NewMockWatchHistoryReader(ctrl),
	}
	svc := services.NewChannelService(m.users, m.subs, m.subsW, m.cache, m.history, nil)
	return svc, m
}

func TestChannelService_GetChannelProfile(t *testing.T) {
	ctx := context.Background()
	viewerID := uuid.New()
	channelID := uuid.New()
	profile := &models.User{
		UserID:    channelID,
		Username:  "creator",
		Fullname:  "Creator One",
		AvatarURL: "https://cdn/a.png",
	}

	t.Run("cache hit skips the aggregation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newChannelService(ctrl)

		m.users.EXPECT().GetProfileByUsername(gomock.Any(), "creator").Return(profile, nil)
		m.cache.EXPECT().Get(gomock.Any(), channelID).Return(int64(42), nil)
		m.subs.EXPECT().CountSubscribedTo(gomock.Any(), channelID).Return(int64(3), nil)
		m.subs.EXPECT().Exists(gomock.Any(), viewerID, channelID).Return(true, nil)

		got, err := svc.GetChannelProfile(ctx, "Creator", viewerID)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), got.SubscribersCount)
		assert.Equal(t, int64(3), got.SubscribedToCount)
		assert.True(t, got.IsSubscribed)
		assert.Equal(t, "creator", got.Username)
	})

	t.Run("cache miss counts and repopulates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newChannelService(ctrl)

		m.users.EXPECT().GetProfileByUsername(gomock.Any(), "creator").Return(profile, nil)
		m.cache.EXPECT().Get(gomock.Any(), channelID).Return(int64(0), repositories.ErrCacheMiss)
		m.subs.EXPECT().CountSubscribers(gomock.Any(), channelID).Return(int64(7), nil)
		m.cache.EXPECT().Set(gomock.Any(), channelID, int64(7)).Return(nil)
		m.subs.EXPECT().CountSubscribedTo(gomock.Any(), channelID).Return(int64(0), nil)
		m.subs.EXPECT().Exists(gomock.Any(), viewerID, channelID).Return(false, nil)

		got, err := svc.GetChannelProfile(ctx, "creator", viewerID)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), got.SubscribersCount)
		assert.False(t, got.IsSubscribed)
	})

	t.Run("cache set failure is not fatal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newChannelService(ctrl)

		m.users.EXPECT().GetProfileByUsername(gomock.Any(), "creator").Return(profile, nil)
		m.cache.EXPECT().Get(gomock.Any(), channelID).Return(int64(0), repositories.ErrCacheMiss)
		m.subs.EXPECT().CountSubscribers(gomock.Any(), channelID).Return(int64(7), nil)
		m.cache.EXPECT().Set(gomock.Any(), channelID, int64(7)).Return(errors.New("redis down"))
		m.subs.EXPECT().CountSubscribedTo(gomock.Any(), channelID).Return(int64(0), nil)
		m.subs.EXPECT().Exists(gomock.Any(), viewerID, channelID).Return(false, nil)

		got, err := svc.GetChannelProfile(ctx, "creator", viewerID)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), got.SubscribersCount)
	})

	t.Run("channel not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newChannelService(ctrl)

		m.users.EXPECT().GetProfileByUsername(gomock.Any(), "ghost").Return(nil, nil)

		got, err := svc.GetChannelProfile(ctx, "ghost", viewerID)
		assert.ErrorIs(t, err, services.ErrChannelNotFound)
		assert.Nil(t, got)
	})
}

func TestChannelService_Subscribe(t *testing.T) {
	ctx := context.Background()
	subscriberID := uuid.New()
	channelID := uuid.New()
	channel := &models.User{UserID: channelID, Username: "creator"}

	t.Run("success invalidates the cached count", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newChannelService(ctrl)

		m.users.EXPECT().GetProfileByUsername(gomock.Any(), "creator").Return(channel, nil)
		m.subsW.EXPECT().Save(gomock.Any(), subscriberID, channelID).Return(nil)
		m.cache.EXPECT().Invalidate(gomock.Any(), channelID).Return(nil)

		assert.NoError(t, svc.Subscribe(ctx, subscriberID, "creator"))
	})

	t.Run("cache invalidation failure is not fatal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newChannelService(ctrl)

		m.users.EXPECT().GetProfileByUsername(gomock.Any(), "creator").Return(channel, nil)
		m.subsW.EXPECT().Save(gomock.Any(), subscriberID, channelID).Return(nil)
		m.cache.EXPECT().Invalidate(gomock.Any(), channelID).Return(errors.New("redis down"))

		assert.NoError(t, svc.Subscribe(ctx, subscriberID, "creator"))
	})

	t.Run("self subscription", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newChannelService(ctrl)

		m.users.EXPECT().
			GetProfileByUsername(gomock.Any(), "creator").
			Return(&models.User{UserID: subscriberID, Username: "creator"}, nil)

		err := svc.Subscribe(ctx, subscriberID, "creator")
		assert.ErrorIs(t, err, services.ErrSelfSubscription)
	})

	t.Run("channel not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newChannelService(ctrl)

		m.users.EXPECT().GetProfileByUsername(gomock.Any(), "ghost").Return(nil, nil)

		err := svc.Subscribe(ctx, subscriberID, "ghost")
		assert.ErrorIs(t, err, services.ErrChannelNotFound)
	})
}

func TestChannelService_Unsubscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newChannelService(ctrl)
	ctx := context.Background()
	subscriberID := uuid.New()
	channelID := uuid.New()

	m.users.EXPECT().
		GetProfileByUsername(gomock.Any(), "creator").
		Return(&models.User{UserID: channelID, Username: "creator"}, nil)
	m.subsW.EXPECT().Delete(gomock.Any(), subscriberID, channelID).Return(nil)
	m.cache.EXPECT().Invalidate(gomock.Any(), channelID).Return(nil)

	assert.NoError(t, svc.Unsubscribe(ctx, subscriberID, "creator"))
}

func TestChannelService_GetWatchHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newChannelService(ctrl)
	ctx := context.Background()
	userID := uuid.New()

	entries := []models.WatchHistoryEntry{
		{
			VideoID:   uuid.New(),
			Title:     "Latest upload",
			WatchedAt: time.Now(),
			Owner: models.VideoOwner{
				UserID:   uuid.New(),
				Username: "creator",
			},
		},
	}

	m.history.EXPECT().GetByUserID(gomock.Any(), userID).Return(entries, nil)

	got, err := svc.GetWatchHistory(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, entries, got)
}
