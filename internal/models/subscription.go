package models

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionDB represents a directed subscription edge: one row per
// subscribe action from a subscriber to a channel.
type SubscriptionDB struct {
	SubscriptionID uuid.UUID `json:"id" db:"subscription_id"`       // Primary key
	SubscriberID   uuid.UUID `json:"subscriber" db:"subscriber_id"` // User who subscribed
	ChannelID      uuid.UUID `json:"channel" db:"channel_id"`       // User being subscribed to
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`     // Subscribe timestamp
}

// ChannelProfile is the aggregated public view of a channel: the
// channel owner's public fields plus subscription counts and whether
// the viewing user is subscribed.
type ChannelProfile struct {
	UserID            uuid.UUID `json:"id" db:"user_id"`
	Username          string    `json:"username" db:"username"`
	Fullname          string    `json:"fullname" db:"fullname"`
	AvatarURL         string    `json:"avatar" db:"avatar_url"`
	CoverImageURL     *string   `json:"coverImage" db:"cover_image_url"`
	SubscribersCount  int64     `json:"subscribersCount"`
	SubscribedToCount int64     `json:"subscribedToChannelsCount"`
	IsSubscribed      bool      `json:"isSubscribed"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}
