package models

// Account event actions published to the event stream.
const (
	EventUserRegistered   = "user_registered"
	EventUserLoggedIn     = "user_logged_in"
	EventUserLoggedOut    = "user_logged_out"
	EventTokenRotated     = "token_rotated"
	EventPasswordChanged  = "password_changed"
	EventAvatarUpdated    = "avatar_updated"
	EventCoverUpdated     = "cover_image_updated"
	EventUserSubscribed   = "user_subscribed"
	EventUserUnsubscribed = "user_unsubscribed"
)

// AccountEvent represents an account lifecycle event published to the
// event stream after a successful mutation.
type AccountEvent struct {
	EventID   string `json:"event_id"`  // Unique identifier for the event
	Timestamp int64  `json:"timestamp"` // Unix timestamp (in seconds) when the event occurred
	UserID    string `json:"user_id"`   // Identifier of the affected user
	Action    string `json:"action"`    // Action name, e.g. "user_registered"
}
