package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clipstream/clipstream/internal/logger"
	"github.com/clipstream/clipstream/internal/middlewares"
	"github.com/clipstream/clipstream/internal/models"
	"github.com/clipstream/clipstream/internal/services"
)

// ChannelProvider defines the interface that the channel profile service must implement.
type ChannelProvider interface {
	GetChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*models.ChannelProfile, error)
}

// SubscriptionManager defines the interface that the subscription service must implement.
type SubscriptionManager interface {
	Subscribe(ctx context.Context, subscriberID uuid.UUID, channelUsername string) error
	Unsubscribe(ctx context.Context, subscriberID uuid.UUID, channelUsername string) error
}

// WatchHistoryProvider defines the interface that the watch history service must implement.
type WatchHistoryProvider interface {
	GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]models.WatchHistoryEntry, error)
}

// NewChannelProfileHandler returns an HTTP handler for channel profiles.
// @Summary Channel profile
// @Description Returns the channel's public fields with its subscriber count, the number of channels it follows and whether the viewer is subscribed.
// @Tags channel
// @Produce json
// @Security ApiKeyAuth
// @Param username path string true "Channel handle"
// @Success 200 {object} handlers.APIResponse "Channel profile"
// @Failure 404 {object} handlers.APIErrorResponse "Channel not found"
// @Router /users/c/{username} [get]
func NewChannelProfileHandler(svc ChannelProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := middlewares.IdentityFromContext(r.Context())
		if viewer == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		username := chi.URLParam(r, "username")
		if username == "" {
			writeError(w, http.StatusBadRequest, "Username is missing")
			return
		}

		profile, err := svc.GetChannelProfile(r.Context(), username, viewer.UserID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrChannelNotFound):
				writeError(w, http.StatusNotFound, "Channel not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeSuccess(w, http.StatusOK, profile, "Channel profile fetched successfully")
	}
}

// NewSubscribeHandler returns an HTTP handler that subscribes the
// viewer to a channel.
// @Summary Subscribe to a channel
// @Tags channel
// @Produce json
// @Security ApiKeyAuth
// @Param username path string true "Channel handle"
// @Success 200 {object} handlers.APIResponse "Subscribed"
// @Failure 400 {object} handlers.APIErrorResponse "Cannot subscribe to own channel"
// @Failure 404 {object} handlers.APIErrorResponse "Channel not found"
// @Router /users/c/{username}/subscribe [post]
func NewSubscribeHandler(svc SubscriptionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := middlewares.IdentityFromContext(r.Context())
		if viewer == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		username := chi.URLParam(r, "username")
		if err := svc.Subscribe(r.Context(), viewer.UserID, username); err != nil {
			switch {
			case errors.Is(err, services.ErrChannelNotFound):
				writeError(w, http.StatusNotFound, "Channel not found")
			case errors.Is(err, services.ErrSelfSubscription):
				writeError(w, http.StatusBadRequest, "Cannot subscribe to own channel")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeSuccess(w, http.StatusOK, nil, "Subscribed successfully")
	}
}

// NewUnsubscribeHandler returns an HTTP handler that removes the
// viewer's subscription to a channel.
// @Summary Unsubscribe from a channel
// @Tags channel
// @Produce json
// @Security ApiKeyAuth
// @Param username path string true "Channel handle"
// @Success 200 {object} handlers.APIResponse "Unsubscribed"
// @Failure 404 {object} handlers.APIErrorResponse "Channel not found"
// @Router /users/c/{username}/subscribe [delete]
func NewUnsubscribeHandler(svc SubscriptionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := middlewares.IdentityFromContext(r.Context())
		if viewer == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		username := chi.URLParam(r, "username")
		if err := svc.Unsubscribe(r.Context(), viewer.UserID, username); err != nil {
			switch {
			case errors.Is(err, services.ErrChannelNotFound):
				writeError(w, http.StatusNotFound, "Channel not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeSuccess(w, http.StatusOK, nil, "Unsubscribed successfully")
	}
}

// NewWatchHistoryHandler returns an HTTP handler for the viewer's
// watch history.
// @Summary Watch history
// @Description Returns the user's watched videos joined with their owners' public fields, most recent first.
// @Tags channel
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} handlers.APIResponse "Watch history"
// @Failure 401 {object} handlers.APIErrorResponse "Unauthorized"
// @Router /users/history [get]
func NewWatchHistoryHandler(svc WatchHistoryProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := middlewares.IdentityFromContext(r.Context())
		if viewer == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized request")
			return
		}

		history, err := svc.GetWatchHistory(r.Context(), viewer.UserID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeSuccess(w, http.StatusOK, history, "Watch history fetched successfully")
	}
}
