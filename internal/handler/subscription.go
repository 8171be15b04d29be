package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vidtube/internal/httputil"
	"vidtube/internal/service"
	"vidtube/internal/transport/http/middleware"
)

// SubscriptionHandler serves channel profiles and the subscription graph.
type SubscriptionHandler struct {
	subs *service.SubscriptionService
}

func NewSubscriptionHandler(subs *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs}
}

// GetChannelProfile returns the public channel page with subscription
// aggregates. IsSubscribed reflects the viewer when authenticated.
// GET /channels/{username}
func (h *SubscriptionHandler) GetChannelProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	profile, err := h.subs.GetChannelProfile(r.Context(), username, viewerID(r))
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, profile, "Channel profile fetched successfully")
}

// Subscribe adds the caller as a subscriber of the channel.
// POST /channels/{username}/subscribe
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	if err := h.subs.Subscribe(r.Context(), userID, chi.URLParam(r, "username")); err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, nil, "Subscribed successfully")
}

// Unsubscribe removes the caller's subscription. No-op when not subscribed.
// DELETE /channels/{username}/subscribe
func (h *SubscriptionHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	if err := h.subs.Unsubscribe(r.Context(), userID, chi.URLParam(r, "username")); err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, nil, "Unsubscribed successfully")
}

// ListSubscribers returns the accounts subscribed to the channel.
// GET /channels/{username}/subscribers
func (h *SubscriptionHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.subs.ListSubscribers(r.Context(), chi.URLParam(r, "username"), parseLimit(r, 20))
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, subscribers, "Subscribers fetched successfully")
}

// ListSubscriptions returns the channels the caller subscribes to.
// GET /users/subscriptions
func (h *SubscriptionHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	channels, err := h.subs.ListSubscribedChannels(r.Context(), userID, parseLimit(r, 20))
	if err != nil {
		respondError(w, err)
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, channels, "Subscriptions fetched successfully")
}
