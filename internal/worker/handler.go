package worker

import (
	"context"
	"fmt"
	"log"

	"vidtube/internal/cache"
	"vidtube/internal/queue"
)

// ViewRecorder persists view counts. Abstracts the video repository so the
// worker doesn't depend on the DB layer directly.
type ViewRecorder interface {
	IncrementViews(ctx context.Context, videoID int64, delta int64) error
}

// HistoryAppender records a watched video in a user's history.
type HistoryAppender interface {
	AppendWatchHistory(ctx context.Context, userID, videoID int64) error
}

// Handler processes watch events from the queue: it folds pending views into
// the database, drains the Redis counter, and appends watch history for
// authenticated viewers.
type Handler struct {
	views   cache.ViewCache
	videos  ViewRecorder
	history HistoryAppender
}

// NewHandler creates a new event handler.
func NewHandler(views cache.ViewCache, videos ViewRecorder, history HistoryAppender) *Handler {
	return &Handler{
		views:   views,
		videos:  videos,
		history: history,
	}
}

// HandleEvent routes an event to the appropriate handler based on type.
func (h *Handler) HandleEvent(ctx context.Context, event queue.WatchEvent) error {
	switch event.Type {
	case queue.EventVideoWatched:
		return h.handleVideoWatched(ctx, event)
	default:
		return fmt.Errorf("unknown event type: %s", event.Type)
	}
}

func (h *Handler) handleVideoWatched(ctx context.Context, event queue.WatchEvent) error {
	if err := h.videos.IncrementViews(ctx, event.VideoID, 1); err != nil {
		return fmt.Errorf("increment views: %w", err)
	}

	// The view is now durable; drain it from the pending counter. A flush
	// failure only means the pending count reads high until the TTL clears it.
	if err := h.views.Flush(ctx, event.VideoID, 1); err != nil {
		log.Printf("[Worker] VideoWatched: flush failed video=%d err=%v", event.VideoID, err)
	}

	if event.ViewerID != nil {
		if err := h.history.AppendWatchHistory(ctx, *event.ViewerID, event.VideoID); err != nil {
			return fmt.Errorf("append watch history: %w", err)
		}
	}

	log.Printf("[Worker] VideoWatched OK: video=%d viewer=%v", event.VideoID, event.ViewerID)
	return nil
}
