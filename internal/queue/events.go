package queue

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types for the watch stream
const (
	EventVideoWatched = "video_watched"
)

// Stream and consumer group names
const (
	StreamWatch        = "stream:watch"
	ConsumerGroupWatch = "watch_workers"
)

// WatchEvent is published whenever a video playback starts. ViewerID is nil
// for anonymous viewers; only authenticated views land in watch history.
type WatchEvent struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"` // Unix timestamp when the view occurred

	VideoID  int64  `json:"video_id"`
	ViewerID *int64 `json:"viewer_id,omitempty"`
}

// NewVideoWatchedEvent creates an event for a single video view.
func NewVideoWatchedEvent(videoID int64, viewerID *int64) WatchEvent {
	return WatchEvent{
		Type:      EventVideoWatched,
		Timestamp: time.Now().Unix(),
		VideoID:   videoID,
		ViewerID:  viewerID,
	}
}

// ToMap converts the event to a map for Redis XADD. Streams store
// field-value pairs, so the event is serialized to JSON in a "data" field.
func (e WatchEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParseWatchEvent parses a WatchEvent from Redis stream message values.
func ParseWatchEvent(values map[string]interface{}) (WatchEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return WatchEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event WatchEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return WatchEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
