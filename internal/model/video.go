package model

import (
	"errors"
	"time"
)

// Video is persisted metadata; the bytes live on object storage.
type Video struct {
	ID           int64     `db:"id" json:"id"`
	OwnerID      int64     `db:"owner_id" json:"ownerId"`
	VideoFileURL string    `db:"video_file_url" json:"videoFileUrl"`
	ThumbnailURL string    `db:"thumbnail_url" json:"thumbnailUrl"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	Duration     float64   `db:"duration" json:"duration"` // seconds
	Views        int64     `db:"views" json:"views"`
	IsPublished  bool      `db:"is_published" json:"isPublished"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

var (
	// ErrVideoNotFound covers both missing rows and unpublished videos
	// requested by someone other than the owner.
	ErrVideoNotFound = errors.New("video not found")
)
