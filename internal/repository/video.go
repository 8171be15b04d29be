package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
)

type videoRepository struct {
	db *sqlx.DB
}

// NewVideoRepository creates a new video metadata repository
func NewVideoRepository(db *sqlx.DB) VideoRepository {
	return &videoRepository{db: db}
}

const videoColumns = `id, owner_id, video_file_url, thumbnail_url, title,
       description, duration, views, is_published, created_at, updated_at`

func (r *videoRepository) Create(ctx context.Context, v *model.Video) error {
	query := `
		INSERT INTO videos (owner_id, video_file_url, thumbnail_url, title, description, duration, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, views, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		v.OwnerID,
		v.VideoFileURL,
		v.ThumbnailURL,
		v.Title,
		v.Description,
		v.Duration,
		v.IsPublished,
	)

	if err := row.Scan(&v.ID, &v.Views, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert video: %w", err)
	}
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`

	var v model.Video
	err := r.db.GetContext(ctx, &v, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video by id: %w", err)
	}
	return &v, nil
}

func (r *videoRepository) ListByOwner(ctx context.Context, ownerID int64, publishedOnly bool, limit int) ([]model.Video, error) {
	query := `SELECT ` + videoColumns + ` FROM videos WHERE owner_id = $1`
	if publishedOnly {
		query += ` AND is_published`
	}
	query += ` ORDER BY created_at DESC LIMIT $2`

	var videos []model.Video
	err := r.db.SelectContext(ctx, &videos, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos by owner: %w", err)
	}
	return videos, nil
}

// SetPublished flips publication state; only the owner's row matches.
func (r *videoRepository) SetPublished(ctx context.Context, videoID, ownerID int64, published bool) error {
	query := `
		UPDATE videos SET is_published = $3, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, videoID, ownerID, published)
	if err != nil {
		return fmt.Errorf("failed to set published: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set published: %w", err)
	}
	if affected == 0 {
		return model.ErrVideoNotFound
	}
	return nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, videoID int64, delta int64) error {
	query := `UPDATE videos SET views = views + $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, videoID, delta)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}
