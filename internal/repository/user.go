package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vidtube/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, full_name, password_hash, avatar_url,
       cover_image_url, refresh_token, created_at, updated_at`

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (username, email, full_name, password_hash, avatar_url, cover_image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		u.Username,
		u.Email,
		u.FullName,
		u.PasswordHash,
		u.AvatarURL,
		u.CoverImageURL,
	)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

// GetByUsername retrieves a user by their username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = LOWER($1)`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &u, nil
}

// GetByIdentifier retrieves a user by username or email, case-insensitively.
// Usernames and emails are stored lowercased, so lowering the identifier is
// enough to match either column.
func (r *userRepository) GetByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = LOWER($1) OR email = LOWER($1)`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, identifier)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by identifier: %w", err)
	}

	return &u, nil
}

// ExistsByUsernameOrEmail checks both identity columns case-insensitively.
func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = LOWER($1) OR email = LOWER($2))`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, username, email)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}

// UpdateRefreshToken overwrites the stored refresh token (nil clears it).
func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID int64, token *string) error {
	query := `UPDATE users SET refresh_token = $2, updated_at = NOW() WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, userID, token)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	return nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, userID int64, fullName, email string) (*model.User, error) {
	query := `
		UPDATE users SET full_name = $2, email = LOWER($3), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	var u model.User
	err := r.db.GetContext(ctx, &u, query, userID, fullName, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &u, nil
}

func (r *userRepository) UpdateAvatarURL(ctx context.Context, userID int64, url string) (*model.User, error) {
	return r.updateImageColumn(ctx, userID, "avatar_url", url)
}

func (r *userRepository) UpdateCoverImageURL(ctx context.Context, userID int64, url string) (*model.User, error) {
	return r.updateImageColumn(ctx, userID, "cover_image_url", url)
}

func (r *userRepository) updateImageColumn(ctx context.Context, userID int64, column, url string) (*model.User, error) {
	query := `UPDATE users SET ` + column + ` = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + userColumns

	var u model.User
	err := r.db.GetContext(ctx, &u, query, userID, url)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update %s: %w", column, err)
	}
	return &u, nil
}

// AppendWatchHistory records a watched video at the tail of the history.
func (r *userRepository) AppendWatchHistory(ctx context.Context, userID, videoID int64) error {
	query := `
		INSERT INTO watch_history (user_id, video_id, watched_at)
		VALUES ($1, $2, NOW())
	`
	_, err := r.db.ExecContext(ctx, query, userID, videoID)
	if err != nil {
		return fmt.Errorf("failed to append watch history: %w", err)
	}
	return nil
}

// GetWatchHistory returns the most recently watched videos first.
func (r *userRepository) GetWatchHistory(ctx context.Context, userID int64, limit int) ([]model.WatchHistoryEntry, error) {
	query := `
		SELECT h.video_id, v.title, v.thumbnail_url, h.watched_at
		FROM watch_history h
		JOIN videos v ON v.id = h.video_id
		WHERE h.user_id = $1
		ORDER BY h.watched_at DESC
		LIMIT $2
	`

	var entries []model.WatchHistoryEntry
	err := r.db.SelectContext(ctx, &entries, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get watch history: %w", err)
	}
	return entries, nil
}
