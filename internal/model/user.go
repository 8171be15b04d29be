package model

import (
	"errors"
	"fmt"
	"time"
)

// User represents a registered account. PasswordHash and RefreshToken are
// never serialized; the "-" tags are the public-projection guarantee.
type User struct {
	ID            int64     `db:"id" json:"id"`
	Username      string    `db:"username" json:"username"`
	Email         string    `db:"email" json:"email"`
	FullName      string    `db:"full_name" json:"fullName"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	AvatarURL     string    `db:"avatar_url" json:"avatarUrl"`
	CoverImageURL string    `db:"cover_image_url" json:"coverImageUrl"`
	RefreshToken  *string   `db:"refresh_token" json:"-"` // single currently-valid refresh token, nil when logged out
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// WatchHistoryEntry is one watched video in a user's history, newest first.
type WatchHistoryEntry struct {
	VideoID      int64     `db:"video_id" json:"videoId"`
	Title        string    `db:"title" json:"title"`
	ThumbnailURL string    `db:"thumbnail_url" json:"thumbnailUrl"`
	WatchedAt    time.Time `db:"watched_at" json:"watchedAt"`
}

// LoginRequest carries a username-or-email identifier plus password.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Identifier returns whichever of username/email was supplied.
func (r *LoginRequest) Identifier() string {
	if r.Username != "" {
		return r.Username
	}
	return r.Email
}

// ChangePasswordRequest is the body for POST /users/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateProfileRequest is the body for PATCH /users/me.
type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

var (
	// ErrValidation marks missing or blank input. Wrap it with the field detail.
	ErrValidation = errors.New("validation failed")

	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists is returned when the username or email is already taken
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned when a password check fails
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUpload is returned when a mandatory media upload does not yield a URL
	ErrUpload = errors.New("upload failed")
)

// Validationf builds a field-specific validation error that handlers map to 400.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}
