package repository

import (
	"context"

	"vidtube/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// GetByIdentifier resolves a username-or-email login identifier,
	// case-insensitively.
	GetByIdentifier(ctx context.Context, identifier string) (*model.User, error)
	// ExistsByUsernameOrEmail matches either column case-insensitively.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// UpdateRefreshToken overwrites the stored refresh token; nil clears it.
	// Last write wins: concurrent logins race and the latest token is the
	// only valid one.
	UpdateRefreshToken(ctx context.Context, userID int64, token *string) error
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
	UpdateProfile(ctx context.Context, userID int64, fullName, email string) (*model.User, error)
	UpdateAvatarURL(ctx context.Context, userID int64, url string) (*model.User, error)
	UpdateCoverImageURL(ctx context.Context, userID int64, url string) (*model.User, error)
	AppendWatchHistory(ctx context.Context, userID, videoID int64) error
	GetWatchHistory(ctx context.Context, userID int64, limit int) ([]model.WatchHistoryEntry, error)
}

type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	GetByID(ctx context.Context, id int64) (*model.Video, error)
	ListByOwner(ctx context.Context, ownerID int64, publishedOnly bool, limit int) ([]model.Video, error)
	SetPublished(ctx context.Context, videoID, ownerID int64, published bool) error
	// IncrementViews adds delta to the persisted view counter.
	IncrementViews(ctx context.Context, videoID int64, delta int64) error
}

type SubscriptionRepository interface {
	// Create inserts the edge; returns false when it already existed.
	Create(ctx context.Context, subscriberID, channelID int64) (bool, error)
	Delete(ctx context.Context, subscriberID, channelID int64) error
	Exists(ctx context.Context, subscriberID, channelID int64) (bool, error)
	CountSubscribers(ctx context.Context, channelID int64) (int, error)
	CountSubscriptions(ctx context.Context, subscriberID int64) (int, error)
	ListSubscribers(ctx context.Context, channelID int64, limit int) ([]model.ChannelSummary, error)
	ListSubscribedChannels(ctx context.Context, subscriberID int64, limit int) ([]model.ChannelSummary, error)
}
