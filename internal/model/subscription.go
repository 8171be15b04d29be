package model

import "time"

// Subscription is a directed edge: subscriber follows a channel (a user).
// The pair is unique; subscribing twice is a no-op.
type Subscription struct {
	ID           int64     `db:"id" json:"id"`
	SubscriberID int64     `db:"subscriber_id" json:"subscriberId"`
	ChannelID    int64     `db:"channel_id" json:"channelId"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// ChannelSummary is the compact user view returned in subscriber listings.
type ChannelSummary struct {
	ID        int64  `db:"id" json:"id"`
	Username  string `db:"username" json:"username"`
	FullName  string `db:"full_name" json:"fullName"`
	AvatarURL string `db:"avatar_url" json:"avatarUrl"`
}

// ChannelProfile is the public channel page: user projection plus
// subscription aggregates and the viewer's own relationship.
type ChannelProfile struct {
	User            *User `json:"user"`
	SubscriberCount int   `json:"subscriberCount"`
	SubscribedTo    int   `json:"subscribedToCount"`
	IsSubscribed    bool  `json:"isSubscribed"`
}
