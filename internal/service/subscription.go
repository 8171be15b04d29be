package service

import (
	"context"
	"fmt"

	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// SubscriptionService manages the subscriber -> channel graph.
type SubscriptionService struct {
	subs  repository.SubscriptionRepository
	users repository.UserRepository
}

func NewSubscriptionService(subs repository.SubscriptionRepository, users repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{
		subs:  subs,
		users: users,
	}
}

// Subscribe adds the edge. Subscribing twice is a no-op; subscribing to
// yourself is rejected.
func (s *SubscriptionService) Subscribe(ctx context.Context, subscriberID int64, channelUsername string) error {
	channel, err := s.users.GetByUsername(ctx, channelUsername)
	if err != nil {
		return err
	}
	if channel.ID == subscriberID {
		return model.Validationf("cannot subscribe to your own channel")
	}

	if _, err := s.subs.Create(ctx, subscriberID, channel.ID); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	return nil
}

// Unsubscribe removes the edge. Removing a missing edge is a no-op.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, subscriberID int64, channelUsername string) error {
	channel, err := s.users.GetByUsername(ctx, channelUsername)
	if err != nil {
		return err
	}

	if err := s.subs.Delete(ctx, subscriberID, channel.ID); err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	return nil
}

// GetChannelProfile assembles the public channel page: user projection,
// subscription aggregates and whether the viewer subscribes.
func (s *SubscriptionService) GetChannelProfile(ctx context.Context, channelUsername string, viewerID *int64) (*model.ChannelProfile, error) {
	channel, err := s.users.GetByUsername(ctx, channelUsername)
	if err != nil {
		return nil, err
	}

	subscriberCount, err := s.subs.CountSubscribers(ctx, channel.ID)
	if err != nil {
		return nil, err
	}
	subscribedTo, err := s.subs.CountSubscriptions(ctx, channel.ID)
	if err != nil {
		return nil, err
	}

	profile := &model.ChannelProfile{
		User:            channel,
		SubscriberCount: subscriberCount,
		SubscribedTo:    subscribedTo,
	}

	if viewerID != nil && *viewerID != channel.ID {
		// Best effort: a failed check just reads as not subscribed.
		if isSubscribed, err := s.subs.Exists(ctx, *viewerID, channel.ID); err == nil {
			profile.IsSubscribed = isSubscribed
		}
	}

	return profile, nil
}

// ListSubscribers returns who subscribes to the channel, newest first.
func (s *SubscriptionService) ListSubscribers(ctx context.Context, channelUsername string, limit int) ([]model.ChannelSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	channel, err := s.users.GetByUsername(ctx, channelUsername)
	if err != nil {
		return nil, err
	}
	return s.subs.ListSubscribers(ctx, channel.ID, limit)
}

// ListSubscribedChannels returns the channels a user subscribes to.
func (s *SubscriptionService) ListSubscribedChannels(ctx context.Context, subscriberID int64, limit int) ([]model.ChannelSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.subs.ListSubscribedChannels(ctx, subscriberID, limit)
}
