package service

import (
	"context"
	"errors"
	"testing"

	"vidtube/internal/model"
)

type mockSubscriptionRepository struct {
	existsFn func(ctx context.Context, subscriberID, channelID int64) (bool, error)

	createCalls [][2]int64
	deleteCalls [][2]int64
	subscribers int
	subscribing int
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	m.createCalls = append(m.createCalls, [2]int64{subscriberID, channelID})
	return true, nil
}

func (m *mockSubscriptionRepository) Delete(ctx context.Context, subscriberID, channelID int64) error {
	m.deleteCalls = append(m.deleteCalls, [2]int64{subscriberID, channelID})
	return nil
}

func (m *mockSubscriptionRepository) Exists(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, subscriberID, channelID)
	}
	return false, nil
}

func (m *mockSubscriptionRepository) CountSubscribers(ctx context.Context, channelID int64) (int, error) {
	return m.subscribers, nil
}

func (m *mockSubscriptionRepository) CountSubscriptions(ctx context.Context, subscriberID int64) (int, error) {
	return m.subscribing, nil
}

func (m *mockSubscriptionRepository) ListSubscribers(ctx context.Context, channelID int64, limit int) ([]model.ChannelSummary, error) {
	return nil, nil
}

func (m *mockSubscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID int64, limit int) ([]model.ChannelSummary, error) {
	return nil, nil
}

func newTestSubscriptionService(subs *mockSubscriptionRepository) *SubscriptionService {
	users := &mockUserRepository{
		getByUsernameFn: func(ctx context.Context, username string) (*model.User, error) {
			if username == "alice" {
				return &model.User{ID: 7, Username: "alice"}, nil
			}
			return nil, model.ErrUserNotFound
		},
	}
	return NewSubscriptionService(subs, users)
}

func TestSubscriptionService_Subscribe(t *testing.T) {
	subs := &mockSubscriptionRepository{}
	svc := newTestSubscriptionService(subs)

	if err := svc.Subscribe(context.Background(), 99, "alice"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(subs.createCalls) != 1 || subs.createCalls[0] != [2]int64{99, 7} {
		t.Errorf("Create calls = %v, want one (99 -> 7) edge", subs.createCalls)
	}

	// Unknown channel surfaces as not found.
	if err := svc.Subscribe(context.Background(), 99, "nobody"); !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
}

func TestSubscriptionService_Subscribe_SelfRejected(t *testing.T) {
	subs := &mockSubscriptionRepository{}
	svc := newTestSubscriptionService(subs)

	err := svc.Subscribe(context.Background(), 7, "alice")

	if !errors.Is(err, model.ErrValidation) {
		t.Errorf("error = %v, want validation error", err)
	}
	if len(subs.createCalls) != 0 {
		t.Error("a self-subscription must not create an edge")
	}
}

func TestSubscriptionService_Unsubscribe(t *testing.T) {
	subs := &mockSubscriptionRepository{}
	svc := newTestSubscriptionService(subs)

	// Unsubscribing without an existing edge is still a success.
	if err := svc.Unsubscribe(context.Background(), 99, "alice"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(subs.deleteCalls) != 1 || subs.deleteCalls[0] != [2]int64{99, 7} {
		t.Errorf("Delete calls = %v, want one (99 -> 7) edge", subs.deleteCalls)
	}
}

func TestSubscriptionService_GetChannelProfile(t *testing.T) {
	subs := &mockSubscriptionRepository{
		subscribers: 12,
		subscribing: 3,
		existsFn: func(ctx context.Context, subscriberID, channelID int64) (bool, error) {
			return subscriberID == 99 && channelID == 7, nil
		},
	}
	svc := newTestSubscriptionService(subs)

	viewer := int64(99)
	profile, err := svc.GetChannelProfile(context.Background(), "alice", &viewer)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if profile.SubscriberCount != 12 || profile.SubscribedTo != 3 {
		t.Errorf("counts = (%d, %d), want (12, 3)", profile.SubscriberCount, profile.SubscribedTo)
	}
	if !profile.IsSubscribed {
		t.Error("viewer 99 subscribes to the channel, IsSubscribed should be true")
	}

	// Anonymous viewers never read as subscribed.
	profile, err = svc.GetChannelProfile(context.Background(), "alice", nil)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if profile.IsSubscribed {
		t.Error("anonymous viewers should not read as subscribed")
	}
}
