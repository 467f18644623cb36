package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"

	"lcmtv/domain/model"
	"lcmtv/infrastructure/logger"
)

// NewPubSub creates the Pub/Sub client for the new-video event topic.
func NewPubSub(ctx context.Context, projectID string) (*pubsub.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("pubsub project ID is required")
	}
	return pubsub.NewClient(ctx, projectID)
}

// VideoNotifier publishes post-commit new-video events. Implements
// repository.INotifier.
type VideoNotifier struct {
	client *pubsub.Client
	topic  string
}

func NewVideoNotifier(client *pubsub.Client, topic string) *VideoNotifier {
	if topic == "" {
		topic = "new-video"
	}
	return &VideoNotifier{client: client, topic: topic}
}

// NotifyNewVideo publishes the event. Callers treat an error as a warning;
// an import never fails over notification delivery.
func (n *VideoNotifier) NotifyNewVideo(ctx context.Context, event model.NewVideoEvent) error {
	if n.client == nil {
		return fmt.Errorf("pubsub client not configured")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	topic := n.client.Topic(n.topic)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		if _, err := n.client.CreateTopic(ctx, n.topic); err != nil {
			return err
		}
	}

	serverID, err := topic.Publish(ctx, &pubsub.Message{Data: payload}).Get(ctx)
	if err != nil {
		return err
	}

	logger.GetLogger().WithField("serverID", serverID).WithField("videoId", event.VideoID).Info("New-video event published")
	return nil
}

// GetSubscription returns the worker's subscription handle.
func GetSubscription(client *pubsub.Client, subID string) (*pubsub.Subscription, error) {
	if client == nil {
		return nil, fmt.Errorf("pubsub client not configured")
	}
	return client.Subscription(subID), nil
}
