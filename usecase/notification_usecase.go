package usecase

import (
	"context"
	"encoding/json"

	"cloud.google.com/go/pubsub"

	"lcmtv/domain/model"
	"lcmtv/domain/repository"
	"lcmtv/infrastructure/logger"
)

// INotificationUseCase fans a new-video event out into per-user
// notification rows for the video's category subscribers.
type INotificationUseCase interface {
	HandleNewVideo(ctx context.Context, event model.NewVideoEvent) (int, error)
	Run(ctx context.Context, sub *pubsub.Subscription) error
}

type NotificationUseCase struct {
	store repository.IVideoStore
}

func NewNotificationUseCase(store repository.IVideoStore) INotificationUseCase {
	return &NotificationUseCase{store: store}
}

// HandleNewVideo creates one notification row per subscriber. A failed row
// is logged and skipped; the rest of the fan-out still runs.
func (u *NotificationUseCase) HandleNewVideo(ctx context.Context, event model.NewVideoEvent) (int, error) {
	category, err := u.store.GetCategory(ctx, event.CategoryID)
	if err != nil {
		return 0, err
	}
	categoryName := "your subscriptions"
	if category != nil {
		categoryName = category.Name
	}

	subscribers, err := u.store.ListCategorySubscribers(ctx, event.CategoryID)
	if err != nil {
		return 0, err
	}
	if len(subscribers) == 0 {
		return 0, nil
	}

	created := 0
	for _, userID := range subscribers {
		notification := &model.Notification{
			UserID:      userID,
			Type:        "new_video",
			Title:       "New video in " + categoryName,
			Message:     event.Title,
			RelatedID:   event.VideoID,
			RelatedType: "video",
		}
		if err := u.store.CreateNotification(ctx, notification); err != nil {
			logger.GetLogger().WithField("error", err).WithField("userId", userID).Error("Failed to create notification")
			continue
		}
		created++
	}

	logger.GetLogger().WithField("videoId", event.VideoID).WithField("created", created).Info("Notification fan-out complete")
	return created, nil
}

// Run consumes new-video events until ctx is cancelled. Malformed payloads
// are acked and dropped; fan-out failures nack for redelivery.
func (u *NotificationUseCase) Run(ctx context.Context, sub *pubsub.Subscription) error {
	logger.GetLogger().WithField("subscription", sub.ID()).Info("Notification worker started")

	return sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		var event model.NewVideoEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			logger.GetLogger().WithField("error", err).Error("Dropping malformed new-video event")
			msg.Ack()
			return
		}

		if _, err := u.HandleNewVideo(ctx, event); err != nil {
			logger.GetLogger().WithField("error", err).WithField("videoId", event.VideoID).Error("Notification fan-out failed")
			msg.Nack()
			return
		}
		msg.Ack()
	})
}
