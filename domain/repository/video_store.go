package repository

import (
	"context"
	"errors"

	"lcmtv/domain/model"
)

// ErrDuplicate is returned by Create* when the unique youtube_id constraint
// rejects the insert. The orchestrator treats it the same as a pre-existing
// row, not as a failure.
var ErrDuplicate = errors.New("record already exists")

// IVideoStore is the ingestion core's view of the relational store.
// Uniqueness of youtube_id across videos and livestreams is enforced here.
type IVideoStore interface {
	FindVideoByYouTubeID(ctx context.Context, youtubeID string) (*model.Video, error)
	FindLivestreamByYouTubeID(ctx context.Context, youtubeID string) (*model.Livestream, error)
	CreateVideo(ctx context.Context, video *model.Video) (int64, error)
	CreateLivestream(ctx context.Context, stream *model.Livestream) (int64, error)
	CategoryExists(ctx context.Context, categoryID int64) (bool, error)

	// Used by the notification worker.
	GetVideo(ctx context.Context, id int64) (*model.Video, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	ListCategorySubscribers(ctx context.Context, categoryID int64) ([]int64, error)
	CreateNotification(ctx context.Context, n *model.Notification) error
}
