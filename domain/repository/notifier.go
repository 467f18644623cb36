package repository

import (
	"context"

	"lcmtv/domain/model"
)

// INotifier publishes the post-commit new-video event. Best-effort: callers
// log a returned error and move on, they never fail the import over it.
type INotifier interface {
	NotifyNewVideo(ctx context.Context, event model.NewVideoEvent) error
}
