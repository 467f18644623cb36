package repository

import "context"

// IImportCache is an optional fast path in front of the store existence
// check. Misses (including cache outages) fall through to the store.
type IImportCache interface {
	WasImported(ctx context.Context, youtubeID string) bool
	MarkImported(ctx context.Context, youtubeID string)
}
