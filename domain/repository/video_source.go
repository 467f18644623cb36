package repository

import (
	"context"

	"lcmtv/domain/model"
)

// IVideoSource wraps the external video platform API. Every method is
// fail-soft: transport and platform-reported errors are logged inside the
// implementation and surface as an empty slice, so one bad upstream call
// cannot abort a batch import.
type IVideoSource interface {
	// SearchVideos returns partial records from a keyword search.
	SearchVideos(ctx context.Context, query string, maxResults int64, order string) []model.VideoRecord
	// GetPlaylistVideos returns partial records from a playlist listing.
	GetPlaylistVideos(ctx context.Context, playlistID string, maxResults int64) []model.VideoRecord
	// GetChannelVideos resolves the channel's uploads playlist and lists it.
	GetChannelVideos(ctx context.Context, channelID string, maxResults int64) []model.VideoRecord
	// GetVideoDetails returns fully populated records for up to 50 ids.
	GetVideoDetails(ctx context.Context, videoIDs []string) []model.VideoRecord
	// GetTrendingVideos returns fully populated records from the trending chart.
	GetTrendingVideos(ctx context.Context, regionCode string, maxResults int64) []model.VideoRecord
	// SearchLiveVideos returns partial records for a channel's current live broadcasts.
	SearchLiveVideos(ctx context.Context, channelID string, maxResults int64) []model.VideoRecord
}
