package youtube

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lcmtv/domain/model"
	"lcmtv/domain/repository"
	"lcmtv/infrastructure/logger"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	// maxResultsCap is the platform's per-call result limit.
	maxResultsCap = 50
	// requestTimeout bounds every upstream call.
	requestTimeout = 10 * time.Second
)

var validOrders = map[string]bool{
	"relevance": true, "date": true, "rating": true,
	"title": true, "videoCount": true, "viewCount": true,
}

// Client wraps the YouTube Data API in key-authenticated read-only mode and
// normalizes every response shape into model.VideoRecord. All methods are
// fail-soft: errors are logged here and surface as an empty slice.
type Client struct {
	service *youtube.Service
}

// Config represents the source client configuration.
type Config struct {
	APIKey    string `json:"api_key"`
	UserAgent string `json:"user_agent"`
}

// NewClient creates a new source client. The API key is an explicit
// constructor input; there is no ambient fallback.
func NewClient(ctx context.Context, config *Config) (repository.IVideoSource, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("youtube API key is required")
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = "LCMTV/1.0"
	}
	service, err := youtube.NewService(ctx,
		option.WithAPIKey(config.APIKey),
		option.WithUserAgent(userAgent),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Client{service: service}, nil
}

// SearchVideos searches for embeddable videos by keyword. Partial records:
// statistics, tags and duration arrive with GetVideoDetails.
func (c *Client) SearchVideos(ctx context.Context, query string, maxResults int64, order string) []model.VideoRecord {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if !validOrders[order] {
		order = "relevance"
	}

	call := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(clamp(maxResults)).
		Order(order).
		SafeSearch("moderate").
		VideoEmbeddable("true")

	response, err := call.Context(ctx).Do()
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("query", query).Error("YouTube search error")
		return []model.VideoRecord{}
	}

	records := make([]model.VideoRecord, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Id.Kind != "youtube#video" {
			continue
		}
		records = append(records, searchRecord(item.Id.VideoId, item.Snippet))
	}
	return records
}

// GetPlaylistVideos lists a playlist's items as partial records.
func (c *Client) GetPlaylistVideos(ctx context.Context, playlistID string, maxResults int64) []model.VideoRecord {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	call := c.service.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(clamp(maxResults))

	response, err := call.Context(ctx).Do()
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("playlistId", playlistID).Error("YouTube playlist error")
		return []model.VideoRecord{}
	}

	records := make([]model.VideoRecord, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Snippet == nil || item.Snippet.ResourceId == nil {
			continue
		}
		records = append(records, playlistRecord(item.Snippet))
	}
	return records
}

// GetChannelVideos resolves the channel's canonical uploads playlist and
// delegates to GetPlaylistVideos. Empty when the channel has no uploads list.
func (c *Client) GetChannelVideos(ctx context.Context, channelID string, maxResults int64) []model.VideoRecord {
	resolveCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	call := c.service.Channels.List([]string{"contentDetails"}).Id(channelID)
	response, err := call.Context(resolveCtx).Do()
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("channelId", channelID).Error("YouTube channel error")
		return []model.VideoRecord{}
	}
	if len(response.Items) == 0 ||
		response.Items[0].ContentDetails == nil ||
		response.Items[0].ContentDetails.RelatedPlaylists == nil ||
		response.Items[0].ContentDetails.RelatedPlaylists.Uploads == "" {
		logger.GetLogger().WithField("channelId", channelID).Warn("Channel has no resolvable uploads playlist")
		return []model.VideoRecord{}
	}

	uploadsPlaylistID := response.Items[0].ContentDetails.RelatedPlaylists.Uploads
	return c.GetPlaylistVideos(ctx, uploadsPlaylistID, maxResults)
}

// GetVideoDetails fetches fully populated records. Input is truncated to the
// platform's 50-id cap; callers chunk larger batches.
func (c *Client) GetVideoDetails(ctx context.Context, videoIDs []string) []model.VideoRecord {
	if len(videoIDs) == 0 {
		return []model.VideoRecord{}
	}
	if len(videoIDs) > maxResultsCap {
		videoIDs = videoIDs[:maxResultsCap]
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	call := c.service.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(strings.Join(videoIDs, ","))

	response, err := call.Context(ctx).Do()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("YouTube video details error")
		return []model.VideoRecord{}
	}
	return detailRecords(response.Items)
}

// GetTrendingVideos fetches the most-popular chart; the endpoint returns
// statistics inline so records are already detail-stage.
func (c *Client) GetTrendingVideos(ctx context.Context, regionCode string, maxResults int64) []model.VideoRecord {
	if regionCode == "" {
		regionCode = "US"
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	call := c.service.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Chart("mostPopular").
		RegionCode(regionCode).
		MaxResults(clamp(maxResults))

	response, err := call.Context(ctx).Do()
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("regionCode", regionCode).Error("YouTube trending error")
		return []model.VideoRecord{}
	}
	return detailRecords(response.Items)
}

// SearchLiveVideos finds a channel's currently live broadcasts. Records are
// partial; callers confirm live state via GetVideoDetails.
func (c *Client) SearchLiveVideos(ctx context.Context, channelID string, maxResults int64) []model.VideoRecord {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	call := c.service.Search.List([]string{"snippet"}).
		ChannelId(channelID).
		EventType("live").
		Type("video").
		Order("date").
		MaxResults(clamp(maxResults))

	response, err := call.Context(ctx).Do()
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("channelId", channelID).Error("YouTube live search error")
		return []model.VideoRecord{}
	}

	records := make([]model.VideoRecord, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Id.Kind != "youtube#video" {
			continue
		}
		records = append(records, searchRecord(item.Id.VideoId, item.Snippet))
	}
	return records
}

func clamp(maxResults int64) int64 {
	if maxResults <= 0 || maxResults > maxResultsCap {
		return maxResultsCap
	}
	return maxResults
}

func searchRecord(videoID string, snippet *youtube.SearchResultSnippet) model.VideoRecord {
	if snippet == nil {
		return model.VideoRecord{YouTubeID: videoID, Tags: []string{}, LiveBroadcast: model.LiveBroadcastNone}
	}
	publishedAt, _ := time.Parse(time.RFC3339, snippet.PublishedAt)
	return model.VideoRecord{
		YouTubeID:     videoID,
		Title:         snippet.Title,
		Description:   snippet.Description,
		ThumbnailURL:  pickSearchThumbnail(snippet.Thumbnails),
		ChannelTitle:  snippet.ChannelTitle,
		ChannelID:     snippet.ChannelId,
		PublishedAt:   publishedAt,
		Tags:          []string{},
		LiveBroadcast: liveState(snippet.LiveBroadcastContent),
	}
}

func playlistRecord(snippet *youtube.PlaylistItemSnippet) model.VideoRecord {
	publishedAt, _ := time.Parse(time.RFC3339, snippet.PublishedAt)
	return model.VideoRecord{
		YouTubeID:     snippet.ResourceId.VideoId,
		Title:         snippet.Title,
		Description:   snippet.Description,
		ThumbnailURL:  pickSearchThumbnail(snippet.Thumbnails),
		ChannelTitle:  snippet.ChannelTitle,
		ChannelID:     snippet.ChannelId,
		PublishedAt:   publishedAt,
		Tags:          []string{},
		LiveBroadcast: model.LiveBroadcastNone,
	}
}

func detailRecords(items []*youtube.Video) []model.VideoRecord {
	records := make([]model.VideoRecord, 0, len(items))
	for _, item := range items {
		if item.Snippet == nil {
			continue
		}
		publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)

		var viewCount, likeCount int64
		if item.Statistics != nil {
			viewCount = int64(item.Statistics.ViewCount)
			likeCount = int64(item.Statistics.LikeCount)
		}
		var duration int64
		if item.ContentDetails != nil {
			duration = ParseISODuration(item.ContentDetails.Duration)
		}
		tags := item.Snippet.Tags
		if tags == nil {
			tags = []string{}
		}

		records = append(records, model.VideoRecord{
			YouTubeID:       item.Id,
			Title:           item.Snippet.Title,
			Description:     item.Snippet.Description,
			ThumbnailURL:    pickSearchThumbnail(item.Snippet.Thumbnails),
			ChannelTitle:    item.Snippet.ChannelTitle,
			ChannelID:       item.Snippet.ChannelId,
			PublishedAt:     publishedAt,
			Tags:            tags,
			ViewCount:       viewCount,
			LikeCount:       likeCount,
			DurationSeconds: duration,
			LiveBroadcast:   liveState(item.Snippet.LiveBroadcastContent),
		})
	}
	return records
}

// pickSearchThumbnail prefers the medium resolution and falls back to default.
func pickSearchThumbnail(thumbnails *youtube.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}
	if thumbnails.Medium != nil && thumbnails.Medium.Url != "" {
		return thumbnails.Medium.Url
	}
	if thumbnails.Default != nil {
		return thumbnails.Default.Url
	}
	return ""
}

func liveState(liveBroadcastContent string) model.LiveBroadcastState {
	switch liveBroadcastContent {
	case "live":
		return model.LiveBroadcastLive
	case "upcoming":
		return model.LiveBroadcastUpcoming
	default:
		return model.LiveBroadcastNone
	}
}
