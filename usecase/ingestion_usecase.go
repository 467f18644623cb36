package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"lcmtv/domain/model"
	"lcmtv/domain/repository"
	"lcmtv/infrastructure/logger"
)

// ErrInvalidInput marks operator mistakes: malformed URLs, empty required
// fields. It is the only error class a workflow call returns; everything
// upstream degrades to a reduced count.
var ErrInvalidInput = errors.New("invalid input")

const (
	// maxTextLength caps sanitized text fields before persistence.
	maxTextLength = 500
	// batchCap is the platform's per-call limit for detail fetches.
	batchCap = 50
)

// IIngestionUseCase drives the import workflows. Every method returns the
// number of newly created records; 0 means nothing new was imported.
type IIngestionUseCase interface {
	ImportByURL(ctx context.Context, videoURL string, categoryID int64) (int, error)
	ImportByKeyword(ctx context.Context, keyword string, categoryID, limit int64) (int, error)
	ImportFromPlaylist(ctx context.Context, playlistID string, categoryID, limit int64) (int, error)
	ImportFromChannel(ctx context.Context, channelID string, categoryID, limit int64) (int, error)
	ImportTrending(ctx context.Context, categoryID, limit int64, regionCode string) (int, error)
	ImportLivestreamByURL(ctx context.Context, videoURL string, categoryID int64) (int, error)
	ImportLiveFromChannel(ctx context.Context, channelID string, categoryID, limit int64) (int, error)
	RunInitialImport(ctx context.Context, seeds []model.ImportSeed) (int, error)
}

// IngestionUseCase implements the import workflows against a video source,
// a store, and an optional notifier and import cache.
type IngestionUseCase struct {
	source   repository.IVideoSource
	store    repository.IVideoStore
	notifier repository.INotifier
	cache    repository.IImportCache
}

// NewIngestionUseCase creates the orchestrator. notifier and cache may be nil.
func NewIngestionUseCase(
	source repository.IVideoSource,
	store repository.IVideoStore,
	notifier repository.INotifier,
	cache repository.IImportCache,
) IIngestionUseCase {
	return &IngestionUseCase{source: source, store: store, notifier: notifier, cache: cache}
}

// ImportByURL imports a single video by URL.
func (u *IngestionUseCase) ImportByURL(ctx context.Context, videoURL string, categoryID int64) (int, error) {
	if categoryID <= 0 {
		return 0, fmt.Errorf("%w: category ID is required", ErrInvalidInput)
	}
	videoID := extractVideoIDFromURL(videoURL)
	if videoID == "" {
		return 0, fmt.Errorf("%w: invalid YouTube URL or unable to extract video ID", ErrInvalidInput)
	}

	logger.GetLogger().WithField("url", videoURL).WithField("videoId", videoID).Info("Importing video from URL")

	videos := u.source.GetVideoDetails(ctx, []string{videoID})
	if len(videos) == 0 {
		logger.GetLogger().WithField("videoId", videoID).Warn("Video not found or unavailable")
		return 0, nil
	}

	if u.importVideo(ctx, videos[0], categoryID) {
		return 1, nil
	}
	return 0, nil
}

// ImportByKeyword imports videos from a keyword search. Search results are
// partial; a batched details fetch upgrades them before import.
func (u *IngestionUseCase) ImportByKeyword(ctx context.Context, keyword string, categoryID, limit int64) (int, error) {
	if keyword == "" {
		return 0, fmt.Errorf("%w: keyword is required", ErrInvalidInput)
	}
	if categoryID <= 0 {
		return 0, fmt.Errorf("%w: category ID is required", ErrInvalidInput)
	}
	limit = normalizeLimit(limit, 20)

	logger.GetLogger().WithField("keyword", keyword).Info("Searching YouTube")

	videos := u.source.SearchVideos(ctx, keyword, limit, "relevance")
	if len(videos) == 0 {
		logger.GetLogger().WithField("keyword", keyword).Info("No videos found for keyword")
		return 0, nil
	}

	imported := u.importWithDetails(ctx, videos, categoryID, limit)
	logger.GetLogger().WithField("imported", imported).WithField("keyword", keyword).Info("Keyword import complete")
	return imported, nil
}

// ImportFromPlaylist imports videos from a playlist.
func (u *IngestionUseCase) ImportFromPlaylist(ctx context.Context, playlistID string, categoryID, limit int64) (int, error) {
	if playlistID == "" {
		return 0, fmt.Errorf("%w: playlist ID is required", ErrInvalidInput)
	}
	if categoryID <= 0 {
		return 0, fmt.Errorf("%w: category ID is required", ErrInvalidInput)
	}
	limit = normalizeLimit(limit, 50)

	videos := u.source.GetPlaylistVideos(ctx, playlistID, limit)
	if len(videos) == 0 {
		logger.GetLogger().WithField("playlistId", playlistID).Info("No videos found in playlist")
		return 0, nil
	}

	imported := u.importWithDetails(ctx, videos, categoryID, limit)
	logger.GetLogger().WithField("imported", imported).WithField("playlistId", playlistID).Info("Playlist import complete")
	return imported, nil
}

// ImportFromChannel imports a channel's uploads.
func (u *IngestionUseCase) ImportFromChannel(ctx context.Context, channelID string, categoryID, limit int64) (int, error) {
	if channelID == "" {
		return 0, fmt.Errorf("%w: channel ID is required", ErrInvalidInput)
	}
	if categoryID <= 0 {
		return 0, fmt.Errorf("%w: category ID is required", ErrInvalidInput)
	}
	limit = normalizeLimit(limit, 20)

	videos := u.source.GetChannelVideos(ctx, channelID, limit)
	if len(videos) == 0 {
		logger.GetLogger().WithField("channelId", channelID).Info("No videos found in channel")
		return 0, nil
	}

	imported := u.importWithDetails(ctx, videos, categoryID, limit)
	logger.GetLogger().WithField("imported", imported).WithField("channelId", channelID).Info("Channel import complete")
	return imported, nil
}

// ImportTrending imports the trending chart for a region. Trending records
// arrive detail-stage, so there is no merge step.
func (u *IngestionUseCase) ImportTrending(ctx context.Context, categoryID, limit int64, regionCode string) (int, error) {
	if categoryID <= 0 {
		return 0, fmt.Errorf("%w: category ID is required", ErrInvalidInput)
	}
	limit = normalizeLimit(limit, 10)
	if regionCode == "" {
		regionCode = "US"
	}

	videos := u.source.GetTrendingVideos(ctx, regionCode, limit)
	if len(videos) == 0 {
		logger.GetLogger().WithField("regionCode", regionCode).Info("No trending videos found")
		return 0, nil
	}
	if int64(len(videos)) > limit {
		videos = videos[:limit]
	}

	imported := 0
	for _, videoData := range videos {
		if u.importVideo(ctx, videoData, categoryID) {
			imported++
		}
	}
	logger.GetLogger().WithField("imported", imported).WithField("regionCode", regionCode).Info("Trending import complete")
	return imported, nil
}

// ImportLivestreamByURL imports a livestream by URL. A video that is not
// currently live is imported as a regular video instead, with a warning.
func (u *IngestionUseCase) ImportLivestreamByURL(ctx context.Context, videoURL string, categoryID int64) (int, error) {
	if categoryID <= 0 {
		return 0, fmt.Errorf("%w: category ID is required", ErrInvalidInput)
	}
	videoID := extractVideoIDFromURL(videoURL)
	if videoID == "" {
		return 0, fmt.Errorf("%w: invalid YouTube URL or unable to extract video ID", ErrInvalidInput)
	}

	videos := u.source.GetVideoDetails(ctx, []string{videoID})
	if len(videos) == 0 {
		logger.GetLogger().WithField("videoId", videoID).Warn("Livestream not found or unavailable")
		return 0, nil
	}
	videoData := videos[0]

	if videoData.LiveBroadcast != model.LiveBroadcastLive {
		logger.GetLogger().WithField("videoId", videoID).Warn("Video is not currently live; importing as regular video instead")
		if u.importVideo(ctx, videoData, categoryID) {
			return 1, nil
		}
		return 0, nil
	}

	if u.importLivestream(ctx, videoData, categoryID) {
		return 1, nil
	}
	return 0, nil
}

// ImportLiveFromChannel imports a channel's currently live broadcasts. Each
// candidate is confirmed live via a details fetch before import.
func (u *IngestionUseCase) ImportLiveFromChannel(ctx context.Context, channelID string, categoryID, limit int64) (int, error) {
	if channelID == "" {
		return 0, fmt.Errorf("%w: channel ID is required", ErrInvalidInput)
	}
	if categoryID <= 0 {
		return 0, fmt.Errorf("%w: category ID is required", ErrInvalidInput)
	}
	limit = normalizeLimit(limit, 5)

	candidates := u.source.SearchLiveVideos(ctx, channelID, limit)
	if len(candidates) == 0 {
		logger.GetLogger().WithField("channelId", channelID).Info("No live streams found on channel")
		return 0, nil
	}

	imported := 0
	for _, candidate := range candidates {
		videos := u.source.GetVideoDetails(ctx, []string{candidate.YouTubeID})
		if len(videos) == 0 {
			continue
		}
		if videos[0].LiveBroadcast != model.LiveBroadcastLive {
			continue
		}
		if u.importLivestream(ctx, videos[0], categoryID) {
			imported++
		}
	}
	logger.GetLogger().WithField("imported", imported).WithField("channelId", channelID).Info("Channel live import complete")
	return imported, nil
}

// RunInitialImport runs the seed list sequentially and sums the counts.
// Individual seed failures are logged and do not stop the run.
func (u *IngestionUseCase) RunInitialImport(ctx context.Context, seeds []model.ImportSeed) (int, error) {
	logger.GetLogger().WithField("seeds", len(seeds)).Info("Starting initial content import")

	total := 0
	for _, seed := range seeds {
		var count int
		var err error
		switch seed.Type {
		case "keyword":
			count, err = u.ImportByKeyword(ctx, seed.Value, seed.CategoryID, seed.Limit)
		case "playlist":
			count, err = u.ImportFromPlaylist(ctx, seed.Value, seed.CategoryID, seed.Limit)
		case "channel":
			count, err = u.ImportFromChannel(ctx, seed.Value, seed.CategoryID, seed.Limit)
		case "trending":
			count, err = u.ImportTrending(ctx, seed.CategoryID, seed.Limit, seed.Value)
		default:
			logger.GetLogger().WithField("type", seed.Type).Warn("Unknown seed type, skipping")
		}
		if err != nil {
			logger.GetLogger().WithField("error", err).WithField("seed", seed.Value).Warn("Seed import failed, continuing")
			continue
		}
		total += count
	}

	logger.GetLogger().WithField("total", total).Info("Initial import complete")
	return total, nil
}

// importWithDetails upgrades partial records via a batched details fetch,
// merges, truncates to limit and imports sequentially in source order.
func (u *IngestionUseCase) importWithDetails(ctx context.Context, videos []model.VideoRecord, categoryID, limit int64) int {
	ids := make([]string, 0, len(videos))
	for _, v := range videos {
		if v.YouTubeID != "" {
			ids = append(ids, v.YouTubeID)
		}
	}
	if len(ids) > batchCap {
		ids = ids[:batchCap]
	}

	detailed := u.source.GetVideoDetails(ctx, ids)
	merged := mergeDetails(videos, detailed)
	if int64(len(merged)) > limit {
		merged = merged[:limit]
	}

	imported := 0
	for _, videoData := range merged {
		if u.importVideo(ctx, videoData, categoryID) {
			imported++
		}
	}
	return imported
}

// importVideo persists one record. Returns false (never an error) for
// duplicates, unknown categories, unmerged partial records and store failures.
func (u *IngestionUseCase) importVideo(ctx context.Context, videoData model.VideoRecord, categoryID int64) bool {
	// Unmerged search-stage leftovers can lack the id; skip, don't crash.
	if videoData.YouTubeID == "" {
		logger.GetLogger().Warn("Skipping record without video ID")
		return false
	}

	if u.alreadyImported(ctx, videoData.YouTubeID) {
		logger.GetLogger().WithField("videoId", videoData.YouTubeID).Info("Video already exists")
		return false
	}

	if !u.categoryValid(ctx, categoryID) {
		return false
	}

	tags, err := json.Marshal(videoData.Tags)
	if err != nil {
		tags = []byte("[]")
	}

	video := &model.Video{
		YouTubeID:       videoData.YouTubeID,
		Title:           sanitizeString(videoData.Title),
		Description:     sanitizeString(videoData.Description),
		ThumbnailURL:    videoData.ThumbnailURL,
		DurationSeconds: videoData.DurationSeconds,
		CategoryID:      categoryID,
		Tags:            string(tags),
		ChannelTitle:    sanitizeString(videoData.ChannelTitle),
		ChannelID:       videoData.ChannelID,
		ViewCount:       videoData.ViewCount,
		LikeCount:       videoData.LikeCount,
		PublishedAt:     videoData.PublishedAt,
	}

	videoID, err := u.store.CreateVideo(ctx, video)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a check-then-insert race; same outcome as the check.
			logger.GetLogger().WithField("videoId", videoData.YouTubeID).Info("Video already exists")
		} else {
			logger.GetLogger().WithField("error", err).WithField("videoId", videoData.YouTubeID).Error("Failed to import video")
		}
		return false
	}

	logger.GetLogger().WithField("videoId", videoData.YouTubeID).WithField("title", video.Title).Info("Imported video")
	if u.cache != nil {
		u.cache.MarkImported(ctx, videoData.YouTubeID)
	}

	if u.notifier != nil {
		event := model.NewVideoEvent{
			VideoID:    videoID,
			YouTubeID:  videoData.YouTubeID,
			Title:      video.Title,
			CategoryID: categoryID,
			ImportedAt: time.Now().UTC(),
		}
		if err := u.notifier.NotifyNewVideo(ctx, event); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed to publish new-video event")
		}
	}
	return true
}

// importLivestream persists one live record into livestream storage. No
// notification side effect for livestreams.
func (u *IngestionUseCase) importLivestream(ctx context.Context, videoData model.VideoRecord, categoryID int64) bool {
	if videoData.YouTubeID == "" {
		logger.GetLogger().Warn("Skipping record without video ID")
		return false
	}

	if u.alreadyImported(ctx, videoData.YouTubeID) {
		logger.GetLogger().WithField("videoId", videoData.YouTubeID).Info("Livestream already exists")
		return false
	}

	if !u.categoryValid(ctx, categoryID) {
		return false
	}

	stream := &model.Livestream{
		YouTubeID:    videoData.YouTubeID,
		Title:        sanitizeString(videoData.Title),
		Description:  sanitizeString(videoData.Description),
		ThumbnailURL: videoData.ThumbnailURL,
		ChannelTitle: sanitizeString(videoData.ChannelTitle),
		ChannelID:    videoData.ChannelID,
		IsLive:       true,
		ViewerCount:  videoData.ViewCount,
		StartedAt:    time.Now().UTC(),
		CategoryID:   categoryID,
	}

	streamID, err := u.store.CreateLivestream(ctx, stream)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			logger.GetLogger().WithField("videoId", videoData.YouTubeID).Info("Livestream already exists")
		} else {
			logger.GetLogger().WithField("error", err).WithField("videoId", videoData.YouTubeID).Error("Failed to import livestream")
		}
		return false
	}

	logger.GetLogger().WithField("livestreamId", streamID).WithField("videoId", videoData.YouTubeID).Info("Imported livestream")
	if u.cache != nil {
		u.cache.MarkImported(ctx, videoData.YouTubeID)
	}
	return true
}

// alreadyImported checks the cache fast path, then both store tables.
// Store errors count as "exists" so a flaky store never produces duplicates.
func (u *IngestionUseCase) alreadyImported(ctx context.Context, youtubeID string) bool {
	if u.cache != nil && u.cache.WasImported(ctx, youtubeID) {
		return true
	}
	video, err := u.store.FindVideoByYouTubeID(ctx, youtubeID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Video existence check failed")
		return true
	}
	if video != nil {
		return true
	}
	stream, err := u.store.FindLivestreamByYouTubeID(ctx, youtubeID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Livestream existence check failed")
		return true
	}
	return stream != nil
}

func (u *IngestionUseCase) categoryValid(ctx context.Context, categoryID int64) bool {
	exists, err := u.store.CategoryExists(ctx, categoryID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Category check failed")
		return false
	}
	if !exists {
		logger.GetLogger().WithField("categoryId", categoryID).Warn("Invalid category ID")
	}
	return exists
}

// mergeDetails overlays detail-stage records onto search-stage records by
// video id. Detail wins; records with no matching detail entry stay as-is.
func mergeDetails(searchResults, detailedResults []model.VideoRecord) []model.VideoRecord {
	detailedByID := make(map[string]model.VideoRecord, len(detailedResults))
	for _, video := range detailedResults {
		detailedByID[video.YouTubeID] = video
	}

	merged := make([]model.VideoRecord, len(searchResults))
	for i, video := range searchResults {
		if detailed, ok := detailedByID[video.YouTubeID]; ok {
			merged[i] = detailed
		} else {
			merged[i] = video
		}
	}
	return merged
}

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
}

// extractVideoIDFromURL matches the known URL shapes in order, then falls
// back to the v query parameter when it is exactly 11 characters.
func extractVideoIDFromURL(videoURL string) string {
	for _, pattern := range videoIDPatterns {
		if matches := pattern.FindStringSubmatch(videoURL); matches != nil {
			return matches[1]
		}
	}

	parsed, err := url.Parse(videoURL)
	if err != nil {
		return ""
	}
	if v := parsed.Query().Get("v"); len(v) == 11 {
		return v
	}
	return ""
}

// sanitizeString strips null bytes, trims whitespace and truncates with an
// ellipsis beyond the maximum length. Byte-based, matching stored data from
// earlier imports.
func sanitizeString(s string) string {
	trimmed := strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
	if len(trimmed) > maxTextLength {
		trimmed = trimmed[:maxTextLength-3] + "..."
	}
	return trimmed
}

func normalizeLimit(limit, def int64) int64 {
	if limit <= 0 {
		return def
	}
	if limit > batchCap {
		return batchCap
	}
	return limit
}
