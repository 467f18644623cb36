package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lcmtv/domain/model"
	"lcmtv/domain/repository"
	"lcmtv/usecase"
)

// Mock implementations
type MockVideoSource struct {
	mock.Mock
}

func (m *MockVideoSource) SearchVideos(ctx context.Context, query string, maxResults int64, order string) []model.VideoRecord {
	args := m.Called(ctx, query, maxResults, order)
	return args.Get(0).([]model.VideoRecord)
}

func (m *MockVideoSource) GetPlaylistVideos(ctx context.Context, playlistID string, maxResults int64) []model.VideoRecord {
	args := m.Called(ctx, playlistID, maxResults)
	return args.Get(0).([]model.VideoRecord)
}

func (m *MockVideoSource) GetChannelVideos(ctx context.Context, channelID string, maxResults int64) []model.VideoRecord {
	args := m.Called(ctx, channelID, maxResults)
	return args.Get(0).([]model.VideoRecord)
}

func (m *MockVideoSource) GetVideoDetails(ctx context.Context, videoIDs []string) []model.VideoRecord {
	args := m.Called(ctx, videoIDs)
	return args.Get(0).([]model.VideoRecord)
}

func (m *MockVideoSource) GetTrendingVideos(ctx context.Context, regionCode string, maxResults int64) []model.VideoRecord {
	args := m.Called(ctx, regionCode, maxResults)
	return args.Get(0).([]model.VideoRecord)
}

func (m *MockVideoSource) SearchLiveVideos(ctx context.Context, channelID string, maxResults int64) []model.VideoRecord {
	args := m.Called(ctx, channelID, maxResults)
	return args.Get(0).([]model.VideoRecord)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyNewVideo(ctx context.Context, event model.NewVideoEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// fakeStore is a stateful in-memory store so tests exercise real dedupe
// behavior across calls instead of scripting every lookup.
type fakeStore struct {
	videos      map[string]*model.Video
	livestreams map[string]*model.Livestream
	categories  map[int64]bool
	nextID      int64

	findVideoErr  error
	createVideoErr error
}

func newFakeStore(categoryIDs ...int64) *fakeStore {
	s := &fakeStore{
		videos:      map[string]*model.Video{},
		livestreams: map[string]*model.Livestream{},
		categories:  map[int64]bool{},
		nextID:      1,
	}
	for _, id := range categoryIDs {
		s.categories[id] = true
	}
	return s
}

func (s *fakeStore) FindVideoByYouTubeID(_ context.Context, youtubeID string) (*model.Video, error) {
	if s.findVideoErr != nil {
		return nil, s.findVideoErr
	}
	return s.videos[youtubeID], nil
}

func (s *fakeStore) FindLivestreamByYouTubeID(_ context.Context, youtubeID string) (*model.Livestream, error) {
	return s.livestreams[youtubeID], nil
}

func (s *fakeStore) CreateVideo(_ context.Context, video *model.Video) (int64, error) {
	if s.createVideoErr != nil {
		return 0, s.createVideoErr
	}
	if _, ok := s.videos[video.YouTubeID]; ok {
		return 0, repository.ErrDuplicate
	}
	video.ID = s.nextID
	s.nextID++
	s.videos[video.YouTubeID] = video
	return video.ID, nil
}

func (s *fakeStore) CreateLivestream(_ context.Context, stream *model.Livestream) (int64, error) {
	if _, ok := s.livestreams[stream.YouTubeID]; ok {
		return 0, repository.ErrDuplicate
	}
	stream.ID = s.nextID
	s.nextID++
	s.livestreams[stream.YouTubeID] = stream
	return stream.ID, nil
}

func (s *fakeStore) CategoryExists(_ context.Context, categoryID int64) (bool, error) {
	return s.categories[categoryID], nil
}

func (s *fakeStore) GetVideo(_ context.Context, id int64) (*model.Video, error) {
	for _, v := range s.videos {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) GetCategory(_ context.Context, id int64) (*model.Category, error) {
	if s.categories[id] {
		return &model.Category{ID: id, Name: "Category"}, nil
	}
	return nil, nil
}

func (s *fakeStore) ListCategorySubscribers(_ context.Context, _ int64) ([]int64, error) {
	return nil, nil
}

func (s *fakeStore) CreateNotification(_ context.Context, _ *model.Notification) error {
	return nil
}

func detailRecord(id, title string) model.VideoRecord {
	return model.VideoRecord{
		YouTubeID:       id,
		Title:           title,
		Description:     "description of " + title,
		ThumbnailURL:    "https://i.ytimg.com/vi/" + id + "/mqdefault.jpg",
		ChannelTitle:    "Channel",
		ChannelID:       "UCchannel",
		PublishedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Tags:            []string{"tag1", "tag2"},
		ViewCount:       1000,
		LikeCount:       50,
		DurationSeconds: 253,
		LiveBroadcast:   model.LiveBroadcastNone,
	}
}

func searchRecord(id, title string) model.VideoRecord {
	return model.VideoRecord{
		YouTubeID:    id,
		Title:        title,
		ChannelTitle: "Channel",
		PublishedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestImportByURL_ExtractsIDFromKnownShapes(t *testing.T) {
	testCases := []struct {
		name string
		url  string
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"watch with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"legacy v path", "https://www.youtube.com/v/dQw4w9WgXcQ"},
		{"shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ"},
		{"query fallback", "https://m.youtube.com/details?v=dQw4w9WgXcQ"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			source := new(MockVideoSource)
			source.On("GetVideoDetails", mock.Anything, []string{"dQw4w9WgXcQ"}).
				Return([]model.VideoRecord{detailRecord("dQw4w9WgXcQ", "Video")})

			uc := usecase.NewIngestionUseCase(source, newFakeStore(1), nil, nil)
			imported, err := uc.ImportByURL(context.Background(), tc.url, 1)

			require.NoError(t, err)
			assert.Equal(t, 1, imported)
			source.AssertExpectations(t)
		})
	}
}

func TestImportByURL_InvalidURL(t *testing.T) {
	source := new(MockVideoSource)
	uc := usecase.NewIngestionUseCase(source, newFakeStore(1), nil, nil)

	for _, bad := range []string{"", "not a url", "https://example.com/watch?v=short", "https://youtu.be/tooShort"} {
		imported, err := uc.ImportByURL(context.Background(), bad, 1)
		assert.ErrorIs(t, err, usecase.ErrInvalidInput, bad)
		assert.Equal(t, 0, imported)
	}
	source.AssertNotCalled(t, "GetVideoDetails", mock.Anything, mock.Anything)
}

func TestImportByURL_UnavailableVideo(t *testing.T) {
	source := new(MockVideoSource)
	source.On("GetVideoDetails", mock.Anything, []string{"dQw4w9WgXcQ"}).
		Return([]model.VideoRecord{})

	uc := usecase.NewIngestionUseCase(source, newFakeStore(1), nil, nil)
	imported, err := uc.ImportByURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", 1)

	require.NoError(t, err)
	assert.Equal(t, 0, imported)
}

func TestImportByKeyword_MergesDetailOverSearch(t *testing.T) {
	search := []model.VideoRecord{
		searchRecord("aaaaaaaaaaa", "First (partial)"),
		searchRecord("bbbbbbbbbbb", "Second (partial)"),
	}
	// Only the first id comes back with details; the second imports as-is.
	details := []model.VideoRecord{detailRecord("aaaaaaaaaaa", "First (full)")}

	source := new(MockVideoSource)
	source.On("SearchVideos", mock.Anything, "golang", int64(10), "relevance").Return(search)
	source.On("GetVideoDetails", mock.Anything, []string{"aaaaaaaaaaa", "bbbbbbbbbbb"}).Return(details)

	store := newFakeStore(3)
	uc := usecase.NewIngestionUseCase(source, store, nil, nil)

	imported, err := uc.ImportByKeyword(context.Background(), "golang", 3, 10)

	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	full := store.videos["aaaaaaaaaaa"]
	require.NotNil(t, full)
	assert.Equal(t, "First (full)", full.Title)
	assert.Equal(t, int64(253), full.DurationSeconds)
	assert.Equal(t, int64(1000), full.ViewCount)

	partial := store.videos["bbbbbbbbbbb"]
	require.NotNil(t, partial)
	assert.Equal(t, "Second (partial)", partial.Title)
	assert.Equal(t, int64(0), partial.DurationSeconds)
}

func TestImportByKeyword_Validation(t *testing.T) {
	uc := usecase.NewIngestionUseCase(new(MockVideoSource), newFakeStore(1), nil, nil)

	_, err := uc.ImportByKeyword(context.Background(), "", 1, 10)
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = uc.ImportByKeyword(context.Background(), "golang", 0, 10)
	assert.ErrorIs(t, err, usecase.ErrInvalidInput)
}

func TestImportByKeyword_LimitClampedAndDefaulted(t *testing.T) {
	source := new(MockVideoSource)
	// Zero limit falls back to the keyword default of 20, 500 clamps to 50.
	source.On("SearchVideos", mock.Anything, "golang", int64(20), "relevance").
		Return([]model.VideoRecord{}).Once()
	source.On("SearchVideos", mock.Anything, "golang", int64(50), "relevance").
		Return([]model.VideoRecord{}).Once()

	uc := usecase.NewIngestionUseCase(source, newFakeStore(1), nil, nil)

	_, err := uc.ImportByKeyword(context.Background(), "golang", 1, 0)
	require.NoError(t, err)
	_, err = uc.ImportByKeyword(context.Background(), "golang", 1, 500)
	require.NoError(t, err)

	source.AssertExpectations(t)
}

func TestImportIsIdempotent(t *testing.T) {
	record := detailRecord("dQw4w9WgXcQ", "Video")

	source := new(MockVideoSource)
	source.On("GetVideoDetails", mock.Anything, []string{"dQw4w9WgXcQ"}).Return([]model.VideoRecord{record})

	store := newFakeStore(1)
	uc := usecase.NewIngestionUseCase(source, store, nil, nil)

	first, err := uc.ImportByURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := uc.ImportByURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, second)

	assert.Len(t, store.videos, 1)
}

func TestImportSkipsIDAlreadyStoredAsLivestream(t *testing.T) {
	record := detailRecord("dQw4w9WgXcQ", "Video")

	source := new(MockVideoSource)
	source.On("GetVideoDetails", mock.Anything, []string{"dQw4w9WgXcQ"}).Return([]model.VideoRecord{record})

	store := newFakeStore(1)
	store.livestreams["dQw4w9WgXcQ"] = &model.Livestream{ID: 7, YouTubeID: "dQw4w9WgXcQ"}

	uc := usecase.NewIngestionUseCase(source, store, nil, nil)
	imported, err := uc.ImportByURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", 1)

	require.NoError(t, err)
	assert.Equal(t, 0, imported)
	assert.Empty(t, store.videos)
}

func TestImportUnknownCategoryWritesNothing(t *testing.T) {
	source := new(MockVideoSource)
	source.On("GetVideoDetails", mock.Anything, []string{"dQw4w9WgXcQ"}).
		Return([]model.VideoRecord{detailRecord("dQw4w9WgXcQ", "Video")})

	store := newFakeStore() // no categories
	uc := usecase.NewIngestionUseCase(source, store, nil, nil)

	imported, err := uc.ImportByURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", 99)

	require.NoError(t, err)
	assert.Equal(t, 0, imported)
	assert.Empty(t, store.videos)
}

func TestImportDuplicateInsertCountedAsExisting(t *testing.T) {
	source := new(MockVideoSource)
	source.On("GetVideoDetails", mock.Anything, []string{"dQw4w9WgXcQ"}).
		Return([]model.VideoRecord{detailRecord("dQw4w9WgXcQ", "Video")})

	store := newFakeStore(1)
	store.createVideoErr = repository.ErrDuplicate

	uc := usecase.NewIngestionUseCase(source, store, nil, nil)
	imported, err := uc.ImportByURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", 1)

	require.NoError(t, err)
	assert.Equal(t, 0, imported)
}

func TestImportExistenceCheckFailureSkipsRecord(t *testing.T) {
	source := new(MockVideoSource)
	source.On("GetVideoDetails", mock.Anything, []string{"dQw4w9WgXcQ"}).
		Return([]model.VideoRecord{detailRecord("dQw4w9WgXcQ", "Video")})

	store := newFakeStore(1)
	store.findVideoErr = errors.New("connection refused")

	uc := usecase.NewIngestionUseCase(source, store, nil, nil)
	imported, err := uc.ImportByURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", 1)

	require.NoError(t, err)
	assert.Equal(t, 0, imported)
	assert.Empty(t, store.videos)
}

func TestImportSanitizesStoredText(t *testing.T) {
	record := detailRecord("dQw4w9WgXcQ", "  Title with\x00null  ")
	record.Description = strings.Repeat("a", 600)

	source := new(MockVideoSource)
	source.On("GetVideoDetails", mock.Anything, []string{"dQw4w9WgXcQ"}).Return([]model.VideoRecord{record})

	store := newFakeStore(1)
	uc := usecase.NewIngestionUseCase(source, store, nil, nil)

	imported, err := uc.ImportByURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", 1)
	require.NoError(t, err)
	require.Equal(t, 1, imported)

	stored := store.videos["dQw4w9WgXcQ"]
	require.NotNil(t, stored)
	assert.Equal(t, "Title withnull", stored.Title)
	assert.Len(t, stored.Description, 500)
	assert.True(t, strings.HasSuffix(stored.Description, "..."))
}

func TestImportNotifiesAfterCreate(t *testing.T) {
	source := new(MockVideoSource)
	source.On("GetVideoDetails", mock.Anything, []string{"dQw4w9WgXcQ"}).
		Return([]model.VideoRecord{detailRecord("dQw4w9WgXcQ", "Video")})

	notifier := new(MockNotifier)
	notifier.On("NotifyNewVideo", mock.Anything, mock.MatchedBy(func(e model.NewVideoEvent) bool {
		return e.YouTubeID == "dQw4w9WgXcQ" && e.CategoryID == 1 && e.VideoID > 0
	})).Return(nil)

	uc := usecase.NewIngestionUseCase(source, newFakeStore(1), notifier, nil)
	imported, err := uc.ImportByURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", 1)

	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	notifier.AssertExpectations(t)
}

func TestImportNotifierFailureDoesNotAffectResult(t *testing.T) {
	source := new(MockVideoSource)
	source.On("GetVideoDetails", mock.Anything, []string{"dQw4w9WgXcQ"}).
		Return([]model.VideoRecord{detailRecord("dQw4w9WgXcQ", "Video")})

	notifier := new(MockNotifier)
	notifier.On("NotifyNewVideo", mock.Anything, mock.Anything).Return(errors.New("publish timeout"))

	store := newFakeStore(1)
	uc := usecase.NewIngestionUseCase(source, store, notifier, nil)
	imported, err := uc.ImportByURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", 1)

	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Len(t, store.videos, 1)
}

func TestImportTrending_TruncatesToLimit(t *testing.T) {
	trending := []model.VideoRecord{
		detailRecord("aaaaaaaaaaa", "One"),
		detailRecord("bbbbbbbbbbb", "Two"),
		detailRecord("ccccccccccc", "Three"),
	}

	source := new(MockVideoSource)
	source.On("GetTrendingVideos", mock.Anything, "US", int64(2)).Return(trending)

	store := newFakeStore(5)
	uc := usecase.NewIngestionUseCase(source, store, nil, nil)

	imported, err := uc.ImportTrending(context.Background(), 5, 2, "")

	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	assert.Len(t, store.videos, 2)
	assert.NotContains(t, store.videos, "ccccccccccc")
}

func TestImportLivestreamByURL_Live(t *testing.T) {
	record := detailRecord("dQw4w9WgXcQ", "Live stream")
	record.LiveBroadcast = model.LiveBroadcastLive

	source := new(MockVideoSource)
	source.On("GetVideoDetails", mock.Anything, []string{"dQw4w9WgXcQ"}).Return([]model.VideoRecord{record})

	store := newFakeStore(1)
	uc := usecase.NewIngestionUseCase(source, store, nil, nil)

	imported, err := uc.ImportLivestreamByURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", 1)

	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	require.Contains(t, store.livestreams, "dQw4w9WgXcQ")
	assert.True(t, store.livestreams["dQw4w9WgXcQ"].IsLive)
	assert.Empty(t, store.videos)
}

func TestImportLivestreamByURL_NotLiveFallsBackToVideo(t *testing.T) {
	source := new(MockVideoSource)
	source.On("GetVideoDetails", mock.Anything, []string{"dQw4w9WgXcQ"}).
		Return([]model.VideoRecord{detailRecord("dQw4w9WgXcQ", "Regular video")})

	store := newFakeStore(1)
	uc := usecase.NewIngestionUseCase(source, store, nil, nil)

	imported, err := uc.ImportLivestreamByURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ", 1)

	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Contains(t, store.videos, "dQw4w9WgXcQ")
	assert.Empty(t, store.livestreams)
}

func TestImportLiveFromChannel_ConfirmsLiveBeforeImport(t *testing.T) {
	live := detailRecord("aaaaaaaaaaa", "Still live")
	live.LiveBroadcast = model.LiveBroadcastLive
	ended := detailRecord("bbbbbbbbbbb", "Already ended")

	source := new(MockVideoSource)
	source.On("SearchLiveVideos", mock.Anything, "UCchannel", int64(5)).
		Return([]model.VideoRecord{searchRecord("aaaaaaaaaaa", "Still live"), searchRecord("bbbbbbbbbbb", "Already ended")})
	source.On("GetVideoDetails", mock.Anything, []string{"aaaaaaaaaaa"}).Return([]model.VideoRecord{live})
	source.On("GetVideoDetails", mock.Anything, []string{"bbbbbbbbbbb"}).Return([]model.VideoRecord{ended})

	store := newFakeStore(2)
	uc := usecase.NewIngestionUseCase(source, store, nil, nil)

	imported, err := uc.ImportLiveFromChannel(context.Background(), "UCchannel", 2, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Contains(t, store.livestreams, "aaaaaaaaaaa")
	assert.NotContains(t, store.livestreams, "bbbbbbbbbbb")
}

func TestRunInitialImport_ContinuesPastBadSeeds(t *testing.T) {
	source := new(MockVideoSource)
	source.On("SearchVideos", mock.Anything, "golang", int64(2), "relevance").
		Return([]model.VideoRecord{searchRecord("aaaaaaaaaaa", "One"), searchRecord("bbbbbbbbbbb", "Two")})
	source.On("GetVideoDetails", mock.Anything, []string{"aaaaaaaaaaa", "bbbbbbbbbbb"}).
		Return([]model.VideoRecord{detailRecord("aaaaaaaaaaa", "One"), detailRecord("bbbbbbbbbbb", "Two")})
	source.On("GetTrendingVideos", mock.Anything, "US", int64(1)).
		Return([]model.VideoRecord{detailRecord("ccccccccccc", "Trending")})

	store := newFakeStore(1, 2)
	uc := usecase.NewIngestionUseCase(source, store, nil, nil)

	seeds := []model.ImportSeed{
		{Type: "keyword", Value: "golang", CategoryID: 1, Limit: 2},
		{Type: "keyword", Value: "", CategoryID: 1, Limit: 5}, // invalid, skipped
		{Type: "bogus", Value: "x", CategoryID: 1, Limit: 5},  // unknown type, skipped
		{Type: "trending", Value: "US", CategoryID: 2, Limit: 1},
	}

	total, err := uc.RunInitialImport(context.Background(), seeds)

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, store.videos, 3)
}
