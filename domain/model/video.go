package model

import "time"

// LiveBroadcastState mirrors the platform's liveBroadcastContent values.
type LiveBroadcastState string

const (
	LiveBroadcastNone     LiveBroadcastState = "none"
	LiveBroadcastUpcoming LiveBroadcastState = "upcoming"
	LiveBroadcastLive     LiveBroadcastState = "live"
)

// VideoRecord is the canonical record produced by the source client.
// Search and playlist listings yield partial records (no statistics, no
// duration, no tags); a follow-up details fetch fills them in.
type VideoRecord struct {
	YouTubeID       string             `json:"youtube_id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	ThumbnailURL    string             `json:"thumbnail_url"`
	ChannelTitle    string             `json:"channel_title"`
	ChannelID       string             `json:"channel_id"`
	PublishedAt     time.Time          `json:"published_at"`
	Tags            []string           `json:"tags"`
	ViewCount       int64              `json:"view_count"`
	LikeCount       int64              `json:"like_count"`
	DurationSeconds int64              `json:"duration_seconds"`
	LiveBroadcast   LiveBroadcastState `json:"live_broadcast"`
}

// HasDetails reports whether the record went through a details fetch.
func (r VideoRecord) HasDetails() bool {
	return r.DurationSeconds > 0 || r.ViewCount > 0 || len(r.Tags) > 0
}

// Video is a stored on-demand video row.
type Video struct {
	ID              int64     `json:"id"              gorm:"primaryKey;autoIncrement"`
	YouTubeID       string    `json:"youtube_id"      gorm:"column:youtube_id;uniqueIndex"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	DurationSeconds int64     `json:"duration_seconds" gorm:"column:duration"`
	CategoryID      int64     `json:"category_id"`
	Tags            string    `json:"tags"` // JSON-encoded list
	ChannelTitle    string    `json:"channel_title"`
	ChannelID       string    `json:"channel_id"`
	ViewCount       int64     `json:"view_count"`
	LikeCount       int64     `json:"like_count"`
	PublishedAt     time.Time `json:"published_at"`
	CreatedAt       time.Time `json:"created_at"      gorm:"autoCreateTime"`
}

func (Video) TableName() string { return "videos" }

// Livestream is a stored livestream row. Live/offline status toggles after
// import belong to a separate collaborator; the ingestion core only creates.
type Livestream struct {
	ID           int64     `json:"id"            gorm:"primaryKey;autoIncrement"`
	YouTubeID    string    `json:"youtube_id"    gorm:"column:youtube_id;uniqueIndex"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url"`
	ChannelTitle string    `json:"channel_title"`
	ChannelID    string    `json:"channel_id"`
	IsLive       bool      `json:"is_live"`
	ViewerCount  int64     `json:"viewer_count"`
	StartedAt    time.Time `json:"started_at"`
	CategoryID   int64     `json:"category_id"`
	CreatedAt    time.Time `json:"created_at"    gorm:"autoCreateTime"`
}

func (Livestream) TableName() string { return "livestreams" }

// Category is a stored content category. Categories are managed by the admin
// panel; the ingestion core only validates that they exist.
type Category struct {
	ID   int64  `json:"id"   gorm:"primaryKey"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (Category) TableName() string { return "categories" }

// ImportSeed is one entry of the initial bulk-import configuration.
type ImportSeed struct {
	Type       string `json:"type"       mapstructure:"type"` // keyword, playlist, channel, trending
	Value      string `json:"value"      mapstructure:"value"`
	CategoryID int64  `json:"categoryId" mapstructure:"categoryId"`
	Limit      int64  `json:"limit"      mapstructure:"limit"`
}
