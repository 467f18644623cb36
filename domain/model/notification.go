package model

import "time"

// NewVideoEvent is published to Pub/Sub after a video row is committed.
type NewVideoEvent struct {
	VideoID    int64     `json:"video_id"`
	YouTubeID  string    `json:"youtube_id"`
	Title      string    `json:"title"`
	CategoryID int64     `json:"category_id"`
	ImportedAt time.Time `json:"imported_at"`
}

// Notification is a stored per-user notification row created by the
// notification worker for users subscribed to a category.
type Notification struct {
	ID          int64     `json:"id"           gorm:"primaryKey;autoIncrement"`
	UserID      int64     `json:"user_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	RelatedID   int64     `json:"related_id"`
	RelatedType string    `json:"related_type"`
	CreatedAt   time.Time `json:"created_at"   gorm:"autoCreateTime"`
}

func (Notification) TableName() string { return "notifications" }
