package persistence

import (
	"database/sql"
	"fmt"

	"lcmtv/infrastructure/logger"
)

// EnsureContentSchema creates the ingestion tables if they do not exist.
// Uniqueness of youtube_id is enforced per table; the orchestrator checks
// both tables before insert and swallows constraint violations as duplicates.
func EnsureContentSchema(db *sql.DB) error {
	ddls := []string{
		`CREATE TABLE IF NOT EXISTS categories (
        id BIGSERIAL PRIMARY KEY,
        name TEXT NOT NULL,
        slug TEXT NOT NULL UNIQUE
    )`,
		`CREATE TABLE IF NOT EXISTS videos (
        id BIGSERIAL PRIMARY KEY,
        youtube_id VARCHAR(11) NOT NULL UNIQUE,
        title TEXT NOT NULL,
        description TEXT,
        thumbnail_url TEXT,
        duration BIGINT NOT NULL DEFAULT 0,
        category_id BIGINT NOT NULL REFERENCES categories(id),
        tags TEXT NOT NULL DEFAULT '[]',
        channel_title TEXT,
        channel_id TEXT,
        view_count BIGINT NOT NULL DEFAULT 0,
        like_count BIGINT NOT NULL DEFAULT 0,
        published_at TIMESTAMPTZ,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
		`CREATE TABLE IF NOT EXISTS livestreams (
        id BIGSERIAL PRIMARY KEY,
        youtube_id VARCHAR(11) NOT NULL UNIQUE,
        title TEXT NOT NULL,
        description TEXT,
        thumbnail_url TEXT,
        channel_title TEXT,
        channel_id TEXT,
        is_live BOOLEAN NOT NULL DEFAULT TRUE,
        viewer_count BIGINT NOT NULL DEFAULT 0,
        started_at TIMESTAMPTZ,
        category_id BIGINT NOT NULL REFERENCES categories(id),
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
		`CREATE TABLE IF NOT EXISTS category_subscriptions (
        user_id BIGINT NOT NULL,
        category_id BIGINT NOT NULL REFERENCES categories(id),
        PRIMARY KEY (user_id, category_id)
    )`,
		`CREATE TABLE IF NOT EXISTS notifications (
        id BIGSERIAL PRIMARY KEY,
        user_id BIGINT NOT NULL,
        type TEXT NOT NULL,
        title TEXT NOT NULL,
        message TEXT NOT NULL,
        related_id BIGINT,
        related_type TEXT,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	}
	for _, ddl := range ddls {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("ensure content schema: %w", err)
		}
	}

	// Helpful index for the category browse pages
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_videos_category_published ON videos(category_id, published_at DESC)`); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed creating idx_videos_category_published")
	}

	return nil
}
