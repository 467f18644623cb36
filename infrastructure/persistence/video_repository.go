package persistence

import (
	"context"
	"database/sql"
	"errors"

	"lcmtv/domain/model"
	"lcmtv/domain/repository"

	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

// VideoRepository implements repository.IVideoStore over PostgreSQL.
type VideoRepository struct{ db *sql.DB }

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) FindVideoByYouTubeID(ctx context.Context, youtubeID string) (*model.Video, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, youtube_id, title, description, thumbnail_url, duration, category_id,
	        tags, channel_title, channel_id, view_count, like_count, published_at, created_at
	 FROM videos WHERE youtube_id = $1`, youtubeID)

	var v model.Video
	err := row.Scan(&v.ID, &v.YouTubeID, &v.Title, &v.Description, &v.ThumbnailURL,
		&v.DurationSeconds, &v.CategoryID, &v.Tags, &v.ChannelTitle, &v.ChannelID,
		&v.ViewCount, &v.LikeCount, &v.PublishedAt, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *VideoRepository) FindLivestreamByYouTubeID(ctx context.Context, youtubeID string) (*model.Livestream, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, youtube_id, title, description, thumbnail_url, channel_title, channel_id,
	        is_live, viewer_count, started_at, category_id, created_at
	 FROM livestreams WHERE youtube_id = $1`, youtubeID)

	var s model.Livestream
	err := row.Scan(&s.ID, &s.YouTubeID, &s.Title, &s.Description, &s.ThumbnailURL,
		&s.ChannelTitle, &s.ChannelID, &s.IsLive, &s.ViewerCount, &s.StartedAt,
		&s.CategoryID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *VideoRepository) CreateVideo(ctx context.Context, video *model.Video) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO videos (youtube_id, title, description, thumbnail_url, duration, category_id,
	                     tags, channel_title, channel_id, view_count, like_count, published_at)
	 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	 RETURNING id`,
		video.YouTubeID, video.Title, video.Description, video.ThumbnailURL,
		video.DurationSeconds, video.CategoryID, video.Tags, video.ChannelTitle,
		video.ChannelID, video.ViewCount, video.LikeCount, video.PublishedAt).Scan(&id)
	if err != nil {
		return 0, translateDuplicate(err)
	}
	return id, nil
}

func (r *VideoRepository) CreateLivestream(ctx context.Context, stream *model.Livestream) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO livestreams (youtube_id, title, description, thumbnail_url, channel_title,
	                          channel_id, is_live, viewer_count, started_at, category_id)
	 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	 RETURNING id`,
		stream.YouTubeID, stream.Title, stream.Description, stream.ThumbnailURL,
		stream.ChannelTitle, stream.ChannelID, stream.IsLive, stream.ViewerCount,
		stream.StartedAt, stream.CategoryID).Scan(&id)
	if err != nil {
		return 0, translateDuplicate(err)
	}
	return id, nil
}

func (r *VideoRepository) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`, categoryID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *VideoRepository) GetVideo(ctx context.Context, id int64) (*model.Video, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, youtube_id, title, category_id FROM videos WHERE id = $1`, id)
	var v model.Video
	if err := row.Scan(&v.ID, &v.YouTubeID, &v.Title, &v.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *VideoRepository) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug FROM categories WHERE id = $1`, id)
	var c model.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *VideoRepository) ListCategorySubscribers(ctx context.Context, categoryID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM category_subscriptions WHERE category_id = $1`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

func (r *VideoRepository) CreateNotification(ctx context.Context, n *model.Notification) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (user_id, type, title, message, related_id, related_type)
	 VALUES ($1,$2,$3,$4,$5,$6)`,
		n.UserID, n.Type, n.Title, n.Message, n.RelatedID, n.RelatedType)
	return err
}

// translateDuplicate maps a unique-violation insert error to ErrDuplicate so
// the orchestrator can treat a lost check-then-insert race as "already exists".
func translateDuplicate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}
