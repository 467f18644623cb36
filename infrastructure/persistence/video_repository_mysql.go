package persistence

import (
	"context"
	"errors"

	"lcmtv/domain/model"
	"lcmtv/domain/repository"

	"gorm.io/gorm"
)

// VideoRepositoryMySQL implements repository.IVideoStore over MySQL via gorm.
// The original platform ran MySQL; this backend is selected with data.source=mysql.
type VideoRepositoryMySQL struct{ db *gorm.DB }

func NewVideoRepositoryMySQL(db *gorm.DB) *VideoRepositoryMySQL {
	return &VideoRepositoryMySQL{db: db}
}

// EnsureMySQLContentSchema migrates the ingestion tables.
func EnsureMySQLContentSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Category{},
		&model.Video{},
		&model.Livestream{},
		&model.Notification{},
		&categorySubscription{},
	)
}

type categorySubscription struct {
	UserID     int64 `gorm:"primaryKey"`
	CategoryID int64 `gorm:"primaryKey"`
}

func (categorySubscription) TableName() string { return "category_subscriptions" }

func (r *VideoRepositoryMySQL) FindVideoByYouTubeID(ctx context.Context, youtubeID string) (*model.Video, error) {
	var v model.Video
	err := r.db.WithContext(ctx).Where("youtube_id = ?", youtubeID).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *VideoRepositoryMySQL) FindLivestreamByYouTubeID(ctx context.Context, youtubeID string) (*model.Livestream, error) {
	var s model.Livestream
	err := r.db.WithContext(ctx).Where("youtube_id = ?", youtubeID).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *VideoRepositoryMySQL) CreateVideo(ctx context.Context, video *model.Video) (int64, error) {
	err := r.db.WithContext(ctx).Create(video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, repository.ErrDuplicate
		}
		return 0, err
	}
	return video.ID, nil
}

func (r *VideoRepositoryMySQL) CreateLivestream(ctx context.Context, stream *model.Livestream) (int64, error) {
	err := r.db.WithContext(ctx).Create(stream).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, repository.ErrDuplicate
		}
		return 0, err
	}
	return stream.ID, nil
}

func (r *VideoRepositoryMySQL) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", categoryID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *VideoRepositoryMySQL) GetVideo(ctx context.Context, id int64) (*model.Video, error) {
	var v model.Video
	err := r.db.WithContext(ctx).First(&v, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *VideoRepositoryMySQL) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *VideoRepositoryMySQL) ListCategorySubscribers(ctx context.Context, categoryID int64) ([]int64, error) {
	var userIDs []int64
	err := r.db.WithContext(ctx).
		Model(&categorySubscription{}).
		Where("category_id = ?", categoryID).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}

func (r *VideoRepositoryMySQL) CreateNotification(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}
