package repository

import (
	"context"
	"errors"

	"ripple/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HashtagRepository defines persistence operations for hashtags.
type HashtagRepository interface {
	GetOrCreate(ctx context.Context, name string) (*models.Hashtag, error)
	GetOrCreateAll(ctx context.Context, names []string) ([]models.Hashtag, error)
	GetByName(ctx context.Context, name string) (*models.Hashtag, error)
}

type hashtagRepository struct {
	db *gorm.DB
}

// NewHashtagRepository returns a new HashtagRepository implementation.
func NewHashtagRepository(db *gorm.DB) HashtagRepository {
	return &hashtagRepository{db: db}
}

// GetOrCreate inserts the tag if missing. Concurrent callers race on the
// unique name index; ON CONFLICT DO NOTHING plus a reselect makes the
// operation idempotent either way.
func (r *hashtagRepository) GetOrCreate(ctx context.Context, name string) (*models.Hashtag, error) {
	tag := models.Hashtag{Name: name}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&tag).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if tag.ID != 0 {
		return &tag, nil
	}

	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &tag, nil
}

func (r *hashtagRepository) GetOrCreateAll(ctx context.Context, names []string) ([]models.Hashtag, error) {
	tags := make([]models.Hashtag, 0, len(names))
	for _, name := range names {
		tag, err := r.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (r *hashtagRepository) GetByName(ctx context.Context, name string) (*models.Hashtag, error) {
	var tag models.Hashtag
	if err := readDB(r.db).WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &tag, nil
}
