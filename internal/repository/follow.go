package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/observability"

	"gorm.io/gorm"
)

// FollowRepository defines persistence operations for follow edges.
type FollowRepository interface {
	Create(ctx context.Context, edge *models.FollowEdge) error
	GetPair(ctx context.Context, followerID, followeeID uint) (*models.FollowEdge, error)
	DeletePair(ctx context.Context, followerID, followeeID uint) error
	ListFollowing(ctx context.Context, userID uint) ([]models.FollowEdge, error)
	ListFollowers(ctx context.Context, userID uint) ([]models.FollowEdge, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, edge *models.FollowEdge) error {
	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Already following this user")
		}
		return models.NewInternalError(err)
	}
	observability.FollowEdgesCreated.Inc()
	cache.InvalidateFollowGraph(ctx, edge.FollowerID, edge.FolloweeID)
	return nil
}

func (r *followRepository) GetPair(ctx context.Context, followerID, followeeID uint) (*models.FollowEdge, error) {
	var edge models.FollowEdge
	err := readDB(r.db).WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		First(&edge).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &edge, nil
}

func (r *followRepository) DeletePair(ctx context.Context, followerID, followeeID uint) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.FollowEdge{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Follow", followeeID)
	}
	cache.InvalidateFollowGraph(ctx, followerID, followeeID)
	return nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID uint) ([]models.FollowEdge, error) {
	var edges []models.FollowEdge
	err := cache.Aside(ctx, cache.FollowingKey(userID), &edges, cache.FollowTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).
			Preload("Followee").
			Where("follower_id = ?", userID).
			Order("created_at DESC, id DESC").
			Find(&edges).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return edges, nil
}

func (r *followRepository) ListFollowers(ctx context.Context, userID uint) ([]models.FollowEdge, error) {
	var edges []models.FollowEdge
	err := cache.Aside(ctx, cache.FollowersKey(userID), &edges, cache.FollowTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).
			Preload("Follower").
			Where("followee_id = ?", userID).
			Order("created_at DESC, id DESC").
			Find(&edges).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return edges, nil
}
