package service

import (
	"context"

	"ripple/internal/authz"
	"ripple/internal/models"
	"ripple/internal/repository"
)

// FollowService provides follow-graph business logic.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates the actor→target edge. Self-follows are rejected, missing
// targets are not found, duplicate edges conflict.
func (s *FollowService) Follow(ctx context.Context, actor authz.Actor, targetID uint) (*models.FollowEdge, error) {
	if err := authz.ForFollowEdge(actor, authz.ActionCreate, actor.ID); err != nil {
		return nil, err
	}
	if actor.ID == targetID {
		return nil, models.NewValidationError("You cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	existing, err := s.followRepo.GetPair(ctx, actor.ID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Already following this user")
	}

	// A concurrent duplicate slips past the check above; the unique pair
	// index makes the repository return the same conflict.
	edge := &models.FollowEdge{
		FollowerID: actor.ID,
		FolloweeID: targetID,
	}
	if err := s.followRepo.Create(ctx, edge); err != nil {
		return nil, err
	}
	return edge, nil
}

// Unfollow deletes the actor→target edge. The edge's follower may always
// remove it.
func (s *FollowService) Unfollow(ctx context.Context, actor authz.Actor, targetID uint) error {
	if err := authz.ForFollowEdge(actor, authz.ActionDestroy, actor.ID); err != nil {
		return err
	}
	return s.followRepo.DeletePair(ctx, actor.ID, targetID)
}

// Following returns the users the actor follows, newest edge first.
// Anonymous callers get an empty list.
func (s *FollowService) Following(ctx context.Context, actor authz.Actor) ([]models.User, error) {
	if !actor.Authenticated {
		return []models.User{}, nil
	}
	edges, err := s.followRepo.ListFollowing(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(edges))
	for _, e := range edges {
		users = append(users, e.Followee)
	}
	return users, nil
}

// Followers returns the users following the actor, newest edge first.
// Anonymous callers get an empty list.
func (s *FollowService) Followers(ctx context.Context, actor authz.Actor) ([]models.User, error) {
	if !actor.Authenticated {
		return []models.User{}, nil
	}
	edges, err := s.followRepo.ListFollowers(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(edges))
	for _, e := range edges {
		users = append(users, e.Follower)
	}
	return users, nil
}
