package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/follow/:userId
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	edge, err := s.followService.Follow(c.Context(), actor, targetID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(edge)
}

// UnfollowUser handles DELETE /api/follow/:userId
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	if err := s.followService.Unfollow(c.Context(), actor, targetID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFollowings handles GET /api/followings
func (s *Server) GetFollowings(c *fiber.Ctx) error {
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	users, err := s.followService.Following(c.Context(), actor)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(users)
}

// GetFollowers handles GET /api/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	users, err := s.followService.Followers(c.Context(), actor)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(users)
}
