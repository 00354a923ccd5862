package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts with an optional ?hashtag= filter.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	p := parsePagination(c, 20)
	authorID := c.QueryInt("author", 0)
	if authorID < 0 {
		authorID = 0
	}
	posts, err := s.postService.ListPosts(c.Context(), actor, service.ListPostsInput{
		Hashtag:  c.Query("hashtag"),
		AuthorID: uint(authorID),
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(posts)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	var req struct {
		Content     string   `json:"content"`
		Image       string   `json:"image"`
		IsPublished bool     `json:"is_published"`
		Hashtags    []string `json:"hashtags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), actor, service.CreatePostInput{
		Content:     req.Content,
		Image:       req.Image,
		IsPublished: req.IsPublished,
		Hashtags:    req.Hashtags,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), actor, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

// UpdatePost handles PUT/PATCH /api/posts/:id. A provided hashtags list
// replaces the attachment set.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	var req struct {
		Content     *string  `json:"content"`
		Image       *string  `json:"image"`
		IsPublished *bool    `json:"is_published"`
		Hashtags    []string `json:"hashtags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), actor, service.UpdatePostInput{
		PostID:      id,
		Content:     req.Content,
		Image:       req.Image,
		IsPublished: req.IsPublished,
		Hashtags:    req.Hashtags,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), actor, id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike handles POST /api/posts/:id/toggle_like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	liked, err := s.postService.ToggleLike(c.Context(), actor, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked})
}
