package server

import (
	"time"

	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users with optional username/location filters.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	p := parsePagination(c, 20)
	users, err := s.userService.ListUsers(c.Context(), actor, service.ListUsersInput{
		Username: c.Query("username"),
		Location: c.Query("location"),
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(users)
}

// GetUser handles GET /api/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(c.Context(), actor, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser handles PUT/PATCH /api/users/:id. All fields are optional;
// omitted ones keep their value.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actor, err := s.currentActor(c)
	if err != nil {
		return nil
	}

	var req struct {
		Username     *string    `json:"username"`
		Password     *string    `json:"password"`
		PhoneNumber  *string    `json:"phone_number"`
		Bio          *string    `json:"bio"`
		ProfileImage *string    `json:"profile_image"`
		Location     *string    `json:"location"`
		BirthDate    *time.Time `json:"birth_date"`
		IsStaff      *bool      `json:"is_staff"`
		IsSuperuser  *bool      `json:"is_superuser"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), actor, service.UpdateProfileInput{
		UserID:       id,
		Username:     req.Username,
		Password:     req.Password,
		PhoneNumber:  req.PhoneNumber,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
		Location:     req.Location,
		BirthDate:    req.BirthDate,
		IsStaff:      req.IsStaff,
		IsSuperuser:  req.IsSuperuser,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}
