package server

import (
	"fmt"
	"strconv"
	"time"

	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "ripple-api"
	tokenAudience = "ripple-client"

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	accessTokenTTL  = 30 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// TokenPair is the issued access/refresh token pair.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Email       string     `json:"email"`
		Password    string     `json:"password"`
		Password2   string     `json:"password2"`
		Username    string     `json:"username"`
		PhoneNumber string     `json:"phone_number"`
		Bio         string     `json:"bio"`
		Location    string     `json:"location"`
		BirthDate   *time.Time `json:"birth_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(c.Context(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Password2:   req.Password2,
		Username:    req.Username,
		PhoneNumber: req.PhoneNumber,
		Bio:         req.Bio,
		Location:    req.Location,
		BirthDate:   req.BirthDate,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	pair, err := s.issueTokenPair(c, user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":    user,
		"access":  pair.Access,
		"refresh": pair.Refresh,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	pair, err := s.issueTokenPair(c, user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"user":    user,
		"access":  pair.Access,
		"refresh": pair.Refresh,
	})
}

// Refresh handles POST /api/auth/refresh. A valid refresh token is rotated:
// the presented token is revoked and a fresh pair is issued. Reusing a
// rotated token fails.
func (s *Server) Refresh(c *fiber.Ctx) error {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := c.BodyParser(&req); err != nil || req.Refresh == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Refresh token is required"))
	}

	claims, err := s.parseToken(req.Refresh)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired refresh token"))
	}
	if typ, _ := claims["typ"].(string); typ != tokenTypeRefresh {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Not a refresh token"))
	}
	jti, _ := claims["jti"].(string)
	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid subject claim"))
	}

	if s.redis != nil {
		// Rotation: GETDEL so the token can be redeemed exactly once.
		stored, err := s.redis.GetDel(c.Context(), refreshKey(jti)).Result()
		if err != nil || stored != sub {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Refresh token has been revoked"))
		}
	}

	user, err := s.userRepo.GetByID(c.Context(), uint(userID))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Account no longer exists"))
	}

	pair, err := s.issueTokenPair(c, user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"access":  pair.Access,
		"refresh": pair.Refresh,
	})
}

// Logout handles POST /api/auth/logout. The refresh token is revoked and the
// presented access token's jti is blacklisted for its remaining lifetime.
// Success is 205; any token problem is a flat 400.
func (s *Server) Logout(c *fiber.Ctx) error {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := c.BodyParser(&req); err != nil || req.Refresh == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid token"))
	}

	claims, err := s.parseToken(req.Refresh)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid token"))
	}
	if typ, _ := claims["typ"].(string); typ != tokenTypeRefresh {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid token"))
	}

	if s.redis != nil {
		if jti, _ := claims["jti"].(string); jti != "" {
			deleted, err := s.redis.Del(c.Context(), refreshKey(jti)).Result()
			if err != nil || deleted == 0 {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError("Invalid token"))
			}
		}
		// Also revoke the access token used for this request, if any.
		s.blacklistRequestAccessToken(c)
	}

	return c.SendStatus(fiber.StatusResetContent)
}

// blacklistRequestAccessToken blacklists the Bearer token's jti until the
// token would have expired anyway. Best-effort.
func (s *Server) blacklistRequestAccessToken(c *fiber.Ctx) {
	authHeader := c.Get("Authorization")
	const prefix = "Bearer "
	if len(authHeader) <= len(prefix) || authHeader[:len(prefix)] != prefix {
		return
	}
	claims, err := s.parseToken(authHeader[len(prefix):])
	if err != nil {
		return
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return
	}
	ttl := accessTokenTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining > 0 {
			ttl = remaining
		}
	}
	s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl)
}

// issueTokenPair creates an access/refresh pair and registers the refresh
// token for rotation tracking.
func (s *Server) issueTokenPair(c *fiber.Ctx, user *models.User) (*TokenPair, error) {
	access, _, err := s.generateToken(user, tokenTypeAccess, accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, refreshJTI, err := s.generateToken(user, tokenTypeRefresh, refreshTokenTTL)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		sub := strconv.FormatUint(uint64(user.ID), 10)
		if err := s.redis.Set(c.Context(), refreshKey(refreshJTI), sub, refreshTokenTTL).Err(); err != nil {
			return nil, err
		}
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// generateToken creates a signed JWT of the given type and lifetime.
func (s *Server) generateToken(user *models.User, typ string, ttl time.Duration) (string, string, error) {
	if s.config.JWTSecret == "" {
		return "", "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	jti := generateJTI()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"username": user.UsernameOrEmail(),
		"typ":      typ,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      jti,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	return signed, jti, err
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

func refreshKey(jti string) string {
	return "refresh:" + jti
}
