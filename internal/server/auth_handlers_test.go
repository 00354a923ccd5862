package server

import (
	"strings"
	"testing"

	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	app, srv := setupTestServer(t)

	t.Run("creates account and returns token pair", func(t *testing.T) {
		out := registerUser(t, app, "alice@example.com", "alice")
		assert.NotEmpty(t, out.Access)
		assert.NotEmpty(t, out.Refresh)
		assert.Equal(t, "alice@example.com", out.User.Email)
		require.NotNil(t, out.User.Username)
		assert.Equal(t, "alice", *out.User.Username)
	})

	t.Run("password mismatch creates no row", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
			"email":     "bob@example.com",
			"password":  "secret1",
			"password2": "different",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var count int64
		require.NoError(t, srv.db.Model(&models.User{}).Where("email = ?", "bob@example.com").Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("short password rejected", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
			"email":     "carol@example.com",
			"password":  "abc1",
			"password2": "abc1",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
			"email":     "alice@example.com",
			"password":  "secret1",
			"password2": "secret1",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("password hash never leaves the API", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "alice@example.com",
			"password": "secret1",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var raw map[string]any
		decodeBody(t, resp, &raw)
		user, ok := raw["user"].(map[string]any)
		require.True(t, ok)
		_, hasPassword := user["password"]
		assert.False(t, hasPassword)
	})
}

func TestLogin(t *testing.T) {
	app, _ := setupTestServer(t)
	registerUser(t, app, "dave@example.com", "dave")

	t.Run("valid credentials", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "dave@example.com",
			"password": "secret1",
		})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "dave@example.com",
			"password": "wrong1",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown email", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
			"email":    "ghost@example.com",
			"password": "secret1",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRefreshRotation(t *testing.T) {
	app, _ := setupTestServer(t)
	out := registerUser(t, app, "erin@example.com", "erin")

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/refresh", "", fiber.Map{
		"refresh": out.Refresh,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var rotated struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decodeBody(t, resp, &rotated)
	assert.NotEmpty(t, rotated.Access)
	assert.NotEmpty(t, rotated.Refresh)
	assert.NotEqual(t, out.Refresh, rotated.Refresh)

	// The rotated-out token is spent.
	resp = doJSON(t, app, fiber.MethodPost, "/api/auth/refresh", "", fiber.Map{
		"refresh": out.Refresh,
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// The new one still works.
	resp = doJSON(t, app, fiber.MethodPost, "/api/auth/refresh", "", fiber.Map{
		"refresh": rotated.Refresh,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	app, _ := setupTestServer(t)
	out := registerUser(t, app, "frank@example.com", "frank")

	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/refresh", "", fiber.Map{
		"refresh": out.Access,
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogout(t *testing.T) {
	t.Run("success is 205 and revokes both tokens", func(t *testing.T) {
		app, _ := setupTestServer(t)
		out := registerUser(t, app, "gina@example.com", "gina")

		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/logout", out.Access, fiber.Map{
			"refresh": out.Refresh,
		})
		assert.Equal(t, fiber.StatusResetContent, resp.StatusCode)

		// Refresh token is gone.
		resp = doJSON(t, app, fiber.MethodPost, "/api/auth/refresh", "", fiber.Map{
			"refresh": out.Refresh,
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		// Access token jti is blacklisted.
		resp = doJSON(t, app, fiber.MethodGet, "/api/users", out.Access, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("any token problem is a flat 400", func(t *testing.T) {
		app, _ := setupTestServer(t)
		out := registerUser(t, app, "henry@example.com", "henry")

		for name, body := range map[string]fiber.Map{
			"missing":   {},
			"garbage":   {"refresh": "not.a.token"},
			"truncated": {"refresh": out.Refresh[:len(out.Refresh)/2]},
			"access":    {"refresh": out.Access},
		} {
			resp := doJSON(t, app, fiber.MethodPost, "/api/auth/logout", "", body)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "case %s", name)
		}
	})

	t.Run("double logout fails", func(t *testing.T) {
		app, _ := setupTestServer(t)
		out := registerUser(t, app, "ines@example.com", "ines")

		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/logout", "", fiber.Map{
			"refresh": out.Refresh,
		})
		require.Equal(t, fiber.StatusResetContent, resp.StatusCode)

		resp = doJSON(t, app, fiber.MethodPost, "/api/auth/logout", "", fiber.Map{
			"refresh": out.Refresh,
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestAuthRequired(t *testing.T) {
	app, _ := setupTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/users", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("mangled token", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/users", strings.Repeat("x", 40), nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("refresh token cannot access the API", func(t *testing.T) {
		out := registerUser(t, app, "judy@example.com", "judy")
		resp := doJSON(t, app, fiber.MethodGet, "/api/users", out.Refresh, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
