package server

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowUser(t *testing.T) {
	app, _ := setupTestServer(t)
	alice := registerUser(t, app, "alice@example.com", "alice")
	bob := registerUser(t, app, "bob@example.com", "bob")

	t.Run("creates the edge", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/follow/%d", bob.User.ID), alice.Access, nil)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	})

	t.Run("double follow conflicts", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/follow/%d", bob.User.ID), alice.Access, nil)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("self follow rejected", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/follow/%d", alice.User.ID), alice.Access, nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing target", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/follow/9999", alice.Access, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/follow/%d", bob.User.ID), "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/follow/abc", alice.Access, nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestUnfollowUser(t *testing.T) {
	app, _ := setupTestServer(t)
	alice := registerUser(t, app, "alice@example.com", "alice")
	bob := registerUser(t, app, "bob@example.com", "bob")

	resp := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/follow/%d", bob.User.ID), alice.Access, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	t.Run("owner removes the edge", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/follow/%d", bob.User.ID), alice.Access, nil)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	})

	t.Run("absent edge is not found", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/follow/%d", bob.User.ID), alice.Access, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestFollowListings(t *testing.T) {
	app, _ := setupTestServer(t)
	alice := registerUser(t, app, "alice@example.com", "alice")
	bob := registerUser(t, app, "bob@example.com", "bob")
	carol := registerUser(t, app, "carol@example.com", "carol")

	// alice→carol first, then bob→carol.
	resp := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/follow/%d", carol.User.ID), alice.Access, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/follow/%d", carol.User.ID), bob.Access, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	t.Run("followers are newest edge first", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/followers", carol.Access, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var followers []struct {
			ID uint `json:"id"`
		}
		decodeBody(t, resp, &followers)
		require.Len(t, followers, 2)
		assert.Equal(t, bob.User.ID, followers[0].ID)
		assert.Equal(t, alice.User.ID, followers[1].ID)
	})

	t.Run("followings list the far end of outgoing edges", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/followings", alice.Access, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var following []struct {
			ID uint `json:"id"`
		}
		decodeBody(t, resp, &following)
		require.Len(t, following, 1)
		assert.Equal(t, carol.User.ID, following[0].ID)
	})

	t.Run("listings for a user with no edges are empty", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/followers", alice.Access, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var followers []struct {
			ID uint `json:"id"`
		}
		decodeBody(t, resp, &followers)
		assert.Empty(t, followers)
	})
}
