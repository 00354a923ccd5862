package authz

import (
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	return appErr.Code
}

func TestReadMostly(t *testing.T) {
	t.Parallel()

	anon := Actor{}
	user := Actor{ID: 1, Authenticated: true}
	staff := Actor{ID: 2, Authenticated: true, Staff: true}

	assert.Equal(t, "UNAUTHORIZED", appCode(t, ReadMostly(anon, ActionList)))
	assert.NoError(t, ReadMostly(user, ActionList))
	assert.NoError(t, ReadMostly(user, ActionRetrieve))
	assert.Equal(t, "FORBIDDEN", appCode(t, ReadMostly(user, ActionDestroy)))
	assert.NoError(t, ReadMostly(staff, ActionDestroy))
}

func TestOwnerOrAdmin(t *testing.T) {
	t.Parallel()

	owner := Actor{ID: 7, Authenticated: true}
	other := Actor{ID: 8, Authenticated: true}
	super := Actor{ID: 9, Authenticated: true, Superuser: true}

	assert.NoError(t, OwnerOrAdmin(owner, 7))
	assert.Equal(t, "FORBIDDEN", appCode(t, OwnerOrAdmin(other, 7)))
	assert.NoError(t, OwnerOrAdmin(super, 7))
	assert.Equal(t, "UNAUTHORIZED", appCode(t, OwnerOrAdmin(Actor{}, 7)))
}

func TestForUser(t *testing.T) {
	t.Parallel()

	self := Actor{ID: 3, Authenticated: true}
	other := Actor{ID: 4, Authenticated: true}

	assert.NoError(t, ForUser(self, ActionUpdate, 3), "user can update own record")
	assert.Equal(t, "FORBIDDEN", appCode(t, ForUser(other, ActionUpdate, 3)),
		"non-staff user cannot update someone else")
	assert.NoError(t, ForUser(other, ActionList, 0))
	assert.NoError(t, ForUser(other, ActionRetrieve, 3))
}

func TestForPost(t *testing.T) {
	t.Parallel()

	author := Actor{ID: 5, Authenticated: true}
	reader := Actor{ID: 6, Authenticated: true}
	staff := Actor{ID: 7, Authenticated: true, Staff: true}

	// Any authenticated user may create posts.
	assert.NoError(t, ForPost(reader, ActionCreate, 0))
	assert.Equal(t, "UNAUTHORIZED", appCode(t, ForPost(Actor{}, ActionCreate, 0)))

	assert.NoError(t, ForPost(author, ActionUpdate, 5))
	assert.Equal(t, "FORBIDDEN", appCode(t, ForPost(reader, ActionUpdate, 5)))
	assert.NoError(t, ForPost(staff, ActionDestroy, 5))
	assert.Equal(t, "FORBIDDEN", appCode(t, ForPost(reader, ActionDestroy, 5)))
}

func TestForFollowEdge(t *testing.T) {
	t.Parallel()

	follower := Actor{ID: 10, Authenticated: true}
	stranger := Actor{ID: 11, Authenticated: true}

	assert.NoError(t, ForFollowEdge(follower, ActionCreate, 0))
	// The following user can always destroy their own edge.
	assert.NoError(t, ForFollowEdge(follower, ActionDestroy, 10))
	assert.Equal(t, "FORBIDDEN", appCode(t, ForFollowEdge(stranger, ActionDestroy, 10)))
}
