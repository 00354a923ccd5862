package service

import (
	"context"
	"testing"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userRepoStub struct {
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getForUpdateFn     func(context.Context, uint) (*models.User, error)
	getByIDWithPostsFn func(context.Context, uint, int) (*models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	getByUsernameFn    func(context.Context, string) (*models.User, error)
	createFn           func(context.Context, *models.User) error
	updateFn           func(context.Context, *models.User) error
	deleteFn           func(context.Context, uint) error
	listFn             func(context.Context, repository.UserFilter, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetForUpdate(ctx context.Context, id uint) (*models.User, error) {
	return s.getForUpdateFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithPosts(ctx context.Context, id uint, limit int) (*models.User, error) {
	return s.getByIDWithPostsFn(ctx, id, limit)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, filter repository.UserFilter, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, filter, limit, offset)
}

// noopUserRepo returns a stub whose every method fails the test when called.
func noopUserRepo(t *testing.T) *userRepoStub {
	fail := func(name string) {
		t.Helper()
		t.Fatalf("unexpected call to userRepo.%s", name)
	}
	return &userRepoStub{
		getByIDFn:          func(context.Context, uint) (*models.User, error) { fail("GetByID"); return nil, nil },
		getForUpdateFn:     func(context.Context, uint) (*models.User, error) { fail("GetForUpdate"); return nil, nil },
		getByIDWithPostsFn: func(context.Context, uint, int) (*models.User, error) { fail("GetByIDWithPosts"); return nil, nil },
		getByEmailFn:       func(context.Context, string) (*models.User, error) { fail("GetByEmail"); return nil, nil },
		getByUsernameFn:    func(context.Context, string) (*models.User, error) { fail("GetByUsername"); return nil, nil },
		createFn:           func(context.Context, *models.User) error { fail("Create"); return nil },
		updateFn:           func(context.Context, *models.User) error { fail("Update"); return nil },
		deleteFn:           func(context.Context, uint) error { fail("Delete"); return nil },
		listFn: func(context.Context, repository.UserFilter, int, int) ([]models.User, error) {
			fail("List")
			return nil, nil
		},
	}
}

type followRepoStub struct {
	createFn        func(context.Context, *models.FollowEdge) error
	getPairFn       func(context.Context, uint, uint) (*models.FollowEdge, error)
	deletePairFn    func(context.Context, uint, uint) error
	listFollowingFn func(context.Context, uint) ([]models.FollowEdge, error)
	listFollowersFn func(context.Context, uint) ([]models.FollowEdge, error)
}

func (s *followRepoStub) Create(ctx context.Context, edge *models.FollowEdge) error {
	return s.createFn(ctx, edge)
}
func (s *followRepoStub) GetPair(ctx context.Context, followerID, followeeID uint) (*models.FollowEdge, error) {
	return s.getPairFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) DeletePair(ctx context.Context, followerID, followeeID uint) error {
	return s.deletePairFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) ListFollowing(ctx context.Context, userID uint) ([]models.FollowEdge, error) {
	return s.listFollowingFn(ctx, userID)
}
func (s *followRepoStub) ListFollowers(ctx context.Context, userID uint) ([]models.FollowEdge, error) {
	return s.listFollowersFn(ctx, userID)
}

type postRepoStub struct {
	createFn  func(context.Context, *models.Post, []models.Hashtag) error
	getByIDFn func(context.Context, uint, uint) (*models.Post, error)
	listFn    func(context.Context, repository.PostFilter, int, int, uint) ([]*models.Post, error)
	updateFn  func(context.Context, *models.Post, []models.Hashtag) error
	deleteFn  func(context.Context, uint) error
	isLikedFn func(context.Context, uint, uint) (bool, error)
	likeFn    func(context.Context, uint, uint) error
	unlikeFn  func(context.Context, uint, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post, tags []models.Hashtag) error {
	return s.createFn(ctx, post, tags)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, filter repository.PostFilter, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listFn(ctx, filter, limit, offset, currentUserID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post, tags []models.Hashtag) error {
	return s.updateFn(ctx, post, tags)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}

type hashtagRepoStub struct {
	getOrCreateFn    func(context.Context, string) (*models.Hashtag, error)
	getOrCreateAllFn func(context.Context, []string) ([]models.Hashtag, error)
	getByNameFn      func(context.Context, string) (*models.Hashtag, error)
}

func (s *hashtagRepoStub) GetOrCreate(ctx context.Context, name string) (*models.Hashtag, error) {
	return s.getOrCreateFn(ctx, name)
}
func (s *hashtagRepoStub) GetOrCreateAll(ctx context.Context, names []string) ([]models.Hashtag, error) {
	return s.getOrCreateAllFn(ctx, names)
}
func (s *hashtagRepoStub) GetByName(ctx context.Context, name string) (*models.Hashtag, error) {
	return s.getByNameFn(ctx, name)
}

// seqHashtagRepo assigns incrementing IDs per distinct name, mimicking the
// get-or-create upsert.
func seqHashtagRepo() *hashtagRepoStub {
	byName := map[string]uint{}
	var next uint
	stub := &hashtagRepoStub{}
	stub.getOrCreateFn = func(_ context.Context, name string) (*models.Hashtag, error) {
		id, ok := byName[name]
		if !ok {
			next++
			id = next
			byName[name] = id
		}
		return &models.Hashtag{ID: id, Name: name}, nil
	}
	stub.getByNameFn = func(_ context.Context, name string) (*models.Hashtag, error) {
		id, ok := byName[name]
		if !ok {
			return nil, nil
		}
		return &models.Hashtag{ID: id, Name: name}, nil
	}
	stub.getOrCreateAllFn = func(ctx context.Context, names []string) ([]models.Hashtag, error) {
		tags := make([]models.Hashtag, 0, len(names))
		for _, n := range names {
			tag, err := stub.getOrCreateFn(ctx, n)
			if err != nil {
				return nil, err
			}
			tags = append(tags, *tag)
		}
		return tags, nil
	}
	return stub
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}
