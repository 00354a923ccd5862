package service

import (
	"context"
	"strings"

	"ripple/internal/authz"
	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

type PostService struct {
	postRepo    repository.PostRepository
	hashtagRepo repository.HashtagRepository
}

type CreatePostInput struct {
	Content     string
	Image       string
	IsPublished bool
	Hashtags    []string
}

type UpdatePostInput struct {
	PostID      uint
	Content     *string
	Image       *string
	IsPublished *bool
	// Hashtags fully replaces the attachment set when non-nil; an empty
	// slice detaches everything.
	Hashtags []string
}

type ListPostsInput struct {
	Hashtag  string
	AuthorID uint
	Limit    int
	Offset   int
}

func NewPostService(postRepo repository.PostRepository, hashtagRepo repository.HashtagRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		hashtagRepo: hashtagRepo,
	}
}

const maxContentLen = 10000
const maxHashtagLen = 50

// normalizeHashtags trims whitespace and leading '#', lowercases, and
// de-duplicates while preserving first-seen order.
func normalizeHashtags(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		n := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "#"))
		if n == "" {
			continue
		}
		if len(n) > maxHashtagLen {
			return nil, models.NewValidationError("Hashtag too long (max 50 characters)")
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out, nil
}

func (s *PostService) resolveHashtags(ctx context.Context, names []string) ([]models.Hashtag, error) {
	normalized, err := normalizeHashtags(names)
	if err != nil {
		return nil, err
	}
	return s.hashtagRepo.GetOrCreateAll(ctx, normalized)
}

// CreatePost creates a post authored by the actor. Any authenticated user
// may post; hashtag names are resolved get-or-create and repeated names
// attach once.
func (s *PostService) CreatePost(ctx context.Context, actor authz.Actor, in CreatePostInput) (*models.Post, error) {
	if err := authz.ForPost(actor, authz.ActionCreate, 0); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 10000 characters)")
	}

	tags, err := s.resolveHashtags(ctx, in.Hashtags)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID:    actor.ID,
		Content:     in.Content,
		Image:       in.Image,
		IsPublished: in.IsPublished,
	}
	if err := s.postRepo.Create(ctx, post, tags); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, actor.ID)
}

func (s *PostService) GetPost(ctx context.Context, actor authz.Actor, id uint) (*models.Post, error) {
	if err := authz.ForPost(actor, authz.ActionRetrieve, 0); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, id, actor.ID)
}

func (s *PostService) ListPosts(ctx context.Context, actor authz.Actor, in ListPostsInput) ([]*models.Post, error) {
	if err := authz.ForPost(actor, authz.ActionList, 0); err != nil {
		return nil, err
	}
	limit := in.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	filter := repository.PostFilter{AuthorID: in.AuthorID}
	if name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(in.Hashtag), "#")); name != "" {
		tag, err := s.hashtagRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if tag == nil {
			// Unknown tag matches nothing; skip the join entirely.
			return []*models.Post{}, nil
		}
		filter.Hashtag = tag.Name
	}
	return s.postRepo.List(ctx, filter, limit, in.Offset, actor.ID)
}

// UpdatePost applies a partial update. Owner or staff only; the author never
// changes; a provided hashtag list replaces the attachment set.
func (s *PostService) UpdatePost(ctx context.Context, actor authz.Actor, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := authz.ForPost(actor, authz.ActionUpdate, post.AuthorID); err != nil {
		return nil, err
	}

	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, models.NewValidationError("Content is required")
		}
		if len(*in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 10000 characters)")
		}
		post.Content = *in.Content
	}
	if in.Image != nil {
		post.Image = *in.Image
	}
	if in.IsPublished != nil {
		post.IsPublished = *in.IsPublished
	}

	var tags []models.Hashtag
	if in.Hashtags != nil {
		tags, err = s.resolveHashtags(ctx, in.Hashtags)
		if err != nil {
			return nil, err
		}
		if tags == nil {
			tags = []models.Hashtag{}
		}
	}

	if err := s.postRepo.Update(ctx, post, tags); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, actor.ID)
}

func (s *PostService) DeletePost(ctx context.Context, actor authz.Actor, id uint) error {
	post, err := s.postRepo.GetByID(ctx, id, actor.ID)
	if err != nil {
		return err
	}
	if err := authz.ForPost(actor, authz.ActionDestroy, post.AuthorID); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, id)
}

// ToggleLike adds the actor's like when absent and removes it when present.
// Returns the resulting liked state.
func (s *PostService) ToggleLike(ctx context.Context, actor authz.Actor, postID uint) (bool, error) {
	if !actor.Authenticated {
		return false, models.NewUnauthorizedError("Authentication required")
	}
	if _, err := s.postRepo.GetByID(ctx, postID, actor.ID); err != nil {
		return false, err
	}

	liked, err := s.postRepo.IsLiked(ctx, actor.ID, postID)
	if err != nil {
		return false, err
	}
	if liked {
		if err := s.postRepo.Unlike(ctx, actor.ID, postID); err != nil {
			return false, err
		}
		observability.LikeToggles.WithLabelValues("unliked").Inc()
		return false, nil
	}
	if err := s.postRepo.Like(ctx, actor.ID, postID); err != nil {
		return false, err
	}
	observability.LikeToggles.WithLabelValues("liked").Inc()
	return true, nil
}
