package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	PostKeyPrefix      = "post:%d"
	FollowersKeyPrefix = "user:%d:followers"
	FollowingKeyPrefix = "user:%d:following"
)

const (
	UserTTL   = 5 * time.Minute
	PostTTL   = 10 * time.Minute
	FollowTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func FollowersKey(userID uint) string {
	return fmt.Sprintf(FollowersKeyPrefix, userID)
}

func FollowingKey(userID uint) string {
	return fmt.Sprintf(FollowingKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateFollowGraph drops both edge views of the two users touched by a
// follow or unfollow.
func InvalidateFollowGraph(ctx context.Context, followerID, followeeID uint) {
	Invalidate(ctx, FollowingKey(followerID))
	Invalidate(ctx, FollowersKey(followeeID))
}
