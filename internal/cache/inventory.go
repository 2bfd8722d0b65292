package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	PostKeyPrefix     = "post:%d"
	PostsListKey      = "posts:all"
	SessionDenyPrefix = "session:denied:%s"
)

const (
	UserTTL      = 5 * time.Minute
	PostTTL      = 30 * time.Minute
	PostsListTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

// SessionDenyKey is the blacklist entry for a revoked session token ID.
func SessionDenyKey(jti string) string {
	return fmt.Sprintf(SessionDenyPrefix, jti)
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

func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, PostsListKey)
}

// DenySession blacklists a session token ID until its natural expiry.
func DenySession(ctx context.Context, jti string, ttl time.Duration) {
	if client == nil || jti == "" || ttl <= 0 {
		return
	}
	client.Set(ctx, SessionDenyKey(jti), "1", ttl)
}

// IsSessionDenied reports whether a session token ID has been revoked.
func IsSessionDenied(ctx context.Context, jti string) bool {
	if client == nil || jti == "" {
		return false
	}
	n, err := client.Exists(ctx, SessionDenyKey(jti)).Result()
	return err == nil && n > 0
}
