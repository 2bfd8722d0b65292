package repository

import (
	"context"
	"testing"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRepoCache backs the package-level cache with miniredis for one test.
// TestMain nils the client, so the cleanup restores that default.
func setupRepoCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
	return mr
}

func TestUserRepository_DeleteInvalidatesCachedPosts(t *testing.T) {
	mr := setupRepoCache(t)
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	user := &models.User{Name: "Author", Username: "cachedauthor", Email: "cachedauthor@example.com", PasswordHash: "h"}
	require.NoError(t, userRepo.Create(ctx, user))

	post := &models.Post{Title: "Mine", Slug: "mine", Content: "body", UserID: user.ID}
	require.NoError(t, postRepo.Create(ctx, post))

	// Warm the per-post cache entry.
	_, err := postRepo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.PostKey(post.ID)))

	require.NoError(t, userRepo.Delete(ctx, user.ID))

	assert.False(t, mr.Exists(cache.PostKey(post.ID)), "cascade delete must drop the post's cache entry")
	assert.False(t, mr.Exists(cache.UserKey(user.ID)))

	_, err = postRepo.GetByID(ctx, post.ID)
	assert.True(t, models.IsNotFound(err), "a deleted author's post must not be served from cache")
}

func TestUserRepository_UpdateInvalidatesCachedPosts(t *testing.T) {
	mr := setupRepoCache(t)
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	postRepo := NewPostRepository(db)
	ctx := context.Background()

	user := &models.User{Name: "Old Name", Username: "renameme", Email: "renameme@example.com", PasswordHash: "h"}
	require.NoError(t, userRepo.Create(ctx, user))

	post := &models.Post{Title: "Mine", Slug: "mine", Content: "body", UserID: user.ID}
	require.NoError(t, postRepo.Create(ctx, post))

	_, err := postRepo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.PostKey(post.ID)))

	user.Name = "New Name"
	require.NoError(t, userRepo.Update(ctx, user))

	assert.False(t, mr.Exists(cache.PostKey(post.ID)), "profile changes must drop cached posts embedding the author")

	got, err := postRepo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.User.Name)
}
