package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivelabs/loop/client/internal/gateway"
	"github.com/nivelabs/loop/client/internal/models"
	"github.com/nivelabs/loop/client/internal/repositories"
)

type fakeLikes struct {
	repositories.LikeRepository
	counts map[string]int64
	liked  map[string]bool
	err    error
}

func (f *fakeLikes) GetLikesCountByPostID(ctx context.Context, postID string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[postID], nil
}

func (f *fakeLikes) HasUserLikedPost(ctx context.Context, userID, postID string) (bool, error) {
	return f.liked[postID], nil
}

type fakeComments struct {
	repositories.CommentRepository
	counts map[string]int64
}

func (f *fakeComments) GetCommentsCountByPostID(ctx context.Context, postID string) (int64, error) {
	return f.counts[postID], nil
}

type fakeUsers struct {
	repositories.UserRepository
	byID  map[string]*models.User
	calls int
}

func (f *fakeUsers) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	f.calls++
	u, ok := f.byID[id]
	if !ok {
		return nil, gateway.ErrNotFound
	}
	return u, nil
}

func TestEnrichVideoPosts(t *testing.T) {
	posts := []models.Post{
		post("p1", "alice", "https://cdn/v1.mp4", time.Hour),
		post("p2", "alice", "https://cdn/v2.mp4", 2*time.Hour),
		post("p3", "bob", "https://cdn/v3.mp4", 3*time.Hour),
	}
	likes := &fakeLikes{
		counts: map[string]int64{"p1": 12, "p3": 1},
		liked:  map[string]bool{"p3": true},
	}
	comments := &fakeComments{counts: map[string]int64{"p1": 4}}
	users := &fakeUsers{byID: map[string]*models.User{
		"alice": {ID: "alice", Handle: "alice", DisplayName: "Alice"},
		"bob":   {ID: "bob", Handle: "bob", DisplayName: "Bob"},
	}}
	svc := NewService(&fakePosts{}, &fakeStories{}, likes, comments, users)

	items := svc.EnrichVideoPosts(context.Background(), "me", posts)

	require.Len(t, items, 3)
	assert.Equal(t, int64(12), items[0].LikeCount)
	assert.Equal(t, int64(4), items[0].CommentCount)
	assert.False(t, items[0].Liked)
	assert.True(t, items[2].Liked)
	assert.Equal(t, "Alice", items[0].Author.DisplayName)
	assert.Equal(t, "Bob", items[2].Author.DisplayName)

	// alice authors two posts but is fetched once.
	assert.Equal(t, 2, users.calls)
}

func TestEnrichVideoPostsSwallowsPerItemFailures(t *testing.T) {
	posts := []models.Post{post("p1", "ghost", "https://cdn/v1.mp4", time.Hour)}
	likes := &fakeLikes{err: errors.New("count fetch failed"), liked: map[string]bool{}}
	comments := &fakeComments{counts: map[string]int64{}}
	users := &fakeUsers{byID: map[string]*models.User{}}
	svc := NewService(&fakePosts{}, &fakeStories{}, likes, comments, users)

	items := svc.EnrichVideoPosts(context.Background(), "me", posts)

	require.Len(t, items, 1, "a failed prefetch keeps the item with fallbacks")
	assert.Zero(t, items[0].LikeCount)
	assert.Empty(t, items[0].Author.ID)
	assert.Equal(t, "p1", items[0].ID)
}
