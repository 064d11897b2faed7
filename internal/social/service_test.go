package social

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivelabs/loop/client/internal/gateway"
	"github.com/nivelabs/loop/client/internal/models"
	"github.com/nivelabs/loop/client/internal/notifications"
	"github.com/nivelabs/loop/client/internal/repositories"
	"github.com/nivelabs/loop/client/internal/session"
	"github.com/nivelabs/loop/client/validators"
)

type fakeUsers struct {
	repositories.UserRepository
	byID map[string]*models.User
}

func (f *fakeUsers) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUsers) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, gateway.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gateway.ErrNotFound
}

func (f *fakeUsers) GetUserByHandle(ctx context.Context, handle string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Handle == handle {
			return u, nil
		}
	}
	return nil, gateway.ErrNotFound
}

type fakeSessions struct {
	repositories.SessionRepository
}

func (f *fakeSessions) CreateSession(ctx context.Context, userID string) (*models.Session, error) {
	now := time.Now()
	return &models.Session{ID: uuid.NewString(), UserID: userID, CreatedAt: now, ExpiresAt: now.Add(repositories.SessionTTL)}, nil
}

func (f *fakeSessions) DeleteSession(ctx context.Context, id string) error { return nil }

type fakePosts struct {
	repositories.PostRepository
	byID    map[string]*models.Post
	deleted []string
	updated []string
}

func (f *fakePosts) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, gateway.ErrNotFound
	}
	return p, nil
}

func (f *fakePosts) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = uuid.NewString()
	post.CreatedAt = time.Now()
	f.byID[post.ID] = post
	return nil
}

func (f *fakePosts) UpdatePost(ctx context.Context, id string, req *models.UpdatePostRequest) error {
	f.updated = append(f.updated, id)
	return nil
}

func (f *fakePosts) DeletePost(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeLikes struct {
	repositories.LikeRepository
	createErr error
	deleteErr error
	creates   int
	deletes   int
}

func (f *fakeLikes) CreateLike(ctx context.Context, userID, postID string) error {
	f.creates++
	return f.createErr
}

func (f *fakeLikes) DeleteLike(ctx context.Context, userID, postID string) error {
	f.deletes++
	return f.deleteErr
}

type fakeFollows struct {
	repositories.FollowRepository
	createErr error
	deleteErr error
	creates   int
	deletes   int
}

func (f *fakeFollows) CreateFollow(ctx context.Context, followerID, followedID string) error {
	f.creates++
	return f.createErr
}

func (f *fakeFollows) DeleteFollow(ctx context.Context, followerID, followedID string) error {
	f.deletes++
	return f.deleteErr
}

type fakeNotifications struct {
	repositories.NotificationRepository
	created []*models.Notification
}

func (f *fakeNotifications) CreateNotification(ctx context.Context, n *models.Notification) error {
	f.created = append(f.created, n)
	return nil
}

type fakeVerifications struct {
	repositories.VerificationRepository
	err      error
	requests []string
}

func (f *fakeVerifications) SubmitRequest(ctx context.Context, userID string) error {
	if f.err != nil {
		return f.err
	}
	f.requests = append(f.requests, userID)
	return nil
}

type fixture struct {
	svc      *Service
	sess     *session.Context
	me       *models.User
	posts    *fakePosts
	likes    *fakeLikes
	follows  *fakeFollows
	notified *fakeNotifications
	verify   *fakeVerifications
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := &fakeUsers{byID: make(map[string]*models.User)}
	local, err := session.OpenLocalStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })

	validate := validators.NewValidator()
	sess := session.New(users, &fakeSessions{}, local, validate, "test-secret")
	me, err := sess.SignUp(context.Background(), &models.SignUpRequest{
		Email:           "jane@example.com",
		Password:        "hunter2hunter2",
		ConfirmPassword: "hunter2hunter2",
		DisplayName:     "Jane Doe",
		Handle:          "jane_doe",
	})
	require.NoError(t, err)

	f := &fixture{
		sess:     sess,
		me:       me,
		posts:    &fakePosts{byID: make(map[string]*models.Post)},
		likes:    &fakeLikes{},
		follows:  &fakeFollows{},
		notified: &fakeNotifications{},
		verify:   &fakeVerifications{},
	}
	f.svc = NewService(
		sess,
		f.posts, nil, f.likes, f.follows, nil, nil, f.verify,
		notifications.NewService(f.notified),
		nil, validate, 1<<20,
	)
	return f
}

func (f *fixture) addPost(author string) *models.Post {
	p := &models.Post{ID: uuid.NewString(), AuthorID: author, Title: "a post", CreatedAt: time.Now()}
	f.posts.byID[p.ID] = p
	return p
}

func TestToggleLikeActivatesAndAnnounces(t *testing.T) {
	f := newFixture(t)
	post := f.addPost("someone-else")
	st := &LikeState{Liked: false, Count: 3}

	require.NoError(t, f.svc.ToggleLike(context.Background(), st, post.ID))

	assert.True(t, st.Liked)
	assert.Equal(t, int64(4), st.Count)
	assert.Equal(t, 1, f.likes.creates)
	require.Len(t, f.notified.created, 1)
	assert.Equal(t, "someone-else", f.notified.created[0].TargetUserID)
}

func TestToggleLikeDeactivatesQuietly(t *testing.T) {
	f := newFixture(t)
	post := f.addPost("someone-else")
	st := &LikeState{Liked: true, Count: 4}

	require.NoError(t, f.svc.ToggleLike(context.Background(), st, post.ID))

	assert.False(t, st.Liked)
	assert.Equal(t, int64(3), st.Count)
	assert.Equal(t, 1, f.likes.deletes)
	assert.Empty(t, f.notified.created, "unliking never announces")
}

func TestToggleLikeRollsBackOnWriteFailure(t *testing.T) {
	f := newFixture(t)
	post := f.addPost("someone-else")
	f.likes.createErr = errors.New("store unavailable")
	st := &LikeState{Liked: false, Count: 7}

	err := f.svc.ToggleLike(context.Background(), st, post.ID)
	require.Error(t, err)

	assert.False(t, st.Liked, "failed write must restore the pre-toggle state")
	assert.Equal(t, int64(7), st.Count)
	assert.Empty(t, f.notified.created)
}

func TestToggleLikeTreatsDuplicateAsSuccess(t *testing.T) {
	f := newFixture(t)
	post := f.addPost("someone-else")
	f.likes.createErr = gateway.ErrAlreadyExists
	st := &LikeState{}

	require.NoError(t, f.svc.ToggleLike(context.Background(), st, post.ID))
	assert.True(t, st.Liked)
}

func TestToggleFollow(t *testing.T) {
	f := newFixture(t)
	st := &FollowState{Following: false, Followers: 10}

	require.NoError(t, f.svc.ToggleFollow(context.Background(), st, "other-user"))

	assert.True(t, st.Following)
	assert.Equal(t, int64(11), st.Followers)
	assert.Equal(t, 1, f.follows.creates)
	require.Len(t, f.notified.created, 1)
	assert.Equal(t, models.NotificationFollow, f.notified.created[0].Type)
	assert.Equal(t, "other-user", f.notified.created[0].TargetUserID)
}

func TestToggleFollowRejectsSelf(t *testing.T) {
	f := newFixture(t)
	st := &FollowState{}

	err := f.svc.ToggleFollow(context.Background(), st, f.me.ID)
	require.Error(t, err)
	assert.False(t, st.Following, "state must not move on a rejected toggle")
	assert.Zero(t, f.follows.creates)
}

func TestToggleFollowRollsBackOnWriteFailure(t *testing.T) {
	f := newFixture(t)
	f.follows.createErr = errors.New("store unavailable")
	st := &FollowState{Following: false, Followers: 5}

	err := f.svc.ToggleFollow(context.Background(), st, "other-user")
	require.Error(t, err)
	assert.False(t, st.Following)
	assert.Equal(t, int64(5), st.Followers)
	assert.Empty(t, f.notified.created)
}

func TestMutationsRequireIdentity(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sess.SignOut(context.Background()))

	err := f.svc.ToggleLike(context.Background(), &LikeState{}, "p1")
	assert.ErrorIs(t, err, session.ErrSignedOut)

	_, err = f.svc.CreatePost(context.Background(), &models.CreatePostRequest{Title: "hello"})
	assert.ErrorIs(t, err, session.ErrSignedOut)
}

func TestCreatePostSetsAuthor(t *testing.T) {
	f := newFixture(t)

	post, err := f.svc.CreatePost(context.Background(), &models.CreatePostRequest{Title: "hello world"})
	require.NoError(t, err)
	assert.Equal(t, f.me.ID, post.AuthorID)
	assert.NotEmpty(t, post.ID)
}

func TestEditPostEnforcesOwnership(t *testing.T) {
	f := newFixture(t)
	theirs := f.addPost("someone-else")
	mine := f.addPost(f.me.ID)
	req := &models.UpdatePostRequest{Title: "new title"}

	err := f.svc.EditPost(context.Background(), theirs.ID, req)
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, f.svc.EditPost(context.Background(), mine.ID, req))
	assert.Equal(t, []string{mine.ID}, f.posts.updated)
}

func TestDeletePostEnforcesOwnership(t *testing.T) {
	f := newFixture(t)
	theirs := f.addPost("someone-else")
	mine := f.addPost(f.me.ID)

	assert.ErrorIs(t, f.svc.DeletePost(context.Background(), theirs.ID), ErrNotOwner)
	require.NoError(t, f.svc.DeletePost(context.Background(), mine.ID))
	assert.Equal(t, []string{mine.ID}, f.posts.deleted)
}

func TestRequestVerification(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.RequestVerification(context.Background()))
	assert.Equal(t, []string{f.me.ID}, f.verify.requests)

	f.verify.err = gateway.ErrAlreadyExists
	err := f.svc.RequestVerification(context.Background())
	assert.ErrorContains(t, err, "already submitted")
}
