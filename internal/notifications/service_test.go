package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivelabs/loop/client/internal/models"
	"github.com/nivelabs/loop/client/internal/repositories"
)

type fakeNotifications struct {
	repositories.NotificationRepository
	created []*models.Notification
}

func (f *fakeNotifications) CreateNotification(ctx context.Context, n *models.Notification) error {
	f.created = append(f.created, n)
	return nil
}

func TestShape(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		n          models.Notification
		wantIcon   string
		wantTitle  string
		wantScreen string
	}{
		{
			name:       "like navigates to the post",
			n:          models.Notification{Type: models.NotificationLike, RefType: models.RefPost},
			wantIcon:   "heart",
			wantTitle:  "New like",
			wantScreen: "post",
		},
		{
			name:       "comment navigates to the post",
			n:          models.Notification{Type: models.NotificationComment, RefType: models.RefPost},
			wantIcon:   "chat",
			wantTitle:  "New comment",
			wantScreen: "post",
		},
		{
			name:       "follow navigates to the profile",
			n:          models.Notification{Type: models.NotificationFollow, RefType: models.RefUser},
			wantIcon:   "user-plus",
			wantTitle:  "New follower",
			wantScreen: "profile",
		},
		{
			name:      "verification has no navigation target",
			n:         models.Notification{Type: models.NotificationVerification},
			wantIcon:  "badge-check",
			wantTitle: "Verification update",
		},
		{
			name:      "unknown type falls back to the bell",
			n:         models.Notification{Type: "something-new"},
			wantIcon:  "bell",
			wantTitle: "Notification",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Shape(tc.n, now)
			assert.Equal(t, tc.wantIcon, s.Icon)
			assert.Equal(t, tc.wantTitle, s.Title)
			assert.Equal(t, tc.wantScreen, s.Screen)
		})
	}
}

func TestShapeFormatsRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	n := models.Notification{Type: models.NotificationLike, CreatedAt: now.Add(-3 * time.Hour)}
	assert.Equal(t, "3h", Shape(n, now).When)
}

func TestNotifySkipsSelf(t *testing.T) {
	repo := &fakeNotifications{}
	svc := NewService(repo)
	me := &models.User{ID: "u1", DisplayName: "Jane"}

	require.NoError(t, svc.NotifyLike(context.Background(), me, &models.Post{ID: "p1", AuthorID: "u1"}))
	require.NoError(t, svc.NotifyComment(context.Background(), me, &models.Post{ID: "p1", AuthorID: "u1"}))
	require.NoError(t, svc.NotifyFollow(context.Background(), me, "u1"))
	assert.Empty(t, repo.created, "actions on your own content never announce")
}

func TestNotifyLikeAddressesPostAuthor(t *testing.T) {
	repo := &fakeNotifications{}
	svc := NewService(repo)
	actor := &models.User{ID: "u1", DisplayName: "Jane"}

	require.NoError(t, svc.NotifyLike(context.Background(), actor, &models.Post{ID: "p1", AuthorID: "u2"}))

	require.Len(t, repo.created, 1)
	n := repo.created[0]
	assert.Equal(t, "u2", n.TargetUserID)
	assert.Equal(t, models.NotificationLike, n.Type)
	assert.Equal(t, "p1", n.RefID)
	assert.Equal(t, models.RefPost, n.RefType)
	assert.Contains(t, n.Content, "Jane")
}

func TestNotifyFollowReferencesActor(t *testing.T) {
	repo := &fakeNotifications{}
	svc := NewService(repo)
	actor := &models.User{ID: "u1", DisplayName: "Jane"}

	require.NoError(t, svc.NotifyFollow(context.Background(), actor, "u2"))

	require.Len(t, repo.created, 1)
	n := repo.created[0]
	assert.Equal(t, "u2", n.TargetUserID)
	assert.Equal(t, models.NotificationFollow, n.Type)
	assert.Equal(t, "u1", n.RefID)
	assert.Equal(t, models.RefUser, n.RefType)
}
