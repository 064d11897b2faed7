// Package notifications shapes notification documents for the notifications
// screen: icon/title per type, a navigation target, and relative timestamps.
package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/nivelabs/loop/client/internal/models"
	"github.com/nivelabs/loop/client/internal/repositories"
	"github.com/nivelabs/loop/client/pkg/relativetime"
)

// Shaped is a notification ready to render.
type Shaped struct {
	models.Notification
	Icon   string
	Title  string
	Screen string // tap-navigation target: "profile", "post" or ""
	When   string
}

// Service reads and writes notification documents.
type Service struct {
	repo repositories.NotificationRepository
	now  func() time.Time
}

// NewService wires the notification service.
func NewService(repo repositories.NotificationRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Shape maps a notification's type onto the icon, title and navigation target
// the screen uses.
func Shape(n models.Notification, now time.Time) Shaped {
	s := Shaped{Notification: n, When: relativetime.Format(now, n.CreatedAt)}

	switch n.Type {
	case models.NotificationLike:
		s.Icon, s.Title = "heart", "New like"
	case models.NotificationComment:
		s.Icon, s.Title = "chat", "New comment"
	case models.NotificationFollow:
		s.Icon, s.Title = "user-plus", "New follower"
	case models.NotificationVerification:
		s.Icon, s.Title = "badge-check", "Verification update"
	default:
		s.Icon, s.Title = "bell", "Notification"
	}

	switch n.RefType {
	case models.RefUser:
		s.Screen = "profile"
	case models.RefPost:
		s.Screen = "post"
	}
	return s
}

// List returns the user's notifications newest first, shaped for rendering.
func (s *Service) List(ctx context.Context, userID string) ([]Shaped, error) {
	raw, err := s.repo.GetByTargetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	shaped := make([]Shaped, len(raw))
	for i, n := range raw {
		shaped[i] = Shape(n, now)
	}
	return shaped, nil
}

// UnreadCount returns the badge count.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkViewed flips the unread flag when the user opens a notification.
func (s *Service) MarkViewed(ctx context.Context, id string) error {
	return s.repo.MarkViewed(ctx, id)
}

// MarkAllViewed clears the badge.
func (s *Service) MarkAllViewed(ctx context.Context, userID string) error {
	return s.repo.MarkAllViewed(ctx, userID)
}

// NotifyLike records a like notification for the post author. Self-likes are
// not announced.
func (s *Service) NotifyLike(ctx context.Context, actor *models.User, post *models.Post) error {
	if actor.ID == post.AuthorID {
		return nil
	}
	return s.repo.CreateNotification(ctx, &models.Notification{
		TargetUserID: post.AuthorID,
		Type:         models.NotificationLike,
		RefID:        post.ID,
		RefType:      models.RefPost,
		Content:      fmt.Sprintf("%s liked your post", actor.DisplayName),
	})
}

// NotifyComment records a comment notification for the post author.
func (s *Service) NotifyComment(ctx context.Context, actor *models.User, post *models.Post) error {
	if actor.ID == post.AuthorID {
		return nil
	}
	return s.repo.CreateNotification(ctx, &models.Notification{
		TargetUserID: post.AuthorID,
		Type:         models.NotificationComment,
		RefID:        post.ID,
		RefType:      models.RefPost,
		Content:      fmt.Sprintf("%s commented on your post", actor.DisplayName),
	})
}

// NotifyFollow records a follow notification for the followed user.
func (s *Service) NotifyFollow(ctx context.Context, actor *models.User, followedID string) error {
	if actor.ID == followedID {
		return nil
	}
	return s.repo.CreateNotification(ctx, &models.Notification{
		TargetUserID: followedID,
		Type:         models.NotificationFollow,
		RefID:        actor.ID,
		RefType:      models.RefUser,
		Content:      fmt.Sprintf("%s started following you", actor.DisplayName),
	})
}
