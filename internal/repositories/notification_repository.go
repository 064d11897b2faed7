package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/nivelabs/loop/client/internal/gateway"
	"github.com/nivelabs/loop/client/internal/models"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	GetByTargetUser(ctx context.Context, userID string) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
	MarkViewed(ctx context.Context, id string) error
	MarkAllViewed(ctx context.Context, userID string) error
}

type notificationRepository struct {
	docs *gateway.Documents
}

// NewNotificationRepository creates a notification repository over the document gateway
func NewNotificationRepository(docs *gateway.Documents) NotificationRepository {
	return &notificationRepository{docs: docs}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now()
	return r.docs.Create(ctx, gateway.CollNotifications, n)
}

func (r *notificationRepository) GetByTargetUser(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	q := gateway.Query{
		Equals:  []gateway.Predicate{{Field: "target_user_id", Value: userID}},
		OrderBy: "created_at",
		Desc:    true,
	}
	if err := r.docs.List(ctx, gateway.CollNotifications, q, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	q := gateway.Query{Equals: []gateway.Predicate{
		{Field: "target_user_id", Value: userID},
		{Field: "is_viewed", Value: false},
	}}
	return r.docs.Count(ctx, gateway.CollNotifications, q)
}

func (r *notificationRepository) MarkViewed(ctx context.Context, id string) error {
	return r.docs.Update(ctx, gateway.CollNotifications, id, bson.M{"is_viewed": true})
}

func (r *notificationRepository) MarkAllViewed(ctx context.Context, userID string) error {
	notifications, err := r.GetByTargetUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, n := range notifications {
		if n.IsViewed {
			continue
		}
		if err := r.MarkViewed(ctx, n.ID); err != nil {
			return err
		}
	}
	return nil
}
