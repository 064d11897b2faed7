package models

import "time"

// Notification types drive the icon/title mapping and the tap-navigation
// target on the notifications screen.
const (
	NotificationLike         = "like"
	NotificationComment      = "comment"
	NotificationFollow       = "follow"
	NotificationVerification = "verification"
)

// Reference target types carried by a notification.
const (
	RefUser = "user"
	RefPost = "post"
)

// Notification is a notification document addressed to a single user.
type Notification struct {
	ID           string    `json:"id" bson:"_id"`
	TargetUserID string    `json:"target_user_id" bson:"target_user_id"`
	Type         string    `json:"type" bson:"type"`
	RefID        string    `json:"ref_id,omitempty" bson:"ref_id,omitempty"`
	RefType      string    `json:"ref_type,omitempty" bson:"ref_type,omitempty"`
	Content      string    `json:"content" bson:"content"`
	IsViewed     bool      `json:"is_viewed" bson:"is_viewed"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// VerificationRequest is a user's pending request for the verified badge.
type VerificationRequest struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Status    string    `json:"status" bson:"status"` // pending, granted, rejected
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
