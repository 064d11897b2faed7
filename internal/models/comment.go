package models

import (
	"fmt"
	"time"
)

// Comment is append-only from the client's perspective: created by any
// authenticated user, deleted only by its creator.
type Comment struct {
	ID        string    `json:"id" bson:"_id"`
	PostID    string    `json:"post_id" bson:"post_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// EnsureShape reports a decoding error when a required field is missing.
func (c *Comment) EnsureShape() error {
	if c.ID == "" || c.PostID == "" || c.UserID == "" {
		return fmt.Errorf("comment document missing required fields (id=%q)", c.ID)
	}
	return nil
}

// CreateCommentRequest defines the request body for adding a comment
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}
