package models

import (
	"fmt"
	"time"
)

// Post is a post document in the hosted document store. Media is immutable
// after creation; title and body stay editable by the owner.
type Post struct {
	ID          string    `json:"id" bson:"_id"`
	AuthorID    string    `json:"author_id" bson:"author_id"`
	Title       string    `json:"title" bson:"title"`
	Body        string    `json:"body,omitempty" bson:"body,omitempty"`
	Link        string    `json:"link,omitempty" bson:"link,omitempty"`
	ImageURLs   []string  `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	VideoURL    string    `json:"video_url,omitempty" bson:"video_url,omitempty"`
	CommunityID string    `json:"community_id,omitempty" bson:"community_id,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// HasVideo reports whether the post carries playable video.
func (p *Post) HasVideo() bool {
	return p.VideoURL != ""
}

// EnsureShape reports a decoding error when a required field is missing.
func (p *Post) EnsureShape() error {
	if p.ID == "" || p.AuthorID == "" || p.CreatedAt.IsZero() {
		return fmt.Errorf("post document missing required fields (id=%q, author=%q)", p.ID, p.AuthorID)
	}
	return nil
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=100"`
	Body        string   `json:"body,omitempty" validate:"omitempty,max=2000"`
	Link        string   `json:"link,omitempty" validate:"omitempty,url"`
	ImageURLs   []string `json:"image_urls,omitempty" validate:"omitempty,max=4,dive,url"`
	VideoURL    string   `json:"video_url,omitempty" validate:"omitempty,url"`
	CommunityID string   `json:"community_id,omitempty"`
}

// UpdatePostRequest defines the owner-only edit payload. Media fields are
// deliberately absent: they cannot change after creation.
type UpdatePostRequest struct {
	Title string `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Body  string `json:"body,omitempty" validate:"omitempty,max=2000"`
}
