package models

import (
	"fmt"
	"time"
)

// StoryWindow is how long a story stays visible in profile views. Expiry is
// applied at read time; deletion is always an explicit owner action.
const StoryWindow = 24 * time.Hour

// Story is a story document: one image or one video, never both.
type Story struct {
	ID        string    `json:"id" bson:"_id"`
	AuthorID  string    `json:"author_id" bson:"author_id"`
	ImageURL  string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	VideoURL  string    `json:"video_url,omitempty" bson:"video_url,omitempty"`
	Overlay   string    `json:"overlay,omitempty" bson:"overlay,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Active reports whether the story falls inside the visibility window.
func (s *Story) Active(now time.Time) bool {
	return now.Sub(s.CreatedAt) < StoryWindow
}

// EnsureShape reports a decoding error when a required field is missing.
func (s *Story) EnsureShape() error {
	if s.ID == "" || s.AuthorID == "" || s.CreatedAt.IsZero() {
		return fmt.Errorf("story document missing required fields (id=%q, author=%q)", s.ID, s.AuthorID)
	}
	return nil
}

// StoryView records that a user has viewed a story.
type StoryView struct {
	ID        string    `json:"id" bson:"_id"`
	StoryID   string    `json:"story_id" bson:"story_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// CreateStoryRequest defines the request body for creating a story
type CreateStoryRequest struct {
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url,excluded_with=VideoURL"`
	VideoURL string `json:"video_url,omitempty" validate:"omitempty,url"`
	Overlay  string `json:"overlay,omitempty" validate:"omitempty,max=120"`
}
