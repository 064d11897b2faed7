package models

import (
	"fmt"
	"time"
)

// Community groups posts under an admin-owned space.
type Community struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	BannerURL   string    `json:"banner_url,omitempty" bson:"banner_url,omitempty"`
	AdminID     string    `json:"admin_id" bson:"admin_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// EnsureShape reports a decoding error when a required field is missing.
func (c *Community) EnsureShape() error {
	if c.ID == "" || c.Name == "" || c.AdminID == "" {
		return fmt.Errorf("community document missing required fields (id=%q, name=%q)", c.ID, c.Name)
	}
	return nil
}

// CreateCommunityRequest defines the request body for creating a community
type CreateCommunityRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=50"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
	BannerURL   string `json:"banner_url,omitempty" validate:"omitempty,url"`
}
