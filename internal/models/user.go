package models

import (
	"fmt"
	"time"
)

// User is a profile document in the hosted document store. It is created once
// at sign-up and mutated only by its owner.
type User struct {
	ID          string    `json:"id" bson:"_id"`
	Email       string    `json:"email" bson:"email"`
	Password    string    `json:"-" bson:"password"` // bcrypt hash, never serialized to JSON
	DisplayName string    `json:"display_name" bson:"display_name"`
	Handle      string    `json:"handle" bson:"handle"`
	AvatarURL   string    `json:"avatar_url" bson:"avatar_url"`
	Bio         string    `json:"bio,omitempty" bson:"bio,omitempty"`
	Verified    bool      `json:"verified" bson:"verified"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// UserCompact is the author shape embedded in enriched feed items.
type UserCompact struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Handle      string `json:"handle"`
	AvatarURL   string `json:"avatar_url"`
	Verified    bool   `json:"verified"`
}

// ToCompact returns the compact author representation
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Handle:      u.Handle,
		AvatarURL:   u.AvatarURL,
		Verified:    u.Verified,
	}
}

// EnsureShape reports a decoding error when a required field is missing
// instead of letting a half-empty profile reach the screens.
func (u *User) EnsureShape() error {
	if u.ID == "" || u.Email == "" || u.Handle == "" {
		return fmt.Errorf("user document missing required fields (id=%q, handle=%q)", u.ID, u.Handle)
	}
	return nil
}

// SignUpRequest defines the payload validated before account creation
type SignUpRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	DisplayName     string `json:"display_name" validate:"required,min=2,max=50"`
	Handle          string `json:"handle" validate:"required,username"`
}

// UpdateProfileRequest defines the owner-only profile mutation payload
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,min=2,max=50"`
	Bio         string `json:"bio,omitempty" validate:"omitempty,max=200"`
	AvatarURL   string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}
