package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Session is the session document the backend holds per signed-in device.
type Session struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
}

// LocalSession is the on-device copy of the session, persisted so the app can
// restore identity on start without a network round trip.
type LocalSession struct {
	ID        uint      `gorm:"primaryKey"`
	SessionID string    `gorm:"uniqueIndex"`
	UserID    string    `gorm:"index"`
	Token     string
	ExpiresAt time.Time
}

// SessionClaims are the JWT claims carried by a session token.
type SessionClaims struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}
