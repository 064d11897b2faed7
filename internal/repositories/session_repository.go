package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nivelabs/loop/client/internal/gateway"
	"github.com/nivelabs/loop/client/internal/models"
)

// SessionTTL matches the lifetime of the session token.
const SessionTTL = 72 * time.Hour

// SessionRepository defines the interface for remote session documents
type SessionRepository interface {
	CreateSession(ctx context.Context, userID string) (*models.Session, error)
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

type sessionRepository struct {
	docs *gateway.Documents
}

// NewSessionRepository creates a session repository over the document gateway
func NewSessionRepository(docs *gateway.Documents) SessionRepository {
	return &sessionRepository{docs: docs}
}

func (r *sessionRepository) CreateSession(ctx context.Context, userID string) (*models.Session, error) {
	now := time.Now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	}
	if err := r.docs.Create(ctx, gateway.CollSessions, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (r *sessionRepository) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	if err := r.docs.Get(ctx, gateway.CollSessions, id, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) DeleteSession(ctx context.Context, id string) error {
	return r.docs.Delete(ctx, gateway.CollSessions, id)
}
