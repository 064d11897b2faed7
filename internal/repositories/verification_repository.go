package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/nivelabs/loop/client/internal/gateway"
	"github.com/nivelabs/loop/client/internal/models"
)

// VerificationRepository defines the interface for verified-badge requests.
// At most one request per user exists; its id is derived from the user id.
type VerificationRepository interface {
	SubmitRequest(ctx context.Context, userID string) error
	GetByUser(ctx context.Context, userID string) (*models.VerificationRequest, error)
	SetStatus(ctx context.Context, userID, status string) error
}

type verificationRepository struct {
	docs *gateway.Documents
}

// NewVerificationRepository creates a verification repository over the document gateway
func NewVerificationRepository(docs *gateway.Documents) VerificationRepository {
	return &verificationRepository{docs: docs}
}

func (r *verificationRepository) SubmitRequest(ctx context.Context, userID string) error {
	req := &models.VerificationRequest{
		ID:        RelationID("verification", userID, "badge"),
		UserID:    userID,
		Status:    "pending",
		CreatedAt: time.Now(),
	}
	return r.docs.Create(ctx, gateway.CollVerificationRequests, req)
}

func (r *verificationRepository) GetByUser(ctx context.Context, userID string) (*models.VerificationRequest, error) {
	var req models.VerificationRequest
	err := r.docs.Get(ctx, gateway.CollVerificationRequests, RelationID("verification", userID, "badge"), &req)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *verificationRepository) SetStatus(ctx context.Context, userID, status string) error {
	id := RelationID("verification", userID, "badge")
	return r.docs.Update(ctx, gateway.CollVerificationRequests, id, bson.M{"status": status})
}
