package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/nivelabs/loop/client/internal/gateway"
	"github.com/nivelabs/loop/client/internal/models"
)

// UserRepository defines the interface for profile document operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByHandle(ctx context.Context, handle string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, req *models.UpdateProfileRequest) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	SetVerified(ctx context.Context, id string, verified bool) error
}

type userRepository struct {
	docs *gateway.Documents
}

// NewUserRepository creates a user repository over the document gateway
func NewUserRepository(docs *gateway.Documents) UserRepository {
	return &userRepository{docs: docs}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	return r.docs.Create(ctx, gateway.CollUsers, user)
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.docs.Get(ctx, gateway.CollUsers, id, &user); err != nil {
		return nil, err
	}
	if err := user.EnsureShape(); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, gateway.Predicate{Field: "email", Value: email})
}

func (r *userRepository) GetUserByHandle(ctx context.Context, handle string) (*models.User, error) {
	return r.getOne(ctx, gateway.Predicate{Field: "handle", Value: handle})
}

func (r *userRepository) getOne(ctx context.Context, p gateway.Predicate) (*models.User, error) {
	var users []models.User
	q := gateway.Query{Equals: []gateway.Predicate{p}, Limit: 1}
	if err := r.docs.List(ctx, gateway.CollUsers, q, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, gateway.ErrNotFound
	}
	if err := users[0].EnsureShape(); err != nil {
		return nil, err
	}
	return &users[0], nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, req *models.UpdateProfileRequest) error {
	fields := bson.M{}
	if req.DisplayName != "" {
		fields["display_name"] = req.DisplayName
	}
	if req.Bio != "" {
		fields["bio"] = req.Bio
	}
	if req.AvatarURL != "" {
		fields["avatar_url"] = req.AvatarURL
	}
	if len(fields) == 0 {
		return fmt.Errorf("no profile fields to update")
	}
	return r.docs.Update(ctx, gateway.CollUsers, id, fields)
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return r.docs.Update(ctx, gateway.CollUsers, id, bson.M{"password": hash})
}

func (r *userRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	return r.docs.Update(ctx, gateway.CollUsers, id, bson.M{"verified": verified})
}
