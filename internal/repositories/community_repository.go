package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nivelabs/loop/client/internal/gateway"
	"github.com/nivelabs/loop/client/internal/models"
)

// CommunityRepository defines the interface for communities and their
// membership relation rows
type CommunityRepository interface {
	CreateCommunity(ctx context.Context, community *models.Community) error
	GetCommunityByID(ctx context.Context, id string) (*models.Community, error)
	GetAllCommunities(ctx context.Context) ([]models.Community, error)
	JoinCommunity(ctx context.Context, userID, communityID string) error
	LeaveCommunity(ctx context.Context, userID, communityID string) error
	IsMember(ctx context.Context, userID, communityID string) (bool, error)
	GetMemberCount(ctx context.Context, communityID string) (int64, error)
}

type communityRepository struct {
	docs *gateway.Documents
}

// NewCommunityRepository creates a community repository over the document gateway
func NewCommunityRepository(docs *gateway.Documents) CommunityRepository {
	return &communityRepository{docs: docs}
}

func (r *communityRepository) CreateCommunity(ctx context.Context, community *models.Community) error {
	community.ID = uuid.NewString()
	community.CreatedAt = time.Now()
	return r.docs.Create(ctx, gateway.CollCommunities, community)
}

func (r *communityRepository) GetCommunityByID(ctx context.Context, id string) (*models.Community, error) {
	var community models.Community
	if err := r.docs.Get(ctx, gateway.CollCommunities, id, &community); err != nil {
		return nil, err
	}
	if err := community.EnsureShape(); err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *communityRepository) GetAllCommunities(ctx context.Context) ([]models.Community, error) {
	var communities []models.Community
	q := gateway.Query{OrderBy: "created_at", Desc: true}
	if err := r.docs.List(ctx, gateway.CollCommunities, q, &communities); err != nil {
		return nil, err
	}
	for i := range communities {
		if err := communities[i].EnsureShape(); err != nil {
			return nil, err
		}
	}
	return communities, nil
}

func (r *communityRepository) JoinCommunity(ctx context.Context, userID, communityID string) error {
	membership := &models.CommunityMembership{
		ID:          RelationID("member", userID, communityID),
		UserID:      userID,
		CommunityID: communityID,
		CreatedAt:   time.Now(),
	}
	return r.docs.Create(ctx, gateway.CollCommunityMembers, membership)
}

func (r *communityRepository) LeaveCommunity(ctx context.Context, userID, communityID string) error {
	err := r.docs.Delete(ctx, gateway.CollCommunityMembers, RelationID("member", userID, communityID))
	if !errors.Is(err, gateway.ErrNotFound) {
		return err
	}

	var memberships []models.CommunityMembership
	q := gateway.Query{Equals: []gateway.Predicate{
		{Field: "user_id", Value: userID},
		{Field: "community_id", Value: communityID},
	}}
	if err := r.docs.List(ctx, gateway.CollCommunityMembers, q, &memberships); err != nil {
		return err
	}
	if len(memberships) == 0 {
		return gateway.ErrNotFound
	}
	return r.docs.Delete(ctx, gateway.CollCommunityMembers, memberships[0].ID)
}

func (r *communityRepository) IsMember(ctx context.Context, userID, communityID string) (bool, error) {
	q := gateway.Query{Equals: []gateway.Predicate{
		{Field: "user_id", Value: userID},
		{Field: "community_id", Value: communityID},
	}}
	count, err := r.docs.Count(ctx, gateway.CollCommunityMembers, q)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *communityRepository) GetMemberCount(ctx context.Context, communityID string) (int64, error) {
	q := gateway.Query{Equals: []gateway.Predicate{{Field: "community_id", Value: communityID}}}
	return r.docs.Count(ctx, gateway.CollCommunityMembers, q)
}
