package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/nivelabs/loop/client/internal/gateway"
	"github.com/nivelabs/loop/client/internal/models"
)

// FollowRepository defines the interface for follow relation rows
type FollowRepository interface {
	CreateFollow(ctx context.Context, followerID, followedID string) error
	DeleteFollow(ctx context.Context, followerID, followedID string) error
	IsFollowing(ctx context.Context, followerID, followedID string) (bool, error)
	GetFollowersCount(ctx context.Context, userID string) (int64, error)
	GetFollowingCount(ctx context.Context, userID string) (int64, error)
	GetFollowerIDs(ctx context.Context, userID string) ([]string, error)
	GetFollowingIDs(ctx context.Context, userID string) ([]string, error)
}

type followRepository struct {
	docs *gateway.Documents
}

// NewFollowRepository creates a follow repository over the document gateway
func NewFollowRepository(docs *gateway.Documents) FollowRepository {
	return &followRepository{docs: docs}
}

func (r *followRepository) CreateFollow(ctx context.Context, followerID, followedID string) error {
	follow := &models.Follow{
		ID:         RelationID("follow", followerID, followedID),
		FollowerID: followerID,
		FollowedID: followedID,
		CreatedAt:  time.Now(),
	}
	return r.docs.Create(ctx, gateway.CollFollowers, follow)
}

func (r *followRepository) DeleteFollow(ctx context.Context, followerID, followedID string) error {
	err := r.docs.Delete(ctx, gateway.CollFollowers, RelationID("follow", followerID, followedID))
	if !errors.Is(err, gateway.ErrNotFound) {
		return err
	}

	var follows []models.Follow
	q := gateway.Query{Equals: []gateway.Predicate{
		{Field: "follower_id", Value: followerID},
		{Field: "followed_id", Value: followedID},
	}}
	if err := r.docs.List(ctx, gateway.CollFollowers, q, &follows); err != nil {
		return err
	}
	if len(follows) == 0 {
		return gateway.ErrNotFound
	}
	return r.docs.Delete(ctx, gateway.CollFollowers, follows[0].ID)
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	q := gateway.Query{Equals: []gateway.Predicate{
		{Field: "follower_id", Value: followerID},
		{Field: "followed_id", Value: followedID},
	}}
	count, err := r.docs.Count(ctx, gateway.CollFollowers, q)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *followRepository) GetFollowersCount(ctx context.Context, userID string) (int64, error) {
	q := gateway.Query{Equals: []gateway.Predicate{{Field: "followed_id", Value: userID}}}
	return r.docs.Count(ctx, gateway.CollFollowers, q)
}

func (r *followRepository) GetFollowingCount(ctx context.Context, userID string) (int64, error) {
	q := gateway.Query{Equals: []gateway.Predicate{{Field: "follower_id", Value: userID}}}
	return r.docs.Count(ctx, gateway.CollFollowers, q)
}

func (r *followRepository) GetFollowerIDs(ctx context.Context, userID string) ([]string, error) {
	var follows []models.Follow
	q := gateway.Query{Equals: []gateway.Predicate{{Field: "followed_id", Value: userID}}}
	if err := r.docs.List(ctx, gateway.CollFollowers, q, &follows); err != nil {
		return nil, err
	}
	ids := make([]string, len(follows))
	for i, f := range follows {
		ids[i] = f.FollowerID
	}
	return ids, nil
}

func (r *followRepository) GetFollowingIDs(ctx context.Context, userID string) ([]string, error) {
	var follows []models.Follow
	q := gateway.Query{Equals: []gateway.Predicate{{Field: "follower_id", Value: userID}}}
	if err := r.docs.List(ctx, gateway.CollFollowers, q, &follows); err != nil {
		return nil, err
	}
	ids := make([]string, len(follows))
	for i, f := range follows {
		ids[i] = f.FollowedID
	}
	return ids, nil
}
