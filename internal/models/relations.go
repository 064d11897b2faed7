package models

import "time"

// Relation rows are join-table-style documents: existence of the row is the
// fact. Their ids are derived deterministically from the (user, target) pair
// so create-if-absent is atomic at the store.

// Like marks that a user liked a post.
type Like struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	PostID    string    `json:"post_id" bson:"post_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Follow is a (follower, followed) edge between two users.
type Follow struct {
	ID         string    `json:"id" bson:"_id"`
	FollowerID string    `json:"follower_id" bson:"follower_id"`
	FollowedID string    `json:"followed_id" bson:"followed_id"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// CommunityMembership is a (user, community) edge.
type CommunityMembership struct {
	ID          string    `json:"id" bson:"_id"`
	UserID      string    `json:"user_id" bson:"user_id"`
	CommunityID string    `json:"community_id" bson:"community_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
