package domain

import (
	"context"
	"time"
)

// Follow represents a self-referential many-to-many relationship between
// two users. The FollowerID is the ID of the user that follows, and the
// FollowedID is the ID of the user that is being followed.
type Follow struct {
	ID         string `json:"id" gorm:"primaryKey"`
	FollowerID string `json:"follower_id" gorm:"notNull;uniqueIndex:idx_follows_pair"`
	FollowedID string `json:"followed_id" gorm:"notNull;uniqueIndex:idx_follows_pair"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FollowService is a set of methods to manipulate and work with the Follow model.
type FollowService interface {
	Create(ctx context.Context, follow *Follow) error
	Delete(ctx context.Context, follow *Follow) error
}
