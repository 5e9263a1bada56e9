package domain

import (
	"context"
	"time"
)

// Like represents a many-to-many relationship between a User and a Tweet.
// At most one Like exists per (user, tweet) pair, enforced by a unique
// index. A Like is created when a user likes a tweet and destroyed when
// they unlike it, or when the tweet gets deleted.
type Like struct {
	ID      string `json:"id" gorm:"primaryKey"`
	UserID  string `json:"user_id" gorm:"notNull;uniqueIndex:idx_likes_user_tweet"`
	TweetID string `json:"tweet_id" gorm:"notNull;uniqueIndex:idx_likes_user_tweet"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LikeService is a set of methods to manipulate and work with the Like model.
type LikeService interface {
	// Toggle flips the like state of the given viewer on the given tweet.
	// It reports whether the call added a like (true) or removed one (false).
	Toggle(ctx context.Context, viewerID, tweetID string) (addedLike bool, err error)
}
