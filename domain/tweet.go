package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Tweet struct {
	ID      string `json:"id" gorm:"primaryKey"`
	UserID  string `json:"user_id" gorm:"notNull;index"`
	Content string `json:"content"`
	User    User   `json:"author"`

	// LikeCount and LikedByMe are derived per query from the likes table,
	// never stored. LikedByMe is always false for anonymous viewers.
	LikeCount int  `json:"like_count" gorm:"-"`
	LikedByMe bool `json:"liked_by_me" gorm:"-"`

	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"`
}

type TweetService interface {
	ByID(ctx context.Context, id string) (*Tweet, error)
	CreateTweet(ctx context.Context, tweet *Tweet) error
	DeleteTweet(ctx context.Context, tweet *Tweet) error
}
