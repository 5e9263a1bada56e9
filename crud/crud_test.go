package crud

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"chirper/domain"
)

// testDB opens a throwaway sqlite database for one test. TranslateError is
// on, same as the production connection, so unique-constraint violations
// surface as gorm.ErrDuplicatedKey here too.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crud_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(domain.User{}, domain.Tweet{}, domain.Follow{}, domain.Like{})
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "irrelevant",
		RememberHash: uuid.NewString(),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return user
}

// seedTweet inserts a tweet with a fixed creation time, so tests can pin
// down the feed order.
func seedTweet(t *testing.T, db *gorm.DB, user *domain.User, content string, createdAt time.Time) *domain.Tweet {
	t.Helper()
	return seedTweetWithID(t, db, user, uuid.NewString(), content, createdAt)
}

func seedTweetWithID(t *testing.T, db *gorm.DB, user *domain.User, id, content string, createdAt time.Time) *domain.Tweet {
	t.Helper()
	tweet := &domain.Tweet{
		ID:        id,
		UserID:    user.ID,
		Content:   content,
		CreatedAt: createdAt,
	}
	if err := db.Create(tweet).Error; err != nil {
		t.Fatalf("seed tweet %s: %v", content, err)
	}
	return tweet
}

func seedFollow(t *testing.T, db *gorm.DB, follower, followed *domain.User) {
	t.Helper()
	follow := &domain.Follow{
		ID:         uuid.NewString(),
		FollowerID: follower.ID,
		FollowedID: followed.ID,
	}
	if err := db.Create(follow).Error; err != nil {
		t.Fatalf("seed follow: %v", err)
	}
}

func seedLike(t *testing.T, db *gorm.DB, user *domain.User, tweet *domain.Tweet) {
	t.Helper()
	like := &domain.Like{
		ID:      uuid.NewString(),
		UserID:  user.ID,
		TweetID: tweet.ID,
	}
	if err := db.Create(like).Error; err != nil {
		t.Fatalf("seed like: %v", err)
	}
}

func listFeed(t *testing.T, fs *FeedService, filter domain.FeedFilter) *domain.FeedPage {
	t.Helper()
	page, err := fs.ListFeed(context.Background(), filter)
	if err != nil {
		t.Fatalf("ListFeed: %v", err)
	}
	return page
}

func tweetIDs(page *domain.FeedPage) []string {
	ids := make([]string, len(page.Tweets))
	for i, tw := range page.Tweets {
		ids[i] = tw.ID
	}
	return ids
}
