package crud

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"chirper/domain"
	"chirper/errs"
)

// TweetService manages Tweets.
// It implements the domain.TweetService interface.
type TweetService struct {
	tweetValidator
}

// tweetValidator runs validations on incoming Tweet data.
// On success, it passes the data on to tweetGorm.
// Otherwise, it returns the error of the validation that has failed.
type tweetValidator struct {
	tweetGorm
}

// tweetGorm runs CRUD operations on the database using incoming Tweet data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type tweetGorm struct {
	db *gorm.DB
}

// NewTweetService returns an instance of TweetService.
func NewTweetService(db *gorm.DB) *TweetService {
	return &TweetService{
		tweetValidator{
			tweetGorm{
				db: db,
			},
		},
	}
}

// Ensure the TweetService struct properly implements the domain.TweetService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.TweetService = &TweetService{}

// CreateTweet runs validations needed for creating new Tweet database records.
func (tv *tweetValidator) CreateTweet(ctx context.Context, tweet *domain.Tweet) error {
	err := runTweetValFns(tweet,
		tv.idSet,
		tv.userIdValid,
		tv.contentMinLength,
		tv.contentMaxLength)
	if err != nil {
		return err
	}
	return tv.tweetGorm.CreateTweet(ctx, tweet)
}

// DeleteTweet runs validations needed for deleting existing Tweet database records.
func (tv *tweetValidator) DeleteTweet(ctx context.Context, tweet *domain.Tweet) error {
	err := runTweetValFns(tweet, tv.idValid)
	if err != nil {
		return err
	}
	return tv.tweetGorm.DeleteTweet(ctx, tweet)
}

// runTweetValFns runs any number of functions of type tweetValFn on the passed
// in Tweet object. If none of them returns an error, it returns nil.
// Otherwise, it returns the respective error.
func runTweetValFns(tweet *domain.Tweet, fns ...tweetValFn) error {
	for _, fn := range fns {
		if err := fn(tweet); err != nil {
			return err
		}
	}
	return nil
}

// A tweetValFn is any function that takes in a pointer to a domain.Tweet object and returns an error.
type tweetValFn = func(tweet *domain.Tweet) error

// idSet assigns a fresh ID if the incoming tweet doesn't have one yet.
func (tv *tweetValidator) idSet(tweet *domain.Tweet) error {
	if tweet.ID == "" {
		tweet.ID = uuid.NewString()
	}
	return nil
}

// contentMinLength makes sure that the Tweet's content is not empty.
func (tv *tweetValidator) contentMinLength(tweet *domain.Tweet) error {
	contentStripped := strings.ReplaceAll(tweet.Content, " ", "")
	if contentStripped == "" {
		return errs.Errorf(errs.EINVALID, "Tweet content must not be empty.")
	}
	return nil
}

// contentMaxLength makes sure that the Tweet's content does not exceed the maximum content length.
func (tv *tweetValidator) contentMaxLength(tweet *domain.Tweet) error {
	if utf8.RuneCountInString(tweet.Content) > 280 {
		return errs.Errorf(errs.EINVALID, "Tweet content max length is 280 characters.")
	}
	return nil
}

// idValid makes sure that the passed in ID of a Tweet to be deleted is not empty.
func (tv *tweetValidator) idValid(tweet *domain.Tweet) error {
	if tweet.ID == "" {
		return errs.Errorf(errs.EINVALID, "Tweet ID is invalid.")
	}
	return nil
}

// userIdValid ensures that the userId is not empty.
func (tv *tweetValidator) userIdValid(tweet *domain.Tweet) error {
	if tweet.UserID == "" {
		return errs.Errorf(errs.EINVALID, "User ID is required.")
	}
	return nil
}

// ByID retrieves a single Tweet by ID, along with its author.
// If the record doesn't exist, it returns errs.ENOTFOUND.
func (tg *tweetGorm) ByID(ctx context.Context, id string) (*domain.Tweet, error) {
	var tweet domain.Tweet
	err := tg.db.WithContext(ctx).
		Preload("User").
		First(&tweet, "id = ?", id).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The tweet does not exist.")
		}
		return nil, err
	}
	return &tweet, nil
}

// CreateTweet stores the data from the Tweet object in a new database record.
// On success, it eager-loads the author relation, so that the json response
// displays the full data of the created tweet.
func (tg *tweetGorm) CreateTweet(ctx context.Context, tweet *domain.Tweet) error {
	if err := tg.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return err
	}
	return tg.db.WithContext(ctx).Preload("User").First(tweet, "id = ?", tweet.ID).Error
}

// DeleteTweet soft-deletes a Tweet record from the database and permanently
// deletes its Likes, so that like counts don't reference dead tweets.
func (tg *tweetGorm) DeleteTweet(ctx context.Context, tweet *domain.Tweet) error {
	return tg.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tweet_id = ?", tweet.ID).Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(tweet).Error
	})
}
