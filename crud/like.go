package crud

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"chirper/domain"
	"chirper/errs"
)

// LikeService manages Likes.
// It implements the domain.LikeService interface.
type LikeService struct {
	likeValidator
}

// likeValidator runs validations on incoming Like data.
// On success, it passes the data on to likeGorm.
// Otherwise, it returns the error of the validation that has failed.
type likeValidator struct {
	likeGorm
}

// likeGorm runs CRUD operations on the database using incoming Like data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type likeGorm struct {
	db *gorm.DB
	// afterLookup, when set, runs between the toggle's existence lookup
	// and its write. Tests use it to wedge a competing like into that
	// window; it is nil in production.
	afterLookup func(tx *gorm.DB)
}

// NewLikeService returns an instance of LikeService.
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{
		likeValidator{
			likeGorm{
				db: db,
			},
		},
	}
}

// Ensure the LikeService struct properly implements the domain.LikeService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.LikeService = &LikeService{}

// Toggle runs validations needed for flipping a viewer's like state on a tweet.
func (lv *likeValidator) Toggle(ctx context.Context, viewerID, tweetID string) (bool, error) {
	like := domain.Like{UserID: viewerID, TweetID: tweetID}
	err := runLikeValFns(&like,
		lv.userIdValid,
		lv.likedTweetExists)
	if err != nil {
		return false, err
	}
	return lv.likeGorm.Toggle(ctx, viewerID, tweetID)
}

// runLikeValFns runs any number of functions of type likeValFn on the passed
// in Like object. If none of them returns an error, it returns nil.
// Otherwise, it returns the respective error.
func runLikeValFns(like *domain.Like, fns ...likeValFn) error {
	for _, fn := range fns {
		if err := fn(like); err != nil {
			return err
		}
	}
	return nil
}

// A likeValFn is any function that takes in a pointer to a domain.Like object and returns an error.
type likeValFn func(like *domain.Like) error

// likedTweetExists makes sure that the tweet to be liked actually exists.
func (lv *likeValidator) likedTweetExists(like *domain.Like) error {
	err := lv.db.First(&domain.Tweet{}, "id = ?", like.TweetID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The liked tweet does not exist.")
		}
		return err
	}
	return nil
}

// userIdValid ensures that the userId is not empty.
func (lv *likeValidator) userIdValid(like *domain.Like) error {
	if like.UserID == "" {
		return errs.Errorf(errs.EUNAUTHORIZED, "You must be logged in to like tweets.")
	}
	return nil
}

// Toggle looks up the Like keyed by (viewerID, tweetID). If it's absent it
// creates it and reports true, if it's present it deletes it and reports
// false. The lookup and the write run in one transaction, and the unique
// index on (user_id, tweet_id) backstops concurrent toggles of the same
// pair: a create that loses such a race comes back as a duplicate-key
// error and is reported as "already liked" instead of failing the call.
func (lg *likeGorm) Toggle(ctx context.Context, viewerID, tweetID string) (bool, error) {
	var added bool
	err := lg.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Like
		err := tx.First(&existing, "user_id = ? AND tweet_id = ?", viewerID, tweetID).Error
		if err == nil {
			added = false
			return tx.Delete(&existing).Error
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if lg.afterLookup != nil {
			lg.afterLookup(tx)
		}
		like := domain.Like{
			ID:      uuid.NewString(),
			UserID:  viewerID,
			TweetID: tweetID,
		}
		if err := tx.Create(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// A concurrent toggle created the like first. The end state
				// is the one this call wanted, so treat it as a no-op add.
				added = true
				return nil
			}
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// CountByTweet returns the number of likes on the given tweet.
func (lg *likeGorm) CountByTweet(ctx context.Context, tweetID string) (int, error) {
	var count int64
	err := lg.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("tweet_id = ?", tweetID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
