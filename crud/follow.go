package crud

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"chirper/domain"
	"chirper/errs"
)

// FollowService manages Follows.
// It implements the domain.FollowService interface.
type FollowService struct {
	followValidator
}

// followValidator runs validations on incoming Follow data.
// On success, it passes the data on to followGorm.
// Otherwise, it returns the error of the validation that has failed.
type followValidator struct {
	followGorm
}

// followGorm runs CRUD operations on the database using incoming Follow data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type followGorm struct {
	db *gorm.DB
}

// NewFollowService returns an instance of FollowService.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		followValidator{
			followGorm{
				db: db,
			},
		},
	}
}

// Ensure the FollowService struct properly implements the domain.FollowService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.FollowService = &FollowService{}

// Create runs validations needed for creating new Follow database records.
func (fv *followValidator) Create(ctx context.Context, follow *domain.Follow) error {
	err := runFollowValFns(follow,
		fv.idSet,
		fv.followedIsNotFollower,
		fv.followedExists,
		fv.notAlreadyFollowed)
	if err != nil {
		return err
	}
	return fv.followGorm.Create(ctx, follow)
}

// Delete runs validations needed for deleting existing Follow database records.
func (fv *followValidator) Delete(ctx context.Context, follow *domain.Follow) error {
	err := runFollowValFns(follow, fv.followExists)
	if err != nil {
		return err
	}
	return fv.followGorm.Delete(ctx, follow)
}

// runFollowValFns runs any number of functions of type followValFn on the
// passed in Follow object. If none of them returns an error, it returns nil.
// Otherwise, it returns the respective error.
func runFollowValFns(follow *domain.Follow, fns ...followValFn) error {
	for _, fn := range fns {
		if err := fn(follow); err != nil {
			return err
		}
	}
	return nil
}

// A followValFn is any function that takes in a pointer to a domain.Follow object and returns an error.
type followValFn func(follow *domain.Follow) error

// idSet assigns a fresh ID if the incoming follow doesn't have one yet.
func (fv *followValidator) idSet(follow *domain.Follow) error {
	if follow.ID == "" {
		follow.ID = uuid.NewString()
	}
	return nil
}

// followedIsNotFollower makes sure users don't follow themselves.
func (fv *followValidator) followedIsNotFollower(follow *domain.Follow) error {
	if follow.FollowedID == follow.FollowerID {
		return errs.Errorf(errs.EINVALID, "You cannot follow yourself.")
	}
	return nil
}

// followedExists makes sure the user to be followed actually exists.
func (fv *followValidator) followedExists(follow *domain.Follow) error {
	err := fv.db.First(&domain.User{}, "id = ?", follow.FollowedID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "The user to be followed does not exist.")
		}
		return err
	}
	return nil
}

// notAlreadyFollowed makes sure this follow doesn't already exist.
func (fv *followValidator) notAlreadyFollowed(follow *domain.Follow) error {
	err := fv.db.First(&domain.Follow{}, "follower_id = ? AND followed_id = ?",
		follow.FollowerID, follow.FollowedID).Error
	if err == nil {
		return errs.Errorf(errs.EINVALID, "You already follow that user.")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}
	return nil
}

// followExists makes sure the Follow record to be deleted actually exists,
// and loads its ID so the delete hits the right row.
func (fv *followValidator) followExists(follow *domain.Follow) error {
	err := fv.db.First(follow, "follower_id = ? AND followed_id = ?",
		follow.FollowerID, follow.FollowedID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errs.Errorf(errs.ENOTFOUND, "You cannot unfollow a user you don't follow.")
		}
		return err
	}
	return nil
}

// Create stores the data from the Follow object in a new database record.
func (fg *followGorm) Create(ctx context.Context, follow *domain.Follow) error {
	return fg.db.WithContext(ctx).Create(follow).Error
}

// Delete permanently deletes the database record matching the Follow object.
func (fg *followGorm) Delete(ctx context.Context, follow *domain.Follow) error {
	return fg.db.WithContext(ctx).Delete(follow).Error
}
