package crud

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"chirper/auth"
	"chirper/domain"
	"chirper/errs"
)

// UserService manages Users. It also contains the part of the authentication
// system that handles database interactions and token hashing. It's basically
// the "backend" of the auth system, with http/auth.go dealing with requests,
// middleware and cookies being the "frontend".
// It implements the domain.UserService interface.
type UserService struct {
	userValidator
}

// userValidator runs validations on incoming User data.
// On success, it passes the data on to userGorm.
// Otherwise, it returns the error of the validation that has failed.
type userValidator struct {
	hmac       auth.HMAC
	pepper     string
	emailRegex *regexp.Regexp
	userGorm
}

// userGorm runs CRUD operations on the database using incoming User data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type userGorm struct {
	db *gorm.DB
}

// NewUserService returns an instance of UserService.
func NewUserService(db *gorm.DB, pepper, hmacKey string) *UserService {
	return &UserService{
		userValidator{
			hmac:       auth.NewHMAC(hmacKey),
			pepper:     pepper,
			emailRegex: regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,16}$`),
			userGorm: userGorm{
				db: db,
			},
		},
	}
}

// Ensure the UserService struct properly implements the domain.UserService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.UserService = &UserService{}

// Authenticate checks a submitted email address and password for existence
// and correctness.
func (uv *userValidator) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	found, err := uv.userGorm.ByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	// Append the predefined pepper to the submitted password and compare the
	// result to the password hash stored in the user's database record.
	err = bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password+uv.pepper))
	if err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return nil, errs.Errorf(errs.EUNAUTHORIZED, "The password is incorrect.")
		}
		return nil, err
	}
	return found, nil
}

// MakeRememberToken is a helper to generate remember tokens of a
// predetermined byte size.
func (uv *userValidator) MakeRememberToken() (string, error) {
	return auth.MakeRememberToken()
}

// ByRemember hashes a user's remember token, then passes the HASHED token
// on to userGorm.ByRemember, which will look it up in the database.
func (uv *userValidator) ByRemember(ctx context.Context, token string) (*domain.User, error) {
	user := domain.User{
		Remember: token,
	}
	if err := runUserValFns(&user, uv.rememberHmac); err != nil {
		return nil, err
	}
	return uv.userGorm.ByRemember(ctx, user.RememberHash)
}

// Create runs validations needed for creating new User database records.
// It will create a remember token if none is provided.
func (uv *userValidator) Create(ctx context.Context, user *domain.User) error {
	err := runUserValFns(user,
		uv.idSet,
		uv.passwordRequired,
		uv.passwordMinLength,
		uv.passwordBcrypt,
		uv.rememberSetIfUnset,
		uv.rememberHmac,
		uv.emailNormalize,
		uv.emailRequired,
		uv.emailFormat,
		uv.emailIsAvail)
	if err != nil {
		return err
	}
	return uv.userGorm.Create(ctx, user)
}

// Update runs validations needed for updating a User record in the database.
// It will hash a remember token if one is provided.
func (uv *userValidator) Update(ctx context.Context, user *domain.User) error {
	err := runUserValFns(user,
		uv.passwordMinLength,
		uv.passwordBcrypt,
		uv.rememberHmac,
		uv.emailNormalize,
		uv.emailRequired,
		uv.emailFormat)
	if err != nil {
		return err
	}
	return uv.userGorm.Update(ctx, user)
}

// runUserValFns runs any number of functions of type userValFn on the passed
// in User object. If none of them returns an error, it returns nil.
// Otherwise, it returns the respective error.
func runUserValFns(user *domain.User, fns ...userValFn) error {
	for _, fn := range fns {
		if err := fn(user); err != nil {
			return err
		}
	}
	return nil
}

// A userValFn is any function that takes in a pointer to a domain.User object
// and returns an error.
type userValFn func(user *domain.User) error

// idSet assigns a fresh ID if the incoming user doesn't have one yet.
func (uv *userValidator) idSet(user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return nil
}

// passwordRequired makes sure a password was submitted at all.
func (uv *userValidator) passwordRequired(user *domain.User) error {
	if user.Password == "" {
		return errs.Errorf(errs.EINVALID, "A password is required.")
	}
	return nil
}

// passwordMinLength makes sure a submitted password is at least 8 characters
// long. It doesn't complain about an empty password, so that it can be used
// in updates where no new password is submitted.
func (uv *userValidator) passwordMinLength(user *domain.User) error {
	if user.Password == "" {
		return nil
	}
	if len(user.Password) < 8 {
		return errs.Errorf(errs.EINVALID, "The password must be at least 8 characters long.")
	}
	return nil
}

// passwordBcrypt peppers and hashes a submitted plaintext password, stores
// the hash on the user and erases the plaintext.
func (uv *userValidator) passwordBcrypt(user *domain.User) error {
	if user.Password == "" {
		return nil
	}
	pwBytes := []byte(user.Password + uv.pepper)
	hashedBytes, err := bcrypt.GenerateFromPassword(pwBytes, bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedBytes)
	user.Password = ""
	return nil
}

// rememberSetIfUnset generates a remember token if none is present.
func (uv *userValidator) rememberSetIfUnset(user *domain.User) error {
	if user.Remember != "" {
		return nil
	}
	token, err := auth.MakeRememberToken()
	if err != nil {
		return err
	}
	user.Remember = token
	return nil
}

// rememberHmac hashes a plaintext remember token, if one is present.
func (uv *userValidator) rememberHmac(user *domain.User) error {
	if user.Remember == "" {
		return nil
	}
	user.RememberHash = uv.hmac.Hash(user.Remember)
	return nil
}

// emailNormalize trims and lowercases a submitted email address.
func (uv *userValidator) emailNormalize(user *domain.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return nil
}

// emailRequired makes sure an email address was submitted at all.
func (uv *userValidator) emailRequired(user *domain.User) error {
	if user.Email == "" {
		return errs.Errorf(errs.EINVALID, "An email address is required.")
	}
	return nil
}

// emailFormat makes sure a submitted email address roughly looks like one.
func (uv *userValidator) emailFormat(user *domain.User) error {
	if !uv.emailRegex.MatchString(user.Email) {
		return errs.Errorf(errs.EINVALID, "The email address is not valid.")
	}
	return nil
}

// emailIsAvail makes sure a submitted email address isn't taken by
// another user.
func (uv *userValidator) emailIsAvail(user *domain.User) error {
	existing, err := uv.userGorm.ByEmail(context.Background(), user.Email)
	if errs.ErrorCode(err) == errs.ENOTFOUND {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != user.ID {
		return errs.Errorf(errs.EINVALID, "The email address is already taken.")
	}
	return nil
}

// ByID retrieves a single User by ID.
func (ug *userGorm) ByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := ug.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The user does not exist.")
		}
		return nil, err
	}
	return &user, nil
}

// ByEmail retrieves a single User by email address.
func (ug *userGorm) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := ug.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The email address does not exist in our database.")
		}
		return nil, err
	}
	return &user, nil
}

// ByRemember retrieves a single User by HASHED remember token.
func (ug *userGorm) ByRemember(ctx context.Context, rememberHash string) (*domain.User, error) {
	var user domain.User
	err := ug.db.WithContext(ctx).First(&user, "remember_hash = ?", rememberHash).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errs.Errorf(errs.ENOTFOUND, "The remember token does not exist in our database.")
		}
		return nil, err
	}
	return &user, nil
}

// Create stores the data from the User object in a new database record.
func (ug *userGorm) Create(ctx context.Context, user *domain.User) error {
	return ug.db.WithContext(ctx).Create(user).Error
}

// Update saves the data from the User object over the existing record.
func (ug *userGorm) Update(ctx context.Context, user *domain.User) error {
	return ug.db.WithContext(ctx).Save(user).Error
}
