package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID     string `json:"id" gorm:"primaryKey"`
	Name   string `json:"name"`
	Email  string `json:"email" gorm:"uniqueIndex"`
	Avatar string `json:"avatar"`

	// Password and Remember only carry incoming plaintext values.
	// They are never written to the database, only their hashes are.
	Password     string `json:"password,omitempty" gorm:"-"`
	PasswordHash string `json:"-"`
	Remember     string `json:"-" gorm:"-"`
	RememberHash string `json:"-" gorm:"uniqueIndex"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"`
}

type UserService interface {
	ByID(ctx context.Context, id string) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	ByRemember(ctx context.Context, token string) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	MakeRememberToken() (string, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}
