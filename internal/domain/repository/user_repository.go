package repository

import (
	"context"
	"errors"

	"github.com/molpadia/molpaclip/internal/domain/entity"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUnsupportedCriteria = errors.New("criteria must set an id or an email")
)

// UserCriteria selects a single user. Id takes precedence over Email.
type UserCriteria struct {
	Id    string
	Email string
}

func (c UserCriteria) IsEmpty() bool { return c.Id == "" && c.Email == "" }

type UserRepository interface {
	// Get the user matching the criteria, or ErrUserNotFound.
	FindOneBy(ctx context.Context, criteria UserCriteria) (*entity.User, error)
	// Save a user to the persistence.
	Save(ctx context.Context, user *entity.User) error
}
