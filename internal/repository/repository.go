package repository

import (
	"context"
	"errors"

	"github.com/ghaggin/homesite/internal/model"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("user exists")
)

type Repository interface {
	GetUserByName(ctx context.Context, name string) (*model.User, error)
	GetUsers(ctx context.Context) ([]model.User, error)

	// AddUser and Save exist for the add-user tool. The server never
	// mutates the repo at runtime.
	AddUser(ctx context.Context, user *model.User) error
	Save(ctx context.Context) error
}
