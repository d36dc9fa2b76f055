package auth

import (
	"context"
	"errors"

	"github.com/ghaggin/homesite/internal/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the username is unknown, so a
// failed login costs one bcrypt comparison either way and timing does
// not reveal whether the username exists.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type Authenticator struct {
	repo repository.Repository
	log  *zap.Logger
}

type Params struct {
	fx.In

	Log  *zap.Logger
	Repo repository.Repository
}

func New(p Params) (*Authenticator, error) {
	return &Authenticator{
		repo: p.Repo,
		log:  p.Log,
	}, nil
}

// ValidateLogin reports whether the credentials match an authorized
// user. Unknown-user and wrong-password both come back (false, nil);
// callers must show one generic error for either.
func (a *Authenticator) ValidateLogin(ctx context.Context, username, password string) (bool, error) {
	u, err := a.repo.GetUserByName(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false, nil
	}
	if err != nil {
		return false, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// HashPassword hashes a plaintext password for storage in the user
// repo.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(b), nil
}
