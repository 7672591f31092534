package storage

import (
	"context"
	"errors"

	"github.com/hvergara/auth-service/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict on email.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures the persistence operations the auth service needs.
// There are no update or delete operations; registration is the only write.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	CountUsers(ctx context.Context) (int, error)
}
