// Package memory provides the default process-lifetime user store. Records
// live only as long as the process; nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hvergara/auth-service/internal/models"
	"github.com/hvergara/auth-service/internal/storage"
)

var _ storage.UserStore = (*Store)(nil)

// Store keeps users in an append-only slice guarded by a mutex.
type Store struct {
	mu     sync.Mutex
	users  []models.User
	nextID int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// CreateUser assigns the next sequential ID, stamps the creation time, and
// appends the record. The uniqueness check runs under the same lock as the
// append, so two concurrent registrations for one email cannot both win.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}

	user.ID = s.nextID
	s.nextID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.users = append(s.users, user)
	return user, nil
}

// FindByEmail scans for a user by email. Linear lookup is fine at this
// scale; there is no index to maintain.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

// CountUsers returns the number of registered users.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), nil
}
