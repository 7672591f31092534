// Package service implements the authentication flows: registration, login,
// and bearer-token verification. Handlers translate the errors returned
// here into HTTP statuses; nothing in this package knows about HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hvergara/auth-service/internal/auth"
	"github.com/hvergara/auth-service/internal/models"
	"github.com/hvergara/auth-service/internal/storage"
)

const (
	nameMinLen     = 2
	nameMaxLen     = 50
	passwordMinLen = 6
)

// AuthService orchestrates the credential store, password hasher, and
// token manager.
type AuthService struct {
	store  storage.UserStore
	tokens *auth.TokenManager
}

// NewAuthService constructs the service.
func NewAuthService(store storage.UserStore, tokens *auth.TokenManager) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Register validates the input, rejects duplicate emails, hashes the
// password, and stores the new user. The returned record carries the
// assigned ID and creation time.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if err := validateRegistration(name, email, password); err != nil {
		return models.User{}, err
	}

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return models.User{}, ErrDuplicateEmail
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, fmt.Errorf("look up email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	created, err := s.store.CreateUser(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Login verifies the credentials and issues a bearer token. An unknown
// email and a wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	email = strings.TrimSpace(email)

	if err := validateLogin(email, password); err != nil {
		return "", models.User{}, err
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", models.User{}, ErrInvalidCredentials
		}
		return "", models.User{}, fmt.Errorf("look up email: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return "", models.User{}, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

// VerifyToken extracts a bearer token from an Authorization header value
// and validates it. Failures are ErrMissingToken, auth.ErrTokenExpired,
// or auth.ErrTokenInvalid.
func (s *AuthService) VerifyToken(authorization string) (*auth.Claims, error) {
	token := strings.TrimSpace(strings.TrimPrefix(authorization, "Bearer "))
	if token == "" {
		return nil, ErrMissingToken
	}
	return s.tokens.Verify(token)
}

func validateRegistration(name, email, password string) error {
	nameLen := utf8.RuneCountInString(name)
	if nameLen < nameMinLen || nameLen > nameMaxLen {
		return invalid("name", fmt.Sprintf("must be between %d and %d characters", nameMinLen, nameMaxLen))
	}
	if !validEmail(email) {
		return invalid("email", "must be a valid email address")
	}
	if len(password) < passwordMinLen {
		return invalid("password", fmt.Sprintf("must be at least %d characters", passwordMinLen))
	}
	return nil
}

func validateLogin(email, password string) error {
	if !validEmail(email) {
		return invalid("email", "must be a valid email address")
	}
	if password == "" {
		return invalid("password", "is required")
	}
	return nil
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
