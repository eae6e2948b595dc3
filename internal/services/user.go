package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/taskflow-app/taskflow/internal/store"
	"github.com/taskflow-app/taskflow/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByLogin(ctx context.Context, login string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	UpdateProfile(ctx context.Context, id int, name, email string) (types.User, error)
}

// UserService encapsulates registration, authentication and profile
// use-cases. Users returned by this service never carry the credential
// hash.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates a new account. The secret is stored only as its
// SHA-256 hex digest. A duplicate login fails with ErrLoginTaken and
// writes nothing.
func (s *UserService) Register(ctx context.Context, name, email, login, secret string) (types.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	login = strings.TrimSpace(login)
	if name == "" || email == "" || login == "" || secret == "" {
		return types.User{}, ErrMissingField
	}

	user, err := s.repo.Create(ctx, types.User{
		Name:         name,
		Email:        email,
		Login:        login,
		PasswordHash: HashSecret(secret),
	})
	if err != nil {
		if errors.Is(err, store.ErrLoginExists) {
			return types.User{}, ErrLoginTaken
		}
		return types.User{}, fmt.Errorf("register user: %w", err)
	}
	return user.Sanitized(), nil
}

// Authenticate verifies the login and secret against the stored digest.
// Any mismatch returns ErrInvalidCredentials, without distinguishing an
// unknown login from a wrong secret.
func (s *UserService) Authenticate(ctx context.Context, login, secret string) (types.User, error) {
	user, err := s.repo.GetByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, fmt.Errorf("authenticate user: %w", err)
	}
	if user.PasswordHash != HashSecret(secret) {
		return types.User{}, ErrInvalidCredentials
	}
	return user.Sanitized(), nil
}

// GetByID resolves a user independent of any session, e.g. for report
// display names.
func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.User{}, err
	}
	return user.Sanitized(), nil
}

// UpdateProfile changes the display name and email of the user.
func (s *UserService) UpdateProfile(ctx context.Context, id int, name, email string) (types.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return types.User{}, ErrMissingField
	}

	user, err := s.repo.UpdateProfile(ctx, id, name, email)
	if err != nil {
		return types.User{}, err
	}
	return user.Sanitized(), nil
}

// HashSecret returns the 64-character lowercase hex SHA-256 digest under
// which credentials are persisted.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
