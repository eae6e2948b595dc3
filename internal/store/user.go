package store

import (
	"context"
	"log/slog"

	"github.com/taskflow-app/taskflow/types"
)

const usersCollection = "usuarios"

// UserRepository handles persistence for users.
type UserRepository struct {
	col *collection[types.User]
}

func NewUserRepository(dataDir string, log *slog.Logger) *UserRepository {
	return &UserRepository{col: newCollection[types.User](dataDir, usersCollection, log)}
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (types.User, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	users, err := r.col.load()
	if err != nil {
		return types.User{}, err
	}
	for _, user := range users {
		if user.ID == id {
			return user, nil
		}
	}
	return types.User{}, ErrNotFound
}

func (r *UserRepository) GetByLogin(ctx context.Context, login string) (types.User, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	users, err := r.col.load()
	if err != nil {
		return types.User{}, err
	}
	for _, user := range users {
		if user.Login == login {
			return user, nil
		}
	}
	return types.User{}, ErrNotFound
}

func (r *UserRepository) List(ctx context.Context) ([]types.User, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	return r.col.load()
}

// Create appends a new user. Login uniqueness is checked and the record
// written under the same lock, so a duplicate registration can never slip
// in between the check and the write.
func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	users, err := r.col.load()
	if err != nil {
		return types.User{}, err
	}

	maxID := 0
	for _, existing := range users {
		if existing.Login == user.Login {
			return types.User{}, ErrLoginExists
		}
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}

	user.ID, err = r.col.nextID(maxID)
	if err != nil {
		return types.User{}, err
	}

	users = append(users, user)
	if err := r.col.persist(users); err != nil {
		return types.User{}, err
	}
	return user, nil
}

// UpdateProfile changes the display name and email of an existing user.
// Login and credential hash are immutable, and users are never deleted.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int, name, email string) (types.User, error) {
	r.col.mu.Lock()
	defer r.col.mu.Unlock()

	users, err := r.col.load()
	if err != nil {
		return types.User{}, err
	}
	for i, user := range users {
		if user.ID != id {
			continue
		}
		users[i].Name = name
		users[i].Email = email
		if err := r.col.persist(users); err != nil {
			return types.User{}, err
		}
		return users[i], nil
	}
	return types.User{}, ErrNotFound
}
