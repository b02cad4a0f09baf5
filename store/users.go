package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"inventorypro-server/models"
	"inventorypro-server/storage"
)

// Users returns a copy of the user registry, password hashes included.
// Callers shaping API responses use User.Public.
func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.User(nil), s.users...)
}

// UserByUsername looks a user up case-insensitively.
func (s *Store) UserByUsername(username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// CreateUser registers a local account. The caller supplies the bcrypt
// hash; the store never sees plaintext passwords.
func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" || u.PasswordHash == "" {
		return models.User{}, fmt.Errorf("%w: username and password are required", ErrInvalidUser)
	}
	if u.Role != models.RoleAdmin && u.Role != models.RoleStaff {
		u.Role = models.RoleStaff
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return models.User{}, ErrDuplicateUser
		}
	}

	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()

	// The first account becomes the admin; nobody else can.
	if len(s.users) == 0 {
		u.Role = models.RoleAdmin
	}

	next := append(append([]models.User(nil), s.users...), u)
	if err := s.persist(ctx, storage.KeyUsers, next); err != nil {
		return models.User{}, err
	}
	s.users = next
	return u, nil
}

// UpdateUserRole changes a user's role. Demoting the only remaining
// admin is refused so the registry can never lock itself out.
func (s *Store) UpdateUserRole(ctx context.Context, id, role string) (models.User, error) {
	if role != models.RoleAdmin && role != models.RoleStaff {
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidUser, role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findUser(id)
	if idx < 0 {
		return models.User{}, ErrUserNotFound
	}

	if s.users[idx].Role == models.RoleAdmin && role != models.RoleAdmin && s.adminCount() == 1 {
		return models.User{}, ErrLastAdmin
	}

	next := append([]models.User(nil), s.users...)
	next[idx].Role = role
	if err := s.persist(ctx, storage.KeyUsers, next); err != nil {
		return models.User{}, err
	}
	s.users = next
	return next[idx], nil
}

// DeleteUser removes an account. Removing the only remaining admin is
// refused.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findUser(id)
	if idx < 0 {
		return ErrUserNotFound
	}
	if s.users[idx].Role == models.RoleAdmin && s.adminCount() == 1 {
		return ErrLastAdmin
	}

	next := append([]models.User(nil), s.users[:idx]...)
	next = append(next, s.users[idx+1:]...)
	if err := s.persist(ctx, storage.KeyUsers, next); err != nil {
		return err
	}
	s.users = next
	return nil
}

func (s *Store) findUser(id string) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) adminCount() int {
	count := 0
	for _, u := range s.users {
		if u.Role == models.RoleAdmin {
			count++
		}
	}
	return count
}
