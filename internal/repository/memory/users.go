// Package memory provides in-process repositories with the same semantics as the
// Postgres ones. They back tests and DSN-less local runs.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/laundry-service/internal/domain"
	"github.com/spec-kit/laundry-service/internal/repository"
)

// UserStore keeps users keyed by normalized email; the map key is the uniqueness constraint.
type UserStore struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.User
}

// NewUserStore builds an empty store.
func NewUserStore() *UserStore {
	return &UserStore{byEmail: make(map[string]*domain.User)}
}

var _ repository.UserRepository = (*UserStore)(nil)

// Create inserts user, failing with ErrEmailTaken if the normalized email exists.
func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	key := domain.NormalizeEmail(user.Email)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[key]; exists {
		return repository.ErrEmailTaken
	}
	user.ID = uuid.NewString()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	s.byEmail[key] = &cp
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.byEmail {
		if user.ID == id {
			cp := *user
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (s *UserStore) UpdateHostel(_ context.Context, email string, hostel domain.Hostel, at time.Time) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user.Hostel = hostel
	user.UpdatedAt = at
	cp := *user
	return &cp, nil
}

// Count returns the number of stored users.
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEmail)
}
