package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/spec-kit/laundry-service/internal/domain"
	"github.com/spec-kit/laundry-service/internal/repository"
)

// OrderHistoryStore appends status changes per order.
type OrderHistoryStore struct {
	mu      sync.RWMutex
	byOrder map[string][]domain.OrderStatusChange
}

// NewOrderHistoryStore builds an empty store.
func NewOrderHistoryStore() *OrderHistoryStore {
	return &OrderHistoryStore{byOrder: make(map[string][]domain.OrderStatusChange)}
}

var _ repository.OrderHistoryRepository = (*OrderHistoryStore)(nil)

func (s *OrderHistoryStore) Create(_ context.Context, change *domain.OrderStatusChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	change.ID = uuid.NewString()
	s.byOrder[change.OrderID] = append(s.byOrder[change.OrderID], *change)
	return nil
}

func (s *OrderHistoryStore) ListByOrder(_ context.Context, orderID string) ([]domain.OrderStatusChange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.OrderStatusChange{}, s.byOrder[orderID]...), nil
}
