package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/spec-kit/laundry-service/internal/domain"
	"github.com/spec-kit/laundry-service/internal/repository"
)

type orderRecord struct {
	seq   int64
	order *domain.LaundryOrder
}

// OrderStore keeps laundry orders in insertion sequence.
type OrderStore struct {
	mu      sync.RWMutex
	nextSeq int64
	orders  map[string]*orderRecord
}

// NewOrderStore builds an empty store.
func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]*orderRecord)}
}

var _ repository.OrderRepository = (*OrderStore)(nil)

func (s *OrderStore) Create(_ context.Context, order *domain.LaundryOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	s.nextSeq++
	s.orders[order.ID] = &orderRecord{seq: s.nextSeq, order: order.Clone()}
	return nil
}

func (s *OrderStore) GetByID(_ context.Context, id string) (*domain.LaundryOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return rec.order.Clone(), nil
}

func (s *OrderStore) List(_ context.Context, filter repository.OrderFilter) ([]domain.LaundryOrder, error) {
	return s.collect(func(o *domain.LaundryOrder) bool {
		if filter.Hostel != nil && o.Hostel != *filter.Hostel {
			return false
		}
		if filter.Status != nil && o.Status != *filter.Status {
			return false
		}
		return true
	}), nil
}

func (s *OrderStore) ListForOwner(_ context.Context, userID, email string, hostel domain.Hostel) ([]domain.LaundryOrder, error) {
	email = domain.NormalizeEmail(email)
	return s.collect(func(o *domain.LaundryOrder) bool {
		if o.Hostel != hostel {
			return false
		}
		return o.UserID == userID || domain.NormalizeEmail(o.UserEmail) == email
	}), nil
}

// Update runs mutate under the store lock so concurrent transitions serialize.
func (s *OrderStore) Update(_ context.Context, id string, mutate repository.OrderMutation) (*domain.LaundryOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	working := rec.order.Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	rec.order.Status = working.Status
	rec.order.LastUpdate = working.LastUpdate
	return rec.order.Clone(), nil
}

// collect returns matching orders newest submission first.
func (s *OrderStore) collect(match func(*domain.LaundryOrder) bool) []domain.LaundryOrder {
	s.mu.RLock()
	records := make([]*orderRecord, 0, len(s.orders))
	for _, rec := range s.orders {
		if match(rec.order) {
			records = append(records, &orderRecord{seq: rec.seq, order: rec.order.Clone()})
		}
	}
	s.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.order.SubmittedAt.Equal(b.order.SubmittedAt) {
			return a.order.SubmittedAt.After(b.order.SubmittedAt)
		}
		return a.seq > b.seq
	})

	result := make([]domain.LaundryOrder, 0, len(records))
	for _, rec := range records {
		result = append(result, *rec.order)
	}
	return result
}
