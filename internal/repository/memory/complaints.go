package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/spec-kit/laundry-service/internal/domain"
	"github.com/spec-kit/laundry-service/internal/repository"
)

type complaintRecord struct {
	seq       int64
	complaint domain.Complaint
}

// ComplaintStore keeps complaints in insertion sequence.
type ComplaintStore struct {
	mu         sync.RWMutex
	nextSeq    int64
	complaints map[string]*complaintRecord
}

// NewComplaintStore builds an empty store.
func NewComplaintStore() *ComplaintStore {
	return &ComplaintStore{complaints: make(map[string]*complaintRecord)}
}

var _ repository.ComplaintRepository = (*ComplaintStore)(nil)

func (s *ComplaintStore) Create(_ context.Context, complaint *domain.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if complaint.ID == "" {
		complaint.ID = uuid.NewString()
	}
	s.nextSeq++
	s.complaints[complaint.ID] = &complaintRecord{seq: s.nextSeq, complaint: copyComplaint(*complaint)}
	return nil
}

func (s *ComplaintStore) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.complaints[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := copyComplaint(rec.complaint)
	return &cp, nil
}

func (s *ComplaintStore) ListAll(_ context.Context) ([]domain.Complaint, error) {
	return s.collect(func(*domain.Complaint) bool { return true }), nil
}

func (s *ComplaintStore) ListByEmail(_ context.Context, email string) ([]domain.Complaint, error) {
	email = domain.NormalizeEmail(email)
	return s.collect(func(c *domain.Complaint) bool {
		return domain.NormalizeEmail(c.UserEmail) == email
	}), nil
}

func (s *ComplaintStore) Update(_ context.Context, id string, mutate repository.ComplaintMutation) (*domain.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.complaints[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	working := copyComplaint(rec.complaint)
	if err := mutate(&working); err != nil {
		return nil, err
	}
	rec.complaint.Status = working.Status
	rec.complaint.UpdatedAt = working.UpdatedAt
	cp := copyComplaint(rec.complaint)
	return &cp, nil
}

func (s *ComplaintStore) collect(match func(*domain.Complaint) bool) []domain.Complaint {
	s.mu.RLock()
	records := make([]complaintRecord, 0, len(s.complaints))
	for _, rec := range s.complaints {
		if match(&rec.complaint) {
			records = append(records, complaintRecord{seq: rec.seq, complaint: copyComplaint(rec.complaint)})
		}
	}
	s.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.complaint.CreatedAt.Equal(b.complaint.CreatedAt) {
			return a.complaint.CreatedAt.After(b.complaint.CreatedAt)
		}
		return a.seq > b.seq
	})

	result := make([]domain.Complaint, 0, len(records))
	for _, rec := range records {
		result = append(result, rec.complaint)
	}
	return result
}

func copyComplaint(c domain.Complaint) domain.Complaint {
	if c.OrderID != nil {
		id := *c.OrderID
		c.OrderID = &id
	}
	return c
}
