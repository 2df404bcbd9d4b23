package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/laundry-service/internal/domain"
	"github.com/spec-kit/laundry-service/internal/repository"
)

func TestUserStore_ConcurrentCreateKeepsOneRecord(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.Create(ctx, &domain.User{Email: "Dup@chitkara.edu.in", Firstname: "D"})
		}()
	}
	wg.Wait()
	close(results)

	var ok, taken int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, repository.ErrEmailTaken):
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, taken)
	assert.Equal(t, 1, store.Count())
}

func TestUserStore_LookupsNormalizeEmail(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &domain.User{Email: "asha@chitkara.edu.in", Hostel: domain.HostelPIA}))

	user, err := store.GetByEmail(ctx, "  ASHA@Chitkara.edu.in ")
	require.NoError(t, err)
	assert.Equal(t, domain.HostelPIA, user.Hostel)

	byID, err := store.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	at := time.Now()
	updated, err := store.UpdateHostel(ctx, "ASHA@chitkara.edu.in", domain.HostelVASCO, at)
	require.NoError(t, err)
	assert.Equal(t, domain.HostelVASCO, updated.Hostel)
	assert.Equal(t, at, updated.UpdatedAt)

	_, err = store.UpdateHostel(ctx, "ghost@chitkara.edu.in", domain.HostelVASCO, at)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOrderStore_ListForOwnerMatchesIDOrEmail(t *testing.T) {
	store := NewOrderStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	orders := []*domain.LaundryOrder{
		{UserID: "u1", UserEmail: "a@chitkara.edu.in", Hostel: domain.HostelPIA, SubmittedAt: base},
		{UserID: "legacy", UserEmail: "A@chitkara.edu.in", Hostel: domain.HostelPIA, SubmittedAt: base.Add(time.Hour)},
		{UserID: "u1", UserEmail: "a@chitkara.edu.in", Hostel: domain.HostelVASCO, SubmittedAt: base.Add(2 * time.Hour)},
		{UserID: "u2", UserEmail: "b@chitkara.edu.in", Hostel: domain.HostelPIA, SubmittedAt: base.Add(3 * time.Hour)},
	}
	for _, o := range orders {
		require.NoError(t, store.Create(ctx, o))
	}

	got, err := store.ListForOwner(ctx, "u1", "a@chitkara.edu.in", domain.HostelPIA)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, orders[1].ID, got[0].ID)
	assert.Equal(t, orders[0].ID, got[1].ID)
}

func TestOrderStore_ListFilter(t *testing.T) {
	store := NewOrderStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &domain.LaundryOrder{Hostel: domain.HostelPIA, Status: domain.OrderStatusSubmitted}))
	require.NoError(t, store.Create(ctx, &domain.LaundryOrder{Hostel: domain.HostelPIB, Status: domain.OrderStatusDelivered}))

	all, err := store.List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	hostel := domain.HostelPIB
	byHostel, err := store.List(ctx, repository.OrderFilter{Hostel: &hostel})
	require.NoError(t, err)
	require.Len(t, byHostel, 1)
	assert.Equal(t, domain.OrderStatusDelivered, byHostel[0].Status)

	status := domain.OrderStatusDelivered
	none, err := store.List(ctx, repository.OrderFilter{Hostel: func() *domain.Hostel { h := domain.HostelPIA; return &h }(), Status: &status})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrderStore_UpdateIsAtomicAndAbortable(t *testing.T) {
	store := NewOrderStore()
	ctx := context.Background()
	order := &domain.LaundryOrder{Status: domain.OrderStatusSubmitted, Items: []domain.OrderItem{{Name: "Shirt", Quantity: 2}}, TotalItems: 2}
	require.NoError(t, store.Create(ctx, order))

	boom := errors.New("abort")
	_, err := store.Update(ctx, order.ID, func(o *domain.LaundryOrder) error {
		o.Status = domain.OrderStatusDelivered
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := store.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusSubmitted, stored.Status)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Update(ctx, order.ID, func(o *domain.LaundryOrder) error {
				o.TotalItems = 999
				o.Status = domain.OrderStatusInProcess
				return nil
			})
		}()
	}
	wg.Wait()

	stored, err = store.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusInProcess, stored.Status)
	assert.Equal(t, 2, stored.TotalItems)

	_, err = store.Update(ctx, "missing", func(*domain.LaundryOrder) error { return nil })
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestComplaintStore_ListByEmailNewestFirst(t *testing.T) {
	store := NewComplaintStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	orderID := "order-1"

	first := &domain.Complaint{UserEmail: "a@chitkara.edu.in", Message: "late", CreatedAt: base, OrderID: &orderID}
	second := &domain.Complaint{UserEmail: "a@chitkara.edu.in", Message: "torn", CreatedAt: base.Add(time.Minute)}
	other := &domain.Complaint{UserEmail: "b@chitkara.edu.in", Message: "lost", CreatedAt: base}
	for _, c := range []*domain.Complaint{first, second, other} {
		require.NoError(t, store.Create(ctx, c))
	}

	mine, err := store.ListByEmail(ctx, "A@chitkara.edu.in")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)
	require.NotNil(t, mine[1].OrderID)
	assert.Equal(t, "order-1", *mine[1].OrderID)

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	updated, err := store.Update(ctx, other.ID, func(c *domain.Complaint) error {
		c.Status = domain.ComplaintStatusDismissed
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ComplaintStatusDismissed, updated.Status)
}

func TestOrderHistoryStore(t *testing.T) {
	store := NewOrderHistoryStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, &domain.OrderStatusChange{OrderID: "o1", NewStatus: domain.OrderStatusInProcess}))
	require.NoError(t, store.Create(ctx, &domain.OrderStatusChange{OrderID: "o1", NewStatus: domain.OrderStatusDelivered}))

	entries, err := store.ListByOrder(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.OrderStatusDelivered, entries[1].NewStatus)
	assert.NotEmpty(t, entries[0].ID)

	empty, err := store.ListByOrder(ctx, "o2")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
