package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/laundry-service/internal/domain"
)

// OrderHistoryRepository stores order status audit entries.
type OrderHistoryRepository interface {
	Create(ctx context.Context, change *domain.OrderStatusChange) error
	ListByOrder(ctx context.Context, orderID string) ([]domain.OrderStatusChange, error)
}

type orderHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewOrderHistoryRepository builds repository.
func NewOrderHistoryRepository(pool *pgxpool.Pool) OrderHistoryRepository {
	return &orderHistoryRepository{pool: pool}
}

func (r *orderHistoryRepository) Create(ctx context.Context, change *domain.OrderStatusChange) error {
	const query = `
        INSERT INTO order_status_history (order_id, old_status, new_status, changed_by, changed_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		change.OrderID,
		change.OldStatus,
		change.NewStatus,
		change.ChangedBy,
		change.ChangedAt,
	).Scan(&change.ID)
}

func (r *orderHistoryRepository) ListByOrder(ctx context.Context, orderID string) ([]domain.OrderStatusChange, error) {
	const query = `
        SELECT id, order_id, old_status, new_status, changed_by, changed_at
        FROM order_status_history WHERE order_id=$1 ORDER BY changed_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.OrderStatusChange{}
	for rows.Next() {
		var change domain.OrderStatusChange
		if err := rows.Scan(
			&change.ID,
			&change.OrderID,
			&change.OldStatus,
			&change.NewStatus,
			&change.ChangedBy,
			&change.ChangedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, change)
	}
	return result, rows.Err()
}
