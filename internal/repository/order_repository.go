package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/laundry-service/internal/domain"
)

// OrderFilter captures department listing parameters. Nil fields are unfiltered.
type OrderFilter struct {
	Hostel *domain.Hostel
	Status *domain.OrderStatus
}

// OrderRepository encapsulates laundry order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.LaundryOrder) error
	GetByID(ctx context.Context, id string) (*domain.LaundryOrder, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.LaundryOrder, error)
	// ListForOwner returns orders matched by user id or denormalized email within one hostel,
	// newest submission first.
	ListForOwner(ctx context.Context, userID, email string, hostel domain.Hostel) ([]domain.LaundryOrder, error)
	// Update locks one order, applies mutate and persists status and last_update atomically.
	Update(ctx context.Context, id string, mutate OrderMutation) (*domain.LaundryOrder, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = `id, user_id, user_email, hostel, items, total_items, status, submitted_at, last_update`

func (r *orderRepository) Create(ctx context.Context, order *domain.LaundryOrder) error {
	const query = `
        INSERT INTO laundry_orders (user_id, user_email, hostel, items, total_items, status, submitted_at, last_update)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		order.UserID,
		order.UserEmail,
		order.Hostel,
		order.Items,
		order.TotalItems,
		order.Status,
		order.SubmittedAt,
		order.LastUpdate,
	).Scan(&order.ID)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.LaundryOrder, error) {
	const query = `SELECT ` + orderColumns + ` FROM laundry_orders WHERE id=$1`
	return scanOrder(r.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]domain.LaundryOrder, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Hostel != nil {
		args = append(args, *filter.Hostel)
		clauses = append(clauses, fmt.Sprintf("hostel=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM laundry_orders WHERE %s ORDER BY submitted_at DESC`,
		orderColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *orderRepository) ListForOwner(ctx context.Context, userID, email string, hostel domain.Hostel) ([]domain.LaundryOrder, error) {
	const query = `
        SELECT ` + orderColumns + ` FROM laundry_orders
        WHERE (user_id=$1 OR lower(user_email)=$2) AND hostel=$3
        ORDER BY submitted_at DESC`
	rows, err := r.pool.Query(ctx, query, userID, domain.NormalizeEmail(email), hostel)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

func (r *orderRepository) Update(ctx context.Context, id string, mutate OrderMutation) (*domain.LaundryOrder, error) {
	var updated *domain.LaundryOrder
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const lockQuery = `SELECT ` + orderColumns + ` FROM laundry_orders WHERE id=$1 FOR UPDATE`
		order, err := scanOrder(tx.QueryRow(ctx, lockQuery, id))
		if err != nil {
			return err
		}
		if err := mutate(order); err != nil {
			return err
		}
		const updateQuery = `UPDATE laundry_orders SET status=$1, last_update=$2 WHERE id=$3`
		if _, err := tx.Exec(ctx, updateQuery, order.Status, order.LastUpdate, order.ID); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func scanOrder(row pgx.Row) (*domain.LaundryOrder, error) {
	var order domain.LaundryOrder
	if err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.UserEmail,
		&order.Hostel,
		&order.Items,
		&order.TotalItems,
		&order.Status,
		&order.SubmittedAt,
		&order.LastUpdate,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func scanOrders(rows pgx.Rows) ([]domain.LaundryOrder, error) {
	result := []domain.LaundryOrder{}
	for rows.Next() {
		var order domain.LaundryOrder
		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.UserEmail,
			&order.Hostel,
			&order.Items,
			&order.TotalItems,
			&order.Status,
			&order.SubmittedAt,
			&order.LastUpdate,
		); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}
