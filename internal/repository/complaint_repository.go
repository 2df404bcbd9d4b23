package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/laundry-service/internal/domain"
)

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	ListAll(ctx context.Context) ([]domain.Complaint, error)
	// ListByEmail returns complaints raised by email, newest first.
	ListByEmail(ctx context.Context, email string) ([]domain.Complaint, error)
	Update(ctx context.Context, id string, mutate ComplaintMutation) (*domain.Complaint, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `id, user_id, user_email, order_id, message, status, created_at, updated_at`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (user_id, user_email, order_id, message, status, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		complaint.UserID,
		complaint.UserEmail,
		complaint.OrderID,
		complaint.Message,
		complaint.Status,
		complaint.CreatedAt,
		complaint.UpdatedAt,
	).Scan(&complaint.ID)
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	const query = `SELECT ` + complaintColumns + ` FROM complaints WHERE id=$1`
	return scanComplaint(r.pool.QueryRow(ctx, query, id))
}

func (r *complaintRepository) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	const query = `SELECT ` + complaintColumns + ` FROM complaints ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepository) ListByEmail(ctx context.Context, email string) ([]domain.Complaint, error) {
	const query = `SELECT ` + complaintColumns + ` FROM complaints WHERE lower(user_email)=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, domain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepository) Update(ctx context.Context, id string, mutate ComplaintMutation) (*domain.Complaint, error) {
	var updated *domain.Complaint
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const lockQuery = `SELECT ` + complaintColumns + ` FROM complaints WHERE id=$1 FOR UPDATE`
		complaint, err := scanComplaint(tx.QueryRow(ctx, lockQuery, id))
		if err != nil {
			return err
		}
		if err := mutate(complaint); err != nil {
			return err
		}
		const updateQuery = `UPDATE complaints SET status=$1, updated_at=$2 WHERE id=$3`
		if _, err := tx.Exec(ctx, updateQuery, complaint.Status, complaint.UpdatedAt, complaint.ID); err != nil {
			return err
		}
		updated = complaint
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func scanComplaint(row pgx.Row) (*domain.Complaint, error) {
	var complaint domain.Complaint
	if err := row.Scan(
		&complaint.ID,
		&complaint.UserID,
		&complaint.UserEmail,
		&complaint.OrderID,
		&complaint.Message,
		&complaint.Status,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &complaint, nil
}

func scanComplaints(rows pgx.Rows) ([]domain.Complaint, error) {
	result := []domain.Complaint{}
	for rows.Next() {
		var complaint domain.Complaint
		if err := rows.Scan(
			&complaint.ID,
			&complaint.UserID,
			&complaint.UserEmail,
			&complaint.OrderID,
			&complaint.Message,
			&complaint.Status,
			&complaint.CreatedAt,
			&complaint.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}
