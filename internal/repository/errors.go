package repository

import (
	"errors"

	"github.com/spec-kit/laundry-service/internal/domain"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrEmailTaken is returned when the email uniqueness constraint rejects a write.
	ErrEmailTaken = errors.New("email already registered")
)

// OrderMutation edits a locked order in place. Returning an error aborts the write.
type OrderMutation func(order *domain.LaundryOrder) error

// ComplaintMutation edits a locked complaint in place. Returning an error aborts the write.
type ComplaintMutation func(complaint *domain.Complaint) error
