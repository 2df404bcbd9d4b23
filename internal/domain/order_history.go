package domain

import "time"

// OrderStatusChange is an immutable audit entry written on every order transition.
type OrderStatusChange struct {
	ID        string
	OrderID   string
	OldStatus OrderStatus
	NewStatus OrderStatus
	ChangedBy Role
	ChangedAt time.Time
}
