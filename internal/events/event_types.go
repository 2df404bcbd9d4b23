package events

import (
	"time"

	"github.com/spec-kit/laundry-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderSubmitted         EventType = "order_submitted"
	EventOrderStatusChanged     EventType = "order_status_changed"
	EventComplaintRaised        EventType = "complaint_raised"
	EventComplaintStatusChanged EventType = "complaint_status_changed"
)

// Event represents a domain event emitted by services after a successful write.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	AggregateID string      `json:"aggregate_id"`
	Actor       domain.Role `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// OrderSubmittedPayload payload.
type OrderSubmittedPayload struct {
	UserID     string        `json:"user_id"`
	UserEmail  string        `json:"user_email"`
	Hostel     domain.Hostel `json:"hostel"`
	TotalItems int           `json:"total_items"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	UserID    string             `json:"user_id"`
	UserEmail string             `json:"user_email"`
	Hostel    domain.Hostel      `json:"hostel"`
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
}

// ComplaintRaisedPayload payload.
type ComplaintRaisedPayload struct {
	UserEmail string  `json:"user_email"`
	OrderID   *string `json:"order_id,omitempty"`
}

// ComplaintStatusChangedPayload payload.
type ComplaintStatusChangedPayload struct {
	UserEmail string                 `json:"user_email"`
	OldStatus domain.ComplaintStatus `json:"old_status"`
	NewStatus domain.ComplaintStatus `json:"new_status"`
}
