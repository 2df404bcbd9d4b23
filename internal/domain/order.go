package domain

import "time"

// OrderStatus enumerates lifecycle states for laundry orders.
type OrderStatus string

const (
	OrderStatusSubmitted      OrderStatus = "Submitted"
	OrderStatusInProcess      OrderStatus = "In Process"
	OrderStatusReadyForPickup OrderStatus = "Ready for Pickup"
	OrderStatusDelivered      OrderStatus = "Delivered"
	OrderStatusCancelled      OrderStatus = "Cancelled"
)

// StatusAll is the list filter sentinel meaning "every status".
const StatusAll = "ALL"

// OrderStatuses lists every status in lifecycle order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusSubmitted,
		OrderStatusInProcess,
		OrderStatusReadyForPickup,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// Valid reports whether s belongs to the enumeration.
func (s OrderStatus) Valid() bool {
	for _, candidate := range OrderStatuses() {
		if candidate == s {
			return true
		}
	}
	return false
}

// Active reports whether an order in this status is still being worked on.
func (s OrderStatus) Active() bool {
	switch s {
	case OrderStatusSubmitted, OrderStatusInProcess, OrderStatusReadyForPickup:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further lifecycle progress is expected.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// OrderItem is one line of a laundry basket.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// LaundryOrder is the aggregate for a laundry submission.
type LaundryOrder struct {
	ID          string
	UserID      string
	UserEmail   string
	Hostel      Hostel
	Items       []OrderItem
	TotalItems  int
	Status      OrderStatus
	SubmittedAt time.Time
	LastUpdate  time.Time
}

const (
	// MaxItemQuantity bounds a single basket line.
	MaxItemQuantity = 1000
	// MaxOrderItems bounds the total pieces in one order.
	MaxOrderItems = 5000
)

// CountItems sums item quantities.
func CountItems(items []OrderItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// Clone returns a deep copy so callers never share the item slice.
func (o *LaundryOrder) Clone() *LaundryOrder {
	if o == nil {
		return nil
	}
	cp := *o
	cp.Items = append([]OrderItem(nil), o.Items...)
	return &cp
}
