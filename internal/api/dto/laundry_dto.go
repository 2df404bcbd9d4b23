package dto

import (
	"fmt"
	"time"

	"github.com/spec-kit/laundry-service/internal/domain"
)

// SubmitOrderRequest payload for POST /laundry/submit.
type SubmitOrderRequest struct {
	Items  []domain.OrderItem `json:"items"`
	Hostel string             `json:"hostel"`
}

// UpdateStatusRequest payload for department status changes.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OrderResponse is the public view of a laundry order.
type OrderResponse struct {
	ID          string             `json:"id"`
	UserID      string             `json:"userId"`
	UserEmail   string             `json:"userEmail"`
	Hostel      domain.Hostel      `json:"hostel"`
	Items       []domain.OrderItem `json:"items"`
	TotalItems  int                `json:"totalItems"`
	Status      domain.OrderStatus `json:"status"`
	SubmittedAt time.Time          `json:"submittedAt"`
	LastUpdate  time.Time          `json:"lastUpdate"`
}

// NewOrderResponse maps an order.
func NewOrderResponse(o *domain.LaundryOrder) OrderResponse {
	items := o.Items
	if items == nil {
		items = []domain.OrderItem{}
	}
	return OrderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		UserEmail:   o.UserEmail,
		Hostel:      o.Hostel,
		Items:       items,
		TotalItems:  o.TotalItems,
		Status:      o.Status,
		SubmittedAt: o.SubmittedAt,
		LastUpdate:  o.LastUpdate,
	}
}

// NewOrderListResponse maps a slice of orders, never returning nil.
func NewOrderListResponse(orders []domain.LaundryOrder) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}

// SubmitOrderResponse confirms a submission with a short human reference.
type SubmitOrderResponse struct {
	ID      string        `json:"id"`
	Message string        `json:"message"`
	Order   OrderResponse `json:"order"`
}

// NewSubmitOrderResponse builds the confirmation for order.
func NewSubmitOrderResponse(o *domain.LaundryOrder) SubmitOrderResponse {
	ref := o.ID
	if len(ref) > 4 {
		ref = ref[len(ref)-4:]
	}
	return SubmitOrderResponse{
		ID:      o.ID,
		Message: fmt.Sprintf("Order #%s submitted successfully!", ref),
		Order:   NewOrderResponse(o),
	}
}

// DashboardResponse is the student dashboard view.
type DashboardResponse struct {
	ActiveOrder *OrderResponse  `json:"activeOrder"`
	History     []OrderResponse `json:"history"`
}

// NewDashboardResponse maps a dashboard.
func NewDashboardResponse(d *domain.Dashboard) DashboardResponse {
	resp := DashboardResponse{History: NewOrderListResponse(d.History)}
	if d.ActiveOrder != nil {
		active := NewOrderResponse(d.ActiveOrder)
		resp.ActiveOrder = &active
	}
	return resp
}

// StatusChangeResponse is one entry of an order's status history.
type StatusChangeResponse struct {
	ID        string             `json:"id"`
	OrderID   string             `json:"orderId"`
	OldStatus domain.OrderStatus `json:"oldStatus"`
	NewStatus domain.OrderStatus `json:"newStatus"`
	ChangedBy domain.Role        `json:"changedBy"`
	ChangedAt time.Time          `json:"changedAt"`
}

// NewStatusHistoryResponse maps history entries.
func NewStatusHistoryResponse(entries []domain.OrderStatusChange) []StatusChangeResponse {
	out := make([]StatusChangeResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, StatusChangeResponse{
			ID:        e.ID,
			OrderID:   e.OrderID,
			OldStatus: e.OldStatus,
			NewStatus: e.NewStatus,
			ChangedBy: e.ChangedBy,
			ChangedAt: e.ChangedAt,
		})
	}
	return out
}
