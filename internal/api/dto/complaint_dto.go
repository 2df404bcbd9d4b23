package dto

import (
	"time"

	"github.com/spec-kit/laundry-service/internal/domain"
)

// RaiseComplaintRequest payload for POST /complaints/raise.
type RaiseComplaintRequest struct {
	Message string  `json:"message"`
	OrderID *string `json:"orderId"`
}

// ComplaintResponse is the public view of a complaint.
type ComplaintResponse struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"userId"`
	UserEmail string                 `json:"userEmail"`
	OrderID   *string                `json:"orderId"`
	Message   string                 `json:"message"`
	Status    domain.ComplaintStatus `json:"status"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// NewComplaintResponse maps a complaint.
func NewComplaintResponse(c *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		UserEmail: c.UserEmail,
		OrderID:   c.OrderID,
		Message:   c.Message,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewComplaintListResponse maps a slice of complaints, never returning nil.
func NewComplaintListResponse(complaints []domain.Complaint) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		out = append(out, NewComplaintResponse(&complaints[i]))
	}
	return out
}
