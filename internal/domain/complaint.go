package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusSubmitted ComplaintStatus = "Submitted"
	ComplaintStatusInReview  ComplaintStatus = "In Review"
	ComplaintStatusResolved  ComplaintStatus = "Resolved"
	ComplaintStatusDismissed ComplaintStatus = "Dismissed"
)

// ComplaintStatuses lists every status in lifecycle order.
func ComplaintStatuses() []ComplaintStatus {
	return []ComplaintStatus{
		ComplaintStatusSubmitted,
		ComplaintStatusInReview,
		ComplaintStatusResolved,
		ComplaintStatusDismissed,
	}
}

// Valid reports whether s belongs to the enumeration.
func (s ComplaintStatus) Valid() bool {
	for _, candidate := range ComplaintStatuses() {
		if candidate == s {
			return true
		}
	}
	return false
}

// Terminal reports whether the complaint is closed.
func (s ComplaintStatus) Terminal() bool {
	return s == ComplaintStatusResolved || s == ComplaintStatusDismissed
}

// Complaint is a student-raised issue. OrderID is a weak reference and is never checked.
type Complaint struct {
	ID        string
	UserID    string
	UserEmail string
	OrderID   *string
	Message   string
	Status    ComplaintStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
