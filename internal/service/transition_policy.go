package service

import "github.com/spec-kit/laundry-service/internal/domain"

// TransitionPolicy decides which status changes the department may apply.
// Permissive mode accepts any member of the enumeration; strict mode only moves forward.
type TransitionPolicy struct {
	strict bool
}

// NewTransitionPolicy builds the policy selected by configuration.
func NewTransitionPolicy(strict bool) TransitionPolicy {
	return TransitionPolicy{strict: strict}
}

// Strict reports whether forward-only rules are enforced.
func (p TransitionPolicy) Strict() bool {
	return p.strict
}

var orderProgression = map[domain.OrderStatus]int{
	domain.OrderStatusSubmitted:      0,
	domain.OrderStatusInProcess:      1,
	domain.OrderStatusReadyForPickup: 2,
	domain.OrderStatusDelivered:      3,
}

// AllowOrder reports whether an order may move from one status to another.
func (p TransitionPolicy) AllowOrder(from, to domain.OrderStatus) bool {
	if !to.Valid() {
		return false
	}
	if !p.strict || from == to {
		return true
	}
	if from.Terminal() {
		return false
	}
	if to == domain.OrderStatusCancelled {
		return true
	}
	return orderProgression[to] > orderProgression[from]
}

var complaintProgression = map[domain.ComplaintStatus]int{
	domain.ComplaintStatusSubmitted: 0,
	domain.ComplaintStatusInReview:  1,
	domain.ComplaintStatusResolved:  2,
}

// AllowComplaint reports whether a complaint may move from one status to another.
func (p TransitionPolicy) AllowComplaint(from, to domain.ComplaintStatus) bool {
	if !to.Valid() {
		return false
	}
	if !p.strict || from == to {
		return true
	}
	if from.Terminal() {
		return false
	}
	if to == domain.ComplaintStatusDismissed {
		return true
	}
	return complaintProgression[to] > complaintProgression[from]
}
