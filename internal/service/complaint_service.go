package service

import (
	"context"
	"strings"

	"github.com/spec-kit/laundry-service/internal/auth"
	"github.com/spec-kit/laundry-service/internal/domain"
	"github.com/spec-kit/laundry-service/internal/events"
	"github.com/spec-kit/laundry-service/internal/repository"
	apperrors "github.com/spec-kit/laundry-service/pkg/util/errorutil"
)

// ComplaintService coordinates the complaint lifecycle.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	policy     TransitionPolicy
	now        Clock
}

// ComplaintDependencies bundles collaborators for complaint service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	UserRepo      repository.UserRepository
	Dispatcher    events.Dispatcher
	Policy        TransitionPolicy
	Now           Clock
}

// NewComplaintService builds the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		policy:     deps.Policy,
		now:        clockOrDefault(deps.Now),
	}
}

// Raise stores a complaint from the calling student. orderID is kept as given and not looked up.
func (s *ComplaintService) Raise(ctx context.Context, actor domain.Actor, message string, orderID *string) (*domain.Complaint, error) {
	if err := auth.Authorize(actor, domain.RoleStudent); err != nil {
		return nil, err
	}
	student, ok := actor.(domain.StudentUser)
	if !ok {
		return nil, apperrors.NewForbidden("wrong role")
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.NewValidationError("message required", nil)
	}
	if orderID != nil {
		trimmed := strings.TrimSpace(*orderID)
		if trimmed == "" {
			orderID = nil
		} else {
			orderID = &trimmed
		}
	}

	now := s.now()
	complaint := &domain.Complaint{
		UserID:    student.UserID,
		UserEmail: domain.NormalizeEmail(student.Email),
		OrderID:   orderID,
		Message:   message,
		Status:    domain.ComplaintStatusSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	publish(ctx, s.dispatcher, s.now, events.Event{
		Type:        events.EventComplaintRaised,
		AggregateID: complaint.ID,
		Actor:       domain.RoleStudent,
		Payload: events.ComplaintRaisedPayload{
			UserEmail: complaint.UserEmail,
			OrderID:   complaint.OrderID,
		},
	})
	return complaint, nil
}

// Transition sets a complaint's status on behalf of the department.
func (s *ComplaintService) Transition(ctx context.Context, actor domain.Actor, complaintID string, next domain.ComplaintStatus) (*domain.Complaint, error) {
	if err := auth.Authorize(actor, domain.RoleDepartment); err != nil {
		return nil, err
	}
	if next == "" {
		return nil, apperrors.NewValidationError("status is required", nil)
	}
	if !next.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(next)})
	}

	var previous domain.ComplaintStatus
	updated, err := s.complaints.Update(ctx, complaintID, func(c *domain.Complaint) error {
		if !s.policy.AllowComplaint(c.Status, next) {
			return apperrors.NewValidationError("status transition not allowed", map[string]any{
				"from": string(c.Status),
				"to":   string(next),
			})
		}
		previous = c.Status
		c.Status = next
		c.UpdatedAt = advance(s.now, c.UpdatedAt)
		return nil
	})
	if err != nil {
		return nil, storageError(err, "complaint")
	}

	publish(ctx, s.dispatcher, s.now, events.Event{
		Type:        events.EventComplaintStatusChanged,
		AggregateID: updated.ID,
		Actor:       domain.RoleDepartment,
		Timestamp:   updated.UpdatedAt,
		Payload: events.ComplaintStatusChangedPayload{
			UserEmail: updated.UserEmail,
			OldStatus: previous,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

// Resolve is Transition to Resolved.
func (s *ComplaintService) Resolve(ctx context.Context, actor domain.Actor, complaintID string) (*domain.Complaint, error) {
	return s.Transition(ctx, actor, complaintID, domain.ComplaintStatusResolved)
}

// ListAll returns every complaint, newest first.
func (s *ComplaintService) ListAll(ctx context.Context, actor domain.Actor) ([]domain.Complaint, error) {
	if err := auth.Authorize(actor, domain.RoleDepartment); err != nil {
		return nil, err
	}
	complaints, err := s.complaints.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return complaints, nil
}

// ListMine returns the calling student's complaints, newest first. The token's email is
// resolved to the canonical user record first.
func (s *ComplaintService) ListMine(ctx context.Context, actor domain.Actor) ([]domain.Complaint, error) {
	if err := auth.Authorize(actor, domain.RoleStudent); err != nil {
		return nil, err
	}
	student, ok := actor.(domain.StudentUser)
	if !ok {
		return nil, apperrors.NewForbidden("wrong role")
	}

	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(student.Email))
	if err != nil {
		return nil, storageError(err, "user")
	}
	complaints, err := s.complaints.ListByEmail(ctx, user.Email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return complaints, nil
}
