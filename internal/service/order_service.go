package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/laundry-service/internal/auth"
	"github.com/spec-kit/laundry-service/internal/domain"
	"github.com/spec-kit/laundry-service/internal/events"
	"github.com/spec-kit/laundry-service/internal/repository"
	apperrors "github.com/spec-kit/laundry-service/pkg/util/errorutil"
)

// OrderService coordinates the laundry order lifecycle.
type OrderService struct {
	orders     repository.OrderRepository
	users      repository.UserRepository
	history    repository.OrderHistoryRepository
	dispatcher events.Dispatcher
	policy     TransitionPolicy
	logger     *zap.Logger
	now        Clock
}

// OrderDependencies bundles collaborators for order service.
type OrderDependencies struct {
	OrderRepo   repository.OrderRepository
	UserRepo    repository.UserRepository
	HistoryRepo repository.OrderHistoryRepository
	Dispatcher  events.Dispatcher
	Policy      TransitionPolicy
	Logger      *zap.Logger
	Now         Clock
}

// NewOrderService builds the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	return &OrderService{
		orders:     deps.OrderRepo,
		users:      deps.UserRepo,
		history:    deps.HistoryRepo,
		dispatcher: deps.Dispatcher,
		policy:     deps.Policy,
		logger:     loggerOrNop(deps.Logger),
		now:        clockOrDefault(deps.Now),
	}
}

// SubmitInput describes a basket. An empty Hostel means "use the student's current hostel".
type SubmitInput struct {
	Items  []domain.OrderItem
	Hostel domain.Hostel
}

// Submit creates an order in the Submitted state for the calling student.
func (s *OrderService) Submit(ctx context.Context, actor domain.Actor, in SubmitInput) (*domain.LaundryOrder, error) {
	if err := auth.Authorize(actor, domain.RoleStudent); err != nil {
		return nil, err
	}
	student, ok := actor.(domain.StudentUser)
	if !ok {
		return nil, apperrors.NewForbidden("wrong role")
	}

	items, err := normalizeItems(in.Items)
	if err != nil {
		return nil, err
	}

	hostel := in.Hostel
	if hostel == "" {
		if hostel, err = homeHostel(ctx, s.users, student); err != nil {
			return nil, err
		}
	}
	if hostel == "" {
		return nil, apperrors.NewValidationError("hostel required", nil)
	}
	if !hostel.Valid() {
		return nil, apperrors.NewValidationError("invalid hostel", map[string]any{"hostel": string(hostel)})
	}

	now := s.now()
	order := &domain.LaundryOrder{
		UserID:      student.UserID,
		UserEmail:   domain.NormalizeEmail(student.Email),
		Hostel:      hostel,
		Items:       items,
		TotalItems:  domain.CountItems(items),
		Status:      domain.OrderStatusSubmitted,
		SubmittedAt: now,
		LastUpdate:  now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	publish(ctx, s.dispatcher, s.now, events.Event{
		Type:        events.EventOrderSubmitted,
		AggregateID: order.ID,
		Actor:       domain.RoleStudent,
		Payload: events.OrderSubmittedPayload{
			UserID:     order.UserID,
			UserEmail:  order.UserEmail,
			Hostel:     order.Hostel,
			TotalItems: order.TotalItems,
		},
	})
	return order, nil
}

func normalizeItems(items []domain.OrderItem) ([]domain.OrderItem, error) {
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("at least one laundry item required", nil)
	}
	out := make([]domain.OrderItem, 0, len(items))
	details := map[string]any{}
	total := 0
	for i, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			details[fmt.Sprintf("items[%d].name", i)] = "item name is required"
		}
		switch {
		case item.Quantity < 1:
			details[fmt.Sprintf("items[%d].quantity", i)] = "quantity must be at least 1"
		case item.Quantity > domain.MaxItemQuantity:
			details[fmt.Sprintf("items[%d].quantity", i)] = fmt.Sprintf("quantity must be at most %d", domain.MaxItemQuantity)
		default:
			total += item.Quantity
		}
		out = append(out, domain.OrderItem{Name: name, Quantity: item.Quantity})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid laundry items", details)
	}
	if total > domain.MaxOrderItems {
		return nil, apperrors.NewValidationError("too many laundry items", map[string]any{
			"totalItems": fmt.Sprintf("total must be at most %d", domain.MaxOrderItems),
		})
	}
	return out, nil
}

// Transition sets an order's status on behalf of the department and records the change.
func (s *OrderService) Transition(ctx context.Context, actor domain.Actor, orderID string, next domain.OrderStatus) (*domain.LaundryOrder, error) {
	if err := auth.Authorize(actor, domain.RoleDepartment); err != nil {
		return nil, err
	}
	if next == "" {
		return nil, apperrors.NewValidationError("status is required", nil)
	}
	if !next.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(next)})
	}

	var previous domain.OrderStatus
	updated, err := s.orders.Update(ctx, orderID, func(order *domain.LaundryOrder) error {
		if !s.policy.AllowOrder(order.Status, next) {
			return apperrors.NewValidationError("status transition not allowed", map[string]any{
				"from": string(order.Status),
				"to":   string(next),
			})
		}
		previous = order.Status
		order.Status = next
		order.LastUpdate = advance(s.now, order.LastUpdate)
		return nil
	})
	if err != nil {
		return nil, storageError(err, "order")
	}

	s.recordStatusChange(ctx, updated, previous)
	publish(ctx, s.dispatcher, s.now, events.Event{
		Type:        events.EventOrderStatusChanged,
		AggregateID: updated.ID,
		Actor:       domain.RoleDepartment,
		Timestamp:   updated.LastUpdate,
		Payload: events.OrderStatusChangedPayload{
			UserID:    updated.UserID,
			UserEmail: updated.UserEmail,
			Hostel:    updated.Hostel,
			OldStatus: previous,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

// recordStatusChange appends an audit entry. The order write is already committed, so a
// failure here is logged rather than returned.
func (s *OrderService) recordStatusChange(ctx context.Context, order *domain.LaundryOrder, previous domain.OrderStatus) {
	if s.history == nil {
		return
	}
	entry := &domain.OrderStatusChange{
		OrderID:   order.ID,
		OldStatus: previous,
		NewStatus: order.Status,
		ChangedBy: domain.RoleDepartment,
		ChangedAt: order.LastUpdate,
	}
	if err := s.history.Create(ctx, entry); err != nil {
		s.logger.Error("record order status change",
			zap.String("order_id", order.ID),
			zap.String("new_status", string(order.Status)),
			zap.Error(err))
	}
}

// List returns orders for the department. Empty or "ALL" leaves an axis unfiltered.
func (s *OrderService) List(ctx context.Context, actor domain.Actor, hostel, status string) ([]domain.LaundryOrder, error) {
	if err := auth.Authorize(actor, domain.RoleDepartment); err != nil {
		return nil, err
	}
	var filter repository.OrderFilter
	if hostel = strings.TrimSpace(hostel); hostel != "" && hostel != domain.HostelAll {
		h := domain.Hostel(hostel)
		filter.Hostel = &h
	}
	if status = strings.TrimSpace(status); status != "" && status != domain.StatusAll {
		st := domain.OrderStatus(status)
		filter.Status = &st
	}
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return orders, nil
}

// Get returns one order if actor may see it. Orders owned by someone else read as absent.
func (s *OrderService) Get(ctx context.Context, actor domain.Actor, orderID string) (*domain.LaundryOrder, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("missing token")
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, storageError(err, "order")
	}
	if !auth.CanViewOrder(actor, order) {
		return nil, apperrors.NewNotFound("order", nil)
	}
	return order, nil
}

// History lists an order's status changes oldest first.
func (s *OrderService) History(ctx context.Context, actor domain.Actor, orderID string) ([]domain.OrderStatusChange, error) {
	if err := auth.Authorize(actor, domain.RoleDepartment); err != nil {
		return nil, err
	}
	if _, err := s.orders.GetByID(ctx, orderID); err != nil {
		return nil, storageError(err, "order")
	}
	entries, err := s.history.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return entries, nil
}
