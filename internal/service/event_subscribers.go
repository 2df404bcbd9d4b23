package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/laundry-service/internal/cache"
	"github.com/spec-kit/laundry-service/internal/domain"
	"github.com/spec-kit/laundry-service/internal/events"
	"github.com/spec-kit/laundry-service/internal/observability"
	"github.com/spec-kit/laundry-service/internal/repository"
)

// EventSubscribers reacts to lifecycle events: cache invalidation, counters and an audit log.
type EventSubscribers struct {
	dispatcher events.Dispatcher
	cache      cache.DashboardCache
	users      repository.UserRepository
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewEventSubscribers creates the subscriber set.
func NewEventSubscribers(dispatcher events.Dispatcher, dashboards cache.DashboardCache, metrics *observability.Metrics, logger *zap.Logger) *EventSubscribers {
	if dashboards == nil {
		dashboards = cache.Noop{}
	}
	return &EventSubscribers{
		dispatcher: dispatcher,
		cache:      dashboards,
		metrics:    metrics,
		logger:     loggerOrNop(logger).Named("audit"),
	}
}

// WithUsers lets invalidation reach owners whose orders carry a stale or foreign email.
func (s *EventSubscribers) WithUsers(users repository.UserRepository) *EventSubscribers {
	s.users = users
	return s
}

// RegisterHandlers subscribes to events.
func (s *EventSubscribers) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventOrderSubmitted, s.handleOrderSubmitted)
	s.dispatcher.Subscribe(events.EventOrderStatusChanged, s.handleOrderStatusChanged)
	s.dispatcher.Subscribe(events.EventComplaintRaised, s.handleComplaintRaised)
	s.dispatcher.Subscribe(events.EventComplaintStatusChanged, s.handleComplaintStatusChanged)
}

func (s *EventSubscribers) handleOrderSubmitted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.OrderSubmittedPayload)
	if !ok {
		return nil
	}
	s.metrics.IncOrderSubmitted(string(payload.Hostel))
	s.logger.Info("OrderSubmitted",
		zap.String("order_id", event.AggregateID),
		zap.String("hostel", string(payload.Hostel)),
		zap.Int("total_items", payload.TotalItems))
	return s.invalidateOwner(ctx, payload.UserID, payload.UserEmail, payload.Hostel)
}

// invalidateOwner drops the dashboard cached under the order's email and, when the owning
// user record is known under a different email, the one cached under that email too.
func (s *EventSubscribers) invalidateOwner(ctx context.Context, userID, email string, hostel domain.Hostel) error {
	if err := s.cache.Invalidate(ctx, email, hostel); err != nil {
		return err
	}
	if s.users == nil || userID == "" {
		return nil
	}
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if domain.NormalizeEmail(user.Email) == domain.NormalizeEmail(email) {
		return nil
	}
	return s.cache.Invalidate(ctx, user.Email, hostel)
}

func (s *EventSubscribers) handleOrderStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.OrderStatusChangedPayload)
	if !ok {
		return nil
	}
	s.metrics.IncOrderTransition(string(payload.NewStatus))
	s.logger.Info("OrderStatusChanged",
		zap.String("order_id", event.AggregateID),
		zap.String("old_status", string(payload.OldStatus)),
		zap.String("new_status", string(payload.NewStatus)))
	return s.invalidateOwner(ctx, payload.UserID, payload.UserEmail, payload.Hostel)
}

func (s *EventSubscribers) handleComplaintRaised(_ context.Context, event events.Event) error {
	s.metrics.IncComplaintRaised()
	s.logger.Info("ComplaintRaised", zap.String("complaint_id", event.AggregateID), zap.Any("payload", event.Payload))
	return nil
}

func (s *EventSubscribers) handleComplaintStatusChanged(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ComplaintStatusChangedPayload)
	if !ok {
		return nil
	}
	s.metrics.IncComplaintTransition(string(payload.NewStatus))
	s.logger.Info("ComplaintStatusChanged",
		zap.String("complaint_id", event.AggregateID),
		zap.String("old_status", string(payload.OldStatus)),
		zap.String("new_status", string(payload.NewStatus)))
	return nil
}
