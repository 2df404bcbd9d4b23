package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/laundry-service/internal/auth"
	"github.com/spec-kit/laundry-service/internal/cache"
	"github.com/spec-kit/laundry-service/internal/domain"
	"github.com/spec-kit/laundry-service/internal/observability"
	"github.com/spec-kit/laundry-service/internal/repository"
	apperrors "github.com/spec-kit/laundry-service/pkg/util/errorutil"
)

// DashboardService builds a student's hostel-scoped order view.
type DashboardService struct {
	orders  repository.OrderRepository
	users   repository.UserRepository
	cache   cache.DashboardCache
	metrics *observability.Metrics
	logger  *zap.Logger
}

// DashboardDependencies bundles collaborators for dashboard service.
type DashboardDependencies struct {
	OrderRepo repository.OrderRepository
	UserRepo  repository.UserRepository
	Cache     cache.DashboardCache
	Metrics   *observability.Metrics
	Logger    *zap.Logger
}

// NewDashboardService builds the service. A nil cache disables caching.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	c := deps.Cache
	if c == nil {
		c = cache.Noop{}
	}
	return &DashboardService{
		orders:  deps.OrderRepo,
		users:   deps.UserRepo,
		cache:   c,
		metrics: deps.Metrics,
		logger:  loggerOrNop(deps.Logger),
	}
}

// Aggregate returns the newest active order and the finished ones for the selected hostel.
// When no hostel can be resolved the view is empty rather than an error.
func (s *DashboardService) Aggregate(ctx context.Context, actor domain.Actor, hostel string) (*domain.Dashboard, error) {
	if err := auth.Authorize(actor, domain.RoleStudent); err != nil {
		return nil, err
	}
	student, ok := actor.(domain.StudentUser)
	if !ok {
		return nil, apperrors.NewForbidden("wrong role")
	}

	selected := domain.Hostel(strings.TrimSpace(hostel))
	if selected == "" {
		home, err := homeHostel(ctx, s.users, student)
		if err != nil {
			return nil, err
		}
		selected = home
	}
	if !selected.Valid() {
		return domain.EmptyDashboard(), nil
	}

	view, generation, hit, err := s.cache.Get(ctx, student.Email, selected)
	switch {
	case err != nil:
		s.metrics.IncDashboardLookup("error")
		s.logger.Warn("dashboard cache read failed", zap.String("hostel", string(selected)), zap.Error(err))
	case hit:
		s.metrics.IncDashboardLookup("hit")
		return view, nil
	default:
		s.metrics.IncDashboardLookup("miss")
	}

	orders, err := s.orders.ListForOwner(ctx, student.UserID, student.Email, selected)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	view = domain.PartitionDashboard(orders)

	if err := s.cache.Set(ctx, student.Email, selected, generation, view); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("hostel", string(selected)), zap.Error(err))
	}
	return view, nil
}
