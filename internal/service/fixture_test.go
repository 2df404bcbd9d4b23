package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/laundry-service/internal/auth"
	"github.com/spec-kit/laundry-service/internal/config"
	"github.com/spec-kit/laundry-service/internal/domain"
	"github.com/spec-kit/laundry-service/internal/events"
	"github.com/spec-kit/laundry-service/internal/observability"
	"github.com/spec-kit/laundry-service/internal/repository/memory"
)

const (
	testDomain       = "chitkara.edu.in"
	testPassword     = "Secret!1"
	testDeptEmail    = "laundry@chitkara.edu.in"
	testDeptPassword = "Dept#Pass1"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// mapCache is an in-process DashboardCache that can be told to fail reads.
type mapCache struct {
	mu          sync.Mutex
	entries     map[string]*domain.Dashboard
	generations map[string]int64
	failGets    bool
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string]*domain.Dashboard{}, generations: map[string]int64{}}
}

func (c *mapCache) key(email string, hostel domain.Hostel) string {
	return domain.NormalizeEmail(email) + "|" + string(hostel)
}

func (c *mapCache) Get(_ context.Context, email string, hostel domain.Hostel) (*domain.Dashboard, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGets {
		return nil, 0, false, errors.New("cache unavailable")
	}
	key := c.key(email, hostel)
	view, ok := c.entries[key]
	return view, c.generations[key], ok, nil
}

func (c *mapCache) Set(_ context.Context, email string, hostel domain.Hostel, generation int64, view *domain.Dashboard) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.key(email, hostel)
	if c.generations[key] != generation {
		return nil
	}
	c.entries[key] = view
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, email string, hostel domain.Hostel) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.key(email, hostel)
	c.generations[key]++
	delete(c.entries, key)
	return nil
}

func (c *mapCache) has(email string, hostel domain.Hostel) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[c.key(email, hostel)]
	return ok
}

type fixture struct {
	clock      *fakeClock
	users      *memory.UserStore
	orderRepo  *memory.OrderStore
	complaints *memory.ComplaintStore
	history    *memory.OrderHistoryStore
	cache      *mapCache
	metrics    *observability.Metrics
	tokens     *auth.TokenManager

	identity   *IdentityService
	authSvc    *AuthService
	orderSvc   *OrderService
	complaint  *ComplaintService
	dashboards *DashboardService
}

func newFixture(t *testing.T, strict bool) *fixture {
	t.Helper()
	f := &fixture{
		clock:      newFakeClock(),
		users:      memory.NewUserStore(),
		orderRepo:  memory.NewOrderStore(),
		complaints: memory.NewComplaintStore(),
		history:    memory.NewOrderHistoryStore(),
		cache:      newMapCache(),
		metrics:    observability.NewMetrics(),
	}
	authCfg := config.AuthConfig{
		StudentJWTSecret: "student-secret",
		DeptJWTSecret:    "dept-secret",
		DeptEmail:        testDeptEmail,
		DeptPassword:     testDeptPassword,
		BcryptCost:       bcrypt.MinCost,
	}
	f.tokens = auth.NewTokenManager(authCfg).WithClock(f.clock.Now)

	dispatcher := events.NewInMemoryDispatcher(nil)
	NewEventSubscribers(dispatcher, f.cache, f.metrics, nil).WithUsers(f.users).RegisterHandlers()
	policy := NewTransitionPolicy(strict)

	f.identity = NewIdentityService(IdentityDependencies{
		UserRepo:    f.users,
		EmailDomain: testDomain,
		BcryptCost:  bcrypt.MinCost,
		Now:         f.clock.Now,
	})
	f.authSvc = NewAuthService(authCfg, AuthDependencies{UserRepo: f.users, Tokens: f.tokens})
	f.orderSvc = NewOrderService(OrderDependencies{
		OrderRepo:   f.orderRepo,
		UserRepo:    f.users,
		HistoryRepo: f.history,
		Dispatcher:  dispatcher,
		Policy:      policy,
		Now:         f.clock.Now,
	})
	f.complaint = NewComplaintService(ComplaintDependencies{
		ComplaintRepo: f.complaints,
		UserRepo:      f.users,
		Dispatcher:    dispatcher,
		Policy:        policy,
		Now:           f.clock.Now,
	})
	f.dashboards = NewDashboardService(DashboardDependencies{
		OrderRepo: f.orderRepo,
		UserRepo:  f.users,
		Cache:     f.cache,
		Metrics:   f.metrics,
	})
	return f
}

// register stores a user and returns the actor a verified token for them would yield.
func (f *fixture) register(t *testing.T, email string, hostel domain.Hostel) domain.StudentUser {
	t.Helper()
	user, err := f.identity.Register(context.Background(), RegisterInput{
		Firstname:       "Asha",
		Email:           email,
		Password:        testPassword,
		ConfirmPassword: testPassword,
		Hostel:          hostel,
	})
	require.NoError(t, err)
	return domain.StudentUser{UserID: user.ID, Email: user.Email, Hostel: user.Hostel}
}

var dept = domain.DepartmentRole{Name: auth.DepartmentSubject}
