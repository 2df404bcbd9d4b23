package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/laundry-service/internal/api/http/handlers"
	"github.com/spec-kit/laundry-service/internal/auth"
	"github.com/spec-kit/laundry-service/internal/cache"
	"github.com/spec-kit/laundry-service/internal/config"
	"github.com/spec-kit/laundry-service/internal/events"
	"github.com/spec-kit/laundry-service/internal/observability"
	"github.com/spec-kit/laundry-service/internal/persistence"
	"github.com/spec-kit/laundry-service/internal/repository/memory"
	"github.com/spec-kit/laundry-service/internal/service"
)

const (
	deptEmail    = "laundry@chitkara.edu.in"
	deptPassword = "Dept#Pass1"
	studentPass  = "Secret!1"
)

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	authCfg := config.AuthConfig{
		StudentJWTSecret: "student-secret",
		DeptJWTSecret:    "dept-secret",
		DeptEmail:        deptEmail,
		DeptPassword:     deptPassword,
		BcryptCost:       bcrypt.MinCost,
	}
	users := memory.NewUserStore()
	orders := memory.NewOrderStore()
	tokens := auth.NewTokenManager(authCfg)
	dispatcher := events.NewInMemoryDispatcher(logger)
	dashboards := cache.Noop{}
	service.NewEventSubscribers(dispatcher, dashboards, metrics, logger).WithUsers(users).RegisterHandlers()
	policy := service.NewTransitionPolicy(false)

	identity := service.NewIdentityService(service.IdentityDependencies{
		UserRepo:    users,
		EmailDomain: "chitkara.edu.in",
		BcryptCost:  bcrypt.MinCost,
	})
	authSvc := service.NewAuthService(authCfg, service.AuthDependencies{UserRepo: users, Tokens: tokens})
	orderSvc := service.NewOrderService(service.OrderDependencies{
		OrderRepo:   orders,
		UserRepo:    users,
		HistoryRepo: memory.NewOrderHistoryStore(),
		Dispatcher:  dispatcher,
		Policy:      policy,
		Logger:      logger,
	})
	complaintSvc := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: memory.NewComplaintStore(),
		UserRepo:      users,
		Dispatcher:    dispatcher,
		Policy:        policy,
	})
	dashboardSvc := service.NewDashboardService(service.DashboardDependencies{
		OrderRepo: orders,
		UserRepo:  users,
		Cache:     dashboards,
		Metrics:   metrics,
		Logger:    logger,
	})

	app := NewApp("laundry-test", logger, metrics, 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:               handlers.NewHealthHandler("laundry-test", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Metrics:              adaptor.HTTPHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})),
		Users:                handlers.NewUsersHandler(identity, authSvc),
		DepartmentAuth:       handlers.NewDepartmentAuthHandler(authSvc),
		Laundry:              handlers.NewLaundryHandler(orderSvc, dashboardSvc),
		DepartmentLaundry:    handlers.NewDepartmentLaundryHandler(orderSvc),
		Complaints:           handlers.NewComplaintsHandler(complaintSvc),
		DepartmentComplaints: handlers.NewDepartmentComplaintsHandler(complaintSvc),
		AuthMiddleware:       auth.NewAuthMiddleware(tokens),
	})
	return app
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func registerAndLogin(t *testing.T, app *fiber.App, email, hostel string) string {
	t.Helper()
	status, env := call(t, app, http.MethodPost, "/auth/register", "", map[string]string{
		"firstname":       "Asha",
		"email":           email,
		"password":        studentPass,
		"confirmPassword": studentPass,
		"hostel":          hostel,
	})
	require.Equal(t, http.StatusCreated, status, env.Error)

	status, env = call(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": studentPass,
	})
	require.Equal(t, http.StatusOK, status)
	login := decode[map[string]any](t, env.Data)
	assert.Equal(t, "Asha", login["firstname"])
	assert.Equal(t, hostel, login["hostel"])
	return login["token"].(string)
}

func departmentLogin(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, env := call(t, app, http.MethodPost, "/department/auth/login", "", map[string]string{
		"email":    deptEmail,
		"password": deptPassword,
	})
	require.Equal(t, http.StatusOK, status)
	return decode[map[string]any](t, env.Data)["token"].(string)
}

func TestOrderFlowOverHTTP(t *testing.T) {
	app := newTestServer(t)
	student := registerAndLogin(t, app, "asha@chitkara.edu.in", "PI-A")
	dept := departmentLogin(t, app)

	status, env := call(t, app, http.MethodPost, "/laundry/submit", student, map[string]any{
		"items":  []map[string]any{{"name": "Shirt", "quantity": 3}, {"name": "Towel", "quantity": 1}},
		"hostel": "PI-A",
	})
	require.Equal(t, http.StatusCreated, status)
	submitted := decode[map[string]any](t, env.Data)
	orderID := submitted["id"].(string)
	assert.Equal(t, "Order #"+orderID[len(orderID)-4:]+" submitted successfully!", submitted["message"])
	order := submitted["order"].(map[string]any)
	assert.EqualValues(t, 4, order["totalItems"])
	assert.Equal(t, "Submitted", order["status"])

	status, _ = call(t, app, http.MethodPut, "/department/laundry/"+orderID+"/status", dept, map[string]string{"status": "In Process"})
	require.Equal(t, http.StatusOK, status)

	status, env = call(t, app, http.MethodGet, "/laundry/dashboard?hostel=PI-A", student, nil)
	require.Equal(t, http.StatusOK, status)
	view := decode[map[string]any](t, env.Data)
	require.NotNil(t, view["activeOrder"])
	assert.Equal(t, orderID, view["activeOrder"].(map[string]any)["id"])
	assert.Empty(t, view["history"])

	status, _ = call(t, app, http.MethodPut, "/department/laundry/"+orderID+"/status", dept, map[string]string{"status": "Delivered"})
	require.Equal(t, http.StatusOK, status)

	status, env = call(t, app, http.MethodGet, "/laundry/dashboard", student, nil)
	require.Equal(t, http.StatusOK, status)
	view = decode[map[string]any](t, env.Data)
	assert.Nil(t, view["activeOrder"])
	assert.Len(t, view["history"], 1)

	status, env = call(t, app, http.MethodGet, "/department/laundry/"+orderID+"/history", dept, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 2)

	status, env = call(t, app, http.MethodGet, "/department/laundry?hostel=ALL&status=Delivered", dept, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	status, _ = call(t, app, http.MethodGet, "/laundry/orders/"+orderID, student, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestErrorMapping(t *testing.T) {
	app := newTestServer(t)
	student := registerAndLogin(t, app, "asha@chitkara.edu.in", "PI-A")
	dept := departmentLogin(t, app)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		status int
		code   string
	}{
		{"duplicate registration", http.MethodPost, "/auth/register", "", map[string]string{
			"firstname": "A", "email": "ASHA@chitkara.edu.in", "password": studentPass, "confirmPassword": studentPass, "hostel": "PI-A",
		}, http.StatusConflict, "CONFLICT"},
		{"registration missing fields", http.MethodPost, "/auth/register", "", map[string]string{"email": "x"}, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"bad student credentials", http.MethodPost, "/auth/login", "", map[string]string{"email": "asha@chitkara.edu.in", "password": "nope"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"bad department credentials", http.MethodPost, "/department/auth/login", "", map[string]string{"email": deptEmail, "password": "nope"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"empty basket", http.MethodPost, "/laundry/submit", student, map[string]any{"items": []any{}}, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"missing token", http.MethodGet, "/laundry/dashboard", "", nil, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"student on department route", http.MethodGet, "/department/laundry", student, nil, http.StatusForbidden, "FORBIDDEN"},
		{"department on student route", http.MethodGet, "/complaints/my", dept, nil, http.StatusForbidden, "FORBIDDEN"},
		{"unknown order status", http.MethodPut, "/department/laundry/missing/status", dept, map[string]string{"status": "Delivered"}, http.StatusNotFound, "NOT_FOUND"},
		{"missing status", http.MethodPut, "/department/laundry/missing/status", dept, map[string]string{}, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"empty complaint", http.MethodPost, "/complaints/raise", student, map[string]string{"message": ""}, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"unknown complaint", http.MethodPut, "/department/complaints/missing/resolve", dept, nil, http.StatusNotFound, "NOT_FOUND"},
		{"unknown route", http.MethodGet, "/nowhere", "", nil, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := call(t, app, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.status, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
			assert.NotEmpty(t, env.Error.Message)
		})
	}
}

func TestComplaintFlowOverHTTP(t *testing.T) {
	app := newTestServer(t)
	student := registerAndLogin(t, app, "asha@chitkara.edu.in", "PI-A")
	dept := departmentLogin(t, app)

	status, env := call(t, app, http.MethodPost, "/complaints/raise", student, map[string]string{
		"message": "Towel missing",
		"orderId": "unchecked-ref",
	})
	require.Equal(t, http.StatusCreated, status)
	complaint := decode[map[string]any](t, env.Data)
	id := complaint["id"].(string)
	assert.Equal(t, "unchecked-ref", complaint["orderId"])

	status, _ = call(t, app, http.MethodPut, "/department/complaints/"+id+"/update", dept, map[string]string{"status": "In Review"})
	require.Equal(t, http.StatusOK, status)

	status, env = call(t, app, http.MethodPut, "/department/complaints/"+id+"/resolve", dept, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Resolved", decode[map[string]any](t, env.Data)["status"])

	status, env = call(t, app, http.MethodGet, "/complaints/my", student, nil)
	require.Equal(t, http.StatusOK, status)
	mine := decode[[]map[string]any](t, env.Data)
	require.Len(t, mine, 1)
	assert.Equal(t, "Resolved", mine[0]["status"])

	status, env = call(t, app, http.MethodGet, "/department/complaints", dept, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)
}

func TestUpdateHostelOverHTTP(t *testing.T) {
	app := newTestServer(t)
	student := registerAndLogin(t, app, "asha@chitkara.edu.in", "PI-A")

	status, env := call(t, app, http.MethodPut, "/users/me/hostel", student, map[string]string{"hostel": "VASCO"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "VASCO", decode[map[string]any](t, env.Data)["hostel"])

	status, env = call(t, app, http.MethodPut, "/users/me/hostel", student, map[string]string{"hostel": "MOON"})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)

	// The token still names PI-A; submissions and the dashboard follow the stored record.
	status, env = call(t, app, http.MethodPost, "/laundry/submit", student, map[string]any{
		"items": []map[string]any{{"name": "Shirt", "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, status)
	order := decode[map[string]any](t, env.Data)["order"].(map[string]any)
	assert.Equal(t, "VASCO", order["hostel"])

	status, env = call(t, app, http.MethodGet, "/laundry/dashboard", student, nil)
	require.Equal(t, http.StatusOK, status)
	view := decode[map[string]any](t, env.Data)
	require.NotNil(t, view["activeOrder"])
	assert.Equal(t, "VASCO", view["activeOrder"].(map[string]any)["hostel"])
}

func TestRegisterNormalizesPaddedMixedCaseEmail(t *testing.T) {
	app := newTestServer(t)

	status, env := call(t, app, http.MethodPost, "/auth/register", "", map[string]string{
		"firstname":       "Asha",
		"email":           " Mixed@Chitkara.edu.in ",
		"password":        studentPass,
		"confirmPassword": studentPass,
		"hostel":          "PI-A",
	})
	require.Equal(t, http.StatusCreated, status, env.Error)
	assert.Equal(t, "mixed@chitkara.edu.in", decode[map[string]any](t, env.Data)["email"])

	status, env = call(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "MIXED@chitkara.edu.in ",
		"password": studentPass,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "mixed@chitkara.edu.in", decode[map[string]any](t, env.Data)["email"])
}

func TestProbes(t *testing.T) {
	app := newTestServer(t)

	status, _ := call(t, app, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "laundry_http_requests_total")
}
