package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's prometheus collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	RequestCount    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ErrorCount      *prometheus.CounterVec

	OrdersSubmitted  *prometheus.CounterVec
	OrderTransitions *prometheus.CounterVec
	ComplaintsRaised prometheus.Counter
	ComplaintUpdates *prometheus.CounterVec
	DashboardLookups *prometheus.CounterVec
}

// NewMetrics registers every collector on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RequestCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "laundry_http_requests_total",
			Help: "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "laundry_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "method"}),
		ErrorCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "laundry_http_errors_total",
			Help: "HTTP error responses by route, method and error code",
		}, []string{"route", "method", "code"}),
		OrdersSubmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "laundry_orders_submitted_total",
			Help: "Laundry orders submitted by hostel",
		}, []string{"hostel"}),
		OrderTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "laundry_order_transitions_total",
			Help: "Order status transitions by target status",
		}, []string{"status"}),
		ComplaintsRaised: factory.NewCounter(prometheus.CounterOpts{
			Name: "laundry_complaints_raised_total",
			Help: "Complaints raised by students",
		}),
		ComplaintUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "laundry_complaint_transitions_total",
			Help: "Complaint status transitions by target status",
		}, []string{"status"}),
		DashboardLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "laundry_dashboard_lookups_total",
			Help: "Dashboard reads by cache result",
		}, []string{"result"}), // result: "hit", "miss", "error"
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestCount.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.ErrorCount.WithLabelValues(route, method, code).Inc()
}

func (m *Metrics) IncOrderSubmitted(hostel string) {
	if m != nil {
		m.OrdersSubmitted.WithLabelValues(hostel).Inc()
	}
}

func (m *Metrics) IncOrderTransition(status string) {
	if m != nil {
		m.OrderTransitions.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) IncComplaintRaised() {
	if m != nil {
		m.ComplaintsRaised.Inc()
	}
}

func (m *Metrics) IncComplaintTransition(status string) {
	if m != nil {
		m.ComplaintUpdates.WithLabelValues(status).Inc()
	}
}

// IncDashboardLookup records a cache hit, miss or error.
func (m *Metrics) IncDashboardLookup(result string) {
	if m != nil {
		m.DashboardLookups.WithLabelValues(result).Inc()
	}
}
