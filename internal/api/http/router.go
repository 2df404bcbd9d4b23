package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/laundry-service/internal/api/http/handlers"
	"github.com/spec-kit/laundry-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health               *handlers.HealthHandler
	Metrics              fiber.Handler
	Users                *handlers.UsersHandler
	DepartmentAuth       *handlers.DepartmentAuthHandler
	Laundry              *handlers.LaundryHandler
	DepartmentLaundry    *handlers.DepartmentLaundryHandler
	Complaints           *handlers.ComplaintsHandler
	DepartmentComplaints *handlers.DepartmentComplaintsHandler
	AuthMiddleware       *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics)
	}

	student := cfg.AuthMiddleware.RequireStudent()
	department := cfg.AuthMiddleware.RequireDepartment()

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	app.Put("/users/me/hostel", student, cfg.Users.UpdateHostel)

	laundry := app.Group("/laundry", student)
	laundry.Post("/submit", cfg.Laundry.Submit)
	laundry.Get("/dashboard", cfg.Laundry.Dashboard)
	laundry.Get("/orders/:id", cfg.Laundry.GetOrder)

	complaints := app.Group("/complaints", student)
	complaints.Post("/raise", cfg.Complaints.Raise)
	complaints.Get("/my", cfg.Complaints.ListMine)

	dept := app.Group("/department")
	dept.Post("/auth/login", cfg.DepartmentAuth.Login)
	dept.Get("/laundry", department, cfg.DepartmentLaundry.List)
	dept.Get("/laundry/:id", department, cfg.DepartmentLaundry.Get)
	dept.Put("/laundry/:id/status", department, cfg.DepartmentLaundry.UpdateStatus)
	dept.Get("/laundry/:id/history", department, cfg.DepartmentLaundry.History)
	dept.Get("/complaints", department, cfg.DepartmentComplaints.List)
	dept.Put("/complaints/:id/update", department, cfg.DepartmentComplaints.Update)
	dept.Put("/complaints/:id/resolve", department, cfg.DepartmentComplaints.Resolve)
}
