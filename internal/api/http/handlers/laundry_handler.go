package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/laundry-service/internal/api/dto"
	"github.com/spec-kit/laundry-service/internal/auth"
	"github.com/spec-kit/laundry-service/internal/domain"
	"github.com/spec-kit/laundry-service/internal/service"
	apperrors "github.com/spec-kit/laundry-service/pkg/util/errorutil"
)

// LaundryHandler manages student laundry endpoints.
type LaundryHandler struct {
	orders     *service.OrderService
	dashboards *service.DashboardService
}

// NewLaundryHandler constructs handler.
func NewLaundryHandler(orders *service.OrderService, dashboards *service.DashboardService) *LaundryHandler {
	return &LaundryHandler{orders: orders, dashboards: dashboards}
}

// Submit POST /laundry/submit.
func (h *LaundryHandler) Submit(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)
	var req dto.SubmitOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	order, err := h.orders.Submit(c.UserContext(), actor, service.SubmitInput{
		Items:  req.Items,
		Hostel: domain.Hostel(req.Hostel),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSubmitOrderResponse(order)})
}

// Dashboard GET /laundry/dashboard?hostel=.
func (h *LaundryHandler) Dashboard(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)
	view, err := h.dashboards.Aggregate(c.UserContext(), actor, c.Query("hostel"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDashboardResponse(view)})
}

// GetOrder GET /laundry/orders/:id.
func (h *LaundryHandler) GetOrder(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)
	order, err := h.orders.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}
