package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/laundry-service/internal/api/dto"
	"github.com/spec-kit/laundry-service/internal/auth"
	"github.com/spec-kit/laundry-service/internal/domain"
	"github.com/spec-kit/laundry-service/internal/service"
	apperrors "github.com/spec-kit/laundry-service/pkg/util/errorutil"
)

// DepartmentLaundryHandler manages department order triage endpoints.
type DepartmentLaundryHandler struct {
	orders *service.OrderService
}

// NewDepartmentLaundryHandler constructs handler.
func NewDepartmentLaundryHandler(orders *service.OrderService) *DepartmentLaundryHandler {
	return &DepartmentLaundryHandler{orders: orders}
}

// List GET /department/laundry?hostel=&status=.
func (h *DepartmentLaundryHandler) List(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)
	orders, err := h.orders.List(c.UserContext(), actor, c.Query("hostel"), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderListResponse(orders)})
}

// Get GET /department/laundry/:id.
func (h *DepartmentLaundryHandler) Get(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)
	order, err := h.orders.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// UpdateStatus PUT /department/laundry/:id/status.
func (h *DepartmentLaundryHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	order, err := h.orders.Transition(c.UserContext(), actor, c.Params("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Status updated successfully",
		"data":    dto.NewOrderResponse(order),
	})
}

// History GET /department/laundry/:id/history.
func (h *DepartmentLaundryHandler) History(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)
	entries, err := h.orders.History(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStatusHistoryResponse(entries)})
}
