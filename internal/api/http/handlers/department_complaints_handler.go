package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/laundry-service/internal/api/dto"
	"github.com/spec-kit/laundry-service/internal/auth"
	"github.com/spec-kit/laundry-service/internal/domain"
	"github.com/spec-kit/laundry-service/internal/service"
	apperrors "github.com/spec-kit/laundry-service/pkg/util/errorutil"
)

// DepartmentComplaintsHandler manages department complaint endpoints.
type DepartmentComplaintsHandler struct {
	complaints *service.ComplaintService
}

// NewDepartmentComplaintsHandler constructs handler.
func NewDepartmentComplaintsHandler(complaints *service.ComplaintService) *DepartmentComplaintsHandler {
	return &DepartmentComplaintsHandler{complaints: complaints}
}

// List GET /department/complaints.
func (h *DepartmentComplaintsHandler) List(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)
	complaints, err := h.complaints.ListAll(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintListResponse(complaints)})
}

// Update PUT /department/complaints/:id/update.
func (h *DepartmentComplaintsHandler) Update(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.complaints.Transition(c.UserContext(), actor, c.Params("id"), domain.ComplaintStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// Resolve PUT /department/complaints/:id/resolve.
func (h *DepartmentComplaintsHandler) Resolve(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)
	complaint, err := h.complaints.Resolve(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}
