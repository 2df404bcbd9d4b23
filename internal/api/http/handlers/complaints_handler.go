package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/laundry-service/internal/api/dto"
	"github.com/spec-kit/laundry-service/internal/auth"
	"github.com/spec-kit/laundry-service/internal/service"
	apperrors "github.com/spec-kit/laundry-service/pkg/util/errorutil"
)

// ComplaintsHandler manages student complaint endpoints.
type ComplaintsHandler struct {
	complaints *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaints *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{complaints: complaints}
}

// Raise POST /complaints/raise.
func (h *ComplaintsHandler) Raise(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)
	var req dto.RaiseComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.complaints.Raise(c.UserContext(), actor, req.Message, req.OrderID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewComplaintResponse(complaint)})
}

// ListMine GET /complaints/my.
func (h *ComplaintsHandler) ListMine(c *fiber.Ctx) error {
	actor, _ := auth.ActorFromContext(c)
	complaints, err := h.complaints.ListMine(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintListResponse(complaints)})
}
