package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/laundry-service/internal/api/dto"
	"github.com/spec-kit/laundry-service/internal/service"
	apperrors "github.com/spec-kit/laundry-service/pkg/util/errorutil"
)

// DepartmentAuthHandler exposes the shared operator login.
type DepartmentAuthHandler struct {
	auth *service.AuthService
}

// NewDepartmentAuthHandler constructs handler.
func NewDepartmentAuthHandler(authService *service.AuthService) *DepartmentAuthHandler {
	return &DepartmentAuthHandler{auth: authService}
}

// Login handles POST /department/auth/login.
func (h *DepartmentAuthHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return err
	}

	token, exp, err := h.auth.LoginDepartment(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{Token: token, ExpiresAt: exp}})
}
