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

// UsersHandler exposes registration, login and profile endpoints for students.
type UsersHandler struct {
	identity *service.IdentityService
	auth     *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(identity *service.IdentityService, authService *service.AuthService) *UsersHandler {
	return &UsersHandler{identity: identity, auth: authService}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.identity.Register(c.UserContext(), service.RegisterInput{
		Firstname:       req.Firstname,
		Lastname:        req.Lastname,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Hostel:          domain.Hostel(req.Hostel),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"data":    dto.NewUserResponse(user),
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := dto.Validate(req); err != nil {
		return err
	}

	res, err := h.auth.LoginStudent(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.StudentAuthResponse{
			Token:     res.Token,
			ExpiresAt: res.ExpiresAt,
			Firstname: res.User.Firstname,
			Email:     res.User.Email,
			Hostel:    res.User.Hostel,
		},
	})
}

// UpdateHostel handles PUT /users/me/hostel.
func (h *UsersHandler) UpdateHostel(c *fiber.Ctx) error {
	student, err := auth.StudentFromContext(c)
	if err != nil {
		return err
	}
	var req dto.UpdateHostelRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.identity.UpdateHostel(c.UserContext(), student, student.Email, domain.Hostel(req.Hostel))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}
