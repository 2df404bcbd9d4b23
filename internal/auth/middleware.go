package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/laundry-service/internal/domain"
	apperrors "github.com/spec-kit/laundry-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// DeptTokenHeader is the legacy header the department portal sends its token in.
const DeptTokenHeader = "X-Dept-Token"

// AuthMiddleware validates role-scoped tokens and stores the resolved actor.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireStudent admits only tokens from the student trust domain.
func (m *AuthMiddleware) RequireStudent() fiber.Handler {
	return m.require(domain.RoleStudent, bearerToken)
}

// RequireDepartment admits only tokens from the department trust domain.
func (m *AuthMiddleware) RequireDepartment() fiber.Handler {
	return m.require(domain.RoleDepartment, func(c *fiber.Ctx) string {
		if token := bearerToken(c); token != "" {
			return token
		}
		return strings.TrimSpace(c.Get(DeptTokenHeader))
	})
}

func (m *AuthMiddleware) require(role domain.Role, extract func(*fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := m.tokens.Verify(extract(c), role)
		if err != nil {
			return toAuthError(err)
		}
		c.Locals(principalKey, claims.Actor())
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func toAuthError(err error) error {
	switch {
	case errors.Is(err, ErrMissingToken):
		return apperrors.NewUnauthorized("missing token")
	case errors.Is(err, ErrWrongRole):
		return apperrors.NewForbidden("wrong role")
	default:
		return apperrors.NewUnauthorized("invalid or expired token")
	}
}

// ActorFromContext retrieves the authenticated caller.
func ActorFromContext(c *fiber.Ctx) (domain.Actor, bool) {
	actor, ok := c.Locals(principalKey).(domain.Actor)
	return actor, ok
}

// StudentFromContext retrieves the caller when it is a student.
func StudentFromContext(c *fiber.Ctx) (domain.StudentUser, error) {
	actor, _ := ActorFromContext(c)
	student, ok := actor.(domain.StudentUser)
	if !ok {
		return domain.StudentUser{}, apperrors.NewForbidden("student required")
	}
	return student, nil
}

// DepartmentFromContext retrieves the caller when it is the department.
func DepartmentFromContext(c *fiber.Ctx) (domain.DepartmentRole, error) {
	actor, _ := ActorFromContext(c)
	dept, ok := actor.(domain.DepartmentRole)
	if !ok {
		return domain.DepartmentRole{}, apperrors.NewForbidden("department required")
	}
	return dept, nil
}
