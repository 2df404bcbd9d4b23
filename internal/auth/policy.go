package auth

import (
	"github.com/spec-kit/laundry-service/internal/domain"
	apperrors "github.com/spec-kit/laundry-service/pkg/util/errorutil"
)

// Authorize fails unless actor belongs to the expected trust domain.
func Authorize(actor domain.Actor, expected domain.Role) error {
	if actor == nil {
		return apperrors.NewUnauthorized("missing token")
	}
	if actor.Role() != expected {
		return apperrors.NewForbidden("wrong role")
	}
	return nil
}

// OwnsOrder matches by user id, or by denormalized email for records created before id linkage.
func OwnsOrder(student domain.StudentUser, order *domain.LaundryOrder) bool {
	if order == nil {
		return false
	}
	if student.UserID != "" && order.UserID == student.UserID {
		return true
	}
	email := domain.NormalizeEmail(student.Email)
	return email != "" && domain.NormalizeEmail(order.UserEmail) == email
}

// CanViewOrder reports whether actor may read order.
func CanViewOrder(actor domain.Actor, order *domain.LaundryOrder) bool {
	switch a := actor.(type) {
	case domain.StudentUser:
		return OwnsOrder(a, order)
	case domain.DepartmentRole:
		return true
	default:
		return false
	}
}

// CanManageIdentity reports whether actor may change the user record behind email.
// The department role never touches student identity records.
func CanManageIdentity(actor domain.Actor, email string) bool {
	student, ok := actor.(domain.StudentUser)
	if !ok {
		return false
	}
	return domain.NormalizeEmail(student.Email) == domain.NormalizeEmail(email)
}
