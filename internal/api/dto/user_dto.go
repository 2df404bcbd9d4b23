package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/laundry-service/internal/domain"
)

// UserRegisterRequest payload for new students. Domain rules are checked by the identity service.
type UserRegisterRequest struct {
	Firstname       string `json:"firstname" validate:"required"`
	Lastname        string `json:"lastname"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Hostel          string `json:"hostel" validate:"required"`
}

// Normalize trims the identity fields so tag validation sees what the service stores.
// Passwords are left untouched.
func (r *UserRegisterRequest) Normalize() {
	r.Firstname = strings.TrimSpace(r.Firstname)
	r.Lastname = strings.TrimSpace(r.Lastname)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Hostel = strings.TrimSpace(r.Hostel)
}

// UserLoginRequest payload for login. Used by both trust domains.
type UserLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Normalize trims the email.
func (r *UserLoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// UpdateHostelRequest payload for PUT /users/me/hostel.
type UpdateHostelRequest struct {
	Hostel string `json:"hostel" validate:"required"`
}

// UserResponse is the public view of a user record.
type UserResponse struct {
	ID        string        `json:"id"`
	Firstname string        `json:"firstname"`
	Lastname  string        `json:"lastname,omitempty"`
	Email     string        `json:"email"`
	Hostel    domain.Hostel `json:"hostel"`
}

// NewUserResponse maps a user without its digest.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Email:     u.Email,
		Hostel:    u.Hostel,
	}
}

// StudentAuthResponse is returned by student login.
type StudentAuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Firstname string        `json:"firstname"`
	Email     string        `json:"email"`
	Hostel    domain.Hostel `json:"hostel"`
}

// AuthResponse is returned by department login.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
