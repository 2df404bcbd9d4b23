package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/spec-kit/laundry-service/internal/auth"
	"github.com/spec-kit/laundry-service/internal/domain"
	"github.com/spec-kit/laundry-service/internal/repository"
	apperrors "github.com/spec-kit/laundry-service/pkg/util/errorutil"
)

// RegisterInput carries a registration request.
type RegisterInput struct {
	Firstname       string
	Lastname        string
	Email           string
	Password        string
	ConfirmPassword string
	Hostel          domain.Hostel
}

// IdentityService owns registered users and their hostel assignment.
type IdentityService struct {
	users        repository.UserRepository
	emailPattern *regexp.Regexp
	bcryptCost   int
	now          Clock
}

// IdentityDependencies bundles collaborators for IdentityService.
type IdentityDependencies struct {
	UserRepo    repository.UserRepository
	EmailDomain string
	BcryptCost  int
	Now         Clock
}

// NewIdentityService builds the service. Only addresses at EmailDomain may register.
func NewIdentityService(deps IdentityDependencies) *IdentityService {
	return &IdentityService{
		users:        deps.UserRepo,
		emailPattern: institutionalEmail(deps.EmailDomain),
		bcryptCost:   deps.BcryptCost,
		now:          clockOrDefault(deps.Now),
	}
}

func institutionalEmail(domainName string) *regexp.Regexp {
	return regexp.MustCompile(`^[a-z0-9._%+-]+@` + regexp.QuoteMeta(strings.ToLower(domainName)) + `$`)
}

// Register validates and stores a new student. Uniqueness is enforced by storage.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := domain.NormalizeEmail(in.Email)
	firstname := strings.TrimSpace(in.Firstname)

	details := map[string]any{}
	if firstname == "" {
		details["firstname"] = "first name is required"
	}
	if !s.emailPattern.MatchString(email) {
		details["email"] = "email must belong to the institutional domain"
	}
	if err := auth.CheckPasswordPolicy(in.Password); err != nil {
		details["password"] = err.Error()
	} else if in.Password != in.ConfirmPassword {
		details["confirmPassword"] = "passwords do not match"
	}
	if !in.Hostel.Valid() {
		details["hostel"] = "hostel must be one of the fixed codes"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Firstname:    firstname,
		Lastname:     strings.TrimSpace(in.Lastname),
		Email:        email,
		PasswordHash: hash,
		Hostel:       in.Hostel,
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// FindByEmail looks a user up by normalized email.
func (s *IdentityService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, storageError(err, "user")
	}
	return user, nil
}

// UpdateHostel reassigns the hostel of the user behind email. Only that student may do so.
func (s *IdentityService) UpdateHostel(ctx context.Context, actor domain.Actor, email string, hostel domain.Hostel) (*domain.User, error) {
	if err := auth.Authorize(actor, domain.RoleStudent); err != nil {
		return nil, err
	}
	if !auth.CanManageIdentity(actor, email) {
		return nil, apperrors.NewForbidden("cannot modify another user")
	}
	if !hostel.Valid() {
		return nil, apperrors.NewValidationError("invalid hostel", map[string]any{"hostel": string(hostel)})
	}
	user, err := s.users.UpdateHostel(ctx, domain.NormalizeEmail(email), hostel, s.now())
	if err != nil {
		return nil, storageError(err, "user")
	}
	return user, nil
}
