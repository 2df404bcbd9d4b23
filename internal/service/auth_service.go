package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/spec-kit/laundry-service/internal/auth"
	"github.com/spec-kit/laundry-service/internal/config"
	"github.com/spec-kit/laundry-service/internal/domain"
	"github.com/spec-kit/laundry-service/internal/repository"
	apperrors "github.com/spec-kit/laundry-service/pkg/util/errorutil"
)

const invalidCredentials = "invalid credentials"

// LoginResult is returned by a successful student login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// AuthService authenticates both trust domains.
type AuthService struct {
	users        repository.UserRepository
	tokens       *auth.TokenManager
	deptEmail    string
	deptPassword string
	bcryptCost   int
}

// AuthDependencies encapsulates collaborators for auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Tokens   *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:        deps.UserRepo,
		tokens:       deps.Tokens,
		deptEmail:    domain.NormalizeEmail(cfg.DeptEmail),
		deptPassword: cfg.DeptPassword,
		bcryptCost:   cfg.BcryptCost,
	}
}

// TokenManager exposes the manager used for issuing tokens.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// LoginStudent authenticates a registered user. Unknown email and wrong password fail identically.
func (s *AuthService) LoginStudent(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		auth.BurnComparison(password, s.bcryptCost)
		return nil, apperrors.NewUnauthorized(invalidCredentials)
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized(invalidCredentials)
	}

	token, exp, err := s.tokens.IssueStudent(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

// LoginDepartment checks the single configured operator credential.
func (s *AuthService) LoginDepartment(_ context.Context, email, password string) (string, time.Time, error) {
	if s.deptEmail == "" || s.deptPassword == "" {
		return "", time.Time{}, apperrors.NewUnauthorized(invalidCredentials)
	}
	emailOK := subtle.ConstantTimeCompare([]byte(domain.NormalizeEmail(email)), []byte(s.deptEmail)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.deptPassword)) == 1
	if !emailOK || !passwordOK {
		return "", time.Time{}, apperrors.NewUnauthorized(invalidCredentials)
	}

	token, exp, err := s.tokens.IssueDepartment()
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, exp, nil
}
