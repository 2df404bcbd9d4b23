package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/laundry-service/internal/config"
	"github.com/spec-kit/laundry-service/internal/domain"
)

// DepartmentSubject is the shared operator identity carried in department tokens.
const DepartmentSubject = "LaundryDept"

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrWrongRole    = errors.New("wrong role")
)

// Claims describes the JWT payload for both trust domains.
type Claims struct {
	Role   domain.Role   `json:"role"`
	UserID string        `json:"userId,omitempty"`
	Email  string        `json:"email,omitempty"`
	Hostel domain.Hostel `json:"hostel,omitempty"`
	jwt.RegisteredClaims
}

// Actor converts verified claims into the caller they describe.
func (c *Claims) Actor() domain.Actor {
	if c.Role == domain.RoleDepartment {
		return domain.DepartmentRole{Name: c.Subject}
	}
	return domain.StudentUser{UserID: c.UserID, Email: c.Email, Hostel: c.Hostel}
}

type trustDomain struct {
	secret []byte
	ttl    time.Duration
}

// TokenManager issues and validates tokens for the student and department trust domains.
// Each domain signs with its own secret so a token never verifies outside its domain.
type TokenManager struct {
	domains map[domain.Role]trustDomain
	now     func() time.Time
}

// NewTokenManager builds a manager from auth configuration.
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		domains: map[domain.Role]trustDomain{
			domain.RoleStudent:    {secret: []byte(cfg.StudentJWTSecret), ttl: cfg.StudentTokenTTL()},
			domain.RoleDepartment: {secret: []byte(cfg.DeptJWTSecret), ttl: cfg.DeptTokenTTL()},
		},
		now: time.Now,
	}
}

// WithClock overrides the time source, used for issuing and expiry checks.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

// IssueStudent signs a short-lived token bound to a user record.
func (tm *TokenManager) IssueStudent(user *domain.User) (string, time.Time, error) {
	return tm.issue(&Claims{
		Role:   domain.RoleStudent,
		UserID: user.ID,
		Email:  user.Email,
		Hostel: user.Hostel,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.ID,
		},
	})
}

// IssueDepartment signs a long-lived token for the shared operator role.
func (tm *TokenManager) IssueDepartment() (string, time.Time, error) {
	return tm.issue(&Claims{
		Role: domain.RoleDepartment,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: DepartmentSubject,
		},
	})
}

func (tm *TokenManager) issue(claims *Claims) (string, time.Time, error) {
	td, ok := tm.domains[claims.Role]
	if !ok {
		return "", time.Time{}, ErrWrongRole
	}
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(td.ttl)
	claims.IssuedAt = jwt.NewNumericDate(issuedAt)
	claims.ExpiresAt = jwt.NewNumericDate(expiresAt)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(td.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates a token and requires it to belong to the expected trust domain.
func (tm *TokenManager) Verify(tokenStr string, expected domain.Role) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrMissingToken
	}
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		claims, ok := token.Claims.(*Claims)
		if !ok {
			return nil, ErrInvalidToken
		}
		td, ok := tm.domains[claims.Role]
		if !ok {
			return nil, ErrInvalidToken
		}
		return td.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(tm.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != expected {
		return nil, ErrWrongRole
	}
	if claims.Role == domain.RoleStudent && (claims.UserID == "" || claims.Email == "") {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
