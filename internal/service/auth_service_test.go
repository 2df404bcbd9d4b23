package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/laundry-service/internal/auth"
	"github.com/spec-kit/laundry-service/internal/config"
	"github.com/spec-kit/laundry-service/internal/domain"
	apperrors "github.com/spec-kit/laundry-service/pkg/util/errorutil"
)

func TestLoginStudent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	student := f.register(t, "asha@chitkara.edu.in", domain.HostelIBNA)

	res, err := f.authSvc.LoginStudent(ctx, " Asha@Chitkara.edu.in ", testPassword)
	require.NoError(t, err)
	assert.Equal(t, "Asha", res.User.Firstname)
	assert.Equal(t, f.clock.Now().Add(time.Hour), res.ExpiresAt)

	claims, err := f.tokens.Verify(res.Token, domain.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, student.UserID, claims.UserID)
	assert.Equal(t, student.Email, claims.Email)
	assert.Equal(t, domain.HostelIBNA, claims.Hostel)
}

func TestLoginStudentFailuresAreUniform(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	f.register(t, "asha@chitkara.edu.in", domain.HostelPIA)

	_, unknownErr := f.authSvc.LoginStudent(ctx, "nobody@chitkara.edu.in", testPassword)
	_, mismatchErr := f.authSvc.LoginStudent(ctx, "asha@chitkara.edu.in", "Wrong!pass")

	for _, err := range []error{unknownErr, mismatchErr} {
		de := apperrors.ToDomainError(err)
		require.NotNil(t, de)
		assert.Equal(t, apperrors.CodeUnauthorized, de.Code)
		assert.Equal(t, "invalid credentials", de.Message)
	}
	assert.Equal(t, unknownErr.Error(), mismatchErr.Error())
}

func TestLoginDepartment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	token, exp, err := f.authSvc.LoginDepartment(ctx, "LAUNDRY@chitkara.edu.in", testDeptPassword)
	require.NoError(t, err)
	assert.Equal(t, f.clock.Now().Add(7*24*time.Hour), exp)

	claims, err := f.tokens.Verify(token, domain.RoleDepartment)
	require.NoError(t, err)
	assert.Equal(t, auth.DepartmentSubject, claims.Subject)

	_, err = f.tokens.Verify(token, domain.RoleStudent)
	assert.ErrorIs(t, err, auth.ErrWrongRole)

	_, _, err = f.authSvc.LoginDepartment(ctx, testDeptEmail, "nope")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}

func TestLoginDepartmentWithoutConfiguredCredential(t *testing.T) {
	tokens := auth.NewTokenManager(config.AuthConfig{StudentJWTSecret: "a", DeptJWTSecret: "b"})
	svc := NewAuthService(config.AuthConfig{}, AuthDependencies{Tokens: tokens})

	_, _, err := svc.LoginDepartment(context.Background(), "", "")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}

func TestStudentTokenRejectedForDepartment(t *testing.T) {
	f := newFixture(t, false)
	f.register(t, "asha@chitkara.edu.in", domain.HostelPIA)
	res, err := f.authSvc.LoginStudent(context.Background(), "asha@chitkara.edu.in", testPassword)
	require.NoError(t, err)

	_, err = f.tokens.Verify(res.Token, domain.RoleDepartment)
	assert.ErrorIs(t, err, auth.ErrWrongRole)
}
