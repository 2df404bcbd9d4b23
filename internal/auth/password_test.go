package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("Secret!1", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "Secret!1", hash)

	assert.NoError(t, ComparePassword(hash, "Secret!1"))
	assert.ErrorIs(t, ComparePassword(hash, "secret!1"), ErrInvalidCredential)
}

func TestDummyHashMatchesConfiguredCost(t *testing.T) {
	cost := bcrypt.MinCost + 1
	hash := dummyHash(cost)
	got, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, cost, got)
	assert.Equal(t, hash, dummyHash(cost))

	hashed, err := HashPassword("Secret!1", cost)
	require.NoError(t, err)
	realCost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, realCost, got)

	assert.Equal(t, bcrypt.DefaultCost, effectiveCost(0))
	assert.Equal(t, bcrypt.DefaultCost, effectiveCost(bcrypt.MaxCost+1))
}

func TestCheckPasswordPolicy(t *testing.T) {
	tests := []struct {
		password string
		want     error
	}{
		{"Ab!", ErrPasswordTooShort},
		{"abcdef!", ErrPasswordNoUpper},
		{"Abcdefg", ErrPasswordNoSymbol},
		{"Abcde!", nil},
		{`Path\to`, nil},
		{"Pass-word", nil},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := CheckPasswordPolicy(tt.password)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
