package auth

import (
	"errors"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// passwordSymbols is the set of characters that satisfy the symbol requirement.
const passwordSymbols = `!@#$%^&*()_+{}[]:;<>,.?~\/-`

const minPasswordLength = 6

var (
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters long")
	ErrPasswordNoUpper   = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoSymbol  = errors.New("password must contain at least one special character")
	ErrInvalidCredential = errors.New("invalid credentials")
)

// dummyHashes holds one throwaway digest per bcrypt cost, built on first use. Unknown
// accounts are compared against the digest matching the cost real accounts are hashed at.
var dummyHashes sync.Map

func effectiveCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

func dummyHash(cost int) []byte {
	cost = effectiveCost(cost)
	if hash, ok := dummyHashes.Load(cost); ok {
		return hash.([]byte)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("dummy-Password!"), cost)
	if err != nil {
		return nil
	}
	actual, _ := dummyHashes.LoadOrStore(cost, hash)
	return actual.([]byte)
}

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), effectiveCost(cost))
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return ErrInvalidCredential
	}
	return nil
}

// BurnComparison performs a throwaway comparison for unknown accounts at the given cost.
func BurnComparison(plain string, cost int) {
	_ = bcrypt.CompareHashAndPassword(dummyHash(cost), []byte(plain))
}

// CheckPasswordPolicy enforces length, uppercase and symbol requirements.
func CheckPasswordPolicy(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	hasUpper := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return ErrPasswordNoUpper
	}
	if !strings.ContainsAny(password, passwordSymbols) {
		return ErrPasswordNoSymbol
	}
	return nil
}
