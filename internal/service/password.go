package service

import (
	"fmt"

	"ggsale/internal/config"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for bcrypt hashing
const BcryptCost = 10

// PasswordHasher turns passwords into their stored form and checks them
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
}

// NewPasswordHasher returns the hasher for a config.PasswordMode* value
func NewPasswordHasher(mode string) (PasswordHasher, error) {
	switch mode {
	case config.PasswordModePlain:
		return PlainPasswords{}, nil
	case config.PasswordModeBcrypt, "":
		return BcryptPasswords{Cost: BcryptCost}, nil
	default:
		return nil, fmt.Errorf("unknown password mode %q", mode)
	}
}

// PlainPasswords stores passwords as given and compares them exactly.
// It reads accounts written by the browser storefront.
type PlainPasswords struct{}

func (PlainPasswords) Hash(password string) (string, error) {
	return password, nil
}

func (PlainPasswords) Verify(stored, password string) bool {
	return stored == password
}

// BcryptPasswords stores bcrypt hashes
type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), b.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (b BcryptPasswords) Verify(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
