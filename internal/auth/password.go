package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrAuthDisabled       = errors.New("authentication is not configured")
)

// MinPasswordLength is the shortest password HashPassword accepts.
const MinPasswordLength = 8

// PasswordAuthenticator checks the operator password against a bcrypt hash.
type PasswordAuthenticator struct {
	hash []byte
}

// NewPasswordAuthenticator creates an authenticator for the given bcrypt hash.
// An empty hash disables authentication.
func NewPasswordAuthenticator(passwordHash string) (*PasswordAuthenticator, error) {
	if passwordHash == "" {
		return &PasswordAuthenticator{}, nil
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("invalid password hash: %w", err)
	}
	return &PasswordAuthenticator{hash: []byte(passwordHash)}, nil
}

// Enabled reports whether a password hash is configured.
func (a *PasswordAuthenticator) Enabled() bool {
	return len(a.hash) > 0
}

// Authenticate compares the password with the configured hash.
func (a *PasswordAuthenticator) Authenticate(_ context.Context, credential string) error {
	if !a.Enabled() {
		return ErrAuthDisabled
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(credential)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// ValidateCredential checks if the password meets minimum requirements.
func ValidateCredential(credential string) error {
	if len(credential) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// HashPassword validates and hashes a password for the auth.password_hash setting.
func HashPassword(password string) (string, error) {
	if err := ValidateCredential(password); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
