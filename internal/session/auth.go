// Package session verifies admin credentials and keeps admin sessions server-side.
package session

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("Invalid credentials")

// Authenticator checks one configured admin account.
type Authenticator struct {
	username string
	hash     []byte
}

// NewAuthenticator takes a bcrypt hash of the admin password.
func NewAuthenticator(username, passwordHash string) (*Authenticator, error) {
	if username == "" {
		return nil, errors.New("admin username is empty")
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}
	return &Authenticator{username: username, hash: []byte(passwordHash)}, nil
}

// NewAuthenticatorFromPassword hashes a plain password first. Meant for the demo account.
func NewAuthenticatorFromPassword(username, password string, cost int) (*Authenticator, error) {
	h, err := HashPassword(password, cost)
	if err != nil {
		return nil, err
	}
	return NewAuthenticator(username, h)
}

func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// Check returns ErrInvalidCredentials unless both username and password match.
func (a *Authenticator) Check(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	// always run bcrypt so a wrong username costs the same as a wrong password
	passErr := bcrypt.CompareHashAndPassword(a.hash, []byte(password))
	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}
