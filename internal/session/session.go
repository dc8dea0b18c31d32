// Package session owns the current session token.
//
// The token is kept in a Store under the single key TokenKey. The api client only reads it
// (through Manager.Token) and only the ui layer changes it, using SetSession after a successful
// login and ClearSession on logout.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sinergy/chronosync/internal/apperrors"
)

// TokenKey is the store key holding the session token
const TokenKey = "token"

// TokenStatus represents the state of the stored session token
type TokenStatus int

const (
	TokenMissing TokenStatus = iota // no session, e.g. before the first login or after logout
	TokenInvalid
	TokenExpired
	TokenValid
)

var tokenStatusNames = []string{"TokenMissing", "TokenInvalid", "TokenExpired", "TokenValid"}

func (t TokenStatus) String() string {
	if t < 0 || int(t) >= len(tokenStatusNames) {
		return fmt.Sprintf("TokenStatus(%d)", int(t))
	}
	return tokenStatusNames[t]
}

var ErrEmptyToken = errors.New("session token is empty")

// Manager provides the session lifecycle operations on top of a Store
type Manager struct {
	store Store
	now   func() time.Time
}

func NewManager(store Store) *Manager {
	return &Manager{
		store: store,
		now:   time.Now,
	}
}

// SetSession stores the token returned by a successful login
func (m *Manager) SetSession(token string) error {
	if token == "" {
		return &apperrors.SessionError{Op: "set", Err: ErrEmptyToken}
	}
	if err := m.store.Set(TokenKey, token); err != nil {
		return &apperrors.SessionError{Op: "set", Err: err}
	}
	return nil
}

// ClearSession removes the token key from the store entirely
func (m *Manager) ClearSession() error {
	if err := m.store.Delete(TokenKey); err != nil {
		return &apperrors.SessionError{Op: "clear", Err: err}
	}
	return nil
}

// Token returns the current token and false when there is no session
func (m *Manager) Token() (string, bool, error) {
	token, ok, err := m.store.Get(TokenKey)
	if errors.Is(err, ErrCorruptStore) {
		// unreadable token, treated as logged out so login can replace it
		return "", false, nil
	}
	if err != nil {
		return "", false, &apperrors.SessionError{Op: "read", Err: err}
	}
	if !ok || token == "" {
		return "", false, nil
	}
	return token, true, nil
}

// Status classifies the stored token.
//
// The token is parsed without verifying the signature, the result is advisory: the server
// remains the only authority on whether a token is accepted.
func (m *Manager) Status() (TokenStatus, error) {
	token, ok, err := m.Token()
	if err != nil {
		return TokenMissing, err
	}
	if !ok {
		return TokenMissing, nil
	}

	claims, err := parseClaims(token)
	if err != nil {
		return TokenInvalid, nil
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(m.now()) {
		return TokenExpired, nil
	}

	return TokenValid, nil
}

// Subject returns the "sub" claim of the stored token (the username for chronosync tokens)
func (m *Manager) Subject() (string, error) {
	token, ok, err := m.Token()
	if err != nil || !ok {
		return "", err
	}
	claims, err := parseClaims(token)
	if err != nil {
		return "", nil
	}
	return claims.Subject, nil
}

func parseClaims(token string) (*jwt.RegisteredClaims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := &jwt.RegisteredClaims{}

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
