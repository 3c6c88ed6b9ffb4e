// Package session holds the client's authentication state. The session is
// an explicit object passed to consumers; there is no ambient global.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"makernet/internal/models"
)

// ErrNotAuthenticated indicates no valid token is present.
var ErrNotAuthenticated = errors.New("not signed in")

// Session is the client-side view of the authenticated user. Pages and
// commands are purely reactive to it; real enforcement lives server-side.
type Session struct {
	Token string
	User  models.User
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// IsAdmin reports whether the signed-in user may see admin surfaces.
func (s *Session) IsAdmin() bool {
	return s.Authenticated() && s.User.IsAdmin
}

// UserID returns the signed-in user's id, zero when signed out.
func (s *Session) UserID() uint {
	if !s.Authenticated() {
		return 0
	}
	return s.User.ID
}

// RequireAuth returns ErrNotAuthenticated when signed out. Command surfaces
// call this instead of redirecting.
func (s *Session) RequireAuth() error {
	if !s.Authenticated() {
		return ErrNotAuthenticated
	}
	return nil
}

// RequireAdmin returns an error unless the signed-in user is an admin.
func (s *Session) RequireAdmin() error {
	if err := s.RequireAuth(); err != nil {
		return err
	}
	if !s.User.IsAdmin {
		return errors.New("admin access required")
	}
	return nil
}

// TokenExpiry parses the JWT expiry claim without verifying the signature.
// Verification is the server's job; the client only wants to know when to
// prompt for a fresh sign-in.
func TokenExpiry(token string) (time.Time, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, errors.New("token has no expiry claim")
	}
	return exp.Time, nil
}

// Expired reports whether the session token is past its expiry claim. A
// token that cannot be parsed counts as expired.
func (s *Session) Expired(now time.Time) bool {
	if !s.Authenticated() {
		return true
	}
	exp, err := TokenExpiry(s.Token)
	if err != nil {
		return true
	}
	return now.After(exp)
}

// Store persists the token to a file.
type Store struct {
	Path string
}

// Save writes the token with owner-only permissions, replacing any previous
// token atomically.
func (st *Store) Save(token string) error {
	dir := filepath.Dir(st.Path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	tmp := st.Path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strings.TrimSpace(token)+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	if err := os.Rename(tmp, st.Path); err != nil {
		return fmt.Errorf("move token into place: %w", err)
	}
	return nil
}

// Load reads the saved token. A missing file returns an empty token and no
// error.
func (st *Store) Load() (string, error) {
	b, err := os.ReadFile(st.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// Clear removes the saved token. Clearing an absent token is a no-op.
func (st *Store) Clear() error {
	err := os.Remove(st.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
