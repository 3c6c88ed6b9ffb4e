package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"makernet/internal/models"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestSessionAuthChecks(t *testing.T) {
	t.Parallel()

	var nilSession *Session
	if nilSession.Authenticated() {
		t.Fatal("nil session must not be authenticated")
	}

	anon := &Session{}
	if anon.Authenticated() || anon.UserID() != 0 {
		t.Fatal("empty token must not be authenticated")
	}
	if !errors.Is(anon.RequireAuth(), ErrNotAuthenticated) {
		t.Fatal("RequireAuth must return ErrNotAuthenticated")
	}

	user := &Session{Token: "t", User: models.User{ID: 7}}
	if err := user.RequireAuth(); err != nil {
		t.Fatalf("authenticated session rejected: %v", err)
	}
	if user.UserID() != 7 {
		t.Fatalf("UserID = %d, want 7", user.UserID())
	}
	if err := user.RequireAdmin(); err == nil {
		t.Fatal("non-admin must fail RequireAdmin")
	}

	admin := &Session{Token: "t", User: models.User{ID: 8, IsAdmin: true}}
	if err := admin.RequireAdmin(); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}
}

func TestTokenExpiry(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, err := TokenExpiry(signedToken(t, exp))
	if err != nil {
		t.Fatalf("TokenExpiry: %v", err)
	}
	if !got.Equal(exp) {
		t.Fatalf("expiry = %v, want %v", got, exp)
	}

	if _, err := TokenExpiry("not-a-jwt"); err == nil {
		t.Fatal("garbage token must not parse")
	}
}

func TestSessionExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	live := &Session{Token: signedToken(t, now.Add(time.Hour))}
	if live.Expired(now) {
		t.Fatal("token expiring in an hour is not expired")
	}

	stale := &Session{Token: signedToken(t, now.Add(-time.Hour))}
	if !stale.Expired(now) {
		t.Fatal("token expired an hour ago must report expired")
	}

	garbage := &Session{Token: "zzz"}
	if !garbage.Expired(now) {
		t.Fatal("unparseable token counts as expired")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "token")
	st := &Store{Path: path}

	// Missing file is an empty token, not an error.
	tok, err := st.Load()
	if err != nil || tok != "" {
		t.Fatalf("Load on missing file = %q, %v", tok, err)
	}

	if err := st.Save("  secret-token \n"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	tok, err = st.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tok != "secret-token" {
		t.Fatalf("Load = %q, want trimmed token", tok)
	}

	if err := st.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	// Clearing twice is a no-op.
	if err := st.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}
