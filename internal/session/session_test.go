package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"patrimonio/internal/client"
	"patrimonio/internal/models"
)

// mockAuth implements Authenticator with overridable behavior.
type mockAuth struct {
	signUpFn  func(creds client.Credentials) (*client.AuthResult, error)
	signInFn  func(email, password string) (*client.AuthResult, error)
	refreshFn func(refreshToken string) (*client.AuthResult, error)
	signOutFn func(accessToken string) error
}

var _ Authenticator = (*mockAuth)(nil)

func (m *mockAuth) SignUp(_ context.Context, creds client.Credentials) (*client.AuthResult, error) {
	return m.signUpFn(creds)
}

func (m *mockAuth) SignIn(_ context.Context, email, password string) (*client.AuthResult, error) {
	return m.signInFn(email, password)
}

func (m *mockAuth) Refresh(_ context.Context, refreshToken string) (*client.AuthResult, error) {
	return m.refreshFn(refreshToken)
}

func (m *mockAuth) SignOut(_ context.Context, accessToken string) error {
	if m.signOutFn == nil {
		return nil
	}
	return m.signOutFn(accessToken)
}

func signedToken(t *testing.T, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expires)})
	s, err := token.SignedString([]byte("session-test"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return s
}

func authResult(access, refresh string) *client.AuthResult {
	return &client.AuthResult{
		AccessToken:  access,
		RefreshToken: refresh,
		Profile:      &models.Profile{Base: models.Base{ID: "p-1"}, Email: "ana@example.com", Role: models.RoleEditor},
	}
}

func newManager(t *testing.T, auth Authenticator) (*Manager, *MemoryStore) {
	t.Helper()
	store := &MemoryStore{}
	m, err := NewManager(auth, store)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m, store
}

func TestSignInAndSignOut(t *testing.T) {
	var revoked string
	auth := &mockAuth{
		signInFn: func(email, password string) (*client.AuthResult, error) {
			if password != "password123" {
				return nil, &client.APIError{StatusCode: 401, Message: "Invalid email or password"}
			}
			return authResult("access", "refresh"), nil
		},
		signOutFn: func(accessToken string) error {
			revoked = accessToken
			return nil
		},
	}
	m, store := newManager(t, auth)

	if _, err := m.Require(); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired before sign-in, got %v", err)
	}

	if _, err := m.SignIn(context.Background(), "ana@example.com", "wrong"); err == nil || err.Error() != "Invalid email or password" {
		t.Fatalf("expected server message, got %v", err)
	}
	if m.Current() != nil {
		t.Fatal("failed sign-in must not create a session")
	}

	s, err := m.SignIn(context.Background(), "ana@example.com", "password123")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if s.UserID() != "p-1" {
		t.Errorf("expected user p-1, got %q", s.UserID())
	}
	if saved, _ := store.Load(); saved == nil || saved.AccessToken != "access" {
		t.Errorf("session not persisted: %+v", saved)
	}

	if err := m.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if revoked != "access" {
		t.Errorf("expected access token revoked, got %q", revoked)
	}
	if m.Current() != nil {
		t.Error("expected no session after sign-out")
	}
	if saved, _ := store.Load(); saved != nil {
		t.Error("expected stored session cleared")
	}
}

func TestSignOut_ClearsLocallyOnServerError(t *testing.T) {
	auth := &mockAuth{
		signUpFn: func(client.Credentials) (*client.AuthResult, error) { return authResult("a", "r"), nil },
		signOutFn: func(string) error {
			return errors.New("connection refused")
		},
	}
	m, _ := newManager(t, auth)
	if _, err := m.SignUp(context.Background(), "ana@example.com", "password123", "Ana"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if err := m.SignOut(context.Background()); err == nil {
		t.Error("expected the server error to be returned")
	}
	if m.Current() != nil {
		t.Error("expected local session cleared")
	}
}

func TestSubscribe(t *testing.T) {
	auth := &mockAuth{signInFn: func(string, string) (*client.AuthResult, error) { return authResult("a", "r"), nil }}
	m, _ := newManager(t, auth)

	var events []*Session
	unsubscribe := m.Subscribe(func(s *Session) {
		events = append(events, s)
		// Listeners may read the manager without deadlocking.
		_ = m.Current()
	})

	if _, err := m.SignIn(context.Background(), "ana@example.com", "x"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if err := m.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if len(events) != 2 || events[0] == nil || events[1] != nil {
		t.Fatalf("expected sign-in then sign-out events, got %v", events)
	}

	unsubscribe()
	if _, err := m.SignIn(context.Background(), "ana@example.com", "x"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("unsubscribed listener was called")
	}
}

func TestToken(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("fresh token is returned as is", func(t *testing.T) {
		fresh := signedToken(t, now.Add(10*time.Minute))
		auth := &mockAuth{
			signInFn:  func(string, string) (*client.AuthResult, error) { return authResult(fresh, "r"), nil },
			refreshFn: func(string) (*client.AuthResult, error) { t.Fatal("unexpected refresh"); return nil, nil },
		}
		m, _ := newManager(t, auth)
		m.now = func() time.Time { return now }
		_, _ = m.SignIn(context.Background(), "a", "b")

		token, err := m.Token(context.Background())
		if err != nil || token != fresh {
			t.Fatalf("expected fresh token, got %q, %v", token, err)
		}
	})

	t.Run("expired token is refreshed", func(t *testing.T) {
		expired := signedToken(t, now.Add(-time.Minute))
		renewed := signedToken(t, now.Add(15*time.Minute))
		auth := &mockAuth{
			signInFn: func(string, string) (*client.AuthResult, error) { return authResult(expired, "r1"), nil },
			refreshFn: func(refreshToken string) (*client.AuthResult, error) {
				if refreshToken != "r1" {
					t.Errorf("expected r1, got %q", refreshToken)
				}
				return &client.AuthResult{AccessToken: renewed, RefreshToken: "r2"}, nil
			},
		}
		m, _ := newManager(t, auth)
		m.now = func() time.Time { return now }
		_, _ = m.SignIn(context.Background(), "a", "b")

		token, err := m.Token(context.Background())
		if err != nil || token != renewed {
			t.Fatalf("expected renewed token, got %v", err)
		}
		s := m.Current()
		if s.RefreshToken != "r2" || s.UserID() != "p-1" {
			t.Errorf("expected rotated session keeping the profile, got %+v", s)
		}
	})

	t.Run("rejected refresh signs out", func(t *testing.T) {
		expired := signedToken(t, now.Add(-time.Minute))
		auth := &mockAuth{
			signInFn: func(string, string) (*client.AuthResult, error) { return authResult(expired, "r"), nil },
			refreshFn: func(string) (*client.AuthResult, error) {
				return nil, &client.APIError{StatusCode: 401, Message: "Invalid or expired refresh token"}
			},
		}
		m, _ := newManager(t, auth)
		m.now = func() time.Time { return now }
		_, _ = m.SignIn(context.Background(), "a", "b")

		if _, err := m.Token(context.Background()); !errors.Is(err, ErrLoginRequired) {
			t.Fatalf("expected ErrLoginRequired, got %v", err)
		}
		if m.Current() != nil {
			t.Error("expected session cleared")
		}
	})

	t.Run("server failure keeps the session", func(t *testing.T) {
		expired := signedToken(t, now.Add(-time.Minute))
		auth := &mockAuth{
			signInFn: func(string, string) (*client.AuthResult, error) { return authResult(expired, "r"), nil },
			refreshFn: func(string) (*client.AuthResult, error) {
				return nil, &client.APIError{StatusCode: 503, Message: "unexpected status 503"}
			},
		}
		m, _ := newManager(t, auth)
		m.now = func() time.Time { return now }
		_, _ = m.SignIn(context.Background(), "a", "b")

		_, err := m.Token(context.Background())
		var apiErr *client.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != 503 {
			t.Fatalf("expected the server error, got %v", err)
		}
		if m.Current() == nil {
			t.Error("expected session kept after a server failure")
		}
	})
}

func TestWatchProfile(t *testing.T) {
	auth := &mockAuth{
		signInFn: func(string, string) (*client.AuthResult, error) { return authResult("access-1", "r"), nil },
	}
	m, store := newManager(t, auth)

	var lookups []string
	stop := m.WatchProfile(context.Background(), func(_ context.Context, token string) (*models.Profile, error) {
		lookups = append(lookups, token)
		return &models.Profile{Base: models.Base{ID: "p-1"}, Email: "ana@example.com", Name: "Ana Lima", Role: models.RoleAdmin}, nil
	}, func(err error) { t.Errorf("unexpected lookup error: %v", err) })

	if _, err := m.SignIn(context.Background(), "ana@example.com", "pw"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if len(lookups) != 1 || lookups[0] != "access-1" {
		t.Fatalf("expected one lookup with the new token, got %v", lookups)
	}
	if s := m.Current(); s.Profile.Name != "Ana Lima" || s.Profile.Role != models.RoleAdmin {
		t.Errorf("expected looked-up profile in session, got %+v", s.Profile)
	}
	if saved, _ := store.Load(); saved == nil || saved.Profile.Name != "Ana Lima" {
		t.Errorf("expected looked-up profile persisted, got %+v", saved)
	}

	if err := m.SetProfile(models.Profile{Base: models.Base{ID: "p-1"}, Name: "Ana"}); err != nil {
		t.Fatalf("SetProfile: %v", err)
	}
	if len(lookups) != 1 {
		t.Errorf("expected no lookup for an unchanged token, got %v", lookups)
	}

	_ = m.SignOut(context.Background())
	_, _ = m.SignIn(context.Background(), "ana@example.com", "pw")
	if len(lookups) != 2 {
		t.Errorf("expected a lookup after signing in again, got %v", lookups)
	}

	stop()
	_ = m.SignOut(context.Background())
	_, _ = m.SignIn(context.Background(), "ana@example.com", "pw")
	if len(lookups) != 2 {
		t.Errorf("expected no lookups after stop, got %v", lookups)
	}
}

func TestWatchProfile_ReportsErrors(t *testing.T) {
	auth := &mockAuth{
		signInFn: func(string, string) (*client.AuthResult, error) { return authResult("access-1", "r"), nil },
	}
	m, _ := newManager(t, auth)
	lookupErr := errors.New("offline")
	var reported error
	m.WatchProfile(context.Background(), func(context.Context, string) (*models.Profile, error) {
		return nil, lookupErr
	}, func(err error) { reported = err })

	if _, err := m.SignIn(context.Background(), "a", "b"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if !errors.Is(reported, lookupErr) {
		t.Errorf("expected lookup error reported, got %v", reported)
	}
	if m.Current().Profile.Email != "ana@example.com" {
		t.Error("expected sign-in profile kept when the lookup fails")
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	if s, err := store.Load(); err != nil || s != nil {
		t.Fatalf("expected empty store, got %v, %v", s, err)
	}

	want := &Session{AccessToken: "a", RefreshToken: "r", Profile: models.Profile{Email: "ana@example.com"}}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected 0600, got %o", perm)
	}

	got, err := store.Load()
	if err != nil || got == nil || got.AccessToken != "a" || got.Profile.Email != "ana@example.com" {
		t.Fatalf("unexpected loaded session %+v, %v", got, err)
	}

	m, err := NewManager(&mockAuth{}, store)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m.Current() == nil {
		t.Error("expected manager to restore the saved session")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Errorf("clearing twice should succeed: %v", err)
	}
}
