// Package session holds the signed-in profile of the command-line client and
// notifies subscribers when it changes.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"patrimonio/internal/client"
	"patrimonio/internal/models"
)

// ErrLoginRequired is returned when an operation needs a signed-in profile.
var ErrLoginRequired = errors.New("login required")

// refreshLeeway renews access tokens slightly before they expire.
const refreshLeeway = 30 * time.Second

// Session is the signed-in state persisted between runs.
type Session struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresAt    time.Time      `json:"expires_at"`
	Profile      models.Profile `json:"profile"`
}

// UserID returns the id of the signed-in profile.
func (s *Session) UserID() string {
	return s.Profile.ID
}

// Authenticator is the identity provider the manager talks to.
type Authenticator interface {
	SignUp(ctx context.Context, creds client.Credentials) (*client.AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*client.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*client.AuthResult, error)
	SignOut(ctx context.Context, accessToken string) error
}

// Listener is called with the new session, or nil after sign-out.
type Listener func(*Session)

// Manager owns the current session. It is safe for concurrent use;
// listeners run synchronously on the goroutine that changed the session.
type Manager struct {
	mu        sync.Mutex
	auth      Authenticator
	store     Store
	current   *Session
	listeners map[int]Listener
	nextID    int
	now       func() time.Time
}

// NewManager creates a manager and restores any session saved in store.
func NewManager(auth Authenticator, store Store) (*Manager, error) {
	saved, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return &Manager{
		auth:      auth,
		store:     store,
		current:   saved,
		listeners: map[int]Listener{},
		now:       time.Now,
	}, nil
}

// SignUp creates a profile and signs it in.
func (m *Manager) SignUp(ctx context.Context, email, password, name string) (*Session, error) {
	result, err := m.auth.SignUp(ctx, client.Credentials{Email: email, Password: password, Name: name})
	if err != nil {
		return nil, err
	}
	return m.replace(result)
}

// SignIn authenticates with email and password.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*Session, error) {
	result, err := m.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.replace(result)
}

// SignOut revokes the session on the server and forgets it locally. The
// local session is cleared even when the server call fails.
func (m *Manager) SignOut(ctx context.Context) error {
	current := m.Current()
	if current == nil {
		return nil
	}
	remoteErr := m.auth.SignOut(ctx, current.AccessToken)
	if err := m.set(nil); err != nil {
		return err
	}
	return remoteErr
}

// Current returns a copy of the current session, or nil when signed out.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	cp := *m.current
	return &cp
}

// Require returns the current session or ErrLoginRequired.
func (m *Manager) Require() (*Session, error) {
	s := m.Current()
	if s == nil {
		return nil, ErrLoginRequired
	}
	return s, nil
}

// Token returns a valid access token, refreshing it when it is about to
// expire. A refresh the server rejects as unauthorized signs the user out;
// other failures leave the session in place.
func (m *Manager) Token(ctx context.Context) (string, error) {
	s, err := m.Require()
	if err != nil {
		return "", err
	}
	if s.ExpiresAt.IsZero() || m.now().Add(refreshLeeway).Before(s.ExpiresAt) {
		return s.AccessToken, nil
	}

	result, err := m.auth.Refresh(ctx, s.RefreshToken)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			if clearErr := m.set(nil); clearErr != nil {
				return "", clearErr
			}
			return "", ErrLoginRequired
		}
		return "", err
	}
	if result.Profile == nil {
		result.Profile = &s.Profile
	}
	refreshed, err := m.replace(result)
	if err != nil {
		return "", err
	}
	return refreshed.AccessToken, nil
}

// SetProfile stores a freshly fetched profile in the current session.
func (m *Manager) SetProfile(profile models.Profile) error {
	s, err := m.Require()
	if err != nil {
		return err
	}
	s.Profile = profile
	return m.set(s)
}

// Subscribe registers fn for session changes and returns a function that
// removes it.
func (m *Manager) Subscribe(fn Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// ProfileLookup fetches the profile behind an access token.
type ProfileLookup func(ctx context.Context, accessToken string) (*models.Profile, error)

// WatchProfile subscribes a listener that looks up the profile whenever a new
// access token is established (sign-up, sign-in, refresh) and stores it in
// the session. Lookup failures go to onError. The returned function stops
// watching.
func (m *Manager) WatchProfile(ctx context.Context, lookup ProfileLookup, onError func(error)) func() {
	var (
		mu   sync.Mutex
		seen string
	)
	return m.Subscribe(func(s *Session) {
		mu.Lock()
		if s == nil {
			seen = ""
			mu.Unlock()
			return
		}
		// SetProfile below notifies again with the same token.
		if s.AccessToken == seen {
			mu.Unlock()
			return
		}
		seen = s.AccessToken
		mu.Unlock()

		profile, err := lookup(ctx, s.AccessToken)
		if err == nil {
			err = m.SetProfile(*profile)
		}
		if err != nil && onError != nil {
			onError(err)
		}
	})
}

func (m *Manager) replace(result *client.AuthResult) (*Session, error) {
	s := &Session{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresAt:    tokenExpiry(result.AccessToken),
	}
	if result.Profile != nil {
		s.Profile = *result.Profile
	}
	if err := m.set(s); err != nil {
		return nil, err
	}
	cp := *s
	return &cp, nil
}

// set persists s, swaps it in and notifies listeners outside the lock so
// they may call back into the manager.
func (m *Manager) set(s *Session) error {
	var err error
	if s == nil {
		err = m.store.Clear()
	} else {
		err = m.store.Save(s)
	}
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	m.mu.Lock()
	m.current = s
	listeners := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		if s == nil {
			fn(nil)
			continue
		}
		cp := *s
		fn(&cp)
	}
	return nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// server remains the authority on whether the token is valid.
func tokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// API adapts an API client to the Authenticator interface.
func API(c *client.Client) Authenticator {
	return apiAuth{c: c}
}

type apiAuth struct {
	c *client.Client
}

func (a apiAuth) SignUp(ctx context.Context, creds client.Credentials) (*client.AuthResult, error) {
	return a.c.SignUp(ctx, creds)
}

func (a apiAuth) SignIn(ctx context.Context, email, password string) (*client.AuthResult, error) {
	return a.c.SignIn(ctx, email, password)
}

func (a apiAuth) Refresh(ctx context.Context, refreshToken string) (*client.AuthResult, error) {
	return a.c.Refresh(ctx, refreshToken)
}

func (a apiAuth) SignOut(ctx context.Context, accessToken string) error {
	return a.c.WithToken(accessToken).SignOut(ctx)
}
