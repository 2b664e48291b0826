package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/wrenhollow/reel/internal/api"
	"github.com/wrenhollow/reel/internal/repositories"
	"github.com/wrenhollow/reel/internal/shared"
)

// memStore is an in-memory CredentialStore.
type memStore struct {
	mu      sync.Mutex
	access  string
	refresh string
	readErr error
}

func (s *memStore) Pair() (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return "", "", s.readErr
	}
	return s.access, s.refresh, nil
}

func (s *memStore) Save(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = access, refresh
	return nil
}

func (s *memStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = "", ""
	return nil
}

// stubAuth scripts the auth endpoints.
type stubAuth struct {
	loginPair   *api.TokenPair
	loginErr    error
	registerErr error

	validateAccount *api.Account
	validateErr     error

	refreshPair *api.TokenPair
	refreshErr  error

	validateCalls int
	refreshCalls  int
}

func (a *stubAuth) Login(ctx context.Context, email, password string) (*api.TokenPair, error) {
	return a.loginPair, a.loginErr
}

func (a *stubAuth) Register(ctx context.Context, email, username, password string) error {
	return a.registerErr
}

func (a *stubAuth) Validate(ctx context.Context, accessToken string) (*api.Account, error) {
	a.validateCalls++
	return a.validateAccount, a.validateErr
}

func (a *stubAuth) Refresh(ctx context.Context, refreshToken string) (*api.TokenPair, error) {
	a.refreshCalls++
	return a.refreshPair, a.refreshErr
}

func newManager(store *memStore, auth *stubAuth) *Manager {
	return NewManager(store, auth, shared.NewLogger(io.Discard))
}

func TestManager(t *testing.T) {
	ctx := context.Background()

	t.Run("Startup", func(t *testing.T) {
		t.Run("No Stored Credentials", func(t *testing.T) {
			m := newManager(&memStore{}, &stubAuth{})

			if state := m.Startup(ctx); state != Unauthenticated {
				t.Errorf("expected unauthenticated, got %s", state)
			}
		})

		t.Run("Valid Access Token", func(t *testing.T) {
			store := &memStore{access: "A1", refresh: "R1"}
			auth := &stubAuth{validateAccount: &api.Account{Username: "alice"}}
			m := newManager(store, auth)

			if state := m.Startup(ctx); state != Authenticated {
				t.Errorf("expected authenticated, got %s", state)
			}
			if account := m.Account(); account == nil || account.Username != "alice" {
				t.Errorf("expected resolved account, got %+v", account)
			}
			if auth.refreshCalls != 0 {
				t.Errorf("no renewal expected, got %d calls", auth.refreshCalls)
			}
		})

		t.Run("Refresh Token Only", func(t *testing.T) {
			store := &memStore{refresh: "R1"}
			auth := &stubAuth{refreshPair: &api.TokenPair{Access: "A2", Refresh: "R2"}}
			m := newManager(store, auth)

			if state := m.Startup(ctx); state != Authenticated {
				t.Errorf("expected authenticated, got %s", state)
			}
			access, refresh, _ := store.Pair()
			if access != "A2" || refresh != "R2" {
				t.Errorf("expected renewed pair persisted, got %q %q", access, refresh)
			}
			if auth.validateCalls != 0 {
				t.Errorf("no validation expected without an access token, got %d calls", auth.validateCalls)
			}
		})

		t.Run("Refresh Token Only Through The SQLite Store", func(t *testing.T) {
			db, err := shared.NewDatabase(":memory:")
			if err != nil {
				t.Fatalf("failed to create database: %v", err)
			}
			defer db.Close()
			if err := shared.RunMigrations(db); err != nil {
				t.Fatalf("failed to run migrations: %v", err)
			}

			// A renewal failure wipes only the access token's row here.
			if _, err := db.Exec(
				"INSERT INTO credentials (key, value, updated_at) VALUES ('refresh_token', 'R1', datetime('now'))",
			); err != nil {
				t.Fatalf("failed to seed refresh token: %v", err)
			}

			store := repositories.NewCredentialRepository(db)
			auth := &stubAuth{refreshPair: &api.TokenPair{Access: "A2", Refresh: "R2"}}
			m := NewManager(store, auth, shared.NewLogger(io.Discard))

			if state := m.Startup(ctx); state != Authenticated {
				t.Errorf("expected authenticated, got %s", state)
			}
			access, refresh, _ := store.Pair()
			if access != "A2" || refresh != "R2" {
				t.Errorf("expected renewed pair persisted, got %q %q", access, refresh)
			}
		})

		t.Run("Expired Access Token Renews", func(t *testing.T) {
			store := &memStore{access: "A1", refresh: "R1"}
			auth := &stubAuth{
				validateErr: fmt.Errorf("%w: 401", shared.ErrTokenExpired),
				refreshPair: &api.TokenPair{Access: "A2", Refresh: "R2"},
			}
			m := newManager(store, auth)

			if state := m.Startup(ctx); state != Authenticated {
				t.Errorf("expected authenticated after renewal, got %s", state)
			}
			access, _, _ := store.Pair()
			if access != "A2" {
				t.Errorf("expected renewed access token, got %q", access)
			}
		})

		t.Run("Expired Token And Failed Renewal Clears Pair", func(t *testing.T) {
			store := &memStore{access: "A1", refresh: "R1"}
			auth := &stubAuth{
				validateErr: fmt.Errorf("%w: 401", shared.ErrTokenExpired),
				refreshErr:  fmt.Errorf("%w: refresh rejected", shared.ErrRefreshFailed),
			}
			m := newManager(store, auth)

			if state := m.Startup(ctx); state != Unauthenticated {
				t.Errorf("expected unauthenticated, got %s", state)
			}
			access, refresh, _ := store.Pair()
			if access != "" || refresh != "" {
				t.Errorf("expected cleared pair, got %q %q", access, refresh)
			}
		})

		t.Run("Non-Auth Validation Failure Clears Pair", func(t *testing.T) {
			store := &memStore{access: "A1", refresh: "R1"}
			auth := &stubAuth{validateErr: errors.New("network down")}
			m := newManager(store, auth)

			if state := m.Startup(ctx); state != Unauthenticated {
				t.Errorf("expected unauthenticated, got %s", state)
			}
			if auth.refreshCalls != 0 {
				t.Errorf("renewal must not run for non-auth failures, got %d calls", auth.refreshCalls)
			}
			access, _, _ := store.Pair()
			if access != "" {
				t.Errorf("expected cleared pair, got %q", access)
			}
		})

		t.Run("Store Read Failure", func(t *testing.T) {
			store := &memStore{readErr: errors.New("disk gone")}
			m := newManager(store, &stubAuth{})

			if state := m.Startup(ctx); state != Unauthenticated {
				t.Errorf("expected unauthenticated, got %s", state)
			}
		})
	})

	t.Run("Login", func(t *testing.T) {
		t.Run("Installs Pair And Authenticates", func(t *testing.T) {
			store := &memStore{}
			auth := &stubAuth{
				loginPair:       &api.TokenPair{Access: "A1", Refresh: "R1"},
				validateAccount: &api.Account{Username: "alice"},
			}
			m := newManager(store, auth)

			if err := m.Login(ctx, "a@example.com", "pw"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.State() != Authenticated {
				t.Errorf("expected authenticated, got %s", m.State())
			}
			access, refresh, _ := store.Pair()
			if access != "A1" || refresh != "R1" {
				t.Errorf("expected pair persisted, got %q %q", access, refresh)
			}
		})

		t.Run("Preserves Server Rejection", func(t *testing.T) {
			auth := &stubAuth{loginErr: fmt.Errorf("%w: Incorrect email or password", shared.ErrAuthFailed)}
			m := newManager(&memStore{}, auth)

			err := m.Login(ctx, "a@example.com", "bad")
			if !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
			if m.State() == Authenticated {
				t.Error("failed login must not authenticate")
			}
		})

		t.Run("Identity Check Failure Is Tolerated", func(t *testing.T) {
			auth := &stubAuth{
				loginPair:   &api.TokenPair{Access: "A1", Refresh: "R1"},
				validateErr: errors.New("transient"),
			}
			m := newManager(&memStore{}, auth)

			if err := m.Login(ctx, "a@example.com", "pw"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.State() != Authenticated {
				t.Errorf("expected authenticated, got %s", m.State())
			}
			if m.Account() != nil {
				t.Error("expected nil account when identity check fails")
			}
		})
	})

	t.Run("Logout Clears Synchronously", func(t *testing.T) {
		store := &memStore{access: "A1", refresh: "R1"}
		auth := &stubAuth{validateAccount: &api.Account{Username: "alice"}}
		m := newManager(store, auth)
		m.Startup(ctx)

		if err := m.Logout(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.State() != Unauthenticated {
			t.Errorf("expected unauthenticated, got %s", m.State())
		}
		access, refresh, _ := store.Pair()
		if access != "" || refresh != "" {
			t.Errorf("expected cleared pair, got %q %q", access, refresh)
		}
		if m.Account() != nil {
			t.Error("expected account discarded on logout")
		}
	})

	t.Run("Epoch", func(t *testing.T) {
		t.Run("Advances On Every Transition", func(t *testing.T) {
			store := &memStore{access: "A1", refresh: "R1"}
			auth := &stubAuth{validateAccount: &api.Account{Username: "alice"}}
			m := newManager(store, auth)

			before := m.Epoch()
			m.Startup(ctx)
			between := m.Epoch()
			if between == before {
				t.Error("startup must advance the epoch")
			}

			m.Logout()
			if m.Epoch() == between {
				t.Error("logout must advance the epoch")
			}
			if m.ValidEpoch(between) {
				t.Error("old epoch must no longer be valid")
			}
		})
	})

	t.Run("AccessToken", func(t *testing.T) {
		t.Run("Reads Store Per Call", func(t *testing.T) {
			store := &memStore{access: "A1", refresh: "R1"}
			auth := &stubAuth{validateAccount: &api.Account{}}
			m := newManager(store, auth)
			m.Startup(ctx)

			if token, err := m.AccessToken(ctx); err != nil || token != "A1" {
				t.Errorf("expected A1, got %q (%v)", token, err)
			}

			// A renewal elsewhere swaps the pair; the next read sees it.
			store.Save("A2", "R2")
			if token, _ := m.AccessToken(ctx); token != "A2" {
				t.Errorf("expected A2 after swap, got %q", token)
			}
		})

		t.Run("Gated On Authentication", func(t *testing.T) {
			m := newManager(&memStore{}, &stubAuth{})
			m.Startup(ctx)

			if _, err := m.AccessToken(ctx); !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})
	})

	t.Run("Renew Failure Ends Session", func(t *testing.T) {
		store := &memStore{access: "A1", refresh: "R1"}
		auth := &stubAuth{
			validateAccount: &api.Account{},
			refreshErr:      fmt.Errorf("%w: rejected", shared.ErrRefreshFailed),
		}
		m := newManager(store, auth)
		m.Startup(ctx)

		if state := m.Renew(ctx); state != Unauthenticated {
			t.Errorf("expected unauthenticated, got %s", state)
		}
		access, _, _ := store.Pair()
		if access != "" {
			t.Errorf("expected cleared pair, got %q", access)
		}
	})
}
