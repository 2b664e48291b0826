package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wrenhollow/reel/internal/api"
	"github.com/wrenhollow/reel/internal/shared"
)

// DefaultRenewalPeriod is how often an authenticated session silently
// renews its credential pair. The server issues 30-minute access tokens;
// renewing at 25 keeps playback uninterrupted.
const DefaultRenewalPeriod = 25 * time.Minute

// Manager is the session state machine.
//
// All transitions are serialized through one mutex; renewal network calls
// run outside the lock and apply their result under it, so overlapping
// timer-driven and user-driven renewals resolve to whichever completes
// last. Every transition advances the session epoch, letting in-flight
// completions elsewhere detect that the session they were issued under has
// ended.
type Manager struct {
	mu      sync.Mutex
	store   CredentialStore
	auth    AuthAPI
	logger  *log.Logger
	state   State
	epoch   uint64
	account *api.Account
	period  time.Duration
}

// NewManager creates a session manager in the Unknown state.
func NewManager(store CredentialStore, auth AuthAPI, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{
		store:  store,
		auth:   auth,
		logger: logger,
		state:  Unknown,
		period: DefaultRenewalPeriod,
	}
}

// SetRenewalPeriod overrides the silent renewal interval. Zero or negative
// values are ignored.
func (m *Manager) SetRenewalPeriod(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	m.period = d
	m.mu.Unlock()
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Epoch returns the current session epoch. Completion handlers capture the
// epoch when their operation is issued and drop results if it has moved.
func (m *Manager) Epoch() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch
}

// ValidEpoch reports whether an operation issued at the given epoch is
// still current.
func (m *Manager) ValidEpoch(epoch uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch == epoch
}

// Account returns the validated account, nil when not authenticated or when
// the session was established without an identity check.
func (m *Manager) Account() *api.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.account
}

// AccessToken implements [api.BearerSource]. The token is read from the
// store on every call so a renewal mid-flight is picked up by the next
// request.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	if m.State() != Authenticated {
		return "", shared.ErrNotAuthenticated
	}

	access, _, err := m.store.Pair()
	if err != nil {
		return "", fmt.Errorf("failed to read credentials: %w", err)
	}
	if access == "" {
		return "", shared.ErrNotAuthenticated
	}
	return access, nil
}

// Startup resolves the initial Unknown state.
//
// With no stored access token it attempts a silent refresh; with one it
// validates against the identity endpoint, refreshing on 401 and clearing
// the pair on any other failure.
func (m *Manager) Startup(ctx context.Context) State {
	access, refresh, err := m.store.Pair()
	if err != nil {
		m.logger.Error("failed to read stored credentials", "error", err)
		m.transition(Unauthenticated, nil)
		return Unauthenticated
	}

	if access == "" {
		if refresh == "" {
			m.transition(Unauthenticated, nil)
			return Unauthenticated
		}
		return m.renew(ctx)
	}

	account, err := m.auth.Validate(ctx, access)
	switch {
	case err == nil:
		m.transition(Authenticated, account)
		return Authenticated
	case errors.Is(err, shared.ErrTokenExpired):
		m.logger.Debug("access token expired, attempting silent renewal")
		return m.renew(ctx)
	default:
		m.logger.Warn("credential validation failed", "error", err)
		m.clear()
		m.transition(Unauthenticated, nil)
		return Unauthenticated
	}
}

// Renew runs one silent renewal. On failure the pair is cleared and the
// session ends; callers treat subsequent 401 responses as "session ended"
// rather than individual request errors.
func (m *Manager) Renew(ctx context.Context) State {
	return m.renew(ctx)
}

func (m *Manager) renew(ctx context.Context) State {
	_, refresh, err := m.store.Pair()
	if err != nil || refresh == "" {
		if err != nil {
			m.logger.Error("failed to read stored credentials", "error", err)
		}
		m.clear()
		m.transition(Unauthenticated, nil)
		return Unauthenticated
	}

	pair, err := m.auth.Refresh(ctx, refresh)
	if err != nil {
		m.logger.Warn("silent renewal failed", "error", err)
		m.clear()
		m.transition(Unauthenticated, nil)
		return Unauthenticated
	}

	if err := m.store.Save(pair.Access, pair.Refresh); err != nil {
		m.logger.Error("failed to persist renewed credentials", "error", err)
		m.clear()
		m.transition(Unauthenticated, nil)
		return Unauthenticated
	}

	m.transition(Authenticated, nil)
	return Authenticated
}

// Login performs the password-grant exchange and installs the returned pair.
// Server rejection details are preserved verbatim for display.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	pair, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := m.store.Save(pair.Access, pair.Refresh); err != nil {
		return fmt.Errorf("failed to persist credentials: %w", err)
	}

	account, err := m.auth.Validate(ctx, pair.Access)
	if err != nil {
		// The pair is installed and usable; identity resolution is a nicety.
		m.logger.Debug("post-login identity check failed", "error", err)
		account = nil
	}

	m.transition(Authenticated, account)
	return nil
}

// Register creates an account and then performs the login exchange, ending
// in the same place as Login.
func (m *Manager) Register(ctx context.Context, email, username, password string) error {
	if err := m.auth.Register(ctx, email, username, password); err != nil {
		return err
	}
	return m.Login(ctx, email, password)
}

// Logout clears the credential pair and ends the session synchronously.
// No network round-trip is required.
func (m *Manager) Logout() error {
	err := m.store.Clear()
	m.transition(Unauthenticated, nil)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// RunRenewal silently renews the pair on a fixed period while the session
// is authenticated. Blocks until ctx is done; run it in its own goroutine.
func (m *Manager) RunRenewal(ctx context.Context) {
	m.mu.Lock()
	period := m.period
	m.mu.Unlock()

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if m.State() != Authenticated {
				continue
			}
			if state := m.renew(ctx); state != Authenticated {
				m.logger.Info("session ended: silent renewal failed")
			}
		}
	}
}

func (m *Manager) transition(next State, account *api.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != next {
		m.logger.Debug("session state change", "from", m.state, "to", next)
	}
	m.state = next
	m.epoch++
	if account != nil || next != Authenticated {
		m.account = account
	}
}

func (m *Manager) clear() {
	if err := m.store.Clear(); err != nil {
		m.logger.Error("failed to clear credentials", "error", err)
	}
}
