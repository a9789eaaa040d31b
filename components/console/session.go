package console

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-console/pkg/apiclient"
)

// SessionState is the authentication lifecycle phase.
type SessionState string

const (
	// StateUnvalidated means a token exists but has not been confirmed.
	StateUnvalidated SessionState = "unvalidated"
	// StateValidating means a who-am-i call is in flight.
	StateValidating SessionState = "validating"
	// StateAuthenticated means the token maps to a valid user record.
	StateAuthenticated SessionState = "authenticated"
	// StateUnauthenticated means there is no usable token.
	StateUnauthenticated SessionState = "unauthenticated"
)

// ErrLoginFailed wraps login rejections so callers can distinguish bad
// credentials from transport failures.
var ErrLoginFailed = errors.New("console: login failed")

// AuthAPI is the slice of the backend client the session manager needs.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (apiclient.TokenResponse, error)
	Me(ctx context.Context) (apiclient.User, error)
}

// SessionOptions configures a SessionManager.
type SessionOptions struct {
	API       AuthAPI
	Tokens    TokenStore
	Telemetry Telemetry
}

// SessionSnapshot is a point-in-time view of the session.
type SessionSnapshot struct {
	State SessionState
	User  apiclient.User
	// LastError records the most recent login/validation failure so UIs can
	// show it without wrapping Login in their own error plumbing.
	LastError error
}

// SessionManager owns the session token and its validation lifecycle. It is
// constructed once at application start and passed by reference to whatever
// needs it; there is no ambient lookup.
type SessionManager struct {
	api       AuthAPI
	tokens    TokenStore
	telemetry Telemetry

	mu      sync.Mutex
	state   SessionState
	user    apiclient.User
	lastErr error
}

// NewSessionManager builds a manager. The initial state reflects whether a
// token is already stored.
func NewSessionManager(opts SessionOptions) (*SessionManager, error) {
	if opts.API == nil {
		return nil, errors.New("console: session manager requires an auth API")
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = NewInMemoryTokenStore()
	}
	state := StateUnauthenticated
	if tokens.Token() != "" {
		state = StateUnvalidated
	}
	return &SessionManager{
		api:       opts.API,
		tokens:    tokens,
		telemetry: normalizeTelemetry(opts.Telemetry),
		state:     state,
	}, nil
}

// Snapshot returns the current session view.
func (m *SessionManager) Snapshot() SessionSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return SessionSnapshot{State: m.state, User: m.user, LastError: m.lastErr}
}

// Token returns the stored session token.
func (m *SessionManager) Token() string {
	return m.tokens.Token()
}

// Validate confirms the stored token against the who-am-i endpoint. A
// response without a usable user record, or a rejected call, clears the token
// and leaves the session unauthenticated.
func (m *SessionManager) Validate(ctx context.Context) error {
	if m.tokens.Token() == "" {
		m.transition(StateUnauthenticated, apiclient.User{}, nil)
		return nil
	}
	m.transition(StateValidating, apiclient.User{}, nil)
	user, err := m.api.Me(ctx)
	if err == nil && user.ID == "" && user.Username == "" {
		err = errors.New("console: who-am-i returned no usable user record")
	}
	if err != nil {
		_ = m.tokens.Clear()
		m.transition(StateUnauthenticated, apiclient.User{}, err)
		m.telemetry.Record(ctx, "console.session.invalid", map[string]any{"error": err.Error()})
		return err
	}
	m.transition(StateAuthenticated, user, nil)
	m.telemetry.Record(ctx, "console.session.validated", map[string]any{"user": user.Username})
	return nil
}

// Login exchanges credentials for a token, stores it, and re-runs validation.
// Failures are returned and also recorded on the snapshot's LastError.
func (m *SessionManager) Login(ctx context.Context, username, password string) error {
	resp, err := m.api.Login(ctx, username, password)
	if err != nil {
		loginErr := fmt.Errorf("%w: %v", ErrLoginFailed, err)
		m.transition(StateUnauthenticated, apiclient.User{}, loginErr)
		m.telemetry.Record(ctx, "console.session.login_failed", map[string]any{"user": username})
		return loginErr
	}
	if resp.AccessToken == "" {
		loginErr := fmt.Errorf("%w: response carried no access token", ErrLoginFailed)
		m.transition(StateUnauthenticated, apiclient.User{}, loginErr)
		return loginErr
	}
	if err := m.tokens.Set(resp.AccessToken); err != nil {
		return fmt.Errorf("console: store token: %w", err)
	}
	m.telemetry.Record(ctx, "console.session.login", map[string]any{"user": username})
	return m.Validate(ctx)
}

// Logout clears the token immediately and synchronously. The backend has no
// revocation endpoint, so it is not informed.
func (m *SessionManager) Logout() {
	_ = m.tokens.Clear()
	m.transition(StateUnauthenticated, apiclient.User{}, nil)
}

// Invalidate is wired to the API client's OnUnauthorized hook: the wrapper
// already cleared the token, so only the state needs to follow.
func (m *SessionManager) Invalidate() {
	m.transition(StateUnauthenticated, apiclient.User{}, nil)
}

func (m *SessionManager) transition(state SessionState, user apiclient.User, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.user = user
	m.lastErr = err
}
