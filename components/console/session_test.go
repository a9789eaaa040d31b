package console

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-console/pkg/apiclient"
)

type fakeAuthAPI struct {
	loginResp apiclient.TokenResponse
	loginErr  error
	meUser    apiclient.User
	meErr     error
	meCalls   int
}

func (f *fakeAuthAPI) Login(_ context.Context, _, _ string) (apiclient.TokenResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeAuthAPI) Me(_ context.Context) (apiclient.User, error) {
	f.meCalls++
	return f.meUser, f.meErr
}

func TestSessionInitialStateReflectsToken(t *testing.T) {
	api := &fakeAuthAPI{}
	tokens := NewInMemoryTokenStore()
	manager, err := NewSessionManager(SessionOptions{API: api, Tokens: tokens})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if got := manager.Snapshot().State; got != StateUnauthenticated {
		t.Fatalf("expected unauthenticated without token, got %s", got)
	}

	_ = tokens.Set("existing")
	manager, err = NewSessionManager(SessionOptions{API: api, Tokens: tokens})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	if got := manager.Snapshot().State; got != StateUnvalidated {
		t.Fatalf("expected unvalidated with stored token, got %s", got)
	}
}

func TestSessionValidateAuthenticates(t *testing.T) {
	api := &fakeAuthAPI{meUser: apiclient.User{ID: "u1", Username: "admin"}}
	tokens := NewInMemoryTokenStore()
	_ = tokens.Set("tkn")
	manager, _ := NewSessionManager(SessionOptions{API: api, Tokens: tokens})
	if err := manager.Validate(context.Background()); err != nil {
		t.Fatalf("validate: %v", err)
	}
	snap := manager.Snapshot()
	if snap.State != StateAuthenticated || snap.User.Username != "admin" {
		t.Fatalf("unexpected snapshot: %#v", snap)
	}
}

func TestSessionValidateClearsBadToken(t *testing.T) {
	api := &fakeAuthAPI{meErr: errors.New("boom")}
	tokens := NewInMemoryTokenStore()
	_ = tokens.Set("stale")
	manager, _ := NewSessionManager(SessionOptions{API: api, Tokens: tokens})
	if err := manager.Validate(context.Background()); err == nil {
		t.Fatalf("expected validation error")
	}
	if tokens.Token() != "" {
		t.Fatalf("expected token cleared")
	}
	if got := manager.Snapshot().State; got != StateUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", got)
	}
}

func TestSessionValidateRejectsEmptyUserRecord(t *testing.T) {
	api := &fakeAuthAPI{meUser: apiclient.User{}}
	tokens := NewInMemoryTokenStore()
	_ = tokens.Set("tkn")
	manager, _ := NewSessionManager(SessionOptions{API: api, Tokens: tokens})
	if err := manager.Validate(context.Background()); err == nil {
		t.Fatalf("expected rejection of unusable user record")
	}
	if tokens.Token() != "" {
		t.Fatalf("expected token cleared")
	}
}

func TestSessionLoginStoresTokenAndRevalidates(t *testing.T) {
	api := &fakeAuthAPI{
		loginResp: apiclient.TokenResponse{AccessToken: "fresh"},
		meUser:    apiclient.User{ID: "u1", Username: "admin"},
	}
	tokens := NewInMemoryTokenStore()
	manager, _ := NewSessionManager(SessionOptions{API: api, Tokens: tokens})
	if err := manager.Login(context.Background(), "admin", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if tokens.Token() != "fresh" {
		t.Fatalf("expected token stored, got %q", tokens.Token())
	}
	if api.meCalls != 1 {
		t.Fatalf("expected validation after login, got %d calls", api.meCalls)
	}
	if got := manager.Snapshot().State; got != StateAuthenticated {
		t.Fatalf("expected authenticated, got %s", got)
	}
}

func TestSessionLoginFailureSurfacedOnSnapshot(t *testing.T) {
	api := &fakeAuthAPI{loginErr: errors.New("invalid credentials")}
	manager, _ := NewSessionManager(SessionOptions{API: api})
	err := manager.Login(context.Background(), "admin", "wrong")
	if !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed, got %v", err)
	}
	snap := manager.Snapshot()
	if snap.State != StateUnauthenticated || snap.LastError == nil {
		t.Fatalf("expected failure recorded on snapshot: %#v", snap)
	}
}

func TestSessionLogoutIsSynchronous(t *testing.T) {
	api := &fakeAuthAPI{meUser: apiclient.User{ID: "u1", Username: "admin"}}
	tokens := NewInMemoryTokenStore()
	_ = tokens.Set("tkn")
	manager, _ := NewSessionManager(SessionOptions{API: api, Tokens: tokens})
	_ = manager.Validate(context.Background())
	manager.Logout()
	if tokens.Token() != "" {
		t.Fatalf("expected token cleared immediately")
	}
	if got := manager.Snapshot().State; got != StateUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", got)
	}
}

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := t.TempDir() + "/authToken"
	store, err := NewFileTokenStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if store.Token() != "" {
		t.Fatalf("expected empty token before set")
	}
	if err := store.Set("secret"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := store.Token(); got != "secret" {
		t.Fatalf("expected stored token, got %q", got)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if store.Token() != "" {
		t.Fatalf("expected token removed")
	}
	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}
