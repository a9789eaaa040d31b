package commands

import (
	"context"
	"errors"
	"testing"

	console "github.com/goliatone/go-console/components/console"
	"github.com/goliatone/go-console/pkg/apiclient"
)

func TestSaveLayoutCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewSaveLayoutCommand(service, nil)
	input := SaveLayoutInput{
		DashboardID: "state",
		Layout:      console.GridLayout{"w1": {WidgetID: "w1", Row: 1, Col: 1}},
		Hidden:      []string{"w2"},
	}
	if err := cmd.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.saveCalls != 1 {
		t.Fatalf("expected save call")
	}
	if service.lastDashboard != "state" {
		t.Fatalf("expected dashboard id to pass through, got %q", service.lastDashboard)
	}
}

func TestSaveLayoutCommandRequiresDashboard(t *testing.T) {
	cmd := NewSaveLayoutCommand(&stubService{}, nil)
	if err := cmd.Execute(context.Background(), SaveLayoutInput{}); err == nil {
		t.Fatalf("expected error for missing dashboard id")
	}
}

func TestResetLayoutCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewResetLayoutCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), ResetLayoutInput{DashboardID: "state"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.resetCalls != 1 {
		t.Fatalf("expected reset call")
	}
	if telemetry.calls == 0 {
		t.Fatalf("expected telemetry to record events")
	}
}

func TestToggleModuleCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewToggleModuleCommand(service, nil)
	if err := cmd.Execute(context.Background(), ToggleModuleInput{ModuleID: "workflow", Enabled: true}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.moduleCalls != 1 {
		t.Fatalf("expected module call")
	}
}

func TestToggleToolCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewToggleToolCommand(service, nil)
	if err := cmd.Execute(context.Background(), ToggleToolInput{ModuleID: "workflow", Tool: "run", Enabled: false}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.toolCalls != 1 {
		t.Fatalf("expected tool call")
	}
}

func TestPackCommands(t *testing.T) {
	service := &stubService{}
	if err := NewLoadPackCommand(service, nil).Execute(context.Background(), LoadPackInput{Name: "demo"}); err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if err := NewUnloadPackCommand(service, nil).Execute(context.Background(), UnloadPackInput{Name: "demo"}); err != nil {
		t.Fatalf("unload returned error: %v", err)
	}
	if err := NewClearPacksCommand(service, nil).Execute(context.Background(), ClearPacksInput{}); err != nil {
		t.Fatalf("clear returned error: %v", err)
	}
	if service.loadCalls != 1 || service.unloadCalls != 1 || service.clearCalls != 1 {
		t.Fatalf("expected one call per pack command, got %d/%d/%d",
			service.loadCalls, service.unloadCalls, service.clearCalls)
	}
}

func TestUserCommands(t *testing.T) {
	service := &stubService{}
	input := apiclient.CreateUserInput{Username: "ada", Password: "secret"}
	if err := NewCreateUserCommand(service, nil).Execute(context.Background(), input); err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if err := NewDeleteUserCommand(service, nil).Execute(context.Background(), DeleteUserInput{UserID: "u1"}); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if service.createUserCalls != 1 || service.deleteUserCalls != 1 {
		t.Fatalf("expected one call per user command")
	}
}

func TestLoginCommand(t *testing.T) {
	session := &stubSession{}
	cmd := NewLoginCommand(session, nil)
	if err := cmd.Execute(context.Background(), LoginInput{Username: "ada", Password: "secret"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if session.loginCalls != 1 {
		t.Fatalf("expected login call")
	}
}

func TestLoginCommandPropagatesFailure(t *testing.T) {
	session := &stubSession{err: errors.New("bad credentials")}
	cmd := NewLoginCommand(session, nil)
	if err := cmd.Execute(context.Background(), LoginInput{Username: "ada", Password: "nope"}); err == nil {
		t.Fatalf("expected login failure to propagate")
	}
}

func TestLogoutCommand(t *testing.T) {
	session := &stubSession{}
	cmd := NewLogoutCommand(session, nil)
	if err := cmd.Execute(context.Background(), LogoutInput{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if session.logoutCalls != 1 {
		t.Fatalf("expected logout call")
	}
}

type stubService struct {
	saveCalls       int
	resetCalls      int
	moduleCalls     int
	toolCalls       int
	loadCalls       int
	unloadCalls     int
	clearCalls      int
	createUserCalls int
	deleteUserCalls int
	lastDashboard   string
}

func (s *stubService) SaveLayout(_ context.Context, dashboardID string, _ console.GridLayout, _ []string) error {
	s.saveCalls++
	s.lastDashboard = dashboardID
	return nil
}

func (s *stubService) ResetLayout(context.Context, string) error {
	s.resetCalls++
	return nil
}

func (s *stubService) SetModuleEnabled(context.Context, string, bool) error {
	s.moduleCalls++
	return nil
}

func (s *stubService) SetToolEnabled(context.Context, string, string, bool) error {
	s.toolCalls++
	return nil
}

func (s *stubService) LoadPack(context.Context, string) error {
	s.loadCalls++
	return nil
}

func (s *stubService) UnloadPack(context.Context, string) error {
	s.unloadCalls++
	return nil
}

func (s *stubService) ClearPacks(context.Context) error {
	s.clearCalls++
	return nil
}

func (s *stubService) CreateUser(_ context.Context, input apiclient.CreateUserInput) (apiclient.User, error) {
	s.createUserCalls++
	return apiclient.User{ID: "u1", Username: input.Username}, nil
}

func (s *stubService) DeleteUser(context.Context, string) error {
	s.deleteUserCalls++
	return nil
}

func (s *stubService) CreateGroup(_ context.Context, input apiclient.GroupInput) (apiclient.Group, error) {
	return apiclient.Group{ID: "g1", Name: input.Name}, nil
}

func (s *stubService) DeleteGroup(context.Context, string) error {
	return nil
}

type stubSession struct {
	loginCalls  int
	logoutCalls int
	err         error
}

func (s *stubSession) Login(context.Context, string, string) error {
	s.loginCalls++
	return s.err
}

func (s *stubSession) Logout() {
	s.logoutCalls++
}

type stubTelemetry struct {
	calls int
}

func (s *stubTelemetry) Record(context.Context, string, map[string]any) {
	s.calls++
}
