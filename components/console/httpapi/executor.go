package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-console/components/console"
	"github.com/goliatone/go-console/components/console/commands"
	"github.com/goliatone/go-console/components/console/queries"
	"github.com/goliatone/go-console/pkg/apiclient"
)

// Executor is the transport-neutral surface the routers dispatch through.
type Executor interface {
	Login(ctx context.Context, input commands.LoginInput) error
	Logout(ctx context.Context) error
	SaveLayout(ctx context.Context, input commands.SaveLayoutInput) error
	ResetLayout(ctx context.Context, input commands.ResetLayoutInput) error
	ToggleModule(ctx context.Context, input commands.ToggleModuleInput) error
	ToggleTool(ctx context.Context, input commands.ToggleToolInput) error
	LoadPack(ctx context.Context, input commands.LoadPackInput) error
	UnloadPack(ctx context.Context, input commands.UnloadPackInput) error
	ClearPacks(ctx context.Context) error
	CreateUser(ctx context.Context, input apiclient.CreateUserInput) error
	DeleteUser(ctx context.Context, input commands.DeleteUserInput) error
	Overview(ctx context.Context, req queries.OverviewRequest) (console.OverviewPage, error)
	Timeline(ctx context.Context, req queries.TimelineRequest) (console.TimelinePage, error)
	Execute(ctx context.Context, req apiclient.ExecuteRequest) (apiclient.ExecuteResult, error)
}

// CommandExecutor dispatches through the shared commands and queries.
type CommandExecutor struct {
	LoginCmd        gocommand.Commander[commands.LoginInput]
	LogoutCmd       gocommand.Commander[commands.LogoutInput]
	SaveLayoutCmd   gocommand.Commander[commands.SaveLayoutInput]
	ResetLayoutCmd  gocommand.Commander[commands.ResetLayoutInput]
	ToggleModuleCmd gocommand.Commander[commands.ToggleModuleInput]
	ToggleToolCmd   gocommand.Commander[commands.ToggleToolInput]
	LoadPackCmd     gocommand.Commander[commands.LoadPackInput]
	UnloadPackCmd   gocommand.Commander[commands.UnloadPackInput]
	ClearPacksCmd   gocommand.Commander[commands.ClearPacksInput]
	CreateUserCmd   gocommand.Commander[apiclient.CreateUserInput]
	DeleteUserCmd   gocommand.Commander[commands.DeleteUserInput]
	OverviewQry     gocommand.Querier[queries.OverviewRequest, console.OverviewPage]
	TimelineQry     gocommand.Querier[queries.TimelineRequest, console.TimelinePage]
	ExecuteQry      gocommand.Querier[apiclient.ExecuteRequest, apiclient.ExecuteResult]
}

// NewCommandExecutor wires the full command set for one service.
func NewCommandExecutor(service *console.Service, telemetry commands.Telemetry) *CommandExecutor {
	exec := &CommandExecutor{
		SaveLayoutCmd:   commands.NewSaveLayoutCommand(service, telemetry),
		ResetLayoutCmd:  commands.NewResetLayoutCommand(service, telemetry),
		ToggleModuleCmd: commands.NewToggleModuleCommand(service, telemetry),
		ToggleToolCmd:   commands.NewToggleToolCommand(service, telemetry),
		LoadPackCmd:     commands.NewLoadPackCommand(service, telemetry),
		UnloadPackCmd:   commands.NewUnloadPackCommand(service, telemetry),
		ClearPacksCmd:   commands.NewClearPacksCommand(service, telemetry),
		CreateUserCmd:   commands.NewCreateUserCommand(service, telemetry),
		DeleteUserCmd:   commands.NewDeleteUserCommand(service, telemetry),
		OverviewQry:     queries.NewOverviewQuery(service),
		TimelineQry:     queries.NewTimelineQuery(service),
		ExecuteQry:      queries.NewExecuteQuery(service),
	}
	if session := service.Session(); session != nil {
		exec.LoginCmd = commands.NewLoginCommand(session, telemetry)
		exec.LogoutCmd = commands.NewLogoutCommand(session, telemetry)
	}
	return exec
}

var _ Executor = (*CommandExecutor)(nil)

var errNoSession = errors.New("httpapi: session commands are not configured")

func (e *CommandExecutor) Login(ctx context.Context, input commands.LoginInput) error {
	if e.LoginCmd == nil {
		return errNoSession
	}
	return e.LoginCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Logout(ctx context.Context) error {
	if e.LogoutCmd == nil {
		return errNoSession
	}
	return e.LogoutCmd.Execute(ctx, commands.LogoutInput{})
}

func (e *CommandExecutor) SaveLayout(ctx context.Context, input commands.SaveLayoutInput) error {
	return e.SaveLayoutCmd.Execute(ctx, input)
}

func (e *CommandExecutor) ResetLayout(ctx context.Context, input commands.ResetLayoutInput) error {
	return e.ResetLayoutCmd.Execute(ctx, input)
}

func (e *CommandExecutor) ToggleModule(ctx context.Context, input commands.ToggleModuleInput) error {
	return e.ToggleModuleCmd.Execute(ctx, input)
}

func (e *CommandExecutor) ToggleTool(ctx context.Context, input commands.ToggleToolInput) error {
	return e.ToggleToolCmd.Execute(ctx, input)
}

func (e *CommandExecutor) LoadPack(ctx context.Context, input commands.LoadPackInput) error {
	return e.LoadPackCmd.Execute(ctx, input)
}

func (e *CommandExecutor) UnloadPack(ctx context.Context, input commands.UnloadPackInput) error {
	return e.UnloadPackCmd.Execute(ctx, input)
}

func (e *CommandExecutor) ClearPacks(ctx context.Context) error {
	return e.ClearPacksCmd.Execute(ctx, commands.ClearPacksInput{})
}

func (e *CommandExecutor) CreateUser(ctx context.Context, input apiclient.CreateUserInput) error {
	return e.CreateUserCmd.Execute(ctx, input)
}

func (e *CommandExecutor) DeleteUser(ctx context.Context, input commands.DeleteUserInput) error {
	return e.DeleteUserCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Overview(ctx context.Context, req queries.OverviewRequest) (console.OverviewPage, error) {
	return e.OverviewQry.Query(ctx, req)
}

func (e *CommandExecutor) Timeline(ctx context.Context, req queries.TimelineRequest) (console.TimelinePage, error) {
	return e.TimelineQry.Query(ctx, req)
}

func (e *CommandExecutor) Execute(ctx context.Context, req apiclient.ExecuteRequest) (apiclient.ExecuteResult, error) {
	return e.ExecuteQry.Query(ctx, req)
}
