package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ToggleModuleInput enables or disables one module.
type ToggleModuleInput struct {
	ModuleID string
	Enabled  bool
}

type moduleService interface {
	SetModuleEnabled(ctx context.Context, moduleID string, enabled bool) error
	SetToolEnabled(ctx context.Context, moduleID, tool string, enabled bool) error
}

// ToggleModuleCommand wraps Service.SetModuleEnabled.
type ToggleModuleCommand struct {
	service   moduleService
	telemetry Telemetry
}

// NewToggleModuleCommand builds the command.
func NewToggleModuleCommand(service moduleService, telemetry Telemetry) *ToggleModuleCommand {
	return &ToggleModuleCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleModuleInput] = (*ToggleModuleCommand)(nil)

// Execute applies the module toggle.
func (c *ToggleModuleCommand) Execute(ctx context.Context, msg ToggleModuleInput) error {
	if c.service == nil {
		return errors.New("toggle module command requires service")
	}
	if err := c.service.SetModuleEnabled(ctx, msg.ModuleID, msg.Enabled); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.module.toggle", map[string]any{
		"module":  msg.ModuleID,
		"enabled": msg.Enabled,
	})
	return nil
}

// ToggleToolInput enables or disables one tool of a module.
type ToggleToolInput struct {
	ModuleID string
	Tool     string
	Enabled  bool
}

// ToggleToolCommand wraps Service.SetToolEnabled.
type ToggleToolCommand struct {
	service   moduleService
	telemetry Telemetry
}

// NewToggleToolCommand builds the command.
func NewToggleToolCommand(service moduleService, telemetry Telemetry) *ToggleToolCommand {
	return &ToggleToolCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleToolInput] = (*ToggleToolCommand)(nil)

// Execute applies the tool toggle.
func (c *ToggleToolCommand) Execute(ctx context.Context, msg ToggleToolInput) error {
	if c.service == nil {
		return errors.New("toggle tool command requires service")
	}
	if err := c.service.SetToolEnabled(ctx, msg.ModuleID, msg.Tool, msg.Enabled); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.tool.toggle", map[string]any{
		"module":  msg.ModuleID,
		"tool":    msg.Tool,
		"enabled": msg.Enabled,
	})
	return nil
}
