package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-console/components/console"
)

// SaveLayoutInput contains a browser-submitted layout edit.
type SaveLayoutInput struct {
	DashboardID string
	Layout      console.GridLayout
	Hidden      []string
}

type layoutService interface {
	SaveLayout(ctx context.Context, dashboardID string, layout console.GridLayout, hidden []string) error
	ResetLayout(ctx context.Context, dashboardID string) error
}

// SaveLayoutCommand wraps Service.SaveLayout.
type SaveLayoutCommand struct {
	service   layoutService
	telemetry Telemetry
}

// NewSaveLayoutCommand builds the command.
func NewSaveLayoutCommand(service layoutService, telemetry Telemetry) *SaveLayoutCommand {
	return &SaveLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveLayoutInput] = (*SaveLayoutCommand)(nil)

// Execute persists the submitted layout and hidden set.
func (c *SaveLayoutCommand) Execute(ctx context.Context, msg SaveLayoutInput) error {
	if c.service == nil {
		return errors.New("save layout command requires service")
	}
	if msg.DashboardID == "" {
		return errors.New("save layout command requires dashboard id")
	}
	if err := c.service.SaveLayout(ctx, msg.DashboardID, msg.Layout, msg.Hidden); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.layout.save", map[string]any{
		"dashboard": msg.DashboardID,
		"widgets":   len(msg.Layout),
		"hidden":    len(msg.Hidden),
	})
	return nil
}

// ResetLayoutInput identifies the dashboard to reset.
type ResetLayoutInput struct {
	DashboardID string
}

// ResetLayoutCommand wraps Service.ResetLayout.
type ResetLayoutCommand struct {
	service   layoutService
	telemetry Telemetry
}

// NewResetLayoutCommand builds the command.
func NewResetLayoutCommand(service layoutService, telemetry Telemetry) *ResetLayoutCommand {
	return &ResetLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResetLayoutInput] = (*ResetLayoutCommand)(nil)

// Execute restores the packed default layout.
func (c *ResetLayoutCommand) Execute(ctx context.Context, msg ResetLayoutInput) error {
	if c.service == nil {
		return errors.New("reset layout command requires service")
	}
	if msg.DashboardID == "" {
		return errors.New("reset layout command requires dashboard id")
	}
	if err := c.service.ResetLayout(ctx, msg.DashboardID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.layout.reset", map[string]any{
		"dashboard": msg.DashboardID,
	})
	return nil
}
