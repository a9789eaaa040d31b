package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

type contentService interface {
	LoadPack(ctx context.Context, name string) error
	UnloadPack(ctx context.Context, name string) error
	ClearPacks(ctx context.Context) error
}

// LoadPackInput names the pack to load.
type LoadPackInput struct {
	Name string
}

// LoadPackCommand wraps Service.LoadPack.
type LoadPackCommand struct {
	service   contentService
	telemetry Telemetry
}

// NewLoadPackCommand builds the command.
func NewLoadPackCommand(service contentService, telemetry Telemetry) *LoadPackCommand {
	return &LoadPackCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[LoadPackInput] = (*LoadPackCommand)(nil)

// Execute loads the pack.
func (c *LoadPackCommand) Execute(ctx context.Context, msg LoadPackInput) error {
	if c.service == nil {
		return errors.New("load pack command requires service")
	}
	if err := c.service.LoadPack(ctx, msg.Name); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.pack.load", map[string]any{"pack": msg.Name})
	return nil
}

// UnloadPackInput names the pack to unload.
type UnloadPackInput struct {
	Name string
}

// UnloadPackCommand wraps Service.UnloadPack.
type UnloadPackCommand struct {
	service   contentService
	telemetry Telemetry
}

// NewUnloadPackCommand builds the command.
func NewUnloadPackCommand(service contentService, telemetry Telemetry) *UnloadPackCommand {
	return &UnloadPackCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UnloadPackInput] = (*UnloadPackCommand)(nil)

// Execute unloads the pack.
func (c *UnloadPackCommand) Execute(ctx context.Context, msg UnloadPackInput) error {
	if c.service == nil {
		return errors.New("unload pack command requires service")
	}
	if err := c.service.UnloadPack(ctx, msg.Name); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.pack.unload", map[string]any{"pack": msg.Name})
	return nil
}

// ClearPacksInput is the empty payload for clearing all packs.
type ClearPacksInput struct{}

// ClearPacksCommand wraps Service.ClearPacks.
type ClearPacksCommand struct {
	service   contentService
	telemetry Telemetry
}

// NewClearPacksCommand builds the command.
func NewClearPacksCommand(service contentService, telemetry Telemetry) *ClearPacksCommand {
	return &ClearPacksCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ClearPacksInput] = (*ClearPacksCommand)(nil)

// Execute unloads every loaded pack.
func (c *ClearPacksCommand) Execute(ctx context.Context, _ ClearPacksInput) error {
	if c.service == nil {
		return errors.New("clear packs command requires service")
	}
	if err := c.service.ClearPacks(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.pack.clear", nil)
	return nil
}
