// Package adminshell seeds console navigation into a host admin
// application's menu system.
package adminshell

import (
	"context"
	"errors"

	activitypkg "github.com/goliatone/go-console/pkg/activity"
	consolepkg "github.com/goliatone/go-console/pkg/console"
)

// MenuBuilder ensures console entries exist within the host navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures console link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the console service + feature flags into an admin shell.
type Config struct {
	EnableConsole   bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Service         *consolepkg.Service
	DefaultMenuItem MenuItem
	ActivityHooks   activitypkg.Hooks
	ActivityConfig  activitypkg.Config
}

// Shell exposes helpers for admin-style host applications.
type Shell struct {
	cfg     Config
	emitter *activitypkg.Emitter
}

// New creates a Shell helper that can seed console menus.
func New(cfg Config) (*Shell, error) {
	if cfg.EnableConsole && cfg.Service == nil {
		return nil, errors.New("adminshell: console service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.DefaultMenuItem.Label == "" {
		cfg.DefaultMenuItem.Label = "Console"
	}
	if cfg.DefaultMenuItem.Route == "" {
		cfg.DefaultMenuItem.Route = "/console/dashboards/state"
	}
	if cfg.DefaultMenuItem.Icon == "" {
		cfg.DefaultMenuItem.Icon = "grid"
	}
	return &Shell{
		cfg:     cfg,
		emitter: activitypkg.NewEmitter(cfg.ActivityHooks, cfg.ActivityConfig),
	}, nil
}

// Console exposes the configured console service when enabled.
func (s *Shell) Console() *consolepkg.Service {
	if !s.cfg.EnableConsole {
		return nil
	}
	return s.cfg.Service
}

// Activity exposes the shell's activity emitter.
func (s *Shell) Activity() *activitypkg.Emitter {
	return s.emitter
}

// Bootstrap seeds menu entries when console support is enabled.
func (s *Shell) Bootstrap(ctx context.Context) error {
	if !s.cfg.EnableConsole || s.cfg.MenuBuilder == nil {
		return nil
	}
	return s.cfg.MenuBuilder.EnsureMenuItem(ctx, s.cfg.MenuCode, s.cfg.DefaultMenuItem)
}
