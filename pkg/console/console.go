package console

import (
	core "github.com/goliatone/go-console/components/console"
)

// Service exposes the underlying components/console.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Controller and its options re-export for applications mounting pages.
type Controller = core.Controller

// ControllerOptions re-export for convenience.
type ControllerOptions = core.ControllerOptions

// SessionManager re-export for convenience.
type SessionManager = core.SessionManager

// SessionOptions re-export for convenience.
type SessionOptions = core.SessionOptions

// NewService proxies to the internal constructor.
func NewService(opts Options) (*Service, error) {
	return core.NewService(opts)
}

// NewController proxies to the internal constructor.
func NewController(opts ControllerOptions) (*Controller, error) {
	return core.NewController(opts)
}

// NewSessionManager proxies to the internal constructor.
func NewSessionManager(opts SessionOptions) (*SessionManager, error) {
	return core.NewSessionManager(opts)
}
