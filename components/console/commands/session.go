package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// LoginInput carries sign-in credentials.
type LoginInput struct {
	Username string
	Password string
}

type sessionService interface {
	Login(ctx context.Context, username, password string) error
	Logout()
}

// LoginCommand wraps SessionManager.Login.
type LoginCommand struct {
	session   sessionService
	telemetry Telemetry
}

// NewLoginCommand builds the command.
func NewLoginCommand(session sessionService, telemetry Telemetry) *LoginCommand {
	return &LoginCommand{session: session, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[LoginInput] = (*LoginCommand)(nil)

// Execute performs the sign-in.
func (c *LoginCommand) Execute(ctx context.Context, msg LoginInput) error {
	if c.session == nil {
		return errors.New("login command requires session manager")
	}
	if msg.Username == "" || msg.Password == "" {
		return errors.New("login command requires username and password")
	}
	if err := c.session.Login(ctx, msg.Username, msg.Password); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.session.login", map[string]any{"user": msg.Username})
	return nil
}

// LogoutInput is the empty payload for signing out.
type LogoutInput struct{}

// LogoutCommand wraps SessionManager.Logout.
type LogoutCommand struct {
	session   sessionService
	telemetry Telemetry
}

// NewLogoutCommand builds the command.
func NewLogoutCommand(session sessionService, telemetry Telemetry) *LogoutCommand {
	return &LogoutCommand{session: session, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[LogoutInput] = (*LogoutCommand)(nil)

// Execute clears the session without calling the backend.
func (c *LogoutCommand) Execute(ctx context.Context, _ LogoutInput) error {
	if c.session == nil {
		return errors.New("logout command requires session manager")
	}
	c.session.Logout()
	c.telemetry.Record(ctx, "console.session.logout", nil)
	return nil
}
