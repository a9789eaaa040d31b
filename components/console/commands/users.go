package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-console/pkg/apiclient"
)

type userService interface {
	CreateUser(ctx context.Context, input apiclient.CreateUserInput) (apiclient.User, error)
	DeleteUser(ctx context.Context, id string) error
	CreateGroup(ctx context.Context, input apiclient.GroupInput) (apiclient.Group, error)
	DeleteGroup(ctx context.Context, id string) error
}

// CreateUserCommand wraps Service.CreateUser.
type CreateUserCommand struct {
	service   userService
	telemetry Telemetry
}

// NewCreateUserCommand builds the command.
func NewCreateUserCommand(service userService, telemetry Telemetry) *CreateUserCommand {
	return &CreateUserCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[apiclient.CreateUserInput] = (*CreateUserCommand)(nil)

// Execute creates the account.
func (c *CreateUserCommand) Execute(ctx context.Context, msg apiclient.CreateUserInput) error {
	if c.service == nil {
		return errors.New("create user command requires service")
	}
	user, err := c.service.CreateUser(ctx, msg)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.user.create", map[string]any{"user": user.Username})
	return nil
}

// DeleteUserInput identifies the account to remove.
type DeleteUserInput struct {
	UserID string
}

// DeleteUserCommand wraps Service.DeleteUser.
type DeleteUserCommand struct {
	service   userService
	telemetry Telemetry
}

// NewDeleteUserCommand builds the command.
func NewDeleteUserCommand(service userService, telemetry Telemetry) *DeleteUserCommand {
	return &DeleteUserCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteUserInput] = (*DeleteUserCommand)(nil)

// Execute removes the account.
func (c *DeleteUserCommand) Execute(ctx context.Context, msg DeleteUserInput) error {
	if c.service == nil {
		return errors.New("delete user command requires service")
	}
	if err := c.service.DeleteUser(ctx, msg.UserID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.user.delete", map[string]any{"user": msg.UserID})
	return nil
}

// CreateGroupCommand wraps Service.CreateGroup.
type CreateGroupCommand struct {
	service   userService
	telemetry Telemetry
}

// NewCreateGroupCommand builds the command.
func NewCreateGroupCommand(service userService, telemetry Telemetry) *CreateGroupCommand {
	return &CreateGroupCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[apiclient.GroupInput] = (*CreateGroupCommand)(nil)

// Execute creates the group.
func (c *CreateGroupCommand) Execute(ctx context.Context, msg apiclient.GroupInput) error {
	if c.service == nil {
		return errors.New("create group command requires service")
	}
	group, err := c.service.CreateGroup(ctx, msg)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.group.create", map[string]any{"group": group.Name})
	return nil
}

// DeleteGroupInput identifies the group to remove.
type DeleteGroupInput struct {
	GroupID string
}

// DeleteGroupCommand wraps Service.DeleteGroup.
type DeleteGroupCommand struct {
	service   userService
	telemetry Telemetry
}

// NewDeleteGroupCommand builds the command.
func NewDeleteGroupCommand(service userService, telemetry Telemetry) *DeleteGroupCommand {
	return &DeleteGroupCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteGroupInput] = (*DeleteGroupCommand)(nil)

// Execute removes the group.
func (c *DeleteGroupCommand) Execute(ctx context.Context, msg DeleteGroupInput) error {
	if c.service == nil {
		return errors.New("delete group command requires service")
	}
	if err := c.service.DeleteGroup(ctx, msg.GroupID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.group.delete", map[string]any{"group": msg.GroupID})
	return nil
}
