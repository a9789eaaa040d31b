package gorouter

import (
	"encoding/json"
	"errors"
	"net/http"

	router "github.com/goliatone/go-router"

	console "github.com/goliatone/go-console/components/console"
	"github.com/goliatone/go-console/components/console/commands"
	"github.com/goliatone/go-console/components/console/httpapi"
	"github.com/goliatone/go-console/pkg/apiclient"
)

// Config wires go-router with the console controller, API executor, and hub.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *console.Controller
	API        httpapi.Executor
	Hub        *console.BroadcastHub
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for console endpoints.
type RouteConfig struct {
	Login     string
	Logout    string
	Dashboard string
	Layout    string
	Reset     string
	Activity  string
	Settings  string
	Module    string
	Tool      string
	Content   string
	Pack      string
	Clear     string
	Users     string
	UserID    string
	Execute   string
	WebSocket string
}

// Register mounts console routes (HTML, JSON, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/console"
	}

	group := cfg.Router.Group(base)

	group.Get(routes.Login, router.WrapHandler(func(ctx router.Context) error {
		return renderHTML(ctx, func() (string, error) {
			return cfg.Controller.RenderLogin(ctx.Context(), ctx.Query("error"))
		})
	}))

	group.Get(routes.Dashboard, router.WrapHandler(func(ctx router.Context) error {
		return renderHTML(ctx, func() (string, error) {
			return cfg.Controller.RenderOverview(ctx.Context(), ctx.Param("id"))
		})
	}))

	group.Get(routes.Activity, router.WrapHandler(func(ctx router.Context) error {
		return renderHTML(ctx, func() (string, error) {
			return cfg.Controller.RenderTimeline(ctx.Context(), 0)
		})
	}))

	group.Get(routes.Settings, router.WrapHandler(func(ctx router.Context) error {
		return renderHTML(ctx, func() (string, error) {
			return cfg.Controller.RenderSettings(ctx.Context())
		})
	}))

	group.Get(routes.Content, router.WrapHandler(func(ctx router.Context) error {
		return renderHTML(ctx, func() (string, error) {
			return cfg.Controller.RenderContent(ctx.Context())
		})
	}))

	group.Get(routes.Users, router.WrapHandler(func(ctx router.Context) error {
		return renderHTML(ctx, func() (string, error) {
			return cfg.Controller.RenderUsers(ctx.Context())
		})
	}))

	group.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		payload, err := cfg.Controller.LayoutPayload(ctx.Param("id"))
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, routes)
	}

	if cfg.Hub != nil {
		registerWebSocket(group, cfg.Hub, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, routes RouteConfig) {
	r.Post(routes.Login, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.LoginInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Login(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusUnauthorized, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "authenticated"})
	}))

	r.Post(routes.Logout, router.WrapHandler(func(ctx router.Context) error {
		if err := api.Logout(ctx.Context()); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "signed_out"})
	}))

	r.Put(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SaveLayoutInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.DashboardID = ctx.Param("id")
		if err := api.SaveLayout(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))

	r.Post(routes.Reset, router.WrapHandler(func(ctx router.Context) error {
		input := commands.ResetLayoutInput{DashboardID: ctx.Param("id")}
		if err := api.ResetLayout(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "reset"})
	}))

	r.Post(routes.Module, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			Enabled bool `json:"enabled"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.ToggleModuleInput{ModuleID: ctx.Param("id"), Enabled: payload.Enabled}
		if err := api.ToggleModule(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "toggled"})
	}))

	r.Post(routes.Tool, router.WrapHandler(func(ctx router.Context) error {
		var payload struct {
			Enabled bool `json:"enabled"`
		}
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.ToggleToolInput{
			ModuleID: ctx.Param("id"),
			Tool:     ctx.Param("tool"),
			Enabled:  payload.Enabled,
		}
		if err := api.ToggleTool(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "toggled"})
	}))

	r.Post(routes.Pack, router.WrapHandler(func(ctx router.Context) error {
		name := ctx.Param("name")
		var err error
		switch ctx.Param("action") {
		case "load":
			err = api.LoadPack(ctx.Context(), commands.LoadPackInput{Name: name})
		case "unload":
			err = api.UnloadPack(ctx.Context(), commands.UnloadPackInput{Name: name})
		default:
			return respondError(ctx, http.StatusNotFound, errors.New("unknown pack action"))
		}
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}))

	r.Post(routes.Clear, router.WrapHandler(func(ctx router.Context) error {
		if err := api.ClearPacks(ctx.Context()); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "cleared"})
	}))

	r.Post(routes.Users, router.WrapHandler(func(ctx router.Context) error {
		var payload apiclient.CreateUserInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.CreateUser(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Delete(routes.UserID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("user id is required"))
		}
		if err := api.DeleteUser(ctx.Context(), commands.DeleteUserInput{UserID: id}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Execute, router.WrapHandler(func(ctx router.Context) error {
		var payload apiclient.ExecuteRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		result, err := api.Execute(ctx.Context(), payload)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, result)
	}))
}

func registerWebSocket[T any](r router.Router[T], hub *console.BroadcastHub, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hub.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func renderHTML(ctx router.Context, render func() (string, error)) error {
	html, err := render()
	if err != nil {
		return respondError(ctx, http.StatusInternalServerError, err)
	}
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send([]byte(html))
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Login == "" {
		routes.Login = "/login"
	}
	if routes.Logout == "" {
		routes.Logout = "/logout"
	}
	if routes.Dashboard == "" {
		routes.Dashboard = "/dashboards/:id"
	}
	if routes.Layout == "" {
		routes.Layout = "/dashboards/:id/layout"
	}
	if routes.Reset == "" {
		routes.Reset = "/dashboards/:id/layout/reset"
	}
	if routes.Activity == "" {
		routes.Activity = "/activity"
	}
	if routes.Settings == "" {
		routes.Settings = "/settings"
	}
	if routes.Module == "" {
		routes.Module = "/settings/modules/:id"
	}
	if routes.Tool == "" {
		routes.Tool = "/settings/modules/:id/tools/:tool"
	}
	if routes.Content == "" {
		routes.Content = "/content"
	}
	if routes.Pack == "" {
		routes.Pack = "/content/:name/:action"
	}
	if routes.Clear == "" {
		routes.Clear = "/content/clear"
	}
	if routes.Users == "" {
		routes.Users = "/users"
	}
	if routes.UserID == "" {
		routes.UserID = "/users/:id"
	}
	if routes.Execute == "" {
		routes.Execute = "/execute"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}
