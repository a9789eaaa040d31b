package console

import (
	"context"
	"errors"

	"github.com/goliatone/go-console/pkg/apiclient"
)

// NavItem is one entry in the console shell navigation.
type NavItem struct {
	Label string
	Route string
}

// DefaultNav returns the standard console navigation.
func DefaultNav() []NavItem {
	return []NavItem{
		{Label: "Overview", Route: "/dashboards/state"},
		{Label: "Timeline", Route: "/dashboards/timeline"},
		{Label: "Activity", Route: "/activity"},
		{Label: "Settings", Route: "/settings"},
		{Label: "Content", Route: "/content"},
		{Label: "Users", Route: "/users"},
	}
}

// ControllerOptions configures the page controller.
type ControllerOptions struct {
	Service  *Service
	Renderer Renderer
	Nav      []NavItem
}

// Controller renders console pages to HTML and exposes the layout payload
// consumed by the drag and drop editor script.
type Controller struct {
	service  *Service
	renderer Renderer
	nav      []NavItem
}

// NewController wires the service and renderer into a controller.
func NewController(opts ControllerOptions) (*Controller, error) {
	if opts.Service == nil {
		return nil, errors.New("console: controller requires a service")
	}
	if opts.Renderer == nil {
		renderer, err := NewTemplateRenderer()
		if err != nil {
			return nil, err
		}
		opts.Renderer = renderer
	}
	if len(opts.Nav) == 0 {
		opts.Nav = DefaultNav()
	}
	return &Controller{
		service:  opts.Service,
		renderer: opts.Renderer,
		nav:      opts.Nav,
	}, nil
}

func (c *Controller) shellData(title, active string) map[string]any {
	data := map[string]any{
		"title":  title,
		"active": active,
		"nav":    c.nav,
	}
	if session := c.service.Session(); session != nil {
		data["user"] = session.Snapshot().User
	} else {
		data["user"] = apiclient.User{}
	}
	return data
}

// RenderLogin renders the sign-in page, optionally with a failure message.
func (c *Controller) RenderLogin(_ context.Context, errMsg string) (string, error) {
	return c.renderer.Render("login", map[string]any{"error": errMsg})
}

// RenderOverview renders one dashboard.
func (c *Controller) RenderOverview(ctx context.Context, dashboardID string) (string, error) {
	page, err := c.service.Overview(ctx, dashboardID)
	if err != nil {
		return "", err
	}
	data := c.shellData(page.Dashboard.Title, "/dashboards/"+dashboardID)
	data["page"] = page
	return c.renderer.Render("overview", data)
}

// RenderTimeline renders the activity page.
func (c *Controller) RenderTimeline(ctx context.Context, limit int) (string, error) {
	page, err := c.service.Timeline(ctx, limit)
	if err != nil {
		return "", err
	}
	data := c.shellData("Activity", "/activity")
	data["page"] = page
	return c.renderer.Render("timeline", data)
}

// RenderSettings renders the module settings page.
func (c *Controller) RenderSettings(ctx context.Context) (string, error) {
	page, err := c.service.Settings(ctx)
	if err != nil {
		return "", err
	}
	data := c.shellData("Modules", "/settings")
	data["page"] = page
	return c.renderer.Render("settings", data)
}

// RenderContent renders the content pack page.
func (c *Controller) RenderContent(ctx context.Context) (string, error) {
	page, err := c.service.Content(ctx)
	if err != nil {
		return "", err
	}
	data := c.shellData("Content packs", "/content")
	data["page"] = page
	return c.renderer.Render("content", data)
}

// RenderUsers renders the administration page.
func (c *Controller) RenderUsers(ctx context.Context) (string, error) {
	page, err := c.service.Users(ctx)
	if err != nil {
		return "", err
	}
	data := c.shellData("Users", "/users")
	data["page"] = page
	return c.renderer.Render("users", data)
}

// LayoutPayload returns the serializable layout model for one dashboard,
// consumed by the editor script and the JSON API.
func (c *Controller) LayoutPayload(dashboardID string) (map[string]any, error) {
	editor, err := c.service.Editor(dashboardID)
	if err != nil {
		return nil, err
	}
	hidden := make([]string, 0)
	for id, isHidden := range editor.Hidden() {
		if isHidden {
			hidden = append(hidden, id)
		}
	}
	return map[string]any{
		"dashboard": dashboardID,
		"columns":   GridColumns,
		"layout":    editor.Layout(),
		"hidden":    hidden,
		"editing":   editor.IsEditing(),
	}, nil
}
