package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

// ListModules returns every backend module with its tools.
func (c *Client) ListModules(ctx context.Context) ([]Module, error) {
	var modules []Module
	if err := c.do(ctx, http.MethodGet, "/api/v1/modules/", nil, &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

// GetModule fetches one module by id.
func (c *Client) GetModule(ctx context.Context, id string) (Module, error) {
	var module Module
	if err := c.do(ctx, http.MethodGet, "/api/v1/modules/"+url.PathEscape(id), nil, &module); err != nil {
		return Module{}, err
	}
	return module, nil
}

// EnableModule turns a module on.
func (c *Client) EnableModule(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/modules/"+url.PathEscape(id)+"/enable", nil, nil)
}

// DisableModule turns a module off.
func (c *Client) DisableModule(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/modules/"+url.PathEscape(id)+"/disable", nil, nil)
}

// UpdateModuleConfig replaces a module's configuration blob.
func (c *Client) UpdateModuleConfig(ctx context.Context, id string, config map[string]any) error {
	return c.do(ctx, http.MethodPut, "/api/v1/modules/"+url.PathEscape(id)+"/config", config, nil)
}

// EnableTool turns one tool of a module on.
func (c *Client) EnableTool(ctx context.Context, moduleID, tool string) error {
	path := "/api/v1/modules/" + url.PathEscape(moduleID) + "/tools/" + url.PathEscape(tool) + "/enable"
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// DisableTool turns one tool of a module off.
func (c *Client) DisableTool(ctx context.Context, moduleID, tool string) error {
	path := "/api/v1/modules/" + url.PathEscape(moduleID) + "/tools/" + url.PathEscape(tool) + "/disable"
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// Execute invokes a tool through the generic execute endpoint. The request and
// result are opaque to the console.
func (c *Client) Execute(ctx context.Context, req ExecuteRequest) (ExecuteResult, error) {
	var result ExecuteResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/execute", req, &result); err != nil {
		return ExecuteResult{}, err
	}
	return result, nil
}

// UIServerLayout fetches the server-declared dashboard/widget arrangement.
func (c *Client) UIServerLayout(ctx context.Context) (UILayout, error) {
	var layout UILayout
	if err := c.do(ctx, http.MethodGet, "/api/v1/ui/layout", nil, &layout); err != nil {
		return UILayout{}, err
	}
	return layout, nil
}
