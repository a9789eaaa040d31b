package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

// ListContentPacks returns packs currently loaded on the backend.
func (c *Client) ListContentPacks(ctx context.Context) ([]ContentPack, error) {
	var packs []ContentPack
	if err := c.do(ctx, http.MethodGet, "/api/v1/content-packs/", nil, &packs); err != nil {
		return nil, err
	}
	return packs, nil
}

// ListAvailablePacks returns packs the backend can load.
func (c *Client) ListAvailablePacks(ctx context.Context) ([]ContentPack, error) {
	var packs []ContentPack
	if err := c.do(ctx, http.MethodGet, "/api/v1/content-packs/available", nil, &packs); err != nil {
		return nil, err
	}
	return packs, nil
}

// LoadContentPack asks the backend to load a named pack.
func (c *Client) LoadContentPack(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/content-packs/"+url.PathEscape(name)+"/load", nil, nil)
}

// UnloadContentPack asks the backend to unload a named pack.
func (c *Client) UnloadContentPack(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/content-packs/"+url.PathEscape(name)+"/unload", nil, nil)
}

// ClearContentPacks unloads every loaded pack.
func (c *Client) ClearContentPacks(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/content-packs/", nil, nil)
}

// ExportContentPack downloads the pack archive bytes.
func (c *Client) ExportContentPack(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	if err := c.do(ctx, http.MethodGet, "/api/v1/content-packs/"+url.PathEscape(name)+"/export", nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// ImportContentPack uploads a pack archive for the backend to register.
func (c *Client) ImportContentPack(ctx context.Context, name string, payload map[string]any) error {
	return c.do(ctx, http.MethodPut, "/api/v1/content-packs/"+url.PathEscape(name), payload, nil)
}
