package console

import (
	"context"

	"github.com/goliatone/go-console/pkg/apiclient"
)

// Provider fetches the data required to render one widget.
type Provider interface {
	Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, meta WidgetContext) (WidgetData, error)

// Fetch satisfies Provider.
func (f ProviderFunc) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	return f(ctx, meta)
}

// WidgetContext carries the metadata providers need.
type WidgetContext struct {
	Widget      Widget
	DashboardID string
	User        apiclient.User
}

// WidgetData is an opaque payload passed to templates.
type WidgetData map[string]any
