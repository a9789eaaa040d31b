package console

import (
	"context"
	"sort"

	"github.com/goliatone/go-console/pkg/apiclient"
)

// ModulesAPI is the backend slice the module widgets and settings page need.
type ModulesAPI interface {
	ListModules(ctx context.Context) ([]apiclient.Module, error)
	EnableModule(ctx context.Context, id string) error
	DisableModule(ctx context.Context, id string) error
	EnableTool(ctx context.Context, moduleID, tool string) error
	DisableTool(ctx context.Context, moduleID, tool string) error
	Execute(ctx context.Context, req apiclient.ExecuteRequest) (apiclient.ExecuteResult, error)
}

// AuditAPI feeds the timeline page and activity widgets.
type AuditAPI interface {
	ListAuditLogs(ctx context.Context, query apiclient.AuditQuery) ([]apiclient.AuditEntry, error)
	GetAuditStats(ctx context.Context) (apiclient.AuditStats, error)
}

// UsersAPI backs the users page and user stats widget.
type UsersAPI interface {
	ListUsers(ctx context.Context) ([]apiclient.User, error)
	ListGroups(ctx context.Context) ([]apiclient.Group, error)
	CreateUser(ctx context.Context, input apiclient.CreateUserInput) (apiclient.User, error)
	UpdateUser(ctx context.Context, id string, input apiclient.UpdateUserInput) (apiclient.User, error)
	DeleteUser(ctx context.Context, id string) error
	CreateGroup(ctx context.Context, input apiclient.GroupInput) (apiclient.Group, error)
	DeleteGroup(ctx context.Context, id string) error
}

// ContentAPI backs the content page and pack widgets.
type ContentAPI interface {
	ListContentPacks(ctx context.Context) ([]apiclient.ContentPack, error)
	ListAvailablePacks(ctx context.Context) ([]apiclient.ContentPack, error)
	LoadContentPack(ctx context.Context, name string) error
	UnloadContentPack(ctx context.Context, name string) error
	ClearContentPacks(ctx context.Context) error
	ExportContentPack(ctx context.Context, name string) ([]byte, error)
}

// HealthAPI probes backend liveness for the system status widget.
type HealthAPI interface {
	Health(ctx context.Context) (apiclient.HealthStatus, error)
}

// BackendAPI is the full client surface the console consumes; satisfied by
// *apiclient.Client.
type BackendAPI interface {
	AuthAPI
	ModulesAPI
	AuditAPI
	UsersAPI
	ContentAPI
	HealthAPI
}

func registerBuiltinProviders(reg *Registry, api BackendAPI, feed ActivityFeed) {
	_ = reg.RegisterProvider(WidgetModuleStatus, newModuleStatusProvider(api))
	_ = reg.RegisterProvider(WidgetRecentActivity, newRecentActivityProvider(feed))
	_ = reg.RegisterProvider(WidgetActivityChart, NewActivityChartProvider(api))
	_ = reg.RegisterProvider(WidgetUserStats, newUserStatsProvider(api))
	_ = reg.RegisterProvider(WidgetContentPacks, newContentPacksProvider(api))
	_ = reg.RegisterProvider(WidgetSystemStatus, newSystemStatusProvider(api))
}

func newModuleStatusProvider(api ModulesAPI) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		modules, err := api.ListModules(ctx)
		if err != nil {
			return nil, err
		}
		if only, ok := meta.Widget.Config["module"].(string); ok && only != "" {
			filtered := modules[:0]
			for _, module := range modules {
				if module.ID == only {
					filtered = append(filtered, module)
				}
			}
			modules = filtered
		}
		enabled := 0
		rows := make([]map[string]any, 0, len(modules))
		for _, module := range modules {
			if module.Enabled {
				enabled++
			}
			rows = append(rows, map[string]any{
				"id":      module.ID,
				"name":    module.Name,
				"enabled": module.Enabled,
				"tools":   len(module.Tools),
			})
		}
		return WidgetData{"modules": rows, "enabled": enabled, "total": len(modules)}, nil
	})
}

func newRecentActivityProvider(feed ActivityFeed) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		limit := 10
		if v, ok := meta.Widget.Config["limit"].(int); ok && v > 0 {
			limit = v
		} else if v, ok := meta.Widget.Config["limit"].(float64); ok && v > 0 {
			limit = int(v)
		}
		items, err := feed.Recent(ctx, limit)
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]any, 0, len(items))
		for _, item := range items {
			rows = append(rows, map[string]any{
				"actor":   item.Actor,
				"action":  item.Action,
				"details": item.Details,
				"ago":     item.Ago,
			})
		}
		return WidgetData{"items": rows}, nil
	})
}

func newUserStatsProvider(api UsersAPI) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		users, err := api.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		total := len(users)
		disabled := 0
		for _, user := range users {
			if user.Disabled {
				disabled++
			}
		}
		return WidgetData{
			"metric": meta.Widget.Config["metric"],
			"values": map[string]int{
				"total":    total,
				"active":   total - disabled,
				"disabled": disabled,
			},
		}, nil
	})
}

func newContentPacksProvider(api ContentAPI) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		packs, err := api.ListContentPacks(ctx)
		if err != nil {
			return nil, err
		}
		sort.Slice(packs, func(i, j int) bool { return packs[i].Name < packs[j].Name })
		rows := make([]map[string]any, 0, len(packs))
		for _, pack := range packs {
			rows = append(rows, map[string]any{
				"name":    pack.Name,
				"version": pack.Version,
				"loaded":  pack.Loaded,
			})
		}
		data := WidgetData{"packs": rows, "loaded": len(rows)}
		if show, _ := meta.Widget.Config["show_available"].(bool); show {
			available, err := api.ListAvailablePacks(ctx)
			if err != nil {
				return nil, err
			}
			data["available"] = len(available)
		}
		return data, nil
	})
}

func newSystemStatusProvider(api HealthAPI) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		status, err := api.Health(ctx)
		if err != nil {
			// The widget renders the failure rather than breaking the page.
			return WidgetData{"status": "unreachable", "error": err.Error()}, nil
		}
		return WidgetData{"status": status.Status, "version": status.Version}, nil
	})
}
