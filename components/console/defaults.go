package console

// Built-in widget kind codes.
const (
	WidgetModuleStatus   = "console.widget.module_status"
	WidgetRecentActivity = "console.widget.recent_activity"
	WidgetActivityChart  = "console.widget.activity_chart"
	WidgetUserStats      = "console.widget.user_stats"
	WidgetContentPacks   = "console.widget.content_packs"
	WidgetSystemStatus   = "console.widget.system_status"
)

var defaultWidgetDefinitions = []WidgetDefinition{
	{
		Code:        WidgetModuleStatus,
		Name:        "Module Status",
		Description: "Enabled/disabled state of backend modules",
		Category:    "status",
		DefaultSize: SizeMedium,
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"module": map[string]any{"type": "string"},
			},
		},
	},
	{
		Code:        WidgetRecentActivity,
		Name:        "Recent Activity",
		Description: "Latest audit timeline entries",
		Category:    "activity",
		DefaultSize: SizeMedium,
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{"type": "integer", "minimum": 1, "maximum": 50, "default": 10},
			},
		},
	},
	{
		Code:        WidgetActivityChart,
		Name:        "Activity Chart",
		Description: "Activity volume per category",
		Category:    "charts",
		DefaultSize: SizeLarge,
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"chart_type": map[string]any{"type": "string", "enum": []string{"bar", "line"}, "default": "bar"},
				"title":      map[string]any{"type": "string"},
			},
		},
	},
	{
		Code:        WidgetUserStats,
		Name:        "User Statistics",
		Description: "Account counts and recent signups",
		Category:    "stats",
		DefaultSize: SizeSmall,
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"metric": map[string]any{"type": "string", "enum": []string{"total", "active", "disabled"}},
			},
		},
	},
	{
		Code:        WidgetContentPacks,
		Name:        "Content Packs",
		Description: "Loaded content packs",
		Category:    "content",
		DefaultSize: SizeSmall,
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"show_available": map[string]any{"type": "boolean", "default": false},
			},
		},
	},
	{
		Code:        WidgetSystemStatus,
		Name:        "System Status",
		Description: "Backend health indicators",
		Category:    "status",
		DefaultSize: SizeSmall,
		Schema:      map[string]any{"type": "object"},
	},
}

// DefaultWidgetDefinitions returns the built-in widget kinds.
func DefaultWidgetDefinitions() []WidgetDefinition {
	return append([]WidgetDefinition(nil), defaultWidgetDefinitions...)
}

// DefaultDashboards declares the stock console dashboards. Applications can
// replace or extend these via Options.Dashboards or a YAML manifest.
func DefaultDashboards() []Dashboard {
	return []Dashboard{
		{
			ID:    "state",
			Title: "State",
			Widgets: []Widget{
				{ID: "system-status", Kind: WidgetSystemStatus, Title: "System", Size: SizeSmall},
				{ID: "module-status", Kind: WidgetModuleStatus, Title: "Modules", Size: SizeMedium},
				{ID: "user-stats", Kind: WidgetUserStats, Title: "Users", Size: SizeSmall},
				{ID: "content-packs", Kind: WidgetContentPacks, Title: "Content Packs", Size: SizeSmall},
			},
		},
		{
			ID:    "timeline",
			Title: "Timeline",
			Widgets: []Widget{
				{ID: "activity-chart", Kind: WidgetActivityChart, Title: "Activity", Size: SizeLarge},
				{ID: "recent-activity", Kind: WidgetRecentActivity, Title: "Recent Activity", Size: SizeMedium,
					Config: map[string]any{"limit": 10}},
			},
		},
	}
}
