package console

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-console/pkg/apiclient"
)

func widgetContext(config map[string]any) WidgetContext {
	return WidgetContext{Widget: Widget{ID: "test-widget", Config: config}}
}

func sampleModules() []apiclient.Module {
	return []apiclient.Module{
		{ID: "workflow", Name: "Workflow", Enabled: true, Tools: []apiclient.Tool{{Name: "run"}}},
		{ID: "billing", Name: "Billing", Enabled: true},
		{ID: "legacy", Name: "Legacy"},
	}
}

func TestModuleStatusProviderCountsEnabled(t *testing.T) {
	backend := &fakeBackend{modules: sampleModules()}
	provider := newModuleStatusProvider(backend)

	data, err := provider.Fetch(context.Background(), widgetContext(nil))
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if data["total"] != 3 {
		t.Fatalf("expected total 3, got %v", data["total"])
	}
	if data["enabled"] != 2 {
		t.Fatalf("expected 2 enabled, got %v", data["enabled"])
	}
	rows, ok := data["modules"].([]map[string]any)
	if !ok || len(rows) != 3 {
		t.Fatalf("expected 3 module rows, got %v", data["modules"])
	}
	if rows[0]["tools"] != 1 {
		t.Fatalf("expected tool count on the row, got %v", rows[0]["tools"])
	}
}

func TestModuleStatusProviderFiltersSingleModule(t *testing.T) {
	backend := &fakeBackend{modules: sampleModules()}
	provider := newModuleStatusProvider(backend)

	data, err := provider.Fetch(context.Background(), widgetContext(map[string]any{"module": "workflow"}))
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if data["total"] != 1 {
		t.Fatalf("expected a single filtered module, got %v", data["total"])
	}
	rows := data["modules"].([]map[string]any)
	if rows[0]["id"] != "workflow" {
		t.Fatalf("expected workflow row, got %v", rows[0])
	}
}

func TestRecentActivityProviderHonorsLimitConfig(t *testing.T) {
	feed := StaticActivityFeed{Items: []TimelineEntry{
		{ID: "e1", Actor: "ada", Action: "first", Timestamp: time.Now()},
		{ID: "e2", Actor: "ada", Action: "second", Timestamp: time.Now()},
		{ID: "e3", Actor: "ada", Action: "third", Timestamp: time.Now()},
	}}
	provider := newRecentActivityProvider(feed)
	ctx := context.Background()

	for _, limit := range []any{2, float64(2)} {
		data, err := provider.Fetch(ctx, widgetContext(map[string]any{"limit": limit}))
		if err != nil {
			t.Fatalf("Fetch returned error: %v", err)
		}
		items := data["items"].([]map[string]any)
		if len(items) != 2 {
			t.Fatalf("limit %v: expected 2 items, got %d", limit, len(items))
		}
	}

	// Without config the default of 10 keeps everything.
	data, err := provider.Fetch(ctx, widgetContext(nil))
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if items := data["items"].([]map[string]any); len(items) != 3 {
		t.Fatalf("expected all 3 items, got %d", len(items))
	}
}

func TestUserStatsProviderCountsDisabled(t *testing.T) {
	backend := &fakeBackend{
		users: []apiclient.User{
			{ID: "u1", Username: "ada"},
			{ID: "u2", Username: "grace", Disabled: true},
			{ID: "u3", Username: "joan"},
		},
	}
	provider := newUserStatsProvider(backend)

	data, err := provider.Fetch(context.Background(), widgetContext(nil))
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	values := data["values"].(map[string]int)
	if values["total"] != 3 || values["active"] != 2 || values["disabled"] != 1 {
		t.Fatalf("unexpected user counts: %v", values)
	}
}

func TestContentPacksProviderSortsByName(t *testing.T) {
	backend := &fakeBackend{
		loaded: []apiclient.ContentPack{
			{Name: "zulu", Version: "1.0.0", Loaded: true},
			{Name: "alpha", Version: "2.1.0", Loaded: true},
		},
		avail: []apiclient.ContentPack{{Name: "extra"}},
	}
	provider := newContentPacksProvider(backend)
	ctx := context.Background()

	data, err := provider.Fetch(ctx, widgetContext(nil))
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	rows := data["packs"].([]map[string]any)
	if rows[0]["name"] != "alpha" || rows[1]["name"] != "zulu" {
		t.Fatalf("expected packs sorted by name, got %v", rows)
	}
	if _, present := data["available"]; present {
		t.Fatalf("available count should require the show_available flag")
	}

	data, err = provider.Fetch(ctx, widgetContext(map[string]any{"show_available": true}))
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if data["available"] != 1 {
		t.Fatalf("expected 1 available pack, got %v", data["available"])
	}
}

func TestSystemStatusProviderRendersFailure(t *testing.T) {
	backend := &fakeBackend{
		failures: map[string]error{"health": errors.New("connection refused")},
	}
	provider := newSystemStatusProvider(backend)

	data, err := provider.Fetch(context.Background(), widgetContext(nil))
	if err != nil {
		t.Fatalf("health failures should render, not fail: %v", err)
	}
	if data["status"] != "unreachable" {
		t.Fatalf("expected unreachable status, got %v", data["status"])
	}
	if data["error"] != "connection refused" {
		t.Fatalf("expected the backend error in the payload, got %v", data["error"])
	}
}

func TestSystemStatusProviderReportsHealth(t *testing.T) {
	backend := &fakeBackend{health: apiclient.HealthStatus{Status: "ok", Version: "1.4.2"}}
	provider := newSystemStatusProvider(backend)

	data, err := provider.Fetch(context.Background(), widgetContext(nil))
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if data["status"] != "ok" || data["version"] != "1.4.2" {
		t.Fatalf("unexpected health payload: %v", data)
	}
}
