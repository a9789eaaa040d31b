package console

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-console/pkg/apiclient"
)

func TestAuditActivityFeedMapsEntries(t *testing.T) {
	when := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	backend := &fakeBackend{
		entries: []apiclient.AuditEntry{{
			ID:        "a1",
			Timestamp: when.Add(-90 * time.Second),
			Actor:     "ada",
			Action:    "enabled workflow",
			Category:  "modules",
			Details:   map[string]any{"module": "workflow", "enabled": true},
		}},
	}
	feed := NewAuditActivityFeed(backend)
	feed.now = func() time.Time { return when }

	items, err := feed.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(items))
	}
	entry := items[0]
	if entry.Actor != "ada" || entry.Action != "enabled workflow" || entry.Category != "modules" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Ago != 90*time.Second {
		t.Fatalf("expected 90s ago, got %s", entry.Ago)
	}
	if entry.Details != "enabled=true · module=workflow" {
		t.Fatalf("unexpected details rendering: %q", entry.Details)
	}
}

func TestFormatDetailsEmpty(t *testing.T) {
	if got := formatDetails(nil); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestStaticActivityFeedLimits(t *testing.T) {
	feed := StaticActivityFeed{Items: []TimelineEntry{{ID: "e1"}, {ID: "e2"}, {ID: "e3"}}}

	items, err := feed.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	items, _ = feed.Recent(context.Background(), 0)
	if len(items) != 3 {
		t.Fatalf("expected all items for limit 0, got %d", len(items))
	}
}
