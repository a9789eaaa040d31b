package console

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-console/pkg/apiclient"
)

// TimelineEntry is one row of the activity timeline.
type TimelineEntry struct {
	ID        string
	Actor     string
	Action    string
	Category  string
	Details   string
	Timestamp time.Time
	Ago       time.Duration
}

// ActivityFeed fetches recent timeline entries.
type ActivityFeed interface {
	Recent(ctx context.Context, limit int) ([]TimelineEntry, error)
}

// AuditActivityFeed reads the timeline from the backend audit log.
type AuditActivityFeed struct {
	api AuditAPI
	now func() time.Time
}

// NewAuditActivityFeed builds a feed over the audit API.
func NewAuditActivityFeed(api AuditAPI) *AuditActivityFeed {
	return &AuditActivityFeed{api: api, now: time.Now}
}

// Recent returns up to limit entries, newest first.
func (f *AuditActivityFeed) Recent(ctx context.Context, limit int) ([]TimelineEntry, error) {
	entries, err := f.api.ListAuditLogs(ctx, apiclient.AuditQuery{Limit: limit})
	if err != nil {
		return nil, err
	}
	now := f.now()
	items := make([]TimelineEntry, 0, len(entries))
	for _, entry := range entries {
		items = append(items, TimelineEntry{
			ID:        entry.ID,
			Actor:     entry.Actor,
			Action:    entry.Action,
			Category:  entry.Category,
			Details:   formatDetails(entry.Details),
			Timestamp: entry.Timestamp,
			Ago:       now.Sub(entry.Timestamp),
		})
	}
	return items, nil
}

// StaticActivityFeed returns fixed entries useful for demos/tests.
type StaticActivityFeed struct {
	Items []TimelineEntry
}

// Recent returns up to limit items from the static list.
func (f StaticActivityFeed) Recent(_ context.Context, limit int) ([]TimelineEntry, error) {
	if limit <= 0 || limit >= len(f.Items) {
		return append([]TimelineEntry{}, f.Items...), nil
	}
	return append([]TimelineEntry{}, f.Items[:limit]...), nil
}

func formatDetails(details map[string]any) string {
	if len(details) == 0 {
		return ""
	}
	parts := make([]string, 0, len(details))
	for key, value := range details {
		parts = append(parts, fmt.Sprintf("%s=%v", key, value))
	}
	// Map iteration order is random; keep output stable for rendering.
	sort.Strings(parts)
	return strings.Join(parts, " · ")
}
