package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListAuditLogs returns timeline entries matching the query, newest first.
func (c *Client) ListAuditLogs(ctx context.Context, query AuditQuery) ([]AuditEntry, error) {
	values := url.Values{}
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Offset > 0 {
		values.Set("offset", strconv.Itoa(query.Offset))
	}
	if query.Category != "" {
		values.Set("category", query.Category)
	}
	if query.Actor != "" {
		values.Set("actor", query.Actor)
	}
	path := "/audit-logs/"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var entries []AuditEntry
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetAuditStats aggregates activity counts per category.
func (c *Client) GetAuditStats(ctx context.Context) (AuditStats, error) {
	var stats AuditStats
	if err := c.do(ctx, http.MethodGet, "/audit-logs/stats", nil, &stats); err != nil {
		return AuditStats{}, err
	}
	return stats, nil
}

// ClearAuditLogs deletes the activity history.
func (c *Client) ClearAuditLogs(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/audit-logs/", nil, nil)
}
