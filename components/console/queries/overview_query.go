package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-console/components/console"
)

// OverviewRequest identifies the dashboard to resolve.
type OverviewRequest struct {
	DashboardID string
}

type overviewService interface {
	Overview(ctx context.Context, dashboardID string) (console.OverviewPage, error)
}

// OverviewQuery executes read-only dashboard resolution.
type OverviewQuery struct {
	service overviewService
}

// NewOverviewQuery builds the query.
func NewOverviewQuery(service overviewService) *OverviewQuery {
	return &OverviewQuery{service: service}
}

var _ gocommand.Querier[OverviewRequest, console.OverviewPage] = (*OverviewQuery)(nil)

// Query resolves the dashboard page for the viewer.
func (q *OverviewQuery) Query(ctx context.Context, req OverviewRequest) (console.OverviewPage, error) {
	return q.service.Overview(ctx, req.DashboardID)
}
