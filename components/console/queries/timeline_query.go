package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-console/components/console"
)

// TimelineRequest bounds the activity query.
type TimelineRequest struct {
	Limit int
}

type timelineService interface {
	Timeline(ctx context.Context, limit int) (console.TimelinePage, error)
}

// TimelineQuery executes the read-only activity lookup.
type TimelineQuery struct {
	service timelineService
}

// NewTimelineQuery builds the query.
func NewTimelineQuery(service timelineService) *TimelineQuery {
	return &TimelineQuery{service: service}
}

var _ gocommand.Querier[TimelineRequest, console.TimelinePage] = (*TimelineQuery)(nil)

// Query loads recent activity plus aggregate stats.
func (q *TimelineQuery) Query(ctx context.Context, req TimelineRequest) (console.TimelinePage, error) {
	return q.service.Timeline(ctx, req.Limit)
}
