package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-console/pkg/apiclient"
)

type executeService interface {
	ExecuteTool(ctx context.Context, req apiclient.ExecuteRequest) (apiclient.ExecuteResult, error)
}

// ExecuteQuery invokes one backend tool and returns its result.
type ExecuteQuery struct {
	service executeService
}

// NewExecuteQuery builds the query.
func NewExecuteQuery(service executeService) *ExecuteQuery {
	return &ExecuteQuery{service: service}
}

var _ gocommand.Querier[apiclient.ExecuteRequest, apiclient.ExecuteResult] = (*ExecuteQuery)(nil)

// Query runs the tool through the generic execute endpoint.
func (q *ExecuteQuery) Query(ctx context.Context, req apiclient.ExecuteRequest) (apiclient.ExecuteResult, error) {
	return q.service.ExecuteTool(ctx, req)
}
