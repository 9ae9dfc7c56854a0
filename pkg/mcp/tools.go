package mcp

import (
	"context"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pixelvide/cloud-sentinel-openstack/pkg/model"
	"github.com/pixelvide/cloud-sentinel-openstack/pkg/query"
)

// registerTools walks the kind table and registers one query tool per
// resource kind. All eight share the same argument surface and handler;
// only the schema differs.
func (m *MCPServer) registerTools() {
	for _, s := range query.Schemas() {
		tool := mcp.NewTool(s.Tool,
			mcp.WithDescription(s.Description),
			mcp.WithString("filter",
				mcp.Description(s.FilterHint),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of results to return"),
				mcp.DefaultNumber(query.DefaultLimit),
			),
			mcp.WithString("detail_level",
				mcp.Description("Level of detail to return"),
				mcp.Enum("basic", "detailed", "full"),
				mcp.DefaultString(string(query.TierDetailed)),
			),
		)
		m.server.AddTool(tool, m.queryHandler(s))
	}
}

func (m *MCPServer) queryHandler(s query.Schema) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tier, err := query.ParseTier(request.GetString("detail_level", string(query.TierDetailed)))
		if err != nil {
			return nil, err
		}
		req := query.Request{
			Kind:   s.Kind,
			Filter: request.GetString("filter", ""),
			Limit:  request.GetInt("limit", query.DefaultLimit),
			Tier:   tier,
		}

		reporter := &countingReporter{next: m.reporter}
		processor := query.NewProcessor(m.pipeline, reporter)
		summary, err := processor.Process(ctx, req)

		model.RecordToolInvocation(model.ToolInvocation{
			RunID:       uuid.NewString(),
			Tool:        s.Tool,
			Filter:      req.Filter,
			Limit:       req.Limit,
			DetailLevel: string(req.Tier),
			ResultCount: reporter.count,
			Err:         err,
		})

		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(summary), nil
	}
}

// countingReporter remembers the success count for the audit row while
// delegating every notification.
type countingReporter struct {
	next  query.Reporter
	count int
}

func (r *countingReporter) Started(ctx context.Context, s query.Schema) error {
	return r.next.Started(ctx, s)
}

func (r *countingReporter) Succeeded(ctx context.Context, s query.Schema, count int) error {
	r.count = count
	return r.next.Succeeded(ctx, s, count)
}

func (r *countingReporter) Failed(ctx context.Context, s query.Schema, cause error) error {
	return r.next.Failed(ctx, s, cause)
}
