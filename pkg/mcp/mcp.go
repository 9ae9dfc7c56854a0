package mcp

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/server"
	"github.com/pixelvide/cloud-sentinel-openstack/pkg/common"
	"github.com/pixelvide/cloud-sentinel-openstack/pkg/openstack"
	"github.com/pixelvide/cloud-sentinel-openstack/pkg/query"
	"github.com/pixelvide/cloud-sentinel-openstack/pkg/version"
	"k8s.io/klog/v2"
)

type MCPServer struct {
	server   *server.MCPServer
	pipeline *query.Pipeline
	reporter query.Reporter
}

func NewMCPServer(lister openstack.Lister) *MCPServer {
	s := server.NewMCPServer(
		common.AppName,
		version.Version,
		server.WithLogging(),
	)

	m := &MCPServer{
		server:   s,
		pipeline: query.NewPipeline(lister),
		reporter: &sessionReporter{},
	}

	m.registerTools()
	return m
}

func (m *MCPServer) ServeStdio() error {
	klog.Info("Starting MCP server on stdio")
	stdio := server.NewStdioServer(m.server)
	return stdio.Listen(context.Background(), nil, nil)
}

// StreamableHandler serves the streamable HTTP transport; main mounts
// it at BASE/openstack. Sessions are stateless, no event history.
func (m *MCPServer) StreamableHandler() http.Handler {
	return server.NewStreamableHTTPServer(m.server,
		server.WithStateLess(true),
	)
}

// SSEHandler serves the legacy SSE transport for clients that have not
// moved to streamable HTTP yet. Routes /sse and /message under
// BASE/openstack/sse.
func (m *MCPServer) SSEHandler() http.Handler {
	return server.NewSSEServer(m.server,
		server.WithStaticBasePath(common.Base+"/openstack/sse"),
	)
}
