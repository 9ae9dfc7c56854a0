package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/pixelvide/cloud-sentinel-openstack/pkg/query"
	"k8s.io/klog/v2"
)

// sessionReporter delivers query progress as notifications/message to
// the calling MCP session. A send failure fails the request; that
// coupling is deliberate (see DESIGN.md).
type sessionReporter struct{}

func (sessionReporter) Started(ctx context.Context, s query.Schema) error {
	return send(ctx, "info", fmt.Sprintf("Retrieving OpenStack %s information...", s.Singular))
}

func (sessionReporter) Succeeded(ctx context.Context, s query.Schema, count int) error {
	return send(ctx, "info", fmt.Sprintf("Successfully retrieved %d OpenStack %s", count, s.Plural))
}

func (sessionReporter) Failed(ctx context.Context, s query.Schema, cause error) error {
	return send(ctx, "error", cause.Error())
}

func send(ctx context.Context, level, message string) error {
	srv := server.ServerFromContext(ctx)
	if srv == nil {
		// No session on the context (e.g. direct invocation); there is
		// no channel to degrade, so just log.
		klog.V(2).Infof("No MCP session for notification: %s", message)
		return nil
	}
	return srv.SendNotificationToClient(ctx, "notifications/message", map[string]any{
		"level":  level,
		"logger": "openstack",
		"data":   message,
	})
}
