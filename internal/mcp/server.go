package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients during initialization.
const Version = "0.1.0"

const serverInstructions = `Activity log server.

Call record_activity whenever a user creates, changes or deletes something worth showing
in the activity feed. Pass the action key (for example job_create or invoice_update); the
icon is filled in from the action catalog unless you provide one. list_action_icons returns
the catalog. Activities are kept newest first and only the latest 2000 are retained.`

// Config contains server configuration.
type Config struct {
	Activity ActivityService
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "activitylog",
		Version: Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, NewHandler(cfg.Activity))

	return server
}
