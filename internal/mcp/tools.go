package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools adds the activity tools to server. Tool handlers share the
// JSON-RPC handler's logic so both transports behave the same.
func registerTools(server *sdkmcp.Server, h *Handler) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "record_activity",
		Description: "Record a user activity in the activity log. The icon is resolved from the action when omitted.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecordActivityParams) (*sdkmcp.CallToolResult, RecordActivityResponse, error) {
		resp, err := h.recordActivity(ctx, in)
		return nil, resp, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_action_icon",
		Description: "Look up the display icon for an action key. Unknown actions get the default icon.",
	}, func(_ context.Context, _ *sdkmcp.CallToolRequest, in GetActionIconParams) (*sdkmcp.CallToolResult, ActionIconResponse, error) {
		return nil, actionIcon(in), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_action_icons",
		Description: "List every known action key with its display icon.",
	}, func(_ context.Context, _ *sdkmcp.CallToolRequest, _ ListActionIconsParams) (*sdkmcp.CallToolResult, ListActionIconsResponse, error) {
		return nil, listActionIcons(), nil
	})
}
