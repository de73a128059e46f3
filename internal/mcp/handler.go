package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/ganot/activitylog/internal/domain/activity"
)

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	Record(ctx context.Context, req activity.RecordRequest) (*activity.Record, error)
}

// Handler dispatches JSON-RPC methods to the activity service.
type Handler struct {
	activity ActivityService
}

// NewHandler creates a new handler.
func NewHandler(activitySvc ActivityService) *Handler {
	return &Handler{activity: activitySvc}
}

// Handle dispatches a request by method name.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "record_activity":
		var req RecordActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.recordActivity(ctx, req)
	case "get_action_icon":
		var req GetActionIconParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return actionIcon(req), nil
	case "list_action_icons":
		return listActionIcons(), nil
	default:
		return nil, &APIError{Code: CodeUnknownMethod, Message: fmt.Sprintf("unknown method %q", method)}
	}
}

func (h *Handler) recordActivity(ctx context.Context, req RecordActivityParams) (RecordActivityResponse, error) {
	switch {
	case strings.TrimSpace(req.UserID) == "":
		return RecordActivityResponse{}, invalidParams("user_id is required")
	case strings.TrimSpace(req.UserName) == "":
		return RecordActivityResponse{}, invalidParams("user_name is required")
	case strings.TrimSpace(req.Action) == "":
		return RecordActivityResponse{}, invalidParams("action is required")
	}

	icon := req.Icon
	if icon == "" {
		icon = activity.IconFor(req.Action)
	}

	rec, err := h.activity.Record(ctx, activity.RecordRequest{
		UserID:     req.UserID,
		UserName:   req.UserName,
		Action:     req.Action,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		TargetName: req.TargetName,
		Details:    req.Details,
		Icon:       icon,
		ExtraData:  req.ExtraData,
	})
	if err != nil {
		return RecordActivityResponse{}, mapError(err)
	}
	return RecordActivityResponse{Activity: *rec}, nil
}

func actionIcon(req GetActionIconParams) ActionIconResponse {
	_, known := activity.Icons()[req.Action]
	return ActionIconResponse{
		Action: req.Action,
		Icon:   activity.IconFor(req.Action),
		Known:  known,
	}
}

func listActionIcons() ListActionIconsResponse {
	icons := activity.Icons()
	actions := make([]string, 0, len(icons))
	for action := range icons {
		actions = append(actions, action)
	}
	slices.Sort(actions)

	resp := ListActionIconsResponse{
		Icons:       make([]ActionIcon, 0, len(actions)),
		DefaultIcon: activity.DefaultIcon,
	}
	for _, action := range actions {
		resp.Icons = append(resp.Icons, ActionIcon{Action: action, Icon: icons[action]})
	}
	return resp
}

func decodeParams(params json.RawMessage, out any) error {
	if len(bytes.TrimSpace(params)) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return invalidParams(fmt.Sprintf("invalid params: %v", err))
	}
	return nil
}
