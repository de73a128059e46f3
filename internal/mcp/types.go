package mcp

import "github.com/ganot/activitylog/internal/domain/activity"

type RecordActivityParams struct {
	UserID     string         `json:"user_id" jsonschema:"ID of the user who performed the action"`
	UserName   string         `json:"user_name" jsonschema:"Display name of the user"`
	Action     string         `json:"action" jsonschema:"Action key, e.g. job_create or customer_update"`
	TargetType *string        `json:"target_type,omitempty" jsonschema:"Kind of entity acted upon, e.g. job or invoice"`
	TargetID   *string        `json:"target_id,omitempty" jsonschema:"ID of the entity acted upon"`
	TargetName *string        `json:"target_name,omitempty" jsonschema:"Display name of the entity acted upon"`
	Details    *string        `json:"details,omitempty" jsonschema:"Free text description"`
	Icon       string         `json:"icon,omitempty" jsonschema:"Display glyph; resolved from the action when omitted"`
	ExtraData  map[string]any `json:"extra_data,omitempty" jsonschema:"Additional structured fields stored with the activity"`
}

type RecordActivityResponse struct {
	Activity activity.Record `json:"activity"`
}

type GetActionIconParams struct {
	Action string `json:"action" jsonschema:"Action key to look up"`
}

type ActionIconResponse struct {
	Action string `json:"action"`
	Icon   string `json:"icon"`
	Known  bool   `json:"known"`
}

type ListActionIconsParams struct{}

type ActionIcon struct {
	Action string `json:"action"`
	Icon   string `json:"icon"`
}

type ListActionIconsResponse struct {
	Icons       []ActionIcon `json:"icons"`
	DefaultIcon string       `json:"default_icon"`
}
