package activity

// MaxRecords is the number of records kept in the collection. Older records are
// dropped from the tail when a new one is prepended.
const MaxRecords = 2000

// DefaultCollection is the name of the collection the activity log is stored under.
const DefaultCollection = "activities"

// TimestampLayout is the ISO-8601 local time layout used for Record.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Record is a single activity log entry. It is never modified once created.
type Record struct {
	ID         string         `json:"id"`
	Timestamp  string         `json:"timestamp"`
	UserID     string         `json:"userId"`
	UserName   string         `json:"userName"`
	Action     string         `json:"action"`
	TargetType *string        `json:"targetType"`
	TargetID   *string        `json:"targetId"`
	TargetName *string        `json:"targetName"`
	Details    *string        `json:"details"`
	Icon       string         `json:"icon"`
	ExtraData  map[string]any `json:"extraData,omitempty"`
}
