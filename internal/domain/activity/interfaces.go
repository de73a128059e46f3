package activity

import (
	"context"
	"encoding/json"
)

// Repository persists named collections of JSON records.
type Repository interface {
	LoadCollection(ctx context.Context, name string) ([]json.RawMessage, error)
	SaveCollection(ctx context.Context, name string, items []json.RawMessage) error
}

// Metrics receives recorder events.
type Metrics interface {
	RecordAppended(collectionSize int)
	LoadRecovered(reason string)
	SaveFailed()
}

// Load recovery reasons reported to Metrics.
const (
	ReasonAbsent     = "absent"
	ReasonUnreadable = "unreadable"
)

type noopMetrics struct{}

func (noopMetrics) RecordAppended(int)   {}
func (noopMetrics) LoadRecovered(string) {}
func (noopMetrics) SaveFailed()          {}
