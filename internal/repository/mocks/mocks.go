package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) LoadCollection(ctx context.Context, name string) ([]json.RawMessage, error) {
	args := m.Called(ctx, name)
	if items, ok := args.Get(0).([]json.RawMessage); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) SaveCollection(ctx context.Context, name string, items []json.RawMessage) error {
	args := m.Called(ctx, name, items)
	return args.Error(0)
}

// Metrics is a mock for activity.Metrics.
type Metrics struct {
	mock.Mock
}

func (m *Metrics) RecordAppended(collectionSize int) {
	m.Called(collectionSize)
}

func (m *Metrics) LoadRecovered(reason string) {
	m.Called(reason)
}

func (m *Metrics) SaveFailed() {
	m.Called()
}
