package activity

import (
	"log/slog"
	"time"
)

// RecordRequest carries the caller supplied fields of a new activity.
// Only UserID, UserName and Action are expected; nothing is validated.
type RecordRequest struct {
	UserID     string
	UserName   string
	Action     string
	TargetType *string
	TargetID   *string
	TargetName *string
	Details    *string
	// Icon falls back to DefaultIcon when empty. Callers resolve it with IconFor.
	Icon      string
	ExtraData map[string]any
}

// Option configures a Service.
type Option func(*Service)

// WithCollection stores the log under a collection other than DefaultCollection.
func WithCollection(name string) Option {
	return func(s *Service) {
		s.collection = name
	}
}

// WithMetrics reports recorder events to m.
func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
