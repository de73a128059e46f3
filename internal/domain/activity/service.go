package activity

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/ganot/activitylog/internal/repository"
	"github.com/google/uuid"
)

// Service records activities into a bounded, newest-first collection.
type Service struct {
	repo       Repository
	logger     *slog.Logger
	metrics    Metrics
	collection string
	now        func() time.Time

	// mu serializes load-modify-save within this process. Writers in other
	// processes sharing the same store still race (last writer wins).
	mu sync.Mutex
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = discardLogger()
	}
	s := &Service{
		repo:       repo,
		logger:     logger,
		metrics:    noopMetrics{},
		collection: DefaultCollection,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record builds a new activity, prepends it to the stored collection and writes
// the collection back. A collection that cannot be loaded is treated as empty.
// Save failures are returned wrapped in ErrSaveFailed.
func (s *Service) Record(ctx context.Context, req RecordRequest) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(ctx)

	rec := newRecord(s.now(), req)
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding activity: %w", err)
	}

	items = append([]json.RawMessage{raw}, items...)
	if len(items) > MaxRecords {
		items = items[:MaxRecords]
	}

	if err := s.repo.SaveCollection(ctx, s.collection, items); err != nil {
		s.metrics.SaveFailed()
		return nil, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	s.metrics.RecordAppended(len(items))

	return rec, nil
}

// Log records an activity on a best-effort basis. Failures are logged and nil
// is returned, so the calling workflow never fails because of the activity log.
func (s *Service) Log(ctx context.Context, req RecordRequest) *Record {
	rec, err := s.Record(ctx, req)
	if err != nil {
		s.logger.Warn("activity not recorded", "action", req.Action, "user_id", req.UserID, "error", err)
		return nil
	}
	return rec
}

func (s *Service) load(ctx context.Context) []json.RawMessage {
	items, err := s.repo.LoadCollection(ctx, s.collection)
	if err == nil {
		return items
	}
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Debug("activity collection absent, starting empty", "collection", s.collection)
		s.metrics.LoadRecovered(ReasonAbsent)
	} else {
		s.logger.Warn("activity collection unreadable, starting empty", "collection", s.collection, "error", err)
		s.metrics.LoadRecovered(ReasonUnreadable)
	}
	return nil
}

func newRecord(now time.Time, req RecordRequest) *Record {
	icon := req.Icon
	if icon == "" {
		icon = DefaultIcon
	}
	rec := &Record{
		ID:         newID(now),
		Timestamp:  now.Format(TimestampLayout),
		UserID:     req.UserID,
		UserName:   req.UserName,
		Action:     req.Action,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		TargetName: req.TargetName,
		Details:    req.Details,
		Icon:       icon,
	}
	if len(req.ExtraData) > 0 {
		rec.ExtraData = maps.Clone(req.ExtraData)
	}
	return rec
}

// newID returns act_<YYYYMMDDHHMMSS>_<8 hex>. The suffix comes from the random
// bits of a v4 UUID.
func newID(now time.Time) string {
	u := uuid.New()
	return "act_" + now.Format("20060102150405") + "_" + hex.EncodeToString(u[:4])
}
