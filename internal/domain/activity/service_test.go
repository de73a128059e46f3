package activity_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/ganot/activitylog/internal/domain/activity"
	"github.com/ganot/activitylog/internal/repository"
	"github.com/ganot/activitylog/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`^act_\d{14}_[0-9a-f]{8}$`)

// memRepo is an in-memory activity.Repository.
type memRepo struct {
	mu      sync.Mutex
	items   map[string][]json.RawMessage
	loadErr error
	saves   int
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[string][]json.RawMessage{}}
}

func (r *memRepo) LoadCollection(_ context.Context, name string) ([]json.RawMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	items, ok := r.items[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return append([]json.RawMessage(nil), items...), nil
}

func (r *memRepo) SaveCollection(_ context.Context, name string, items []json.RawMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[name] = append([]json.RawMessage(nil), items...)
	r.saves++
	return nil
}

func (r *memRepo) records(t *testing.T, name string) []activity.Record {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]activity.Record, 0, len(r.items[name]))
	for _, raw := range r.items[name] {
		var rec activity.Record
		require.NoError(t, json.Unmarshal(raw, &rec))
		out = append(out, rec)
	}
	return out
}

func strPtr(s string) *string { return &s }

func TestActivityService_Record(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	now := time.Date(2024, 3, 5, 14, 7, 9, 123456000, time.Local)
	svc := activity.NewService(repo, nil, activity.WithClock(func() time.Time { return now }))

	rec, err := svc.Record(ctx, activity.RecordRequest{
		UserID:     "u1",
		UserName:   "Ayse",
		Action:     "job_create",
		TargetType: strPtr("job"),
		TargetID:   strPtr("job_42"),
		TargetName: strPtr("Kitchen cabinets"),
		Details:    strPtr("created from offer"),
		Icon:       activity.IconFor("job_create"),
	})
	require.NoError(t, err)
	require.Regexp(t, idPattern, rec.ID)
	require.Equal(t, "act_20240305140709_", rec.ID[:19])
	require.Equal(t, "2024-03-05T14:07:09.123456", rec.Timestamp)
	require.Equal(t, "u1", rec.UserID)
	require.Equal(t, "Ayse", rec.UserName)
	require.Equal(t, "job_create", rec.Action)
	require.Equal(t, "job", *rec.TargetType)
	require.Equal(t, "job_42", *rec.TargetID)
	require.Equal(t, "Kitchen cabinets", *rec.TargetName)
	require.Equal(t, "created from offer", *rec.Details)
	require.Equal(t, "📋", rec.Icon)
	require.Nil(t, rec.ExtraData)

	stored := repo.records(t, activity.DefaultCollection)
	require.Len(t, stored, 1)
	require.Equal(t, *rec, stored[0])
}

func TestActivityService_RecordDefaults(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := activity.NewService(repo, nil)

	rec, err := svc.Record(ctx, activity.RecordRequest{UserID: "", UserName: "", Action: "note_add"})
	require.NoError(t, err)
	require.Equal(t, activity.DefaultIcon, rec.Icon)
	require.Empty(t, rec.UserID)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(repo.items[activity.DefaultCollection][0], &raw))
	for _, key := range []string{"targetType", "targetId", "targetName", "details"} {
		value, ok := raw[key]
		require.True(t, ok, key)
		require.Nil(t, value, key)
	}
}

func TestActivityService_ExtraData(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := activity.NewService(repo, nil)

	for _, extra := range []map[string]any{nil, {}} {
		_, err := svc.Record(ctx, activity.RecordRequest{UserID: "u1", UserName: "n", Action: "view", ExtraData: extra})
		require.NoError(t, err)
	}
	extra := map[string]any{"k": "v"}
	rec, err := svc.Record(ctx, activity.RecordRequest{UserID: "u1", UserName: "n", Action: "view", ExtraData: extra})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"k": "v"}, rec.ExtraData)

	extra["k"] = "changed"
	require.Equal(t, "v", rec.ExtraData["k"])

	items := repo.items[activity.DefaultCollection]
	require.Len(t, items, 3)

	var withExtra map[string]any
	require.NoError(t, json.Unmarshal(items[0], &withExtra))
	require.Equal(t, map[string]any{"k": "v"}, withExtra["extraData"])

	for _, raw := range items[1:] {
		var fields map[string]any
		require.NoError(t, json.Unmarshal(raw, &fields))
		_, ok := fields["extraData"]
		require.False(t, ok)
	}
}

func TestActivityService_NewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := activity.NewService(repo, nil)

	const n = 25
	for i := 0; i < n; i++ {
		_, err := svc.Record(ctx, activity.RecordRequest{UserID: "u1", UserName: "n", Action: fmt.Sprintf("a%d", i)})
		require.NoError(t, err)
	}

	stored := repo.records(t, activity.DefaultCollection)
	require.Len(t, stored, n)
	for i, rec := range stored {
		require.Equal(t, fmt.Sprintf("a%d", n-1-i), rec.Action)
	}
}

func TestActivityService_Truncates(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()

	existing := make([]json.RawMessage, activity.MaxRecords)
	for i := range existing {
		existing[i] = json.RawMessage(fmt.Sprintf(`{"id":"old_%d","action":"seed"}`, i))
	}
	repo.items[activity.DefaultCollection] = existing

	svc := activity.NewService(repo, nil)
	rec, err := svc.Record(ctx, activity.RecordRequest{UserID: "u1", UserName: "n", Action: "login"})
	require.NoError(t, err)

	items := repo.items[activity.DefaultCollection]
	require.Len(t, items, activity.MaxRecords)

	var first activity.Record
	require.NoError(t, json.Unmarshal(items[0], &first))
	require.Equal(t, rec.ID, first.ID)

	require.Equal(t, `{"id":"old_0","action":"seed"}`, string(items[1]))
	require.Equal(t, fmt.Sprintf(`{"id":"old_%d","action":"seed"}`, activity.MaxRecords-2), string(items[len(items)-1]))
}

func TestActivityService_GrowsToCap(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := activity.NewService(repo, nil)

	for i := 0; i < activity.MaxRecords+5; i++ {
		_, err := svc.Record(ctx, activity.RecordRequest{UserID: "u1", UserName: "n", Action: "view"})
		require.NoError(t, err)
	}
	require.Len(t, repo.items[activity.DefaultCollection], activity.MaxRecords)
}

func TestActivityService_LoadFailureRecovers(t *testing.T) {
	ctx := context.Background()

	for _, loadErr := range []error{repository.ErrNotFound, repository.ErrCorrupt, errors.New("disk on fire")} {
		repo := newMemRepo()
		repo.items[activity.DefaultCollection] = []json.RawMessage{json.RawMessage(`{"id":"old"}`)}
		repo.loadErr = loadErr

		svc := activity.NewService(repo, nil)
		rec, err := svc.Record(ctx, activity.RecordRequest{UserID: "u1", UserName: "n", Action: "login"})
		require.NoError(t, err)

		stored := repo.records(t, activity.DefaultCollection)
		require.Len(t, stored, 1)
		require.Equal(t, rec.ID, stored[0].ID)
	}
}

func TestActivityService_DistinctIDsWithinSecond(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	svc := activity.NewService(newMemRepo(), nil, activity.WithClock(func() time.Time { return now }))

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		rec, err := svc.Record(ctx, activity.RecordRequest{UserID: "u1", UserName: "n", Action: "view"})
		require.NoError(t, err)
		require.Regexp(t, idPattern, rec.ID)
		require.False(t, seen[rec.ID], "duplicate id %s", rec.ID)
		seen[rec.ID] = true
	}
}

func TestActivityService_SaveFailure(t *testing.T) {
	ctx := context.Background()
	storageErr := errors.New("read-only file system")

	repo := &mocks.ActivityRepository{}
	repo.On("LoadCollection", ctx, activity.DefaultCollection).Return(nil, repository.ErrNotFound)
	repo.On("SaveCollection", ctx, activity.DefaultCollection, mock.Anything).Return(storageErr)

	metrics := &mocks.Metrics{}
	metrics.On("LoadRecovered", activity.ReasonAbsent).Return()
	metrics.On("SaveFailed").Return()

	svc := activity.NewService(repo, nil, activity.WithMetrics(metrics))
	rec, err := svc.Record(ctx, activity.RecordRequest{UserID: "u1", UserName: "n", Action: "login"})
	require.Nil(t, rec)
	require.ErrorIs(t, err, activity.ErrSaveFailed)
	require.ErrorIs(t, err, storageErr)

	repo.AssertExpectations(t)
	metrics.AssertExpectations(t)
	metrics.AssertNotCalled(t, "RecordAppended", mock.Anything)
}

func TestActivityService_LogSwallowsSaveFailure(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	repo.On("LoadCollection", ctx, "audit").Return([]json.RawMessage{}, nil)
	repo.On("SaveCollection", ctx, "audit", mock.Anything).Return(errors.New("boom"))

	svc := activity.NewService(repo, nil, activity.WithCollection("audit"))
	require.Nil(t, svc.Log(ctx, activity.RecordRequest{UserID: "u1", UserName: "n", Action: "logout"}))
	repo.AssertExpectations(t)
}

func TestActivityService_LogReturnsRecord(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := activity.NewService(repo, nil)

	rec := svc.Log(ctx, activity.RecordRequest{UserID: "u1", UserName: "n", Action: "logout", Icon: activity.IconFor("logout")})
	require.NotNil(t, rec)
	require.Equal(t, "🚪", rec.Icon)
	require.Len(t, repo.items[activity.DefaultCollection], 1)
}

func TestActivityService_Metrics(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ActivityRepository{}
	repo.On("LoadCollection", ctx, activity.DefaultCollection).Return(nil, repository.ErrCorrupt).Once()
	repo.On("LoadCollection", ctx, activity.DefaultCollection).Return([]json.RawMessage{json.RawMessage(`{}`)}, nil).Once()
	repo.On("SaveCollection", ctx, activity.DefaultCollection, mock.Anything).Return(nil)

	metrics := &mocks.Metrics{}
	metrics.On("LoadRecovered", activity.ReasonUnreadable).Return().Once()
	metrics.On("RecordAppended", 1).Return().Once()
	metrics.On("RecordAppended", 2).Return().Once()

	svc := activity.NewService(repo, nil, activity.WithMetrics(metrics))
	_, err := svc.Record(ctx, activity.RecordRequest{UserID: "u1", UserName: "n", Action: "login"})
	require.NoError(t, err)
	_, err = svc.Record(ctx, activity.RecordRequest{UserID: "u1", UserName: "n", Action: "login"})
	require.NoError(t, err)

	metrics.AssertExpectations(t)
}

func TestActivityService_ConcurrentRecordsSerialized(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := activity.NewService(repo, nil)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Record(ctx, activity.RecordRequest{UserID: fmt.Sprintf("u%d", i), UserName: "n", Action: "view"})
			if err != nil {
				t.Errorf("record %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	require.Len(t, repo.records(t, activity.DefaultCollection), workers)
	require.Equal(t, workers, repo.saves)
}
