package implementation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"settings-core/internal/entity"
	"settings-core/internal/failure"
	"settings-core/internal/repository/contract"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis implements the three commands the repository uses. Any other
// command panics on the nil embedded interface.
type fakeRedis struct {
	redis.Cmdable

	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = value.([]byte)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func sampleSnapshot() entity.PreferencesSnapshot {
	return entity.PreferencesSnapshot{
		Theme:                 entity.ThemeDark,
		BiometricsEnabled:     true,
		ScreenLockEnabled:     false,
		AnalyticsEnabled:      true,
		CrashReportingEnabled: false,
		NotificationSettings: []entity.NotificationCategory{
			{Id: "messages", Title: "Messages", IsEnabled: true},
			{Id: "marketing", Title: "Marketing", IsEnabled: false},
		},
		SavedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestPreferencesSnapshotRepository_SaveLoad(t *testing.T) {
	rdb := newFakeRedis()
	repo := NewRedisPreferencesSnapshotRepository(rdb, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "alex", sampleSnapshot()))
	assert.Contains(t, rdb.data, "settings:preferences:alex")
	assert.Equal(t, time.Hour, rdb.ttls["settings:preferences:alex"])

	got, err := repo.Load(ctx, "alex")
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), got)
}

func TestPreferencesSnapshotRepository_SaveStampsTime(t *testing.T) {
	repo := NewRedisPreferencesSnapshotRepository(newFakeRedis(), 0)
	snapshot := sampleSnapshot()
	snapshot.SavedAt = time.Time{}

	require.NoError(t, repo.Save(context.Background(), "alex", snapshot))

	got, err := repo.Load(context.Background(), "alex")
	require.NoError(t, err)
	assert.False(t, got.SavedAt.IsZero())
}

func TestPreferencesSnapshotRepository_LoadMissing(t *testing.T) {
	repo := NewRedisPreferencesSnapshotRepository(newFakeRedis(), 0)

	_, err := repo.Load(context.Background(), "nobody")

	assert.ErrorIs(t, err, contract.ErrSnapshotNotFound)
}

func TestPreferencesSnapshotRepository_Delete(t *testing.T) {
	repo := NewRedisPreferencesSnapshotRepository(newFakeRedis(), 0)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "alex", sampleSnapshot()))

	require.NoError(t, repo.Delete(ctx, "alex"))

	_, err := repo.Load(ctx, "alex")
	assert.ErrorIs(t, err, contract.ErrSnapshotNotFound)
}

func TestPreferencesSnapshotRepository_ConnectionErrorsAreTransport(t *testing.T) {
	rdb := newFakeRedis()
	rdb.err = errors.New("dial tcp: connection refused")
	repo := NewRedisPreferencesSnapshotRepository(rdb, 0)
	ctx := context.Background()

	err := repo.Save(ctx, "alex", sampleSnapshot())
	assert.Equal(t, failure.KindTransport, failure.KindOf(err))

	_, err = repo.Load(ctx, "alex")
	assert.Equal(t, failure.KindTransport, failure.KindOf(err))

	err = repo.Delete(ctx, "alex")
	assert.Equal(t, failure.KindTransport, failure.KindOf(err))
}

func TestPreferencesSnapshotRepository_CorruptPayload(t *testing.T) {
	rdb := newFakeRedis()
	rdb.data[SnapshotKey("alex")] = []byte("{not json")
	repo := NewRedisPreferencesSnapshotRepository(rdb, 0)

	_, err := repo.Load(context.Background(), "alex")

	require.Error(t, err)
	assert.NotErrorIs(t, err, contract.ErrSnapshotNotFound)
}
