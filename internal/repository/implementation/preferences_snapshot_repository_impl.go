package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"settings-core/internal/entity"
	"settings-core/internal/failure"
	"settings-core/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const snapshotKeyPrefix = "settings:preferences:"

type redisPreferencesSnapshotRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewRedisPreferencesSnapshotRepository stores snapshots as JSON strings. A
// zero ttl keeps them forever.
func NewRedisPreferencesSnapshotRepository(rdb redis.Cmdable, ttl time.Duration) contract.PreferencesSnapshotRepository {
	return &redisPreferencesSnapshotRepository{rdb: rdb, ttl: ttl}
}

func SnapshotKey(profile string) string {
	return snapshotKeyPrefix + profile
}

func (r *redisPreferencesSnapshotRepository) Save(ctx context.Context, profile string, snapshot entity.PreferencesSnapshot) error {
	if snapshot.SavedAt.IsZero() {
		snapshot.SavedAt = time.Now()
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode preferences snapshot: %w", err)
	}

	if err := r.rdb.Set(ctx, SnapshotKey(profile), data, r.ttl).Err(); err != nil {
		return failure.Transport(fmt.Errorf("save preferences snapshot: %w", err))
	}
	return nil
}

func (r *redisPreferencesSnapshotRepository) Load(ctx context.Context, profile string) (entity.PreferencesSnapshot, error) {
	var snapshot entity.PreferencesSnapshot

	data, err := r.rdb.Get(ctx, SnapshotKey(profile)).Bytes()
	if errors.Is(err, redis.Nil) {
		return snapshot, contract.ErrSnapshotNotFound
	}
	if err != nil {
		return snapshot, failure.Transport(fmt.Errorf("load preferences snapshot: %w", err))
	}

	if err := json.Unmarshal(data, &snapshot); err != nil {
		return snapshot, fmt.Errorf("decode preferences snapshot: %w", err)
	}
	return snapshot, nil
}

func (r *redisPreferencesSnapshotRepository) Delete(ctx context.Context, profile string) error {
	if err := r.rdb.Del(ctx, SnapshotKey(profile)).Err(); err != nil {
		return failure.Transport(fmt.Errorf("delete preferences snapshot: %w", err))
	}
	return nil
}
