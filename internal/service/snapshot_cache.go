package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/voxhire/voxhire-api/internal/dto"
)

// SnapshotCache caches the candidate-facing interview snapshot by token.
// Every status transition invalidates the entry so polling candidates see
// the new status immediately instead of waiting out the TTL. A nil cache is
// valid and disables caching.
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewSnapshotCache wraps a redis client; client may be nil.
func NewSnapshotCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *SnapshotCache {
	return &SnapshotCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "snapshot_cache").Logger(),
	}
}

func snapshotKey(token string) string {
	return "voxhire:interview:info:" + token
}

// Get returns the cached snapshot and whether it was present.
func (c *SnapshotCache) Get(ctx context.Context, token string) (dto.InterviewInfoResponse, bool) {
	if c == nil || c.client == nil {
		return dto.InterviewInfoResponse{}, false
	}

	cached, err := c.client.Get(ctx, snapshotKey(token)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Msg("interview snapshot cache read failed")
		}
		return dto.InterviewInfoResponse{}, false
	}

	var snapshot dto.InterviewInfoResponse
	if err := json.Unmarshal([]byte(cached), &snapshot); err != nil {
		return dto.InterviewInfoResponse{}, false
	}
	return snapshot, true
}

// Put stores the snapshot under the session token.
func (c *SnapshotCache) Put(ctx context.Context, token string, snapshot dto.InterviewInfoResponse) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, snapshotKey(token), data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("interview snapshot cache write failed")
	}
}

// Invalidate drops the snapshot for the token.
func (c *SnapshotCache) Invalidate(ctx context.Context, token string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, snapshotKey(token)).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("interview snapshot cache invalidation failed")
	}
}
