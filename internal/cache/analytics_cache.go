// Package cache stores per-course analytics rows in Redis
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/coursetrack/backend/internal/models"
	"github.com/go-redis/redis/v8"
)

const (
	analyticsKeyPrefix  = "coursetrack:analytics:course:"
	generationKeyPrefix = "coursetrack:analytics:generation:"
)

type analyticsCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewAnalyticsCache creates a Redis backed analytics cache.
// Entries expire after ttl even when no invalidation arrives.
//
// Every course has a generation counter. Rows are stored under a key that
// includes the generation they were read at, and Invalidate bumps the counter,
// so rows loaded before an invalidation can never be served after it.
func NewAnalyticsCache(client redis.Cmdable, ttl time.Duration) *analyticsCache {
	return &analyticsCache{
		client: client,
		ttl:    ttl,
	}
}

func analyticsKey(courseID string, generation int64) string {
	return analyticsKeyPrefix + courseID + ":" + strconv.FormatInt(generation, 10)
}

func generationKey(courseID string) string {
	return generationKeyPrefix + courseID
}

func (c *analyticsCache) generation(ctx context.Context, courseID string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(courseID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get returns the cached rows of a course and the generation they belong to.
// The boolean is false on a cache miss; the generation is still valid then and
// must be passed to Set together with freshly loaded rows.
func (c *analyticsCache) Get(ctx context.Context, courseID string) ([]models.AnalyticsRow, int64, bool, error) {
	gen, err := c.generation(ctx, courseID)
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to read analytics cache generation: %w", err)
	}

	raw, err := c.client.Get(ctx, analyticsKey(courseID, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, fmt.Errorf("failed to read analytics cache: %w", err)
	}

	var rows []models.AnalyticsRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, gen, false, fmt.Errorf("failed to decode analytics cache: %w", err)
	}

	return rows, gen, true, nil
}

// Set stores the rows of a course under the generation returned by Get.
// Rows written after an invalidation land under a retired generation and are never read.
func (c *analyticsCache) Set(ctx context.Context, courseID string, generation int64, rows []models.AnalyticsRow) error {
	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode analytics cache: %w", err)
	}

	if err := c.client.Set(ctx, analyticsKey(courseID, generation), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write analytics cache: %w", err)
	}

	return nil
}

// Invalidate retires the cached rows of a course by advancing its generation
func (c *analyticsCache) Invalidate(ctx context.Context, courseID string) error {
	if err := c.client.Incr(ctx, generationKey(courseID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate analytics cache: %w", err)
	}
	return nil
}
