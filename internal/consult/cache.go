// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package consult

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tranquangduy/medicore/internal/platform/constants"
)

// cacheTTL bounds how stale a cached consult list can get.
const cacheTTL = 60 * time.Second

// ErrCacheMiss signals that no cached response exists for the patient.
var ErrCacheMiss = errors.New("consult_cache_miss")

// Cache stores raw upstream responses in Redis keyed by patient ID.
type Cache struct {
	client *redis.Client
}

// NewCache constructs a [Cache] on top of a shared Redis client.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get returns the cached response for a patient, or [ErrCacheMiss].
func (cache *Cache) Get(context context.Context, patientID string) ([]byte, error) {
	payload, err := cache.client.Get(context, cacheKey(patientID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("consult_cache_get_failed: %w", err)
	}
	return payload, nil
}

// Set stores an upstream response for a patient with the fixed TTL.
func (cache *Cache) Set(context context.Context, patientID string, payload []byte) error {
	if err := cache.client.Set(context, cacheKey(patientID), payload, cacheTTL).Err(); err != nil {
		return fmt.Errorf("consult_cache_set_failed: %w", err)
	}
	return nil
}

func cacheKey(patientID string) string {
	return constants.RedisPrefixConsult + patientID
}
