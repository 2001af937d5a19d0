// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package consult

import (
	"context"
	"errors"
	"log/slog"
)

// Upstream abstracts the external consult-aggregation client.
type Upstream interface {
	FetchByPatient(context context.Context, patientID string) ([]byte, error)
}

// ResponseCache abstracts the TTL'd cache of raw upstream responses.
type ResponseCache interface {
	Get(context context.Context, patientID string) ([]byte, error)
	Set(context context.Context, patientID string, payload []byte) error
}

// Service serves consult lists, preferring the cache over the upstream call.
type Service struct {
	upstream Upstream
	cache    ResponseCache
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its gateway dependencies.
func NewService(upstream Upstream, cache ResponseCache, logger *slog.Logger) *Service {
	return &Service{
		upstream: upstream,
		cache:    cache,
		logger:   logger,
	}
}

/*
ListByPatient returns the consult list for a patient as raw JSON.

Description: A cached response is served as-is. On a miss the upstream
service is called and the response cached for the next reader. Cache
failures (read or write) are logged and degrade to the direct upstream
path; they never fail the request.

Parameters:
  - context: context.Context
  - patientID: string (UUIDv7)

Returns:
  - []byte: Raw JSON consult list
  - error: Upstream failures only
*/
func (service *Service) ListByPatient(context context.Context, patientID string) ([]byte, error) {
	cached, err := service.cache.Get(context, patientID)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		service.logger.Warn("consult_cache_read_degraded",
			slog.String("patient_id", patientID),
			slog.String("error", err.Error()),
		)
	}

	payload, err := service.upstream.FetchByPatient(context, patientID)
	if err != nil {
		return nil, err
	}

	if err := service.cache.Set(context, patientID, payload); err != nil {
		service.logger.Warn("consult_cache_write_degraded",
			slog.String("patient_id", patientID),
			slog.String("error", err.Error()),
		)
	}

	return payload, nil
}
