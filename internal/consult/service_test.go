// Copyright (c) 2026 Medicore. All rights reserved.
// Author: duy.tranquang.dev@gmail.com

package consult_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranquangduy/medicore/internal/consult"
)

// fakeUpstream counts calls to the external consult service.
type fakeUpstream struct {
	payload []byte
	err     error
	calls   int
}

func (f *fakeUpstream) FetchByPatient(_ context.Context, _ string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

// fakeCache is an in-memory [consult.ResponseCache] with injectable failures.
type fakeCache struct {
	entries map[string][]byte
	getErr  error
	setErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, patientID string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if payload, ok := f.entries[patientID]; ok {
		return payload, nil
	}
	return nil, consult.ErrCacheMiss
}

func (f *fakeCache) Set(_ context.Context, patientID string, payload []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[patientID] = payload
	return nil
}

const patientID = "0190b7b2-52fa-7cc8-a2f1-2d8f1a9e0c11"

var consultJSON = []byte(`[{"id":"c-1","specialty":"cardiology","status":"scheduled"}]`)

/*
TestListByPatient_MissThenHit verifies the first read goes upstream and the
second is served from cache.
*/
func TestListByPatient_MissThenHit(t *testing.T) {
	upstream := &fakeUpstream{payload: consultJSON}
	cache := newFakeCache()
	service := consult.NewService(upstream, cache, slog.Default())
	ctx := context.Background()

	first, err := service.ListByPatient(ctx, patientID)
	require.NoError(t, err)
	assert.Equal(t, consultJSON, first)
	assert.Equal(t, 1, upstream.calls)

	second, err := service.ListByPatient(ctx, patientID)
	require.NoError(t, err)
	assert.Equal(t, consultJSON, second)

	// Cache hit: upstream untouched.
	assert.Equal(t, 1, upstream.calls)
}

/*
TestListByPatient_CacheReadFailureDegrades verifies a broken cache read falls
back to the upstream call instead of failing the request.
*/
func TestListByPatient_CacheReadFailureDegrades(t *testing.T) {
	upstream := &fakeUpstream{payload: consultJSON}
	cache := newFakeCache()
	cache.getErr = errors.New("redis connection refused")
	service := consult.NewService(upstream, cache, slog.Default())

	payload, err := service.ListByPatient(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, consultJSON, payload)
	assert.Equal(t, 1, upstream.calls)
}

/*
TestListByPatient_CacheWriteFailureDegrades verifies a broken cache write
still returns the fresh upstream response.
*/
func TestListByPatient_CacheWriteFailureDegrades(t *testing.T) {
	upstream := &fakeUpstream{payload: consultJSON}
	cache := newFakeCache()
	cache.setErr = errors.New("redis connection refused")
	service := consult.NewService(upstream, cache, slog.Default())

	payload, err := service.ListByPatient(context.Background(), patientID)
	require.NoError(t, err)
	assert.Equal(t, consultJSON, payload)
}

/*
TestListByPatient_UpstreamFailure verifies upstream errors propagate when
there is nothing cached.
*/
func TestListByPatient_UpstreamFailure(t *testing.T) {
	upstream := &fakeUpstream{err: errors.New("consult service down")}
	cache := newFakeCache()
	service := consult.NewService(upstream, cache, slog.Default())

	payload, err := service.ListByPatient(context.Background(), patientID)
	assert.Nil(t, payload)
	assert.Error(t, err)
}
