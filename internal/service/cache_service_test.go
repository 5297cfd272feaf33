package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/placement-analytics-api/internal/models"
)

type failingCacheRepo struct{ err error }

func (f failingCacheRepo) Get(context.Context, string, interface{}) error { return f.err }

func (f failingCacheRepo) Set(context.Context, string, interface{}, time.Duration) error {
	return f.err
}

func TestCacheServiceDisabledSkipsRepository(t *testing.T) {
	repo := &stubCacheRepo{}
	cache := NewCacheService(repo, nil, 0, nil, false)

	require.NoError(t, cache.Set(context.Background(), "k", "v", 0))
	var out string
	hit, err := cache.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Zero(t, repo.sets)

	var nilCache *CacheService
	assert.False(t, nilCache.Enabled())
}

func TestCacheServiceRoundTrip(t *testing.T) {
	metrics := NewMetricsService()
	cache := NewCacheService(&stubCacheRepo{}, metrics, time.Minute, nil, true)

	var out []string
	hit, err := cache.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(context.Background(), "k", []string{"a", "b"}, 0))
	hit, err = cache.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, out)

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(1), snapshot.CacheHits)
	assert.Equal(t, uint64(1), snapshot.CacheMisses)
	assert.InDelta(t, 0.5, snapshot.CacheHitRatio, 1e-9)
}

func TestCacheServiceSurfacesBackendErrors(t *testing.T) {
	boom := errors.New("redis unavailable")
	cache := NewCacheService(failingCacheRepo{err: boom}, nil, time.Minute, nil, true)

	var out string
	_, err := cache.Get(context.Background(), "k", &out)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, cache.Set(context.Background(), "k", "v", 0), boom)
}

func TestMakeAnalyticsCacheKey(t *testing.T) {
	stamp := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	key := makeAnalyticsCacheKey("trainer", "tr-1", "", freshnessStamp(models.EvaluationFreshness{LatestModification: &stamp, Count: 4}))
	assert.Equal(t, "analytics:trainer:tr-1:-:2025-03-01T08|00|00Z#4", key)
	assert.Equal(t, "empty#0", freshnessStamp(models.EvaluationFreshness{}))
}

func TestPerformanceServiceFallsThroughOnCacheFailure(t *testing.T) {
	profiles, evaluations := newPerformanceFixture()
	cache := NewCacheService(failingCacheRepo{err: errors.New("redis unavailable")}, nil, time.Minute, nil, true)
	svc := NewPerformanceService(profiles, evaluations, cache, nil, nil)

	grouped, hit, err := svc.Grouped(context.Background(), "user-1")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NotNil(t, grouped.OverallPerformance)
}
