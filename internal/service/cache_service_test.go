package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/noah-isme/curriculum-scheduler/internal/models"
	"github.com/noah-isme/curriculum-scheduler/internal/scheduler"
)

type failingCacheRepo struct{}

func (failingCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	return errors.New("connection refused")
}

func (failingCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return errors.New("connection refused")
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := &memoryCacheRepo{items: map[string][]byte{}}
	metrics := NewMetricsService()
	cache := NewCacheService(repo, metrics, 0, zap.NewNop(), true)
	ctx := context.Background()

	var dest scheduler.Result
	assert.False(t, cache.Lookup(ctx, "abc", &dest))

	cache.Store(ctx, "abc", &scheduler.Result{Term: "1st", Assignments: []models.Assignment{{SectionID: "BSIT1A", CourseCode: "IT101"}}})
	assert.Contains(t, repo.items, "result:abc")

	assert.True(t, cache.Lookup(ctx, "abc", &dest))
	assert.Equal(t, "1st", dest.Term)
	assert.Len(t, dest.Assignments, 1)

	snapshot := metrics.Snapshot()
	assert.InDelta(t, 0.5, snapshot.CacheHitRatio, 0.001)
}

func TestCacheServiceDisabledAndFailing(t *testing.T) {
	ctx := context.Background()
	var dest scheduler.Result

	disabled := NewCacheService(&memoryCacheRepo{items: map[string][]byte{}}, nil, time.Minute, nil, false)
	assert.False(t, disabled.Enabled())
	disabled.Store(ctx, "abc", &scheduler.Result{})
	assert.False(t, disabled.Lookup(ctx, "abc", &dest))

	var nilCache *CacheService
	assert.False(t, nilCache.Enabled())
	assert.False(t, nilCache.Lookup(ctx, "abc", &dest))

	failing := NewCacheService(failingCacheRepo{}, nil, time.Minute, nil, true)
	failing.Store(ctx, "abc", &scheduler.Result{})
	assert.False(t, failing.Lookup(ctx, "abc", &dest))
}
