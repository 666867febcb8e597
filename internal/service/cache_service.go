package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/curriculum-scheduler/internal/scheduler"
	appErrors "github.com/noah-isme/curriculum-scheduler/pkg/errors"
)

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type cacheObserver interface {
	RecordCacheOperation(hit bool, duration time.Duration)
	ObserveCacheWrite(duration time.Duration)
}

// ResultCacheKey is the cache key of an engine result for a snapshot fingerprint.
func ResultCacheKey(fingerprint string) string {
	return "result:" + fingerprint
}

// CacheService keeps engine results keyed by snapshot fingerprint. The policy is
// part of the fingerprint, so entries never need explicit invalidation.
type CacheService struct {
	repo    CacheRepository
	metrics cacheObserver
	ttl     time.Duration
	logger  *zap.Logger
	enabled bool
}

// NewCacheService constructs a result cache. A disabled cache misses on every lookup.
func NewCacheService(repo CacheRepository, metrics *MetricsService, ttl time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &CacheService{repo: repo, ttl: ttl, logger: logger, enabled: enabled}
	if metrics != nil {
		svc.metrics = metrics
	}
	return svc
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Lookup loads the cached result for the fingerprint into dest. Backend failures
// are logged and count as misses.
func (s *CacheService) Lookup(ctx context.Context, fingerprint string, dest *scheduler.Result) bool {
	if !s.Enabled() {
		return false
	}
	start := time.Now()
	err := s.repo.Get(ctx, ResultCacheKey(fingerprint), dest)
	s.record(err == nil, time.Since(start))
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("schedule result cache lookup failed", zap.String("fingerprint", fingerprint), zap.Error(err))
	}
	return err == nil
}

// Store caches a successful result. Failures are logged and otherwise ignored.
func (s *CacheService) Store(ctx context.Context, fingerprint string, result *scheduler.Result) {
	if !s.Enabled() || result == nil {
		return
	}
	start := time.Now()
	err := s.repo.Set(ctx, ResultCacheKey(fingerprint), result, s.ttl)
	if s.metrics != nil {
		s.metrics.ObserveCacheWrite(time.Since(start))
	}
	if err != nil {
		s.logger.Warn("failed to cache schedule result", zap.String("fingerprint", fingerprint), zap.Error(err))
	}
}

func (s *CacheService) record(hit bool, duration time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit, duration)
	}
}
