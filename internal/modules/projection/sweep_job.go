package projection

import (
	"time"

	"github.com/rs/zerolog"
)

// CacheSweepJob evicts expired projection cache entries. Registered with the
// scheduler to run nightly; a TTL of zero disables eviction entirely.
type CacheSweepJob struct {
	cache *Cache
	ttl   time.Duration
	log   zerolog.Logger
}

// NewCacheSweepJob creates a new cache sweep job
func NewCacheSweepJob(cache *Cache, ttl time.Duration, log zerolog.Logger) *CacheSweepJob {
	return &CacheSweepJob{
		cache: cache,
		ttl:   ttl,
		log:   log.With().Str("job", "projection_cache_sweep").Logger(),
	}
}

// Name returns the job name for scheduler logging
func (j *CacheSweepJob) Name() string {
	return "projection_cache_sweep"
}

// Run deletes cache entries older than the TTL
func (j *CacheSweepJob) Run() error {
	if j.ttl <= 0 {
		j.log.Debug().Msg("Cache TTL disabled, skipping sweep")
		return nil
	}

	removed, err := j.cache.SweepOlderThan(time.Now().Add(-j.ttl))
	if err != nil {
		return err
	}

	j.log.Info().Int64("removed", removed).Msg("Projection cache swept")
	return nil
}
