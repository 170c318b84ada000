package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/avverma/fitrag/internal/pkg/logutil"
	"github.com/avverma/fitrag/internal/repo"
)

type CacheCleanupJob struct {
	cache    *repo.EmbeddingCacheRepo
	keepDays int
}

func NewCacheCleanupJob(cache *repo.EmbeddingCacheRepo, keepDays int) *CacheCleanupJob {
	return &CacheCleanupJob{cache: cache, keepDays: keepDays}
}

func (j *CacheCleanupJob) Name() string {
	return "embedding_cache_cleanup"
}

func (j *CacheCleanupJob) Run(ctx context.Context) error {
	if j.cache == nil {
		return nil
	}
	keepDays := j.keepDays
	if keepDays <= 0 {
		keepDays = 30
	}
	cutoff := time.Now().Add(-time.Duration(keepDays) * 24 * time.Hour).Unix()
	deleted, err := j.cache.DeleteBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("embedding cache cleanup done", zap.Int64("deleted", deleted))
	return nil
}
