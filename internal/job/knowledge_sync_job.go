package job

import (
	"context"

	"go.uber.org/zap"

	"github.com/avverma/fitrag/internal/ingest"
	"github.com/avverma/fitrag/internal/pkg/logutil"
)

// KnowledgeSyncJob re-ingests the knowledge base without clearing the
// index first, so new or edited files show up between restarts.
type KnowledgeSyncJob struct {
	ingester *ingest.Ingester
}

func NewKnowledgeSyncJob(ingester *ingest.Ingester) *KnowledgeSyncJob {
	return &KnowledgeSyncJob{ingester: ingester}
}

func (j *KnowledgeSyncJob) Name() string {
	return "knowledge_sync"
}

func (j *KnowledgeSyncJob) Run(ctx context.Context) error {
	if j.ingester == nil {
		return nil
	}
	stats, err := j.ingester.IngestAll(ctx, false)
	if err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("knowledge sync done",
		zap.Int("workouts", stats.WorkoutsProcessed),
		zap.Int("diets", stats.DietsProcessed),
		zap.Int("chunks", stats.TotalChunks))
	return nil
}
