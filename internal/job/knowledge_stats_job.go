package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/yashp/portfolio-assistant/internal/knowledge"
)

// KnowledgeStatsJob logs a periodic snapshot of the store so cache
// behavior shows up in the logs without an admin poking the stats API.
type KnowledgeStatsJob struct {
	store *knowledge.Store
}

func NewKnowledgeStatsJob(store *knowledge.Store) *KnowledgeStatsJob {
	return &KnowledgeStatsJob{store: store}
}

func (j *KnowledgeStatsJob) Name() string {
	return "knowledge_stats"
}

func (j *KnowledgeStatsJob) Run(ctx context.Context) error {
	if j.store == nil {
		return nil
	}
	logutil.GetLogger(ctx).Info("knowledge store stats",
		zap.Int("chunks", j.store.Len()),
		zap.Int("query_cache", j.store.QueryCacheLen()),
	)
	return nil
}
