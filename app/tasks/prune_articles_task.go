package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type PruneArticlesTask struct {
	Task
	MaxAge time.Duration
	store  ArticleStore
}

func NewPruneArticlesTask(maxAge time.Duration, store ArticleStore) *PruneArticlesTask {
	return &PruneArticlesTask{
		Task:   NewTask(TaskTypePruneArticles),
		MaxAge: maxAge,
		store:  store,
	}
}

func (t *PruneArticlesTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cutoff := time.Now().UTC().Add(-t.MaxAge)
	removed, err := t.store.PruneOlderThan(cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune stored articles: %w", err)
	}

	slog.Info("Task completed",
		"type", "PruneArticles",
		"duration", t.GetDuration(),
		"removed", removed)

	return nil
}
