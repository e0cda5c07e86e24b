package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zenchantlive/marketnews/app/news"
)

type RefreshNewsTask struct {
	Task
	Options    news.Options
	aggregator NewsAggregator
	cache      ResultCache
	store      ArticleStore
}

func NewRefreshNewsTask(opts news.Options, aggregator NewsAggregator, cache ResultCache, store ArticleStore) *RefreshNewsTask {
	return &RefreshNewsTask{
		Task:       NewTask(TaskTypeRefreshNews),
		Options:    opts,
		aggregator: aggregator,
		cache:      cache,
		store:      store,
	}
}

func (t *RefreshNewsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	articles, err := t.aggregator.Run(ctx, t.Options)
	if err != nil {
		if errors.Is(err, news.ErrNoArticles) {
			// keep the previous cache entry so stale results stay servable
			return fmt.Errorf("aggregation produced no articles: %w", err)
		}
		return fmt.Errorf("aggregation failed: %w", err)
	}

	t.cache.Store(articles)

	if err := t.store.UpsertArticles(articles); err != nil {
		// the cache already holds the batch, persistence failure is not fatal
		slog.Error("Failed to persist aggregated articles", "error", err)
	}

	slog.Info("Task completed",
		"type", "RefreshNews",
		"duration", t.GetDuration(),
		"articles", len(articles))

	return nil
}
