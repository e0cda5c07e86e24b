package tasks

import (
	"context"
	"time"

	"github.com/zenchantlive/marketnews/app/news"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background task processing.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// NewsAggregator runs one full aggregation pass over all enabled sources.
type NewsAggregator interface {
	Run(ctx context.Context, opts news.Options) ([]news.Article, error)
}

// ResultCache holds the latest aggregated batch for the API to serve.
type ResultCache interface {
	Store(articles []news.Article)
}

// ArticleStore persists enriched articles between runs.
type ArticleStore interface {
	UpsertArticles(articles []news.Article) error
	GetRecent(limit int) ([]news.Article, error)
	PruneOlderThan(cutoff time.Time) (int64, error)
}
