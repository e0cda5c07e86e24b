package api

import (
	"context"

	"github.com/zenchantlive/marketnews/app/cache"
	"github.com/zenchantlive/marketnews/app/database"
	"github.com/zenchantlive/marketnews/app/metrics"
	"github.com/zenchantlive/marketnews/app/news"
	"github.com/zenchantlive/marketnews/app/sources"
)

// AggregatorInterface lets the handler trigger a live aggregation run when
// the cache has nothing servable.
type AggregatorInterface interface {
	Run(ctx context.Context, opts news.Options) ([]news.Article, error)
}

var _ AggregatorInterface = (*news.Aggregator)(nil)

type Handler struct {
	catalog     *sources.Catalog
	tracker     *sources.FailureTracker
	aggregator  AggregatorInterface
	resultCache *cache.Cache
	articleRepo *database.ArticleRepository
	recorder    *metrics.Recorder
}
