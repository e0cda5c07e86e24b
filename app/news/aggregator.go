package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/zenchantlive/marketnews/app/feed"
	"github.com/zenchantlive/marketnews/app/metrics"
	"github.com/zenchantlive/marketnews/app/sources"
)

// ErrNoArticles is returned when an aggregation run produces nothing at all.
// Partial feed failures never surface as errors; only the catalog-wide total
// failure does.
var ErrNoArticles = errors.New("no articles from any feed")

const (
	watchlistBoost = 0.2
	batchPause     = time.Second
)

// Options configures one aggregation run.
type Options struct {
	MaxArticlesPerFeed  int
	MaxTotalArticles    int
	MaxAgeHours         int
	EnableDeduplication bool
	Watchlist           []string
}

// Aggregator is the pipeline's top-level entry point: it fans fetches out in
// bounded batches, enriches each feed's items independently, then merges,
// filters, deduplicates and ranks the result.
type Aggregator struct {
	catalog    *sources.Catalog
	tracker    *sources.FailureTracker
	fetcher    *feed.Fetcher
	normalizer *Normalizer
	enricher   *Enricher
	recorder   *metrics.Recorder
	batchSize  int
	now        func() time.Time
}

func NewAggregator(catalog *sources.Catalog, tracker *sources.FailureTracker,
	fetcher *feed.Fetcher, recorder *metrics.Recorder, batchSize int) *Aggregator {
	if batchSize <= 0 {
		batchSize = 3
	}
	return &Aggregator{
		catalog:    catalog,
		tracker:    tracker,
		fetcher:    fetcher,
		normalizer: NewNormalizer(),
		enricher:   NewEnricher(),
		recorder:   recorder,
		batchSize:  batchSize,
		now:        time.Now,
	}
}

type feedResult struct {
	source   *sources.Source
	articles []Article
	err      error
}

// Run executes one aggregation cycle. It returns an error only when the
// merged result would be empty; individual feed failures are logged and
// excluded.
func (a *Aggregator) Run(ctx context.Context, opts Options) ([]Article, error) {
	started := a.now()

	enabled := a.catalog.Enabled()
	slog.Info("Starting aggregation run", "sources", len(enabled))

	articles, fetchErrs := a.fetchAll(ctx, enabled, opts)
	slog.Debug("Articles collected", "count", len(articles))

	articles = a.filterByAge(articles, opts.MaxAgeHours)
	slog.Debug("After age filter", "count", len(articles))

	if opts.EnableDeduplication {
		articles = deduplicate(articles)
		slog.Debug("After deduplication", "count", len(articles))
	}

	rank(articles, opts.Watchlist)

	if opts.MaxTotalArticles > 0 && len(articles) > opts.MaxTotalArticles {
		articles = articles[:opts.MaxTotalArticles]
	}

	if a.recorder != nil {
		a.recorder.RecordArticles(len(articles))
		a.recorder.RecordAggregateDuration(a.now().Sub(started).Seconds())
	}

	if len(articles) == 0 {
		if len(fetchErrs) > 0 {
			return nil, fmt.Errorf("%w: %w", ErrNoArticles, errors.Join(fetchErrs...))
		}
		return nil, ErrNoArticles
	}

	slog.Info("Aggregation run completed", "articles", len(articles), "failed_sources", len(fetchErrs), "duration", a.now().Sub(started))
	return articles, nil
}

// fetchAll processes sources in fixed-size concurrent batches with a short
// pause between batches. Every feed's outcome is inspected individually; one
// feed failing never aborts the others.
func (a *Aggregator) fetchAll(ctx context.Context, enabled []*sources.Source, opts Options) ([]Article, []error) {
	var all []Article
	var errs []error

	for start := 0; start < len(enabled); start += a.batchSize {
		end := start + a.batchSize
		if end > len(enabled) {
			end = len(enabled)
		}
		batch := enabled[start:end]

		results := make([]feedResult, len(batch))
		var wg sync.WaitGroup
		for i, source := range batch {
			wg.Add(1)
			go func(i int, source *sources.Source) {
				defer wg.Done()
				results[i] = a.processFeed(ctx, source, opts)
			}(i, source)
		}
		wg.Wait()

		for _, result := range results {
			if result.err != nil {
				errs = append(errs, result.err)
				if a.recorder != nil {
					a.recorder.RecordFetch(result.source.Name, "failure")
				}
				slog.Warn("Source failed", "source", result.source.Name, "error", result.err)
				continue
			}
			if a.recorder != nil {
				a.recorder.RecordFetch(result.source.Name, "success")
			}
			slog.Debug("Source processed", "source", result.source.Name, "articles", len(result.articles))
			all = append(all, result.articles...)
		}

		if end < len(enabled) {
			select {
			case <-time.After(batchPause):
			case <-ctx.Done():
				return all, errs
			}
		}
	}

	return all, errs
}

func (a *Aggregator) processFeed(ctx context.Context, source *sources.Source, opts Options) feedResult {
	maxItems := source.Settings.MaxItems
	if opts.MaxArticlesPerFeed > 0 && opts.MaxArticlesPerFeed < maxItems {
		maxItems = opts.MaxArticlesPerFeed
	}

	items, err := a.fetcher.Run(ctx, source, maxItems)
	if err != nil {
		return feedResult{source: source, err: err}
	}

	articles := make([]Article, 0, len(items))
	for _, item := range items {
		candidate := a.normalizer.Run(item)
		if candidate == nil {
			continue
		}
		articles = append(articles, a.enricher.Run(candidate, source))
	}

	return feedResult{source: source, articles: articles}
}

func (a *Aggregator) filterByAge(articles []Article, maxAgeHours int) []Article {
	if maxAgeHours <= 0 {
		return articles
	}
	cutoff := a.now().Add(-time.Duration(maxAgeHours) * time.Hour)

	kept := make([]Article, 0, len(articles))
	for _, article := range articles {
		if article.PublishedAt.After(cutoff) {
			kept = append(kept, article)
		}
	}
	return kept
}

// deduplicate groups articles by normalized-title key and keeps the single
// highest-relevance article per group.
func deduplicate(articles []Article) []Article {
	seen := make(map[string]int)
	kept := make([]Article, 0, len(articles))

	for _, article := range articles {
		key := DedupKey(article.Title)
		if idx, ok := seen[key]; ok {
			if article.RelevanceScore > kept[idx].RelevanceScore {
				kept[idx] = article
			}
			continue
		}
		seen[key] = len(kept)
		kept = append(kept, article)
	}
	return kept
}

// rank sorts descending by relevance adjusted with the watchlist boost.
// Ties keep input order.
func rank(articles []Article, watchlist []string) {
	watched := make(map[string]bool, len(watchlist))
	for _, symbol := range watchlist {
		watched[symbol] = true
	}

	adjusted := func(article Article) float64 {
		score := article.RelevanceScore
		for _, symbol := range article.Tickers {
			if watched[symbol] {
				score += watchlistBoost
				break
			}
		}
		return score
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return adjusted(articles[i]) > adjusted(articles[j])
	})
}
