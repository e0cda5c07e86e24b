package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zenchantlive/marketnews/app/news"
)

type fakeAggregator struct {
	articles []news.Article
	err      error
	calls    int
}

func (f *fakeAggregator) Run(ctx context.Context, opts news.Options) ([]news.Article, error) {
	f.calls++
	return f.articles, f.err
}

type fakeCache struct {
	stored [][]news.Article
}

func (f *fakeCache) Store(articles []news.Article) {
	f.stored = append(f.stored, articles)
}

type fakeStore struct {
	upserted  [][]news.Article
	upsertErr error
	recent    []news.Article
	recentErr error
	pruned    []time.Time
	pruneErr  error
}

func (f *fakeStore) UpsertArticles(articles []news.Article) error {
	f.upserted = append(f.upserted, articles)
	return f.upsertErr
}

func (f *fakeStore) GetRecent(limit int) ([]news.Article, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	if limit > 0 && len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeStore) PruneOlderThan(cutoff time.Time) (int64, error) {
	f.pruned = append(f.pruned, cutoff)
	return 0, f.pruneErr
}

func TestRefreshNewsTaskSuccess(t *testing.T) {
	aggregator := &fakeAggregator{articles: []news.Article{{ID: "1"}, {ID: "2"}}}
	cache := &fakeCache{}
	store := &fakeStore{}

	task := NewRefreshNewsTask(news.Options{}, aggregator, cache, store)
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(cache.stored) != 1 || len(cache.stored[0]) != 2 {
		t.Errorf("Expected batch stored in cache, got: %v", cache.stored)
	}
	if len(store.upserted) != 1 {
		t.Errorf("Expected batch persisted, got %d upserts", len(store.upserted))
	}
}

func TestRefreshNewsTaskNoArticlesKeepsCache(t *testing.T) {
	aggregator := &fakeAggregator{err: news.ErrNoArticles}
	cache := &fakeCache{}
	store := &fakeStore{}

	task := NewRefreshNewsTask(news.Options{}, aggregator, cache, store)
	err := task.Execute(context.Background())
	if err == nil {
		t.Fatal("Expected error when aggregation yields nothing, got nil")
	}
	if !errors.Is(err, news.ErrNoArticles) {
		t.Errorf("Expected ErrNoArticles to be wrapped, got: %v", err)
	}
	if len(cache.stored) != 0 {
		t.Error("Expected cache untouched on empty aggregation")
	}
	if len(store.upserted) != 0 {
		t.Error("Expected no persistence on empty aggregation")
	}
}

func TestRefreshNewsTaskPersistenceFailureNotFatal(t *testing.T) {
	aggregator := &fakeAggregator{articles: []news.Article{{ID: "1"}}}
	cache := &fakeCache{}
	store := &fakeStore{upsertErr: errors.New("disk full")}

	task := NewRefreshNewsTask(news.Options{}, aggregator, cache, store)
	if err := task.Execute(context.Background()); err != nil {
		t.Errorf("Expected persistence failure to be absorbed, got: %v", err)
	}
	if len(cache.stored) != 1 {
		t.Error("Expected cache still updated despite persistence failure")
	}
}

func TestRefreshNewsTaskHonorsCancelledContext(t *testing.T) {
	aggregator := &fakeAggregator{articles: []news.Article{{ID: "1"}}}
	task := NewRefreshNewsTask(news.Options{}, aggregator, &fakeCache{}, &fakeStore{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := task.Execute(ctx); err == nil {
		t.Error("Expected error for cancelled context, got nil")
	}
	if aggregator.calls != 0 {
		t.Errorf("Expected no aggregation after cancellation, got %d calls", aggregator.calls)
	}
}

func TestPruneArticlesTask(t *testing.T) {
	store := &fakeStore{}
	task := NewPruneArticlesTask(48*time.Hour, store)

	before := time.Now().UTC().Add(-48 * time.Hour)
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	after := time.Now().UTC().Add(-48 * time.Hour)

	if len(store.pruned) != 1 {
		t.Fatalf("Expected one prune call, got: %d", len(store.pruned))
	}
	cutoff := store.pruned[0]
	if cutoff.Before(before) || cutoff.After(after) {
		t.Errorf("Expected cutoff 48 hours in the past, got: %v", cutoff)
	}
}

func TestTaskRetryBookkeeping(t *testing.T) {
	task := NewTask(TaskTypeRefreshNews)

	if task.GetRetryCount() != 0 {
		t.Errorf("Expected fresh task with 0 retries, got: %d", task.GetRetryCount())
	}
	if !task.CanRetry() {
		t.Error("Expected fresh task to be retryable")
	}

	for task.CanRetry() {
		task.IncrementRetryCount()
	}
	if task.GetRetryCount() != DefaultMaxRetries {
		t.Errorf("Expected retries capped at %d, got: %d", DefaultMaxRetries, task.GetRetryCount())
	}
}
