package tasks

import (
	"errors"
	"testing"

	"github.com/zenchantlive/marketnews/app/cfg"
	"github.com/zenchantlive/marketnews/app/news"
)

func newTestScheduler(t *testing.T, store *fakeStore) (*Scheduler, *fakeCache) {
	t.Helper()
	cfg.SetForTest(&cfg.Cfg{
		WorkerCount:      1,
		RefreshInterval:  3600,
		MaxTotalArticles: 100,
		MaxAgeHours:      48,
	})
	t.Cleanup(func() { cfg.SetForTest(nil) })

	resultCache := &fakeCache{}
	scheduler := NewScheduler(&fakeAggregator{}, resultCache, store).(*Scheduler)
	return scheduler, resultCache
}

func TestSeedCacheFromStorage(t *testing.T) {
	store := &fakeStore{recent: []news.Article{{ID: "1"}, {ID: "2"}}}
	scheduler, resultCache := newTestScheduler(t, store)

	scheduler.seedCache()

	if len(resultCache.stored) != 1 {
		t.Fatalf("Expected one cache store, got: %d", len(resultCache.stored))
	}
	if len(resultCache.stored[0]) != 2 {
		t.Errorf("Expected 2 seeded articles, got: %d", len(resultCache.stored[0]))
	}
}

func TestSeedCacheSkipsEmptyStorage(t *testing.T) {
	scheduler, resultCache := newTestScheduler(t, &fakeStore{})

	scheduler.seedCache()

	if len(resultCache.stored) != 0 {
		t.Errorf("Expected no cache store for empty storage, got: %d", len(resultCache.stored))
	}
}

func TestSeedCacheToleratesStorageError(t *testing.T) {
	store := &fakeStore{recentErr: errors.New("database locked")}
	scheduler, resultCache := newTestScheduler(t, store)

	scheduler.seedCache()

	if len(resultCache.stored) != 0 {
		t.Errorf("Expected no cache store on storage error, got: %d", len(resultCache.stored))
	}
}
