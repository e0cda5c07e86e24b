package cache

import (
	"sync"
	"time"

	"github.com/zenchantlive/marketnews/app/news"
)

// State describes how usable a cache lookup result is.
type State string

const (
	// StateFresh means the entry is younger than the fresh window and can be
	// served without refreshing.
	StateFresh State = "fresh"
	// StateStale means the entry is past the fresh window but still inside the
	// stale window. It can be served as a fallback when a refresh fails.
	StateStale State = "stale"
	// StateMiss means there is no usable entry.
	StateMiss State = "miss"
)

// Cache holds the result of the most recent successful aggregation run.
// Aggregation produces one ranked batch for the whole service, so a single
// slot is enough; filtering by category or watchlist happens on read.
type Cache struct {
	mu          sync.RWMutex
	articles    []news.Article
	storedAt    time.Time
	freshWindow time.Duration
	staleWindow time.Duration

	now func() time.Time
}

func New(freshWindow, staleWindow time.Duration) *Cache {
	if staleWindow < freshWindow {
		staleWindow = freshWindow
	}
	return &Cache{
		freshWindow: freshWindow,
		staleWindow: staleWindow,
		now:         time.Now,
	}
}

// Store replaces the cached batch and resets its age.
func (c *Cache) Store(articles []news.Article) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.articles = make([]news.Article, len(articles))
	copy(c.articles, articles)
	c.storedAt = c.now()
}

// Get returns a copy of the cached batch together with its staleness state.
// A StateMiss result carries no articles.
func (c *Cache) Get() ([]news.Article, State) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.storedAt.IsZero() {
		return nil, StateMiss
	}

	age := c.now().Sub(c.storedAt)
	if age > c.staleWindow {
		return nil, StateMiss
	}

	articles := make([]news.Article, len(c.articles))
	copy(articles, c.articles)

	if age > c.freshWindow {
		return articles, StateStale
	}
	return articles, StateFresh
}

// Age reports how old the cached entry is. The second return value is false
// when the cache is empty.
func (c *Cache) Age() (time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.storedAt.IsZero() {
		return 0, false
	}
	return c.now().Sub(c.storedAt), true
}

// Clear drops the cached entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.articles = nil
	c.storedAt = time.Time{}
}
