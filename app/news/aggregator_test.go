package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zenchantlive/marketnews/app/feed"
	"github.com/zenchantlive/marketnews/app/sources"
)

func rssDocument(headlines ...string) string {
	items := ""
	pubDate := time.Now().UTC().Add(-1 * time.Hour).Format(time.RFC1123Z)
	for i, headline := range headlines {
		items += fmt.Sprintf(`
    <item>
      <title>%s</title>
      <link>https://example.com/%d</link>
      <description>Quarterly earnings commentary and market reaction for this story.</description>
      <guid>item-%d-%s</guid>
      <pubDate>%s</pubDate>
    </item>`, headline, i, i, headline, pubDate)
	}
	return `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test</description>` + items + `
  </channel>
</rss>`
}

func feedServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func failingServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	return server
}

func catalogFor(t *testing.T, urls map[string]string) *sources.Catalog {
	t.Helper()
	dir := t.TempDir()
	for name, url := range urls {
		content := fmt.Sprintf("url: %s\ncredibility: 0.8\n\nsettings:\n  enabled: true\n  timeout: 5\n", url)
		if err := os.WriteFile(filepath.Join(dir, name+".yml"), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write source file: %v", err)
		}
	}
	catalog := sources.NewCatalog(dir)
	if err := catalog.Run(); err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	return catalog
}

func newTestAggregator(catalog *sources.Catalog, tracker *sources.FailureTracker) *Aggregator {
	httpClient := &http.Client{Timeout: 5 * time.Second}
	fetcher := feed.NewFetcher(httpClient, feed.NewParser(), tracker, "test-agent")
	return NewAggregator(catalog, tracker, fetcher, nil, 3)
}

func TestAggregatorMergesAllFeeds(t *testing.T) {
	first := feedServer(t, rssDocument("Apple beats earnings estimates", "Oil prices climb"))
	second := feedServer(t, rssDocument("Fed holds interest rates steady"))

	catalog := catalogFor(t, map[string]string{
		"first":  first.URL,
		"second": second.URL,
	})
	aggregator := newTestAggregator(catalog, sources.NewFailureTracker())

	articles, err := aggregator.Run(context.Background(), Options{
		MaxArticlesPerFeed:  10,
		MaxTotalArticles:    100,
		MaxAgeHours:         48,
		EnableDeduplication: true,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("Expected 3 articles, got: %d", len(articles))
	}
	for _, article := range articles {
		if article.Source == "" {
			t.Error("Expected source attribution on every article")
		}
		if article.ID == "" {
			t.Error("Expected generated id on every article")
		}
	}
}

func TestAggregatorToleratesPartialFailure(t *testing.T) {
	good := feedServer(t, rssDocument("Markets rally on earnings"))
	bad := failingServer(t)

	catalog := catalogFor(t, map[string]string{
		"good": good.URL,
		"bad":  bad.URL,
	})
	tracker := sources.NewFailureTracker()
	aggregator := newTestAggregator(catalog, tracker)

	articles, err := aggregator.Run(context.Background(), Options{
		MaxArticlesPerFeed: 10,
		MaxTotalArticles:   100,
		MaxAgeHours:        48,
	})
	if err != nil {
		t.Fatalf("Expected partial failure to be tolerated, got: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("Expected 1 article from the healthy feed, got: %d", len(articles))
	}
	if record := tracker.Get("bad"); record == nil {
		t.Error("Expected failure recorded for broken source")
	}
}

func TestAggregatorAllFeedsFail(t *testing.T) {
	bad1 := failingServer(t)
	bad2 := failingServer(t)

	catalog := catalogFor(t, map[string]string{
		"bad1": bad1.URL,
		"bad2": bad2.URL,
	})
	aggregator := newTestAggregator(catalog, sources.NewFailureTracker())

	_, err := aggregator.Run(context.Background(), Options{
		MaxArticlesPerFeed: 10,
		MaxTotalArticles:   100,
		MaxAgeHours:        48,
	})
	if err == nil {
		t.Fatal("Expected error when every feed fails, got nil")
	}
	if !errors.Is(err, ErrNoArticles) {
		t.Errorf("Expected ErrNoArticles, got: %v", err)
	}
}

func TestAggregatorDeduplicatesAcrossFeeds(t *testing.T) {
	first := feedServer(t, rssDocument("Apple beats earnings estimates"))
	second := feedServer(t, rssDocument("Apple Beats Earnings Estimates!"))

	catalog := catalogFor(t, map[string]string{
		"first":  first.URL,
		"second": second.URL,
	})
	aggregator := newTestAggregator(catalog, sources.NewFailureTracker())

	articles, err := aggregator.Run(context.Background(), Options{
		MaxArticlesPerFeed:  10,
		MaxTotalArticles:    100,
		MaxAgeHours:         48,
		EnableDeduplication: true,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(articles) != 1 {
		t.Errorf("Expected duplicate headlines collapsed to 1 article, got: %d", len(articles))
	}
}

func TestAggregatorRespectsMaxTotal(t *testing.T) {
	server := feedServer(t, rssDocument("Story one here", "Story two here", "Story three here"))

	catalog := catalogFor(t, map[string]string{"only": server.URL})
	aggregator := newTestAggregator(catalog, sources.NewFailureTracker())

	articles, err := aggregator.Run(context.Background(), Options{
		MaxArticlesPerFeed: 10,
		MaxTotalArticles:   2,
		MaxAgeHours:        48,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(articles) != 2 {
		t.Errorf("Expected result truncated to 2 articles, got: %d", len(articles))
	}
}

func TestFilterByAge(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	aggregator := &Aggregator{now: func() time.Time { return now }}

	articles := []Article{
		{ID: "fresh", PublishedAt: now.Add(-47 * time.Hour)},
		{ID: "stale", PublishedAt: now.Add(-49 * time.Hour)},
	}

	kept := aggregator.filterByAge(articles, 48)
	if len(kept) != 1 {
		t.Fatalf("Expected 1 article within 48 hours, got: %d", len(kept))
	}
	if kept[0].ID != "fresh" {
		t.Errorf("Expected the 47-hour-old article kept, got: %s", kept[0].ID)
	}

	all := aggregator.filterByAge(articles, 0)
	if len(all) != 2 {
		t.Errorf("Expected age filter disabled at 0, got: %d", len(all))
	}
}

func TestDeduplicateKeepsHighestRelevance(t *testing.T) {
	articles := []Article{
		{ID: "low", Title: "Apple beats earnings estimates", RelevanceScore: 0.6},
		{ID: "other", Title: "Oil prices climb", RelevanceScore: 0.5},
		{ID: "high", Title: "Apple Beats Earnings Estimates!", RelevanceScore: 0.9},
	}

	kept := deduplicate(articles)
	if len(kept) != 2 {
		t.Fatalf("Expected 2 articles after deduplication, got: %d", len(kept))
	}
	if kept[0].ID != "high" {
		t.Errorf("Expected highest-relevance duplicate kept in first-seen position, got: %s", kept[0].ID)
	}
	if kept[1].ID != "other" {
		t.Errorf("Expected unrelated article preserved, got: %s", kept[1].ID)
	}
}

func TestRankWatchlistBoost(t *testing.T) {
	articles := []Article{
		{ID: "plain", RelevanceScore: 0.8},
		{ID: "watched", RelevanceScore: 0.7, Tickers: []string{"TSLA"}},
	}

	rank(articles, []string{"TSLA"})
	if articles[0].ID != "watched" {
		t.Errorf("Expected watchlisted article ranked first, got: %s", articles[0].ID)
	}

	articles[0], articles[1] = Article{ID: "plain", RelevanceScore: 0.8}, Article{ID: "watched", RelevanceScore: 0.7, Tickers: []string{"TSLA"}}
	rank(articles, nil)
	if articles[0].ID != "plain" {
		t.Errorf("Expected plain relevance order without watchlist, got: %s", articles[0].ID)
	}
}
