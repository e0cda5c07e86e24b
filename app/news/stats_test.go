package news

import (
	"math"
	"testing"
)

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)

	if stats.Total != 0 {
		t.Errorf("Expected total 0, got: %d", stats.Total)
	}
	if stats.AvgRelevanceScore != 0 {
		t.Errorf("Expected zero average relevance, got: %f", stats.AvgRelevanceScore)
	}
	if len(stats.TopSources) != 0 {
		t.Errorf("Expected empty top sources, got: %v", stats.TopSources)
	}
}

func TestComputeStats(t *testing.T) {
	articles := []Article{
		{Source: "cnbc", Category: "Markets", Sentiment: "positive", RelevanceScore: 0.8, Tickers: []string{"AAPL", "MSFT"}},
		{Source: "cnbc", Category: "Markets", Sentiment: "negative", RelevanceScore: 0.6, Tickers: []string{"TSLA"}},
		{Source: "fortune", Category: "Business", Sentiment: "positive", RelevanceScore: 0.7},
		{Source: "benzinga", Category: "Markets", Sentiment: "neutral", RelevanceScore: 0.5, Tickers: []string{"NVDA"}},
	}

	stats := ComputeStats(articles)

	if stats.Total != 4 {
		t.Errorf("Expected total 4, got: %d", stats.Total)
	}
	if math.Abs(stats.AvgRelevanceScore-0.65) > 1e-9 {
		t.Errorf("Expected average relevance 0.65, got: %f", stats.AvgRelevanceScore)
	}
	if math.Abs(stats.SentimentDistribution["positive"]-0.5) > 1e-9 {
		t.Errorf("Expected positive share 0.5, got: %f", stats.SentimentDistribution["positive"])
	}
	if math.Abs(stats.SentimentDistribution["negative"]-0.25) > 1e-9 {
		t.Errorf("Expected negative share 0.25, got: %f", stats.SentimentDistribution["negative"])
	}
	if stats.CategoryDistribution["Markets"] != 3 {
		t.Errorf("Expected 3 Markets articles, got: %d", stats.CategoryDistribution["Markets"])
	}
	if math.Abs(stats.AvgTickersPerArticle-1.0) > 1e-9 {
		t.Errorf("Expected 1.0 tickers per article, got: %f", stats.AvgTickersPerArticle)
	}

	if len(stats.TopSources) != 3 {
		t.Fatalf("Expected 3 top sources, got: %d", len(stats.TopSources))
	}
	if stats.TopSources[0].Source != "cnbc" || stats.TopSources[0].Count != 2 {
		t.Errorf("Expected cnbc on top with 2 articles, got: %v", stats.TopSources[0])
	}
	// benzinga and fortune tie at 1, ordered by name
	if stats.TopSources[1].Source != "benzinga" || stats.TopSources[2].Source != "fortune" {
		t.Errorf("Expected deterministic tie order, got: %v", stats.TopSources[1:])
	}
}

func TestComputeStatsTopSourcesCapped(t *testing.T) {
	var articles []Article
	for _, source := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		articles = append(articles, Article{Source: source, Sentiment: "neutral", Category: "General"})
	}

	stats := ComputeStats(articles)
	if len(stats.TopSources) != 5 {
		t.Errorf("Expected top sources capped at 5, got: %d", len(stats.TopSources))
	}
}
