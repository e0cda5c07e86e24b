package news

import "sort"

// SourceCount is one entry of the top-sources ranking.
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// Stats summarizes one batch of aggregated articles.
type Stats struct {
	Total                 int                `json:"total"`
	AvgRelevanceScore     float64            `json:"avg_relevance_score"`
	SentimentDistribution map[string]float64 `json:"sentiment_distribution"`
	CategoryDistribution  map[string]int     `json:"category_distribution"`
	TopSources            []SourceCount      `json:"top_sources"`
	AvgTickersPerArticle  float64            `json:"avg_tickers_per_article"`
}

func ComputeStats(articles []Article) Stats {
	stats := Stats{
		SentimentDistribution: map[string]float64{"positive": 0, "negative": 0, "neutral": 0},
		CategoryDistribution:  make(map[string]int),
		TopSources:            []SourceCount{},
	}

	total := len(articles)
	if total == 0 {
		return stats
	}
	stats.Total = total

	var relevanceSum float64
	var tickerSum int
	sentimentCounts := make(map[string]int)
	sourceCounts := make(map[string]int)

	for _, article := range articles {
		relevanceSum += article.RelevanceScore
		tickerSum += len(article.Tickers)
		sentimentCounts[article.Sentiment]++
		stats.CategoryDistribution[article.Category]++
		sourceCounts[article.Source]++
	}

	for sentiment, count := range sentimentCounts {
		stats.SentimentDistribution[sentiment] = float64(count) / float64(total)
	}

	for source, count := range sourceCounts {
		stats.TopSources = append(stats.TopSources, SourceCount{Source: source, Count: count})
	}
	sort.Slice(stats.TopSources, func(i, j int) bool {
		if stats.TopSources[i].Count != stats.TopSources[j].Count {
			return stats.TopSources[i].Count > stats.TopSources[j].Count
		}
		return stats.TopSources[i].Source < stats.TopSources[j].Source
	})
	if len(stats.TopSources) > 5 {
		stats.TopSources = stats.TopSources[:5]
	}

	stats.AvgRelevanceScore = relevanceSum / float64(total)
	stats.AvgTickersPerArticle = float64(tickerSum) / float64(total)

	return stats
}
