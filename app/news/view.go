package news

import "strings"

// Query narrows a ranked batch for a single request. The cache holds one
// batch for the whole service; per-request category, watchlist and relevance
// preferences are applied on read.
type Query struct {
	Category     string
	MinRelevance float64
	Watchlist    []string
	Limit        int
}

// ApplyQuery filters and re-ranks a copy of articles according to q. The
// input slice is not modified.
func ApplyQuery(articles []Article, q Query) []Article {
	result := make([]Article, 0, len(articles))
	for _, article := range articles {
		if q.Category != "" && !strings.EqualFold(article.Category, q.Category) {
			continue
		}
		if article.RelevanceScore < q.MinRelevance {
			continue
		}
		result = append(result, article)
	}

	watchlist := make([]string, 0, len(q.Watchlist))
	for _, symbol := range q.Watchlist {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol != "" {
			watchlist = append(watchlist, symbol)
		}
	}
	if len(watchlist) > 0 {
		rank(result, watchlist)
	}

	if q.Limit > 0 && len(result) > q.Limit {
		result = result[:q.Limit]
	}
	return result
}
