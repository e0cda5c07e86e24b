package news

import (
	"github.com/zenchantlive/marketnews/app/analyze"
	"github.com/zenchantlive/marketnews/app/sources"
)

const maxTickersPerArticle = 5

// Enricher attaches the extracted signal to a normalized candidate: ticker
// mentions, sentiment polarity, topical category, and the composite
// relevance score.
type Enricher struct {
	tickers    *analyze.TickerExtractor
	sentiment  *analyze.SentimentAnalyzer
	categories *analyze.CategoryClassifier
	relevance  *analyze.RelevanceScorer
}

func NewEnricher() *Enricher {
	return &Enricher{
		tickers:    analyze.NewTickerExtractor(),
		sentiment:  analyze.NewSentimentAnalyzer(),
		categories: analyze.NewCategoryClassifier(),
		relevance:  analyze.NewRelevanceScorer(),
	}
}

func (e *Enricher) Run(candidate *Candidate, source *sources.Source) Article {
	extracted := e.tickers.RunArticle(candidate.Title, candidate.Summary)
	extracted = analyze.FilterByConfidence(extracted, 0.5)
	extracted = analyze.TopTickers(extracted, maxTickersPerArticle)

	sentiment := e.sentiment.RunArticle(candidate.Title, candidate.Summary)
	category := e.categories.Run(candidate.Title, candidate.Summary, source.Category)
	relevance := e.relevance.Run(candidate.Title, candidate.Summary, candidate.PublishedAt,
		extracted, sentiment, source.Credibility)

	symbols := make([]string, 0, len(extracted))
	for _, t := range extracted {
		symbols = append(symbols, t.Symbol)
	}

	return Article{
		ID:             candidate.ID,
		Title:          candidate.Title,
		Summary:        candidate.Summary,
		URL:            candidate.URL,
		Source:         source.Name,
		Category:       category,
		PublishedAt:    candidate.PublishedAt,
		RelevanceScore: relevance,
		Sentiment:      sentiment.Polarity,
		Tickers:        symbols,
	}
}
