package analyze

import (
	"strings"
	"time"
)

// RelevanceScorer computes the composite [0,1] worth-surfacing score for an
// article from recency, ticker signal, sentiment strength, source credibility
// and financial keyword density.
type RelevanceScorer struct {
	now func() time.Time
}

func NewRelevanceScorer() *RelevanceScorer {
	return &RelevanceScorer{now: time.Now}
}

func (s *RelevanceScorer) Run(title, summary string, publishedAt time.Time,
	tickers []ExtractedTicker, sentiment SentimentResult, credibility float64) float64 {

	score := 0.5

	age := s.now().Sub(publishedAt)
	switch {
	case age < 2*time.Hour:
		score += 0.3
	case age < 6*time.Hour:
		score += 0.2
	case age < 24*time.Hour:
		score += 0.1
	}

	var tickerSignal float64
	for _, t := range tickers {
		tickerSignal += t.Confidence
	}
	tickerSignal *= 0.1
	if tickerSignal > 0.2 {
		tickerSignal = 0.2
	}
	score += tickerSignal

	if sentiment.Confidence > 0.7 {
		score += 0.1
	}

	score += credibility * 0.1

	text := strings.ToLower(title + " " + summary)
	keywordCount := 0
	for _, keyword := range relevanceKeywords {
		if strings.Contains(text, keyword) {
			keywordCount++
		}
	}
	density := float64(keywordCount) * 0.05
	if density > 0.15 {
		density = 0.15
	}
	score += density

	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}
