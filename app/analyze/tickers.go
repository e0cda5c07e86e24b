package analyze

import (
	"regexp"
	"sort"
	"strings"
)

// ExtractedTicker is one ticker mention found in article text.
type ExtractedTicker struct {
	Symbol       string
	Confidence   float64
	MatchContext string
}

type tickerPattern struct {
	re          *regexp.Regexp
	confidence  float64
	context     string
	symbolGroup int
	// majorOnly restricts matches to the major-ticker allowlist.
	majorOnly bool
}

var tickerPatterns = []tickerPattern{
	{
		re:          regexp.MustCompile(`\$([A-Z]{1,5})\b`),
		confidence:  0.9,
		context:     "dollar_sign",
		symbolGroup: 1,
	},
	{
		re:          regexp.MustCompile(`(?i)\b(NASDAQ|NYSE|OTC|AMEX):\s*([A-Za-z]{1,5})\b`),
		confidence:  0.95,
		context:     "exchange_prefix",
		symbolGroup: 2,
	},
	{
		re:          regexp.MustCompile(`(?i)\b([A-Za-z]{1,5})\s+(?:stock|shares|equity|corp|inc|ltd|co|company)\b`),
		confidence:  0.7,
		context:     "stock_suffix",
		symbolGroup: 1,
	},
	{
		re:          regexp.MustCompile(`(?i)\b([A-Za-z]{1,5})\s+(?:rises|falls|gains|drops|jumps|slides|surges|plunges|climbs|dips|fluctuates|trades|moves|loses)\b`),
		confidence:  0.8,
		context:     "market_action",
		symbolGroup: 1,
	},
	{
		re:          regexp.MustCompile(`\b([A-Z]{1,5})\b`),
		confidence:  0.3,
		context:     "standalone",
		symbolGroup: 1,
		majorOnly:   true,
	},
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// TickerExtractor scans article text for stock ticker mentions using several
// pattern strategies and merges the results by symbol.
type TickerExtractor struct{}

func NewTickerExtractor() *TickerExtractor {
	return &TickerExtractor{}
}

// Run returns the deduplicated tickers found in text, sorted by descending
// confidence. Per symbol only the most confident match survives.
func (e *TickerExtractor) Run(text string) []ExtractedTicker {
	found := make(map[string]ExtractedTicker)
	cleanText := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	lowerText := strings.ToLower(cleanText)

	for _, pattern := range tickerPatterns {
		matches := pattern.re.FindAllStringSubmatchIndex(cleanText, -1)
		for _, match := range matches {
			start, end := match[2*pattern.symbolGroup], match[2*pattern.symbolGroup+1]
			if start < 0 {
				continue
			}
			symbol := strings.ToUpper(cleanText[start:end])

			if len(symbol) < 1 || len(symbol) > 5 || commonWordBlacklist[symbol] {
				continue
			}
			if pattern.majorOnly && !majorTickers[symbol] {
				continue
			}

			confidence := pattern.confidence

			if majorTickers[symbol] {
				confidence += 0.2
			}
			if hasTickerContext(lowerText, match[0], 50) {
				confidence += 0.1
			}
			if pattern.context == "standalone" && !majorTickers[symbol] {
				confidence -= 0.1
			}
			if confidence > 1.0 {
				confidence = 1.0
			}

			if confidence < 0.4 {
				continue
			}

			existing, ok := found[symbol]
			if !ok || confidence > existing.Confidence {
				found[symbol] = ExtractedTicker{
					Symbol:       symbol,
					Confidence:   confidence,
					MatchContext: pattern.context,
				}
			}
		}
	}

	return sortTickers(found)
}

// RunArticle extracts tickers from title and summary separately and merges
// them, keeping the highest confidence per symbol.
func (e *TickerExtractor) RunArticle(title, summary string) []ExtractedTicker {
	merged := make(map[string]ExtractedTicker)
	for _, ticker := range append(e.Run(title), e.Run(summary)...) {
		existing, ok := merged[ticker.Symbol]
		if !ok || ticker.Confidence > existing.Confidence {
			merged[ticker.Symbol] = ticker
		}
	}
	return sortTickers(merged)
}

// FilterByConfidence drops tickers below the given threshold.
func FilterByConfidence(tickers []ExtractedTicker, minConfidence float64) []ExtractedTicker {
	filtered := make([]ExtractedTicker, 0, len(tickers))
	for _, t := range tickers {
		if t.Confidence >= minConfidence {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// TopTickers returns at most count tickers from an already sorted slice.
func TopTickers(tickers []ExtractedTicker, count int) []ExtractedTicker {
	if len(tickers) <= count {
		return tickers
	}
	return tickers[:count]
}

func sortTickers(m map[string]ExtractedTicker) []ExtractedTicker {
	out := make([]ExtractedTicker, 0, len(m))
	for _, t := range m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

func hasTickerContext(lowerText string, matchIndex, windowSize int) bool {
	start := matchIndex - windowSize
	if start < 0 {
		start = 0
	}
	end := matchIndex + windowSize
	if end > len(lowerText) {
		end = len(lowerText)
	}
	window := lowerText[start:end]

	for _, keyword := range tickerContextKeywords {
		if strings.Contains(window, keyword) {
			return true
		}
	}
	return false
}
