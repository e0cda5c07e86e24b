package analyze

import (
	"regexp"
	"strings"
)

// Polarity labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// SentimentResult is the outcome of scoring one text.
type SentimentResult struct {
	Polarity   string
	Confidence float64
	RawScore   float64
	Keywords   []string
}

// Intensity tiers checked in order; base scores 3/2/1.
var intensityTiers = []string{"strong", "moderate", "weak"}

var tierBaseScores = map[string]float64{
	"strong":   3,
	"moderate": 2,
	"weak":     1,
}

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

// SentimentAnalyzer is a deterministic lexicon-based polarity scorer with
// negation and intensity-modifier handling.
type SentimentAnalyzer struct{}

func NewSentimentAnalyzer() *SentimentAnalyzer {
	return &SentimentAnalyzer{}
}

func (a *SentimentAnalyzer) Run(text string) SentimentResult {
	cleanText := nonWordRe.ReplaceAllString(strings.ToLower(text), " ")
	words := strings.Fields(cleanText)

	var positiveScore, negativeScore float64
	var keywords []string

	for i, word := range words {
		prevWord := ""
		if i > 0 {
			prevWord = words[i-1]
		}

		negated := isNegated(words, i)
		multiplier := intensityMultiplier(prevWord)

		if tier, ok := matchTier(word, positiveKeywords); ok {
			score := tierBaseScores[tier] * multiplier
			if negated {
				// Negated positive becomes weak negative.
				negativeScore += score * 0.5
			} else {
				positiveScore += score
			}
			keywords = append(keywords, word)
		}

		if tier, ok := matchTier(word, negativeKeywords); ok {
			score := tierBaseScores[tier] * multiplier
			if negated {
				positiveScore += score * 0.5
			} else {
				negativeScore += score
			}
			keywords = append(keywords, word)
		}
	}

	boost := financialBoost(cleanText)
	positiveScore *= 1 + boost*0.2
	negativeScore *= 1 + boost*0.2

	totalScore := positiveScore - negativeScore

	winning := positiveScore
	if negativeScore > winning {
		winning = negativeScore
	}
	var magnitudeConfidence float64
	if winning > 0 {
		magnitudeConfidence = winning / 3
		if magnitudeConfidence > 1 {
			magnitudeConfidence = 1
		}
	}

	polarity := SentimentNeutral
	if totalScore > 0.5 {
		polarity = SentimentPositive
	} else if totalScore < -0.5 {
		polarity = SentimentNegative
	}

	keywordConfidence := float64(len(keywords)) / 5
	if keywordConfidence > 1 {
		keywordConfidence = 1
	}

	return SentimentResult{
		Polarity:   polarity,
		Confidence: (magnitudeConfidence + keywordConfidence) / 2,
		RawScore:   totalScore,
		Keywords:   keywords,
	}
}

// RunArticle scores title and summary as one text.
func (a *SentimentAnalyzer) RunArticle(title, summary string) SentimentResult {
	return a.Run(title + " " + summary)
}

// isNegated checks up to 3 preceding tokens for a negation word.
func isNegated(words []string, index int) bool {
	start := index - 3
	if start < 0 {
		start = 0
	}
	for i := start; i < index; i++ {
		if negationWords[words[i]] {
			return true
		}
	}
	return false
}

func intensityMultiplier(prevWord string) float64 {
	if amplifierWords[prevWord] {
		return 1.5
	}
	if diminisherWords[prevWord] {
		return 0.7
	}
	return 1.0
}

// matchTier finds the intensity tier of a word: exact membership first, then
// substring containment in either direction.
func matchTier(word string, tiers map[string][]string) (string, bool) {
	for _, tier := range intensityTiers {
		for _, keyword := range tiers[tier] {
			if word == keyword {
				return tier, true
			}
		}
	}
	for _, tier := range intensityTiers {
		for _, keyword := range tiers[tier] {
			if strings.Contains(word, keyword) || strings.Contains(keyword, word) {
				return tier, true
			}
		}
	}
	return "", false
}

// financialBoost counts financial vocabulary in the text, normalized to [0,1]
// with a cap at 5 matches.
func financialBoost(lowerText string) float64 {
	matches := 0
	for _, booster := range financialBoosters {
		if strings.Contains(lowerText, booster) {
			matches++
		}
	}
	boost := float64(matches) / 5
	if boost > 1 {
		boost = 1
	}
	return boost
}
