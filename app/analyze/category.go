package analyze

import (
	"sort"
	"strings"
)

// CategoryClassifier assigns one of the fixed categories by keyword overlap
// against title + summary. The strictly highest hit count wins; ties and
// zero-hit texts fall back to the source's configured category.
type CategoryClassifier struct{}

func NewCategoryClassifier() *CategoryClassifier {
	return &CategoryClassifier{}
}

func (c *CategoryClassifier) Run(title, summary, defaultCategory string) string {
	text := strings.ToLower(title + " " + summary)

	best := defaultCategory
	maxScore := 0
	tied := false

	for category, keywords := range categoryKeywords {
		score := 0
		for _, keyword := range keywords {
			if strings.Contains(text, keyword) {
				score++
			}
		}
		if score > maxScore {
			maxScore = score
			best = category
			tied = false
		} else if score == maxScore && score > 0 {
			tied = true
		}
	}

	if maxScore == 0 || tied {
		return defaultCategory
	}
	return best
}

// Categories returns the fixed taxonomy, useful for API validation.
func Categories() []string {
	names := make([]string, 0, len(categoryKeywords))
	for name := range categoryKeywords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
