package news

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"

	"github.com/zenchantlive/marketnews/app/feed"
)

const (
	maxTitleLen   = 200
	maxSummaryLen = 300
)

// Candidate is a normalized article before enrichment.
type Candidate struct {
	ID          string
	Title       string
	Summary     string
	URL         string
	PublishedAt time.Time
}

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	spaceRe      = regexp.MustCompile(`\s+`)
	leadTrimRe   = regexp.MustCompile(`^[^a-zA-Z0-9]+`)
	trailTrimRe  = regexp.MustCompile(`[^a-zA-Z0-9]+$`)
	sentenceEndRe = regexp.MustCompile(`[.!?]+`)
)

// Normalizer converts one raw feed item into an article candidate, or
// rejects it (nil) when the essential fields are absent. A bad publish date
// alone never rejects an item; it falls back to now.
type Normalizer struct {
	now func() time.Time
}

func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

func (n *Normalizer) Run(raw feed.RawItem) *Candidate {
	if raw.Title == "" {
		return nil
	}
	body := raw.Description
	if body == "" {
		body = raw.Content
	}
	if body == "" {
		return nil
	}

	publishedAt := n.now()
	if raw.PublishedAt != nil && !raw.PublishedAt.IsZero() {
		publishedAt = *raw.PublishedAt
	}

	title := cleanTitle(raw.Title)
	text := extractText(body)
	summary := deriveSummary(text, title)

	return &Candidate{
		ID:          GenerateID(title, raw.Link, publishedAt),
		Title:       title,
		Summary:     summary,
		URL:         raw.Link,
		PublishedAt: publishedAt,
	}
}

func cleanTitle(title string) string {
	title = spaceRe.ReplaceAllString(title, " ")
	title = strings.TrimSpace(title)
	title = leadTrimRe.ReplaceAllString(title, "")
	title = trailTrimRe.ReplaceAllString(title, "")
	return truncateRunes(title, maxTitleLen)
}

// truncateRunes caps s at max characters without splitting a multi-byte rune.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// extractText reduces a possibly-HTML body to plain text. HTML-heavy content
// goes through readability first; tag stripping is the fallback.
func extractText(body string) string {
	if strings.Contains(body, "<") {
		if article, err := readability.FromReader(strings.NewReader(body), nil); err == nil && article.TextContent != "" {
			body = article.TextContent
		} else {
			body = htmlTagRe.ReplaceAllString(body, " ")
		}
	}
	return strings.TrimSpace(spaceRe.ReplaceAllString(body, " "))
}

// deriveSummary picks the first sentence of at least 20 characters, else
// truncates the body. The article's own title is stripped out when it
// recurs inside the summary text.
func deriveSummary(text, title string) string {
	summary := ""
	for _, sentence := range sentenceEndRe.Split(text, -1) {
		if len(strings.TrimSpace(sentence)) > 20 {
			summary = strings.TrimSpace(sentence)
			break
		}
	}
	if summary == "" {
		summary = text
	}

	if title != "" {
		lower := strings.ToLower(summary)
		lowerTitle := strings.ToLower(title)
		if idx := strings.Index(lower, lowerTitle); idx >= 0 {
			summary = strings.TrimSpace(summary[:idx] + summary[idx+len(title):])
		}
	}

	if utf8.RuneCountInString(summary) > maxSummaryLen {
		summary = truncateRunes(summary, maxSummaryLen-3) + "..."
	}

	if summary == "" && text != "" {
		summary = truncateRunes(text, maxSummaryLen-3) + "..."
	}

	return summary
}
