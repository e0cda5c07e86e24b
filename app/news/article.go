package news

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Article is the canonical enriched unit produced by one aggregation run.
// Immutable after enrichment. The id is deterministic over (title, link,
// publish date) so the same story maps to the same id across runs.
type Article struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary"`
	URL            string    `json:"url"`
	Source         string    `json:"source"`
	Category       string    `json:"category"`
	PublishedAt    time.Time `json:"publishedAt"`
	RelevanceScore float64   `json:"relevanceScore"`
	Sentiment      string    `json:"sentiment"`
	Tickers        []string  `json:"tickers,omitempty"`
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateID derives the opaque stable article id from the normalized title,
// link and publish date.
func GenerateID(title, link string, publishedAt time.Time) string {
	cleanTitle := nonAlnumRe.ReplaceAllString(strings.ToLower(norm.NFC.String(title)), "")
	if len(cleanTitle) > 50 {
		cleanTitle = cleanTitle[:50]
	}

	cleanLink := strings.TrimPrefix(strings.TrimPrefix(link, "https://"), "http://")
	cleanLink = nonAlnumRe.ReplaceAllString(strings.ToLower(cleanLink), "")
	if len(cleanLink) > 30 {
		cleanLink = cleanLink[:30]
	}

	combined := fmt.Sprintf("%s-%s-%s", cleanTitle, cleanLink, publishedAt.UTC().Format("2006-01-02"))

	encoded := base64.StdEncoding.EncodeToString([]byte(combined))
	if len(encoded) > 16 {
		encoded = encoded[:16]
	}
	return encoded
}

// DedupKey is the normalized-title grouping key used for deduplication:
// lowercased, alphanumeric-and-space only, collapsed whitespace, first 80
// characters. Distinct stories sharing a generic headline will conflate;
// accepted heuristic.
func DedupKey(title string) string {
	key := strings.ToLower(title)
	key = dedupStripRe.ReplaceAllString(key, "")
	key = strings.Join(strings.Fields(key), " ")
	if len(key) > 80 {
		key = key[:80]
	}
	return key
}

var dedupStripRe = regexp.MustCompile(`[^a-z0-9\s]+`)
