package feed

import (
	"time"
)

// RawItem is one feed entry as delivered by a source, before normalization
// and enrichment. Field values come from the first non-empty of the several
// names heterogeneous feeds use. Never persisted.
type RawItem struct {
	Title       string
	Link        string
	GUID        string
	Description string
	Content     string
	PublishedAt *time.Time
	Categories  []string
}
