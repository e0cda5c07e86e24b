package news

import (
	"testing"
	"time"
)

func TestGenerateIDDeterministic(t *testing.T) {
	published := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)

	first := GenerateID("Apple beats earnings estimates", "https://example.com/apple-q2", published)
	second := GenerateID("Apple beats earnings estimates", "https://example.com/apple-q2", published)

	if first != second {
		t.Errorf("Expected identical ids for identical input, got: %s and %s", first, second)
	}
	if len(first) > 16 {
		t.Errorf("Expected id of at most 16 characters, got: %d", len(first))
	}
	if first == "" {
		t.Error("Expected non-empty id")
	}
}

func TestGenerateIDIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 1, 22, 0, 0, 0, time.UTC)

	first := GenerateID("Same story", "https://example.com/story", morning)
	second := GenerateID("Same story", "https://example.com/story", evening)

	if first != second {
		t.Errorf("Expected same id for the same calendar day, got: %s and %s", first, second)
	}

	nextDay := GenerateID("Same story", "https://example.com/story", morning.Add(24*time.Hour))
	if first == nextDay {
		t.Error("Expected different id on a different day")
	}
}

func TestGenerateIDDistinguishesLinks(t *testing.T) {
	published := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)

	first := GenerateID("Market update", "https://example.com/a", published)
	second := GenerateID("Market update", "https://example.com/b", published)

	if first == second {
		t.Error("Expected different ids for different links")
	}
}

func TestGenerateIDSchemeInsensitive(t *testing.T) {
	published := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)

	https := GenerateID("Story", "https://example.com/story", published)
	http := GenerateID("Story", "http://example.com/story", published)

	if https != http {
		t.Errorf("Expected scheme-insensitive id, got: %s and %s", https, http)
	}
}

func TestDedupKeyNormalizesPunctuationAndCase(t *testing.T) {
	first := DedupKey("Apple Beats Earnings Estimates!")
	second := DedupKey("apple beats earnings estimates")

	if first != second {
		t.Errorf("Expected matching dedup keys, got: %q and %q", first, second)
	}
}

func TestDedupKeyCollapsesWhitespace(t *testing.T) {
	first := DedupKey("Apple   beats\tearnings")
	second := DedupKey("Apple beats earnings")

	if first != second {
		t.Errorf("Expected collapsed whitespace, got: %q and %q", first, second)
	}
}

func TestDedupKeyTruncatedTo80(t *testing.T) {
	long := DedupKey("a very long headline that keeps going and going and going and going and going and going and going")
	if len(long) > 80 {
		t.Errorf("Expected key of at most 80 characters, got: %d", len(long))
	}
}

func TestDedupKeyDistinguishesDifferentStories(t *testing.T) {
	first := DedupKey("Apple beats earnings estimates")
	second := DedupKey("Microsoft misses earnings estimates")

	if first == second {
		t.Error("Expected different keys for different headlines")
	}
}
