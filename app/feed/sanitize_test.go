package feed

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeStripsControlChars(t *testing.T) {
	input := []byte("<rss>\x00<channel>\x1F<title>Test\x7F</title></channel></rss>")

	cleaned, err := Sanitize(input)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if strings.ContainsAny(string(cleaned), "\x00\x1F\x7F") {
		t.Errorf("Expected control characters removed, got: %q", cleaned)
	}
	if !strings.Contains(string(cleaned), "<title>Test</title>") {
		t.Errorf("Expected surrounding content preserved, got: %q", cleaned)
	}
}

func TestSanitizePreservesWhitespaceControls(t *testing.T) {
	input := []byte("<rss>\n\t<channel>\r\n</channel>\n</rss>")

	cleaned, err := Sanitize(input)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(string(cleaned), "\n\t<channel>") {
		t.Errorf("Expected tabs and newlines preserved, got: %q", cleaned)
	}
}

func TestSanitizeEscapesBareAmpersands(t *testing.T) {
	input := []byte("<rss><title>Johnson & Johnson</title></rss>")

	cleaned, err := Sanitize(input)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(string(cleaned), "Johnson &amp; Johnson") {
		t.Errorf("Expected bare ampersand escaped, got: %q", cleaned)
	}
}

func TestSanitizeKeepsValidEntities(t *testing.T) {
	input := []byte("<rss><title>Profit &amp; loss &#8212; Q3 &lt;update&gt;</title></rss>")

	cleaned, err := Sanitize(input)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(string(cleaned), "&amp; loss &#8212; Q3 &lt;update&gt;") {
		t.Errorf("Expected valid entities untouched, got: %q", cleaned)
	}
}

func TestSanitizeRemovesXMLProlog(t *testing.T) {
	input := []byte("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<rss><channel></channel></rss>")

	cleaned, err := Sanitize(input)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if strings.Contains(string(cleaned), "<?xml") {
		t.Errorf("Expected prolog removed, got: %q", cleaned)
	}
	if !strings.HasPrefix(string(cleaned), "<rss>") {
		t.Errorf("Expected document to start at root element, got: %q", cleaned)
	}
}

func TestSanitizeRejectsNonXML(t *testing.T) {
	if _, err := Sanitize([]byte("just some text")); err == nil {
		t.Error("Expected error for non-XML input, got nil")
	}
	if _, err := Sanitize([]byte("")); err == nil {
		t.Error("Expected error for empty input, got nil")
	}
}

func TestIsMalformedError(t *testing.T) {
	cases := []struct {
		err      error
		expected bool
	}{
		{nil, false},
		{errors.New("XML syntax error on line 3: invalid character entity"), true},
		{errors.New("Failed to detect feed type"), true},
		{errors.New("unexpected EOF"), true},
		{errors.New("connection refused"), false},
		{errors.New("404 not found"), false},
	}

	for _, c := range cases {
		if got := IsMalformedError(c.err); got != c.expected {
			t.Errorf("IsMalformedError(%v): expected %v, got %v", c.err, c.expected, got)
		}
	}
}
