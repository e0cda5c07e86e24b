package feed

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

var xmlPrologRe = regexp.MustCompile(`^\s*<\?xml[^>]*>\s*`)

// Sanitize cleans up the common defects of malformed feed documents: invalid
// control characters, bare ampersands that are not part of a valid entity,
// and a broken XML prolog. Returns an error when the result is still not
// plausibly XML.
func Sanitize(data []byte) ([]byte, error) {
	cleaned := stripControlChars(data)
	cleaned = escapeBareAmpersands(cleaned)
	cleaned = xmlPrologRe.ReplaceAll(cleaned, nil)
	cleaned = bytes.TrimSpace(cleaned)

	if len(cleaned) == 0 || cleaned[0] != '<' {
		return nil, fmt.Errorf("document is not valid XML after cleanup")
	}
	return cleaned, nil
}

// IsMalformedError reports whether a parse error looks like malformed markup
// that the cleanup pass may recover, as opposed to a wrong document type or
// transport failure.
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	signatures := []string{
		"invalid character",
		"illegal character",
		"unexpected eof",
		"syntax error",
		"unexpected end",
		"failed to detect feed type",
	}
	for _, sig := range signatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

func stripControlChars(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for _, b := range data {
		switch {
		case b == '\t' || b == '\n' || b == '\r':
			out = append(out, b)
		case b < 0x20 || b == 0x7F:
			// dropped
		default:
			out = append(out, b)
		}
	}
	return out
}

// escapeBareAmpersands replaces '&' with '&amp;' unless it starts a valid
// character or entity reference (up to 7 name characters followed by ';').
func escapeBareAmpersands(data []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(data))

	for i := 0; i < len(data); i++ {
		if data[i] != '&' {
			out.WriteByte(data[i])
			continue
		}

		if isEntityStart(data[i+1:]) {
			out.WriteByte('&')
			continue
		}
		out.WriteString("&amp;")
	}
	return out.Bytes()
}

func isEntityStart(rest []byte) bool {
	for j := 0; j < len(rest) && j < 8; j++ {
		c := rest[j]
		if c == ';' {
			return j > 0
		}
		if !isEntityChar(c) {
			return false
		}
	}
	return false
}

func isEntityChar(c byte) bool {
	return c == '#' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
