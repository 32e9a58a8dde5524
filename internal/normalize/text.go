package normalize

import (
	"strings"
	"unicode"
)

// CleanText normalizes a free-text field: literal "\n" escape sequences
// become spaces, escaped slashes are unescaped, runs of whitespace collapse
// to a single space, and the result is trimmed.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, `\n`, " ")
	s = strings.ReplaceAll(s, `\/`, "/")
	return collapseWhitespace(s)
}

// collapseWhitespace rewrites s with every whitespace run reduced to one
// space, dropping leading and trailing runs entirely.
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
