package misconceptions

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	leadingMarkerRe     = regexp.MustCompile(`^\s*(?:[-•*]+\s+|\d+[.)]\s*)`)
	leadingTransitionRe = regexp.MustCompile(`(?i)^(?:however|also|additionally|furthermore|moreover|in addition|further|finally|unfortunately|but|and|though|overall)\b[\s,;:]*`)
)

// normalizeStatement cleans a sentence for display: leading bullet or number
// markers and transition words are removed, markdown bold is dropped, the
// first letter is capitalised and terminal punctuation is ensured.
func normalizeStatement(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.Join(strings.Fields(s), " ")
	s = leadingMarkerRe.ReplaceAllString(s, "")

	// Transition words can stack ("However, also ...").
	for {
		stripped := leadingTransitionRe.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = strings.TrimSpace(stripped)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(s)
	s = string(unicode.ToUpper(r)) + s[size:]

	switch s[len(s)-1] {
	case '.', '!', '?':
	default:
		s += "."
	}
	return s
}

// overlapKey is the case-folded prefix used for overlap detection.
func overlapKey(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	runes := []rune(lower)
	if len(runes) > overlapPrefixLen {
		runes = runes[:overlapPrefixLen]
	}
	return string(runes)
}

// overlaps reports whether either statement contains the other's
// case-folded prefix.
func overlaps(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, overlapKey(b)) || strings.Contains(lb, overlapKey(a))
}
