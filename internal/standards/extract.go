// Package standards extracts canonical curriculum-standard codes from noisy text.
package standards

import (
	"regexp"
	"strings"
)

// maxBareCodeLen bounds how long a bare token may be and still be treated as a code.
const maxBareCodeLen = 15

// codePattern is one entry of the ordered pattern scan.
type codePattern struct {
	name string
	re   *regexp.Regexp
	// group selects the submatch to return; 0 is the whole match.
	group int
}

// patterns are tried in order; the first one matching anywhere in the text wins.
// There is no leading word boundary, so HS-prefixed forms such as HSA-REI.B.4
// yield the embedded catalog code.
var patterns = []codePattern{
	{name: "domain-cluster", re: regexp.MustCompile(`(?i)[A-Z]\.[A-Z]{1,3}\.[A-Z]\.\d+\b`)},
	{name: "hyphenated-domain", re: regexp.MustCompile(`(?i)[A-Z]-[A-Z]{2,3}\.[A-Z]\.\d+\b`)},
	{name: "grade-domain", re: regexp.MustCompile(`(?i)\d\.[A-Z]{1,3}\.[A-Z]\.\d+\b`)},
	// CCSS.MATH.CONTENT. prefix is dropped by returning only the code group.
	{name: "ccss-qualified", re: regexp.MustCompile(`(?i)CCSS\.MATH\.CONTENT\.([A-Z0-9]+(?:[.\-][A-Z0-9]+)*)`), group: 1},
}

var bareCodeRe = regexp.MustCompile(`^[A-Za-z0-9.\-]+$`)

// ExtractStandardCode returns the canonical standard code found in text.
// The boolean is false when no code is present; that is a normal result.
func ExtractStandardCode(text string) (string, bool) {
	if code, ok := MatchPattern(text); ok {
		return code, true
	}

	trimmed := strings.TrimSpace(text)
	if trimmed != "" && len(trimmed) <= maxBareCodeLen && bareCodeRe.MatchString(trimmed) {
		return strings.ToUpper(trimmed), true
	}
	return "", false
}

// ExtractFromLabels checks the standard label first and falls back to the
// free text when the label is empty.
func ExtractFromLabels(standardLabel, text string) (string, bool) {
	if strings.TrimSpace(standardLabel) != "" {
		return ExtractStandardCode(standardLabel)
	}
	return ExtractStandardCode(text)
}

// MatchPattern runs only the ordered pattern scan, without the bare-token
// fallback. Use it to ask whether text contains something shaped like a code.
func MatchPattern(text string) (string, bool) {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		return strings.ToUpper(m[p.group]), true
	}
	return "", false
}
