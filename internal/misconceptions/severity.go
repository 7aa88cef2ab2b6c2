package misconceptions

import (
	"regexp"

	"github.com/jonathan/diagnostic-engine/internal/types"
)

// severityRule assigns a severity when any of its patterns matches.
type severityRule struct {
	severity types.Severity
	patterns []*regexp.Regexp
}

// severityRules is a priority cascade: HIGH is checked before LOW, and a
// sentence matching neither gets MEDIUM. A sentence can match keywords of
// more than one rule; the first rule wins.
var severityRules = []severityRule{
	{
		severity: types.SeverityHigh,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(major|critical|significant|serious)\s+errors?\b`),
			regexp.MustCompile(`(?i)\b(completely|entirely|totally)\s+wrong\b`),
			regexp.MustCompile(`(?i)\b(fundamental|basic)\s+misunderstanding\b`),
			regexp.MustCompile(`(?i)\b(did\s+not|didn't|failed\s+to)\s+understand\b`),
			regexp.MustCompile(`(?i)\b(no|zero)\s+credit\b`),
		},
	},
	{
		severity: types.SeverityLow,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(minor|small|slight)\s+errors?\b`),
			regexp.MustCompile(`(?i)\b(rounding|notation|formatting)\s+errors?\b`),
			regexp.MustCompile(`(?i)\b(could\s+have|should\s+consider)\b`),
			regexp.MustCompile(`(?i)\b(almost|nearly)\s+correct\b`),
		},
	},
}

// Classify returns the severity of an issue sentence.
func Classify(sentence string) types.Severity {
	for _, rule := range severityRules {
		for _, p := range rule.patterns {
			if p.MatchString(sentence) {
				return rule.severity
			}
		}
	}
	return types.SeverityMedium
}
