package types

// Severity ranks how serious a misconception statement is.
type Severity string

// Severity levels, most severe first.
const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank orders severities for sorting; lower is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 2
	default:
		return 3
	}
}

// Misconception is a single normalized issue statement mined from a justification.
type Misconception struct {
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}
