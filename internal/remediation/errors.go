package remediation

import "fmt"

// BudgetError is returned when the unit budget is not positive.
type BudgetError struct {
	Budget int
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("remediation budget must be positive, got %d", e.Budget)
}

// UnknownBandError is returned when no difficulty label exists for a band.
type UnknownBandError struct {
	Band string
}

func (e *UnknownBandError) Error() string {
	return fmt.Sprintf("no difficulty label for band %q", e.Band)
}
