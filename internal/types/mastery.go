package types

// MasteryLevel is a letter level, F lowest and A highest.
type MasteryLevel string

// Mastery levels in ascending order.
const (
	LevelF MasteryLevel = "F"
	LevelE MasteryLevel = "E"
	LevelD MasteryLevel = "D"
	LevelC MasteryLevel = "C"
	LevelB MasteryLevel = "B"
	LevelA MasteryLevel = "A"
)

// MasteryStatus is a student's current level and advancement decision.
type MasteryStatus struct {
	Current     MasteryLevel  `json:"current"`
	Description string        `json:"description"`
	Next        *MasteryLevel `json:"next,omitempty"`
	LatestScore float64       `json:"latest_score"`
	CanAdvance  bool          `json:"can_advance"`
	Enrichment  bool          `json:"enrichment"`
}
