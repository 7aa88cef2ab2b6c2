package types

// BandID names one of the four performance bands.
type BandID string

// Band identifiers, highest tier first.
const (
	BandAdvanced     BandID = "advanced"
	BandProficient   BandID = "proficient"
	BandDeveloping   BandID = "developing"
	BandNeedsSupport BandID = "needs-support"
)

// PerformanceBand is a fixed, closed score range used to group students.
type PerformanceBand struct {
	ID          BandID `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
}

// Contains reports whether a (rounded) score lies in the band's closed range.
func (b PerformanceBand) Contains(score int) bool {
	return score >= b.Min && score <= b.Max
}

// Midpoint is the band-relative bar a topic mean must reach to not be weak.
func (b PerformanceBand) Midpoint() float64 {
	return float64(b.Min+b.Max) / 2
}

// TopicAttempt is one scored attempt by a student on a resolved topic.
type TopicAttempt struct {
	TopicID string  `json:"topic_id"`
	Score   float64 `json:"score"`
}

// Student is the grouper's view of a student: an overall score plus topic attempts.
type Student struct {
	ID             string         `json:"id"`
	Name           string         `json:"name,omitempty"`
	OverallMastery float64        `json:"overall_mastery"`
	Attempts       []TopicAttempt `json:"attempts,omitempty"`
}

// WeakTopic is a topic whose band-level mean is below the band midpoint.
type WeakTopic struct {
	TopicID      string  `json:"topic_id"`
	TopicName    string  `json:"topic_name"`
	AverageScore float64 `json:"average_score"`
}

// BandGroup is one band with its members and weakest topics.
type BandGroup struct {
	Band       PerformanceBand `json:"band"`
	Members    []Student       `json:"members"`
	WeakTopics []WeakTopic     `json:"weak_topics"`
}
