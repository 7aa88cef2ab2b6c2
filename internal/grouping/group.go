package grouping

import (
	"fmt"
	"sort"

	"github.com/jonathan/diagnostic-engine/internal/types"
)

// MaxWeakTopics caps the weak-topic list per band.
const MaxWeakTopics = 5

// GroupStudents assigns every student with data to exactly one band and
// computes each band's weak topics. Students whose overall score is 0 have
// no data and are left out of every band. The result always holds one
// group per band, in band-table order.
func GroupStudents(students []types.Student, topics []types.Topic) ([]types.BandGroup, error) {
	if err := CheckBands(Bands); err != nil {
		return nil, err
	}
	for i := range students {
		if err := checkStudent(&students[i]); err != nil {
			return nil, err
		}
	}

	groups := make([]types.BandGroup, len(Bands))
	for i, b := range Bands {
		groups[i] = types.BandGroup{
			Band:       b,
			Members:    []types.Student{},
			WeakTopics: []types.WeakTopic{},
		}
	}

	for _, s := range students {
		if s.OverallMastery == 0 {
			continue
		}
		idx := bandIndex(s.OverallMastery)
		if idx < 0 {
			return nil, &BandError{Message: fmt.Sprintf("no band contains score %v", s.OverallMastery)}
		}
		groups[idx].Members = append(groups[idx].Members, s)
	}

	for i := range groups {
		if len(groups[i].Members) == 0 {
			continue
		}
		groups[i].WeakTopics = WeakTopics(groups[i].Band, groups[i].Members, topics)
	}
	return groups, nil
}

// WeakTopics returns the topics whose band-level mean falls strictly below
// the band midpoint, lowest first, capped at MaxWeakTopics. A topic's mean
// is taken over the members who attempted it; each member contributes the
// mean of their own attempts. Unattempted topics are skipped.
func WeakTopics(band types.PerformanceBand, members []types.Student, topics []types.Topic) []types.WeakTopic {
	bar := band.Midpoint()
	weak := []types.WeakTopic{}
	seen := make(map[string]bool, len(topics))

	for _, topic := range topics {
		if seen[topic.ID] {
			continue
		}
		seen[topic.ID] = true

		mean, ok := topicMean(topic.ID, members)
		if !ok || mean >= bar {
			continue
		}
		weak = append(weak, types.WeakTopic{
			TopicID:      topic.ID,
			TopicName:    topic.Name,
			AverageScore: mean,
		})
	}

	sort.SliceStable(weak, func(i, j int) bool {
		return weak[i].AverageScore < weak[j].AverageScore
	})
	if len(weak) > MaxWeakTopics {
		weak = weak[:MaxWeakTopics]
	}
	return weak
}

func topicMean(topicID string, members []types.Student) (float64, bool) {
	total := 0.0
	attempted := 0
	for _, m := range members {
		sum, n := 0.0, 0
		for _, a := range m.Attempts {
			if a.TopicID == topicID {
				sum += a.Score
				n++
			}
		}
		if n == 0 {
			continue
		}
		total += sum / float64(n)
		attempted++
	}
	if attempted == 0 {
		return 0, false
	}
	return total / float64(attempted), true
}

func bandIndex(score float64) int {
	b, ok := BandFor(score)
	if !ok {
		return -1
	}
	for i := range Bands {
		if Bands[i].ID == b.ID {
			return i
		}
	}
	return -1
}

func checkStudent(s *types.Student) error {
	if err := types.CheckScore(fmt.Sprintf("student %s overall", s.ID), s.OverallMastery); err != nil {
		return err
	}
	for _, a := range s.Attempts {
		if err := types.CheckScore(fmt.Sprintf("student %s topic %s", s.ID, a.TopicID), a.Score); err != nil {
			return err
		}
	}
	return nil
}
