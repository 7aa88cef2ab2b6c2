package types

// RecommendationUnit says how many practice units of a topic a group should get.
type RecommendationUnit struct {
	TopicName       string `json:"topic_name"`
	DifficultyLabel string `json:"difficulty_label"`
	UnitCount       int    `json:"unit_count"`
}

// BandRecommendation is the allocator output for one band.
type BandRecommendation struct {
	Band  BandID               `json:"band"`
	Units []RecommendationUnit `json:"units"`
}

// TotalUnits sums the unit counts across the recommendation.
func (r BandRecommendation) TotalUnits() int {
	total := 0
	for _, u := range r.Units {
		total += u.UnitCount
	}
	return total
}
