package domain

// RatingDistribution buckets overall scores: excellent=5, good=4, average=3,
// poor covers 1-2 (and anything below the valid range).
type RatingDistribution struct {
	Excellent int
	Good      int
	Average   int
	Poor      int
}

// Summary holds aggregated statistics over a lecturer's evaluations. It is
// derived on demand and never persisted. All fields are zero when no
// evaluations exist.
type Summary struct {
	TotalEvaluations int

	AverageOverall      float64
	AverageClarity      float64
	AverageEngagement   float64
	AverageMaterials    float64
	AverageOrganization float64
	AverageFeedback     float64
	AveragePace         float64
	AverageSupport      float64
	AverageFairness     float64
	AverageRelevance    float64

	RatingDistribution RatingDistribution
}
