// Package summary computes dashboard statistics over evaluation records.
package summary

import "github.com/evalboard/evalboard/internal/domain"

// Summarize aggregates a lecturer's evaluations into averages per rating
// dimension and a bucketed distribution of overall scores. The caller is
// responsible for pre-filtering records by lecturer; Summarize never filters,
// mutates its input, or performs I/O.
//
// The function is total: an empty input yields a Summary whose counts and
// averages are all exactly zero.
func Summarize(evals []domain.Evaluation) domain.Summary {
	s := domain.Summary{TotalEvaluations: len(evals)}
	if len(evals) == 0 {
		return s
	}

	var (
		sumOverall      int
		sumClarity      int
		sumEngagement   int
		sumMaterials    int
		sumOrganization int
		sumFeedback     int
		sumPace         int
		sumSupport      int
		sumFairness     int
		sumRelevance    int
	)

	for _, e := range evals {
		sumOverall += e.Overall
		sumClarity += e.Clarity
		sumEngagement += e.Engagement
		sumMaterials += e.Materials
		sumOrganization += e.Organization
		sumFeedback += e.Feedback
		sumPace += e.Pace
		sumSupport += e.Support
		sumFairness += e.Fairness
		sumRelevance += e.Relevance

		// Range validation happens upstream; anything at or below 2 lands
		// in the poor bucket.
		switch {
		case e.Overall == 5:
			s.RatingDistribution.Excellent++
		case e.Overall == 4:
			s.RatingDistribution.Good++
		case e.Overall == 3:
			s.RatingDistribution.Average++
		default:
			s.RatingDistribution.Poor++
		}
	}

	n := float64(len(evals))
	s.AverageOverall = float64(sumOverall) / n
	s.AverageClarity = float64(sumClarity) / n
	s.AverageEngagement = float64(sumEngagement) / n
	s.AverageMaterials = float64(sumMaterials) / n
	s.AverageOrganization = float64(sumOrganization) / n
	s.AverageFeedback = float64(sumFeedback) / n
	s.AveragePace = float64(sumPace) / n
	s.AverageSupport = float64(sumSupport) / n
	s.AverageFairness = float64(sumFairness) / n
	s.AverageRelevance = float64(sumRelevance) / n

	return s
}
