package summary

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalboard/evalboard/internal/domain"
)

func evalWithOverall(overall int) domain.Evaluation {
	return domain.Evaluation{
		Overall:      overall,
		Clarity:      overall,
		Engagement:   overall,
		Materials:    overall,
		Organization: overall,
		Feedback:     overall,
		Pace:         overall,
		Support:      overall,
		Fairness:     overall,
		Relevance:    overall,
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)

	assert.Equal(t, 0, got.TotalEvaluations)
	assert.Zero(t, got.AverageOverall)
	assert.Zero(t, got.AverageClarity)
	assert.Zero(t, got.AverageEngagement)
	assert.Zero(t, got.AverageMaterials)
	assert.Zero(t, got.AverageOrganization)
	assert.Zero(t, got.AverageFeedback)
	assert.Zero(t, got.AveragePace)
	assert.Zero(t, got.AverageSupport)
	assert.Zero(t, got.AverageFairness)
	assert.Zero(t, got.AverageRelevance)
	assert.Equal(t, domain.RatingDistribution{}, got.RatingDistribution)

	// An empty non-nil slice behaves identically.
	assert.Equal(t, got, Summarize([]domain.Evaluation{}))
}

func TestSummarize_Distribution(t *testing.T) {
	evals := []domain.Evaluation{
		evalWithOverall(5),
		evalWithOverall(5),
		evalWithOverall(4),
		evalWithOverall(3),
		evalWithOverall(1),
	}

	got := Summarize(evals)

	assert.Equal(t, 5, got.TotalEvaluations)
	assert.Equal(t, domain.RatingDistribution{Excellent: 2, Good: 1, Average: 1, Poor: 1}, got.RatingDistribution)
	assert.InDelta(t, 3.6, got.AverageOverall, 1e-9)
}

func TestSummarize_PoorBucketCoversLowValues(t *testing.T) {
	evals := []domain.Evaluation{
		evalWithOverall(2),
		evalWithOverall(1),
		// Range validation is upstream; out-of-range low values still land in poor.
		evalWithOverall(0),
	}

	got := Summarize(evals)
	assert.Equal(t, 3, got.RatingDistribution.Poor)
	assert.Equal(t, 0, got.RatingDistribution.Excellent)
}

func TestSummarize_AveragesPerDimension(t *testing.T) {
	evals := []domain.Evaluation{
		{Overall: 5, Clarity: 4, Engagement: 3, Materials: 2, Organization: 1, Feedback: 5, Pace: 4, Support: 3, Fairness: 2, Relevance: 1},
		{Overall: 3, Clarity: 2, Engagement: 5, Materials: 4, Organization: 3, Feedback: 1, Pace: 2, Support: 5, Fairness: 4, Relevance: 3},
	}

	got := Summarize(evals)

	assert.InDelta(t, 4.0, got.AverageOverall, 1e-9)
	assert.InDelta(t, 3.0, got.AverageClarity, 1e-9)
	assert.InDelta(t, 4.0, got.AverageEngagement, 1e-9)
	assert.InDelta(t, 3.0, got.AverageMaterials, 1e-9)
	assert.InDelta(t, 2.0, got.AverageOrganization, 1e-9)
	assert.InDelta(t, 3.0, got.AverageFeedback, 1e-9)
	assert.InDelta(t, 3.0, got.AveragePace, 1e-9)
	assert.InDelta(t, 4.0, got.AverageSupport, 1e-9)
	assert.InDelta(t, 3.0, got.AverageFairness, 1e-9)
	assert.InDelta(t, 2.0, got.AverageRelevance, 1e-9)
}

func TestSummarize_BucketsSumToTotal(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for _, n := range []int{1, 7, 100, 1000} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			evals := make([]domain.Evaluation, n)
			for i := range evals {
				evals[i] = evalWithOverall(1 + rnd.Intn(5))
			}

			got := Summarize(evals)
			dist := got.RatingDistribution
			assert.Equal(t, n, dist.Excellent+dist.Good+dist.Average+dist.Poor)

			// Averages stay within the valid rating range for in-range inputs.
			require.GreaterOrEqual(t, got.AverageOverall, 1.0)
			require.LessOrEqual(t, got.AverageOverall, 5.0)
		})
	}
}

func TestSummarize_OrderIndependent(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	evals := make([]domain.Evaluation, 50)
	for i := range evals {
		evals[i] = domain.Evaluation{
			Overall:      1 + rnd.Intn(5),
			Clarity:      1 + rnd.Intn(5),
			Engagement:   1 + rnd.Intn(5),
			Materials:    1 + rnd.Intn(5),
			Organization: 1 + rnd.Intn(5),
			Feedback:     1 + rnd.Intn(5),
			Pace:         1 + rnd.Intn(5),
			Support:      1 + rnd.Intn(5),
			Fairness:     1 + rnd.Intn(5),
			Relevance:    1 + rnd.Intn(5),
		}
	}

	want := Summarize(evals)

	shuffled := make([]domain.Evaluation, len(evals))
	copy(shuffled, evals)
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	got := Summarize(shuffled)
	assert.Equal(t, want.TotalEvaluations, got.TotalEvaluations)
	assert.Equal(t, want.RatingDistribution, got.RatingDistribution)
	assert.InDelta(t, want.AverageOverall, got.AverageOverall, 1e-9)
	assert.InDelta(t, want.AverageRelevance, got.AverageRelevance, 1e-9)
}

func TestSummarize_DoesNotMutateInput(t *testing.T) {
	evals := []domain.Evaluation{evalWithOverall(5), evalWithOverall(2)}
	snapshot := make([]domain.Evaluation, len(evals))
	copy(snapshot, evals)

	_ = Summarize(evals)
	assert.Equal(t, snapshot, evals)
}

func BenchmarkSummarize(b *testing.B) {
	rnd := rand.New(rand.NewSource(1))
	evals := make([]domain.Evaluation, 10_000)
	for i := range evals {
		evals[i] = evalWithOverall(1 + rnd.Intn(5))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Summarize(evals)
	}
}
