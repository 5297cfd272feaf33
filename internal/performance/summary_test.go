package performance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/placement-analytics-api/internal/models"
)

func TestGradeBoundaries(t *testing.T) {
	cases := map[float64]string{
		100:   models.GradeExcellent,
		80.0:  models.GradeExcellent,
		79.99: models.GradeGood,
		60.0:  models.GradeGood,
		59.99: models.GradeNeedsImprovement,
		0:     models.GradeNeedsImprovement,
	}
	for avg, want := range cases {
		assert.Equal(t, want, Grade(avg), "average %v", avg)
	}
}

func TestBuildOverallSummaryOneVotePerMonth(t *testing.T) {
	buckets := []models.MonthBucket{
		bucket("2025-03", map[models.EvaluationType]float64{models.EvaluationAptitude: 90, models.EvaluationLogical: 70}),
		bucket("2025-02", map[models.EvaluationType]float64{models.EvaluationAptitude: 50}),
		bucket("2025-01", map[models.EvaluationType]float64{models.EvaluationLogical: 60, models.EvaluationMachine: 80}),
	}

	summary := BuildOverallSummary(buckets)

	require.NotNil(t, summary)
	assert.InDelta(t, (80.0+50+70)/3, summary.AveragePercentage, 1e-9)
	assert.InDelta(t, 70.0, summary.PerTypeAverages[models.EvaluationAptitude], 1e-9)
	assert.InDelta(t, 65.0, summary.PerTypeAverages[models.EvaluationLogical], 1e-9)
	assert.InDelta(t, 80.0, summary.PerTypeAverages[models.EvaluationMachine], 1e-9)
	assert.Equal(t, models.MonthKey("2025-03"), summary.BestMonth.MonthKey)
	assert.Equal(t, models.MonthKey("2025-02"), summary.WeakestMonth.MonthKey)
	assert.Equal(t, 3, summary.MonthsCount)
	assert.Equal(t, models.GradeGood, summary.Grade)
}

func TestBuildOverallSummaryTiesPreferRecentMonth(t *testing.T) {
	summary := BuildOverallSummary([]models.MonthBucket{
		bucket("2024-10", map[models.EvaluationType]float64{models.EvaluationAptitude: 75}),
		bucket("2025-01", map[models.EvaluationType]float64{models.EvaluationAptitude: 75}),
		bucket("2024-12", map[models.EvaluationType]float64{models.EvaluationAptitude: 75}),
	})

	require.NotNil(t, summary)
	assert.Equal(t, models.MonthKey("2025-01"), summary.BestMonth.MonthKey)
	assert.Equal(t, models.MonthKey("2025-01"), summary.WeakestMonth.MonthKey)
}

func TestBuildOverallSummaryAverageWithinMonthBounds(t *testing.T) {
	result := Aggregate([]models.Evaluation{
		newEval("e1", "s1", models.EvaluationAptitude, 13, 20, day(2025, time.January, 6)),
		newEval("e2", "s1", models.EvaluationLogical, 4, 9, day(2025, time.February, 3)),
		newEval("e3", "s1", models.EvaluationSpringMeet, 47, 50, day(2025, time.March, 22)),
		newEval("e4", "s1", models.EvaluationMachine, 7, 30, day(2025, time.March, 24)),
	})

	summary := BuildOverallSummary(result.Buckets)
	require.NotNil(t, summary)
	assert.GreaterOrEqual(t, summary.AveragePercentage, summary.WeakestMonth.AveragePercentage)
	assert.LessOrEqual(t, summary.AveragePercentage, summary.BestMonth.AveragePercentage)
}

func TestBuildOverallSummaryWithoutData(t *testing.T) {
	assert.Nil(t, BuildOverallSummary(nil))
	assert.Nil(t, BuildOverallSummary([]models.MonthBucket{{MonthKey: "2025-01", Label: "January 2025"}}))
}
