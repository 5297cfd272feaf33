package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/placement-analytics-api/internal/models"
)

func TestGenerateInsightsNoData(t *testing.T) {
	assert.Equal(t, []string{NoDataInsight}, GenerateInsights(nil, nil))
}

func TestGenerateInsightsWeakestFirst(t *testing.T) {
	latest := bucket("2025-03", map[models.EvaluationType]float64{
		models.EvaluationAptitude:   82,
		models.EvaluationLogical:    55.2,
		models.EvaluationSpringMeet: 91,
	})
	trend := &models.TrendResult{Direction: models.TrendUp, Delta: 4.5, PreviousLabel: "February 2025"}

	tips := GenerateInsights(&latest, trend)

	require.Len(t, tips, 3)
	assert.Contains(t, tips[0], "Logical Reasoning at 55.2%")
	assert.Contains(t, tips[1], "Spring Meet is your strongest area at 91.0%")
	assert.Equal(t, "Great progress! Your average improved by 4.5% compared with February 2025.", tips[2])
}

func TestGenerateInsightsTieBreaksAlphabetically(t *testing.T) {
	latest := bucket("2025-03", map[models.EvaluationType]float64{
		models.EvaluationMachine:  70,
		models.EvaluationLogical:  70,
		models.EvaluationAptitude: 70,
	})

	tips := GenerateInsights(&latest, nil)

	require.Len(t, tips, 2)
	assert.Contains(t, tips[0], "weakest area is Aptitude")
	assert.Contains(t, tips[1], "Aptitude is your strongest")
}

func TestGenerateInsightsDeclineAndFlatTrend(t *testing.T) {
	latest := bucket("2025-03", map[models.EvaluationType]float64{models.EvaluationMachine: 40})

	declining := GenerateInsights(&latest, &models.TrendResult{Direction: models.TrendDown, Delta: -6.3, PreviousLabel: "February 2025"})
	require.Len(t, declining, 3)
	assert.Contains(t, declining[2], "dropped by 6.3% compared with February 2025")

	flat := GenerateInsights(&latest, &models.TrendResult{Direction: models.TrendFlat, Delta: 0.3, PreviousLabel: "February 2025"})
	assert.Len(t, flat, 2)
}

func TestGenerateInsightsSteadyFallback(t *testing.T) {
	empty := models.MonthBucket{MonthKey: "2025-03", Label: "March 2025"}

	assert.Equal(t, []string{SteadyInsight}, GenerateInsights(&empty, nil))
	assert.Equal(t, []string{SteadyInsight}, GenerateInsights(&empty, &models.TrendResult{Delta: 0.1}))
}
