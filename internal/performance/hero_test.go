package performance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/placement-analytics-api/internal/models"
)

func TestBuildHeroSnapshotStatus(t *testing.T) {
	march := Aggregate([]models.Evaluation{
		newEval("e1", "s1", models.EvaluationAptitude, 20, 25, day(2025, time.March, 10)),
		newEval("e2", "s1", models.EvaluationLogical, 6, 10, day(2025, time.March, 18)),
	}).Latest()
	require.NotNil(t, march)

	inProgress := BuildHeroSnapshot(march, time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, models.PeriodInProgress, inProgress.Status)
	assert.Equal(t, "March 2025", inProgress.Period.Label)
	require.NotNil(t, inProgress.AveragePercentage)
	assert.InDelta(t, 70.0, *inProgress.AveragePercentage, 1e-9)
	require.NotNil(t, inProgress.LastUpdated)
	assert.Equal(t, day(2025, time.March, 18), *inProgress.LastUpdated)

	completed := BuildHeroSnapshot(march, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, models.PeriodCompleted, completed.Status)
}

func TestBuildHeroSnapshotWithoutData(t *testing.T) {
	hero := BuildHeroSnapshot(nil, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "June 2025", hero.Period.Label)
	assert.Nil(t, hero.AveragePercentage)
	assert.Nil(t, hero.LastUpdated)
	assert.Empty(t, hero.PerTypeAverages)
	assert.Equal(t, models.PeriodInProgress, hero.Status)
}

func TestCheckFreshness(t *testing.T) {
	seen := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	newer := seen.Add(time.Minute)

	assert.Equal(t, models.AlertsResponse{HasUpdates: false, LastUpdated: &seen}, CheckFreshness(&seen, nil))
	assert.Equal(t, models.AlertsResponse{HasUpdates: false, LastUpdated: nil}, CheckFreshness(nil, nil))

	fresh := CheckFreshness(&seen, &newer)
	assert.True(t, fresh.HasUpdates)
	assert.Equal(t, newer, *fresh.LastUpdated)

	stale := CheckFreshness(&newer, &newer)
	assert.False(t, stale.HasUpdates)

	first := CheckFreshness(nil, &seen)
	assert.True(t, first.HasUpdates)
}

func TestParseMonthKey(t *testing.T) {
	key, err := models.ParseMonthKey("2025-03")
	require.NoError(t, err)
	assert.Equal(t, "March 2025", key.Label())
	assert.Equal(t, 2025, key.Year())

	for _, raw := range []string{"2025-3", "25-03", "2025-13", "2025/03", ""} {
		_, err := models.ParseMonthKey(raw)
		assert.Error(t, err, raw)
	}
	assert.Equal(t, models.MonthKey("2025-01"), models.NewMonthKey(time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)))
}
