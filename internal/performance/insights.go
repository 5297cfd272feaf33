package performance

import (
	"fmt"
	"math"

	"github.com/noah-isme/placement-analytics-api/internal/models"
)

const (
	// NoDataInsight is shown before any evaluation has been recorded.
	NoDataInsight = "Once your trainer records evaluations, you will see personalised insights here."
	// SteadyInsight is shown when no rule produced a more specific tip.
	SteadyInsight = "Your performance is steady. Keep following your practice plan and aim a little higher next month."
)

// GenerateInsights derives tips from the latest month and the current trend, weakest area first.
func GenerateInsights(latest *models.MonthBucket, trend *models.TrendResult) []string {
	if latest == nil && trend == nil {
		return []string{NoDataInsight}
	}

	var tips []string
	if latest != nil && len(latest.Stats.PerTypeAverages) > 0 {
		weakest, strongest := extremes(latest.Stats.PerTypeAverages)
		weakestPct := latest.Stats.PerTypeAverages[weakest]
		strongestPct := latest.Stats.PerTypeAverages[strongest]
		tips = append(tips,
			fmt.Sprintf("Your weakest area is %s at %.1f%%. Revise the fundamentals and attempt extra %s practice sets this week.", weakest.Label(), weakestPct, weakest.Label()),
			fmt.Sprintf("%s is your strongest area at %.1f%%. Keep practising to maintain it.", strongest.Label(), strongestPct),
		)
	}

	if trend != nil {
		switch ClassifyDelta(trend.Delta) {
		case models.TrendUp:
			tips = append(tips, fmt.Sprintf("Great progress! Your average improved by %.1f%% compared with %s.", trend.Delta, trend.PreviousLabel))
		case models.TrendDown:
			tips = append(tips, fmt.Sprintf("Your average dropped by %.1f%% compared with %s. Review your recent mistakes to get back on track.", math.Abs(trend.Delta), trend.PreviousLabel))
		}
	}

	if len(tips) == 0 {
		return []string{SteadyInsight}
	}
	return tips
}

// extremes returns the lowest and highest scoring types; ties go to the alphabetically first key.
func extremes(perType map[models.EvaluationType]float64) (models.EvaluationType, models.EvaluationType) {
	keys := sortedTypes(perType)
	weakest, strongest := keys[0], keys[0]
	for _, key := range keys[1:] {
		if perType[key] < perType[weakest] {
			weakest = key
		}
		if perType[key] > perType[strongest] {
			strongest = key
		}
	}
	return weakest, strongest
}
