package performance

import (
	"sort"

	"github.com/noah-isme/placement-analytics-api/internal/models"
)

const (
	excellentGradeFloor = 80.0
	goodGradeFloor      = 60.0
)

// Grade maps an average percentage to its performance grade. Lower bounds are inclusive.
func Grade(average float64) string {
	switch {
	case average >= excellentGradeFloor:
		return models.GradeExcellent
	case average >= goodGradeFloor:
		return models.GradeGood
	default:
		return models.GradeNeedsImprovement
	}
}

// BuildOverallSummary reduces month buckets into a lifetime summary with one vote per month.
// It returns nil when no bucket carries data.
func BuildOverallSummary(buckets []models.MonthBucket) *models.OverallPerformanceSummary {
	dated := make([]models.MonthBucket, 0, len(buckets))
	for _, bucket := range buckets {
		if bucket.HasData() {
			dated = append(dated, bucket)
		}
	}
	if len(dated) == 0 {
		return nil
	}
	sort.Slice(dated, func(i, j int) bool {
		return dated[i].MonthKey < dated[j].MonthKey
	})

	monthAverages := make([]float64, 0, len(dated))
	typeValues := make(map[models.EvaluationType][]float64)
	best, weakest := dated[0], dated[0]
	for _, bucket := range dated {
		avg := bucket.Stats.AveragePercentage
		monthAverages = append(monthAverages, avg)
		for evalType, value := range bucket.Stats.PerTypeAverages {
			typeValues[evalType] = append(typeValues[evalType], value)
		}
		// Buckets are ascending, so >= and <= let the most recent month win ties.
		if avg >= best.Stats.AveragePercentage {
			best = bucket
		}
		if avg <= weakest.Stats.AveragePercentage {
			weakest = bucket
		}
	}

	perType := make(map[models.EvaluationType]float64, len(typeValues))
	for evalType, values := range typeValues {
		perType[evalType] = mean(values)
	}

	average := mean(monthAverages)
	return &models.OverallPerformanceSummary{
		AveragePercentage: average,
		PerTypeAverages:   perType,
		BestMonth:         monthReference(best),
		WeakestMonth:      monthReference(weakest),
		MonthsCount:       len(dated),
		Grade:             Grade(average),
	}
}

func monthReference(bucket models.MonthBucket) models.MonthReference {
	return models.MonthReference{
		MonthKey:          bucket.MonthKey,
		Label:             bucket.Label,
		AveragePercentage: bucket.Stats.AveragePercentage,
	}
}
