package performance

import (
	"fmt"
	"math"
	"sort"

	"github.com/noah-isme/placement-analytics-api/internal/models"
)

// TrendThreshold is the smallest change, in percentage points, reported as up or down.
// Both the student and the trainer views classify trends with it.
const TrendThreshold = 0.5

// deltaPrecision bounds the float noise removed from a difference of averages.
const deltaPrecision = 1e6

// RoundDelta strips accumulated float error so a rise of exactly TrendThreshold is not
// reported as 0.49999999999999956.
func RoundDelta(delta float64) float64 {
	return math.Round(delta*deltaPrecision) / deltaPrecision
}

// ClassifyDelta maps a signed change onto a trend direction.
func ClassifyDelta(delta float64) models.TrendDirection {
	delta = RoundDelta(delta)
	switch {
	case delta >= TrendThreshold:
		return models.TrendUp
	case delta <= -TrendThreshold:
		return models.TrendDown
	default:
		return models.TrendFlat
	}
}

// AnalyzeTrend compares the two most recent buckets that carry data. It returns nil when
// fewer than two such buckets exist.
func AnalyzeTrend(buckets []models.MonthBucket) *models.TrendResult {
	dated := make([]models.MonthBucket, 0, len(buckets))
	for _, bucket := range buckets {
		if bucket.HasData() {
			dated = append(dated, bucket)
		}
	}
	if len(dated) < 2 {
		return nil
	}
	sort.Slice(dated, func(i, j int) bool {
		return dated[i].MonthKey > dated[j].MonthKey
	})

	latest, previous := dated[0], dated[1]
	delta := RoundDelta(latest.Stats.AveragePercentage - previous.Stats.AveragePercentage)
	direction := ClassifyDelta(delta)
	return &models.TrendResult{
		Direction:     direction,
		Delta:         delta,
		Label:         fmt.Sprintf("Performance %s %.1f%% vs %s", direction, math.Abs(delta), previous.Label),
		LatestMonth:   latest.MonthKey,
		PreviousMonth: previous.MonthKey,
		PreviousLabel: previous.Label,
	}
}
