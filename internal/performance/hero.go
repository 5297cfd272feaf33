package performance

import (
	"time"

	"github.com/noah-isme/placement-analytics-api/internal/models"
)

// BuildHeroSnapshot summarises the latest month for the dashboard hero card.
func BuildHeroSnapshot(latest *models.MonthBucket, now time.Time) models.HeroSnapshot {
	if latest == nil {
		return models.HeroSnapshot{
			Period:          models.HeroPeriod{Label: models.NewMonthKey(now).Label()},
			PerTypeAverages: map[models.EvaluationType]float64{},
			Status:          models.PeriodInProgress,
		}
	}

	status := models.PeriodInProgress
	if now.UTC().After(EndOfMonth(latest.MonthKey.Start())) {
		status = models.PeriodCompleted
	}

	var lastUpdated *time.Time
	for _, entry := range latest.WeeklyEntries {
		if entry.UpdatedAt.IsZero() {
			continue
		}
		if lastUpdated == nil || entry.UpdatedAt.After(*lastUpdated) {
			ts := entry.UpdatedAt.UTC()
			lastUpdated = &ts
		}
	}

	average := latest.Stats.AveragePercentage
	return models.HeroSnapshot{
		Period:            models.HeroPeriod{Label: latest.Label},
		AveragePercentage: &average,
		PerTypeAverages:   latest.Stats.PerTypeAverages,
		Status:            status,
		LastUpdated:       lastUpdated,
	}
}
