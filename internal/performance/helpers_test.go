package performance

import (
	"time"

	"github.com/noah-isme/placement-analytics-api/internal/models"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 10, 0, 0, 0, time.UTC)
}

func newEval(id, studentID string, evalType models.EvaluationType, score, maxScore float64, recorded time.Time) models.Evaluation {
	return models.Evaluation{
		ID:               id,
		StudentProfileID: studentID,
		TrainerID:        "trainer-1",
		Type:             evalType,
		Score:            score,
		MaxScore:         maxScore,
		RecordedDate:     &recorded,
		CreatedAt:        recorded,
		UpdatedAt:        recorded,
	}
}

func bucket(key models.MonthKey, perType map[models.EvaluationType]float64) models.MonthBucket {
	return models.MonthBucket{
		MonthKey: key,
		Label:    key.Label(),
		Stats: models.MonthStats{
			AveragePercentage: meanOfTypes(perType),
			PerTypeAverages:   perType,
		},
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
