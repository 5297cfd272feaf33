package performance

import (
	"fmt"
	"time"

	"github.com/noah-isme/placement-analytics-api/internal/models"
	appErrors "github.com/noah-isme/placement-analytics-api/pkg/errors"
)

const (
	weekLabelLayout  = "Jan 2, 2006"
	monthLabelLayout = "January 2006"
)

// ResolvePeriod maps an evaluation type and date onto its canonical UTC window.
func ResolvePeriod(evalType models.EvaluationType, recorded time.Time) (models.Period, error) {
	freq, ok := evalType.Frequency()
	if !ok {
		return models.Period{}, appErrors.Clone(appErrors.ErrUnknownEvaluationType, fmt.Sprintf("unknown evaluation type %q", evalType))
	}
	switch freq {
	case models.FrequencyMonthly:
		start := StartOfMonth(recorded)
		return models.Period{
			PeriodStart: start,
			PeriodEnd:   start.AddDate(0, 1, 0).Add(-time.Millisecond),
			PeriodLabel: start.Format(monthLabelLayout),
		}, nil
	default:
		start := StartOfWeek(recorded)
		return models.Period{
			PeriodStart: start,
			PeriodEnd:   start.AddDate(0, 0, 7).Add(-time.Millisecond),
			PeriodLabel: "Week of " + start.Format(weekLabelLayout),
		}, nil
	}
}

// StartOfWeek returns Monday 00:00 UTC of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	day := t.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfMonth returns the first instant of t's UTC calendar month.
func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last millisecond of t's UTC calendar month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Millisecond)
}
