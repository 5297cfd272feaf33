package performance

import (
	"sort"

	"github.com/noah-isme/placement-analytics-api/internal/models"
)

// Aggregation is the year/month grouping of one student's evaluations.
type Aggregation struct {
	Years map[int]models.YearBucket `json:"years"`
	// Buckets lists every month bucket, most recent first.
	Buckets []models.MonthBucket       `json:"buckets"`
	Skipped []models.SkippedEvaluation `json:"skipped"`
}

// Latest returns the most recent bucket or nil when there is none.
func (a Aggregation) Latest() *models.MonthBucket {
	if len(a.Buckets) == 0 {
		return nil
	}
	latest := a.Buckets[0]
	return &latest
}

// Normalize validates evaluations, resolves their periods and returns the usable entries
// in canonical order together with the records that had to be excluded.
func Normalize(evaluations []models.Evaluation) ([]models.EvaluationEntry, []models.SkippedEvaluation) {
	entries := make([]models.EvaluationEntry, 0, len(evaluations))
	var skipped []models.SkippedEvaluation
	for _, eval := range evaluations {
		entry, reason, ok := resolveEntry(eval)
		if !ok {
			skipped = append(skipped, models.SkippedEvaluation{
				EvaluationID:     eval.ID,
				StudentProfileID: eval.StudentProfileID,
				Reason:           reason,
			})
			continue
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entryLess(entries[i], entries[j])
	})
	sort.Slice(skipped, func(i, j int) bool {
		if skipped[i].EvaluationID == skipped[j].EvaluationID {
			return skipped[i].Reason < skipped[j].Reason
		}
		return skipped[i].EvaluationID < skipped[j].EvaluationID
	})
	return entries, skipped
}

// Aggregate groups a student's evaluations by calendar year and month.
func Aggregate(evaluations []models.Evaluation) Aggregation {
	entries, skipped := Normalize(evaluations)
	buckets := BuildMonthBuckets(entries)

	years := make(map[int]models.YearBucket)
	for _, bucket := range buckets {
		year := bucket.MonthKey.Year()
		yb, ok := years[year]
		if !ok {
			yb = models.YearBucket{Year: year, Months: make(map[models.MonthKey]models.MonthBucket)}
		}
		yb.Months[bucket.MonthKey] = bucket
		years[year] = yb
	}

	return Aggregation{Years: years, Buckets: buckets, Skipped: skipped}
}

// BuildMonthBuckets files canonical entries under their calendar month and computes stats.
// The result is sorted by month, most recent first.
func BuildMonthBuckets(entries []models.EvaluationEntry) []models.MonthBucket {
	grouped := make(map[models.MonthKey][]models.EvaluationEntry)
	for _, entry := range entries {
		key := models.NewMonthKey(*entry.RecordedDate)
		grouped[key] = append(grouped[key], entry)
	}

	buckets := make([]models.MonthBucket, 0, len(grouped))
	for key, monthEntries := range grouped {
		buckets = append(buckets, models.MonthBucket{
			MonthKey:      key,
			Label:         key.Label(),
			WeeklyEntries: monthEntries,
			Stats:         computeMonthStats(monthEntries),
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].MonthKey > buckets[j].MonthKey
	})
	return buckets
}

func computeMonthStats(entries []models.EvaluationEntry) models.MonthStats {
	byType := make(map[models.EvaluationType][]float64)
	for _, entry := range entries {
		byType[entry.Type] = append(byType[entry.Type], entry.Percentage)
	}
	perType := make(map[models.EvaluationType]float64, len(byType))
	for evalType, values := range byType {
		perType[evalType] = mean(values)
	}
	return models.MonthStats{
		AveragePercentage: meanOfTypes(perType),
		PerTypeAverages:   perType,
	}
}

func resolveEntry(eval models.Evaluation) (models.EvaluationEntry, models.SkipReason, bool) {
	if !eval.Type.Valid() {
		return models.EvaluationEntry{}, models.SkipUnknownType, false
	}
	if eval.RecordedDate == nil || eval.RecordedDate.IsZero() {
		return models.EvaluationEntry{}, models.SkipMissingRecordedDate, false
	}
	if eval.MaxScore <= 0 {
		return models.EvaluationEntry{}, models.SkipInvalidMaxScore, false
	}
	if eval.Score < 0 || eval.Score > eval.MaxScore {
		return models.EvaluationEntry{}, models.SkipScoreOutOfRange, false
	}
	period, err := ResolvePeriod(eval.Type, *eval.RecordedDate)
	if err != nil {
		return models.EvaluationEntry{}, models.SkipUnknownType, false
	}
	recorded := eval.RecordedDate.UTC()
	eval.RecordedDate = &recorded
	return models.EvaluationEntry{
		Evaluation: eval,
		Period:     period,
		Percentage: eval.Percentage(),
	}, "", true
}

func entryLess(a, b models.EvaluationEntry) bool {
	if !a.RecordedDate.Equal(*b.RecordedDate) {
		return a.RecordedDate.Before(*b.RecordedDate)
	}
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	if a.StudentProfileID != b.StudentProfileID {
		return a.StudentProfileID < b.StudentProfileID
	}
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.MaxScore < b.MaxScore
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// meanOfTypes averages per-type values in type-key order so the float sum is stable.
func meanOfTypes(perType map[models.EvaluationType]float64) float64 {
	keys := sortedTypes(perType)
	values := make([]float64, 0, len(keys))
	for _, key := range keys {
		values = append(values, perType[key])
	}
	return mean(values)
}

func sortedTypes(perType map[models.EvaluationType]float64) []models.EvaluationType {
	keys := make([]models.EvaluationType, 0, len(perType))
	for key := range perType {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
