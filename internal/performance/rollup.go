package performance

import (
	"sort"
	"strings"

	"github.com/noah-isme/placement-analytics-api/internal/models"
)

// BuildTrainerAnalytics rolls a trainer's cohort up into cohort, monthly, per-type and
// per-student views. Filters narrow the raw evaluation set first; per-student figures are
// then produced by the same bucket, summary and trend functions the student view uses.
func BuildTrainerAnalytics(students []models.StudentProfile, evaluations []models.Evaluation, filter models.TrainerAnalyticsFilter, threshold float64) models.TrainerAnalyticsSummary {
	cohort := FilterCohort(students, filter)
	members := make(map[string]struct{}, len(cohort))
	for _, student := range cohort {
		members[student.ID] = struct{}{}
	}

	scoped := make([]models.Evaluation, 0, len(evaluations))
	for _, eval := range evaluations {
		if _, ok := members[eval.StudentProfileID]; !ok {
			continue
		}
		if filter.Month != "" && !recordedIn(eval, filter.Month) {
			continue
		}
		scoped = append(scoped, eval)
	}
	entries, skipped := Normalize(scoped)

	byStudent := make(map[string][]models.EvaluationEntry)
	percentages := make([]float64, 0, len(entries))
	for _, entry := range entries {
		byStudent[entry.StudentProfileID] = append(byStudent[entry.StudentProfileID], entry)
		percentages = append(percentages, entry.Percentage)
	}

	var cohortAvg float64
	if len(percentages) > 0 {
		cohortAvg = mean(percentages)
	}

	rows := make([]models.StudentPerformanceRow, 0, len(cohort))
	for _, student := range cohort {
		rows = append(rows, buildStudentRow(student, byStudent[student.ID]))
	}

	return models.TrainerAnalyticsSummary{
		Summary: models.CohortSummary{
			TotalStudents:      len(cohort),
			AvgScore:           cohortAvg,
			TotalEvaluations:   len(entries),
			SkippedEvaluations: len(skipped),
		},
		MonthlyTrend:  monthlyTrend(entries),
		TypeBreakdown: typeBreakdown(entries),
		PerStudent:    rows,
		Insights: models.CohortInsights{
			MostImproved:           MostImproved(rows),
			StudentsBelowThreshold: BelowThreshold(rows, threshold),
			Threshold:              threshold,
		},
		Skipped: skipped,
	}
}

// FilterCohort applies the batch and student filters and orders the cohort by name.
func FilterCohort(students []models.StudentProfile, filter models.TrainerAnalyticsFilter) []models.StudentProfile {
	batch := strings.TrimSpace(filter.Batch)
	cohort := make([]models.StudentProfile, 0, len(students))
	for _, student := range students {
		if batch != "" && !strings.EqualFold(strings.TrimSpace(student.Batch), batch) {
			continue
		}
		if filter.StudentProfileID != "" && student.ID != filter.StudentProfileID {
			continue
		}
		cohort = append(cohort, student)
	}
	sort.SliceStable(cohort, func(i, j int) bool {
		if cohort[i].Name != cohort[j].Name {
			return cohort[i].Name < cohort[j].Name
		}
		if cohort[i].RollNo != cohort[j].RollNo {
			return cohort[i].RollNo < cohort[j].RollNo
		}
		return cohort[i].ID < cohort[j].ID
	})
	return cohort
}

// MostImproved returns the row with the largest positive trend, or nil when none improved.
func MostImproved(rows []models.StudentPerformanceRow) *models.StudentPerformanceRow {
	var best *models.StudentPerformanceRow
	for i := range rows {
		row := rows[i]
		if row.Trend == nil || *row.Trend <= 0 {
			continue
		}
		if best == nil || *row.Trend > *best.Trend {
			best = &row
		}
	}
	return best
}

// BelowThreshold lists rows whose score is under the threshold, worst first.
func BelowThreshold(rows []models.StudentPerformanceRow, threshold float64) []models.StudentPerformanceRow {
	below := make([]models.StudentPerformanceRow, 0)
	for _, row := range rows {
		if row.AvgScore != nil && *row.AvgScore < threshold {
			below = append(below, row)
		}
	}
	sort.SliceStable(below, func(i, j int) bool {
		return *below[i].AvgScore < *below[j].AvgScore
	})
	return below
}

func buildStudentRow(student models.StudentProfile, entries []models.EvaluationEntry) models.StudentPerformanceRow {
	row := models.StudentPerformanceRow{
		StudentProfileID: student.ID,
		Name:             student.Name,
		RollNo:           student.RollNo,
		Batch:            student.Batch,
		Evaluations:      len(entries),
	}

	buckets := BuildMonthBuckets(entries)
	if overall := BuildOverallSummary(buckets); overall != nil {
		avg := overall.AveragePercentage
		row.AvgScore = &avg
	} else if student.AggregateScore != nil {
		standing := *student.AggregateScore
		row.AvgScore = &standing
	}
	if len(buckets) > 0 {
		latest := buckets[0].Stats.AveragePercentage
		row.LatestScore = &latest
	}
	if trend := AnalyzeTrend(buckets); trend != nil {
		delta := trend.Delta
		row.Trend = &delta
	}
	return row
}

// recordedIn reports whether eval was recorded in month. Undated records belong to no month.
func recordedIn(eval models.Evaluation, month models.MonthKey) bool {
	return eval.RecordedDate != nil && models.NewMonthKey(*eval.RecordedDate) == month
}

func monthlyTrend(entries []models.EvaluationEntry) []models.MonthlyTrendPoint {
	grouped := make(map[models.MonthKey][]float64)
	for _, entry := range entries {
		key := models.NewMonthKey(*entry.RecordedDate)
		grouped[key] = append(grouped[key], entry.Percentage)
	}
	points := make([]models.MonthlyTrendPoint, 0, len(grouped))
	for key, values := range grouped {
		points = append(points, models.MonthlyTrendPoint{
			Month:       key,
			Label:       key.Label(),
			AvgScore:    mean(values),
			Evaluations: len(values),
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Month < points[j].Month
	})
	return points
}

func typeBreakdown(entries []models.EvaluationEntry) []models.TypeBreakdownEntry {
	grouped := make(map[models.EvaluationType][]float64)
	for _, entry := range entries {
		grouped[entry.Type] = append(grouped[entry.Type], entry.Percentage)
	}
	breakdown := make([]models.TypeBreakdownEntry, 0, len(grouped))
	for evalType, values := range grouped {
		breakdown = append(breakdown, models.TypeBreakdownEntry{
			Type:        evalType,
			AvgScore:    mean(values),
			Evaluations: len(values),
		})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Type < breakdown[j].Type
	})
	return breakdown
}
