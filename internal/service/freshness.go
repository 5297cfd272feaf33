package service

import (
	"context"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/noah-isme/placement-analytics-api/internal/models"
	appErrors "github.com/noah-isme/placement-analytics-api/pkg/errors"
)

func loadFreshness(ctx context.Context, evaluations EvaluationReader, metrics *MetricsService, filter models.EvaluationFilter) (models.EvaluationFreshness, error) {
	start := time.Now()
	freshness, err := evaluations.Freshness(ctx, filter)
	if err != nil {
		return models.EvaluationFreshness{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check evaluation freshness")
	}
	metrics.ObserveDBQuery("evaluations_freshness", time.Since(start))
	return freshness, nil
}

// freshnessStamp renders an evaluation fingerprint for cache keys.
func freshnessStamp(freshness models.EvaluationFreshness) string {
	latest := "empty"
	if freshness.LatestModification != nil {
		latest = freshness.LatestModification.UTC().Format(time.RFC3339Nano)
	}
	return latest + "#" + strconv.Itoa(freshness.Count)
}

// cohortDigest fingerprints every roster field the rollup reads, so approvals, removals and
// profile edits produce a new cache key.
func cohortDigest(cohort []models.StudentProfile) string {
	digest := xxhash.New()
	for _, student := range cohort {
		trainer := ""
		if student.TrainerID != nil {
			trainer = *student.TrainerID
		}
		score := "-"
		if student.AggregateScore != nil {
			score = strconv.FormatFloat(*student.AggregateScore, 'g', -1, 64)
		}
		for _, field := range []string{student.ID, student.Name, student.RollNo, student.Batch, score, trainer, string(student.ApprovalStatus)} {
			_, _ = digest.WriteString(field)
			_, _ = digest.Write([]byte{0})
		}
		_, _ = digest.Write([]byte{'\n'})
	}
	return strconv.FormatUint(digest.Sum64(), 16)
}

// cohortLatestModification is the newest change across the cohort's evaluations and profiles.
func cohortLatestModification(freshness models.EvaluationFreshness, cohort []models.StudentProfile) *time.Time {
	latest := freshness.LatestModification
	for _, student := range cohort {
		if student.UpdatedAt.IsZero() {
			continue
		}
		if latest == nil || student.UpdatedAt.After(*latest) {
			ts := student.UpdatedAt.UTC()
			latest = &ts
		}
	}
	return latest
}
