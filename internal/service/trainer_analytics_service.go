package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/placement-analytics-api/internal/models"
	"github.com/noah-isme/placement-analytics-api/internal/performance"
	appErrors "github.com/noah-isme/placement-analytics-api/pkg/errors"
	"github.com/noah-isme/placement-analytics-api/pkg/export"
)

// ExportFormat selects the rendering of a trainer export.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// TrainerAnalyticsQuery identifies the cohort and filters of a trainer analytics request.
type TrainerAnalyticsQuery struct {
	TrainerID string
	Filter    models.TrainerAnalyticsFilter
	// Threshold overrides the configured default when set.
	Threshold *float64
}

// ExportFile is a rendered trainer export.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

type tableRenderer interface {
	Render(table export.Table) ([]byte, error)
}

// DefaultBelowThreshold applies when no threshold is configured.
const DefaultBelowThreshold = 60.0

// TrainerAnalyticsConfig tunes trainer analytics behaviour. A nil DefaultThreshold means
// DefaultBelowThreshold; zero is a valid configured threshold.
type TrainerAnalyticsConfig struct {
	DefaultThreshold *float64
}

// TrainerAnalyticsService serves the trainer cohort analytics views.
type TrainerAnalyticsService struct {
	profiles    StudentProfileReader
	evaluations EvaluationReader
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
	csv         tableRenderer
	pdf         tableRenderer
	cfg         TrainerAnalyticsConfig
	now         func() time.Time
}

// NewTrainerAnalyticsService constructs a TrainerAnalyticsService.
func NewTrainerAnalyticsService(profiles StudentProfileReader, evaluations EvaluationReader, cache *CacheService, metrics *MetricsService, cfg TrainerAnalyticsConfig, logger *zap.Logger) *TrainerAnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultThreshold == nil {
		threshold := DefaultBelowThreshold
		cfg.DefaultThreshold = &threshold
	}
	return &TrainerAnalyticsService{
		profiles:    profiles,
		evaluations: evaluations,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		cfg:         cfg,
		now:         time.Now,
	}
}

// Analytics returns the cohort rollup. The boolean reports a cache hit.
func (s *TrainerAnalyticsService) Analytics(ctx context.Context, query TrainerAnalyticsQuery) (*models.TrainerAnalyticsSummary, bool, error) {
	if query.TrainerID == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "trainerId is required")
	}
	threshold := s.threshold(query.Threshold)

	cohort, err := s.cohort(ctx, query)
	if err != nil {
		return nil, false, err
	}
	filter := cohortEvaluationFilter(cohort)
	freshness, err := loadFreshness(ctx, s.evaluations, s.metrics, filter)
	if err != nil {
		return nil, false, err
	}

	cacheKey := makeAnalyticsCacheKey("trainer", query.TrainerID, strings.ToLower(strings.TrimSpace(query.Filter.Batch)),
		query.Filter.StudentProfileID, query.Filter.Month.String(), strconv.FormatFloat(threshold, 'f', -1, 64),
		cohortDigest(cohort), freshnessStamp(freshness))
	var cached models.TrainerAnalyticsSummary
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		s.logger.Warn("read trainer analytics cache", zap.Error(err))
	} else if hit {
		return &cached, true, nil
	}

	start := time.Now()
	evaluations, err := s.evaluations.List(ctx, filter)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cohort evaluations")
	}
	s.metrics.ObserveDBQuery("evaluations_by_cohort", time.Since(start))

	start = time.Now()
	summary := performance.BuildTrainerAnalytics(cohort, evaluations, query.Filter, threshold)
	s.metrics.ObserveAggregation("trainer", time.Since(start), summary.Skipped)
	logSkipped(s.logger, summary.Skipped)

	if err := s.cache.Set(ctx, cacheKey, summary, 0); err != nil {
		s.logger.Warn("cache trainer analytics", zap.Error(err))
	}
	return &summary, false, nil
}

// Alerts reports whether any evaluation in the filtered cohort changed after since.
func (s *TrainerAnalyticsService) Alerts(ctx context.Context, query TrainerAnalyticsQuery, since *time.Time) (*models.AlertsResponse, error) {
	if query.TrainerID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "trainerId is required")
	}
	cohort, err := s.cohort(ctx, query)
	if err != nil {
		return nil, err
	}
	freshness, err := loadFreshness(ctx, s.evaluations, s.metrics, cohortEvaluationFilter(cohort))
	if err != nil {
		return nil, err
	}
	alerts := performance.CheckFreshness(since, cohortLatestModification(freshness, cohort))
	return &alerts, nil
}

// Export renders the per-student table of the cohort rollup as CSV or PDF.
func (s *TrainerAnalyticsService) Export(ctx context.Context, query TrainerAnalyticsQuery, format ExportFormat) (*ExportFile, error) {
	var renderer tableRenderer
	var contentType string
	switch format {
	case ExportFormatCSV:
		renderer, contentType = s.csv, "text/csv"
	case ExportFormatPDF:
		renderer, contentType = s.pdf, "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	summary, _, err := s.Analytics(ctx, query)
	if err != nil {
		return nil, err
	}

	content, err := renderer.Render(buildCohortTable(summary, query.Filter, s.now()))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	filename := fmt.Sprintf("cohort-performance-%s.%s", s.now().UTC().Format("20060102"), format)
	return &ExportFile{Filename: filename, ContentType: contentType, Content: content}, nil
}

func (s *TrainerAnalyticsService) threshold(override *float64) float64 {
	if override != nil {
		return *override
	}
	return *s.cfg.DefaultThreshold
}

func (s *TrainerAnalyticsService) cohort(ctx context.Context, query TrainerAnalyticsQuery) ([]models.StudentProfile, error) {
	start := time.Now()
	cohort, err := s.profiles.ListCohort(ctx, models.CohortFilter{
		TrainerID:        query.TrainerID,
		Batch:            query.Filter.Batch,
		StudentProfileID: query.Filter.StudentProfileID,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cohort")
	}
	s.metrics.ObserveDBQuery("student_profiles_cohort", time.Since(start))
	return cohort, nil
}

func cohortEvaluationFilter(cohort []models.StudentProfile) models.EvaluationFilter {
	ids := make([]string, 0, len(cohort))
	for _, student := range cohort {
		ids = append(ids, student.ID)
	}
	return models.EvaluationFilter{StudentProfileIDs: ids}
}

var cohortTableHeaders = []string{"Name", "Roll No", "Batch", "Avg Score", "Latest Score", "Trend", "Evaluations", "Below Threshold"}

func buildCohortTable(summary *models.TrainerAnalyticsSummary, filter models.TrainerAnalyticsFilter, now time.Time) export.Table {
	below := make(map[string]struct{}, len(summary.Insights.StudentsBelowThreshold))
	for _, row := range summary.Insights.StudentsBelowThreshold {
		below[row.StudentProfileID] = struct{}{}
	}

	rows := make([][]string, 0, len(summary.PerStudent))
	for _, student := range summary.PerStudent {
		flag := "No"
		if _, ok := below[student.StudentProfileID]; ok {
			flag = "Yes"
		}
		rows = append(rows, []string{
			student.Name,
			student.RollNo,
			student.Batch,
			formatScore(student.AvgScore),
			formatScore(student.LatestScore),
			formatScore(student.Trend),
			strconv.Itoa(student.Evaluations),
			flag,
		})
	}

	scope := []string{fmt.Sprintf("Threshold %.1f%%", summary.Insights.Threshold)}
	if filter.Batch != "" {
		scope = append(scope, "Batch "+filter.Batch)
	}
	if filter.Month != "" {
		scope = append(scope, filter.Month.Label())
	}
	scope = append(scope, "Generated "+now.UTC().Format("Jan 2, 2006 15:04 MST"))

	return export.Table{
		Title:    "Cohort Performance",
		Subtitle: strings.Join(scope, " | "),
		Headers:  cohortTableHeaders,
		Rows:     rows,
	}
}

func formatScore(value *float64) string {
	if value == nil {
		return "-"
	}
	return strconv.FormatFloat(*value, 'f', 1, 64)
}
