package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/placement-analytics-api/internal/models"
	"github.com/noah-isme/placement-analytics-api/internal/performance"
	appErrors "github.com/noah-isme/placement-analytics-api/pkg/errors"
)

// EvaluationReader loads evaluations and their freshness stamp.
type EvaluationReader interface {
	List(ctx context.Context, filter models.EvaluationFilter) ([]models.Evaluation, error)
	Freshness(ctx context.Context, filter models.EvaluationFilter) (models.EvaluationFreshness, error)
}

// StudentProfileReader resolves student profiles and trainer cohorts.
type StudentProfileReader interface {
	FindByUserID(ctx context.Context, userID string) (*models.StudentProfile, error)
	ListCohort(ctx context.Context, filter models.CohortFilter) ([]models.StudentProfile, error)
}

// PerformanceService serves the student "My Performance" views.
type PerformanceService struct {
	profiles    StudentProfileReader
	evaluations EvaluationReader
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
	now         func() time.Time
}

// NewPerformanceService constructs a PerformanceService.
func NewPerformanceService(profiles StudentProfileReader, evaluations EvaluationReader, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *PerformanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PerformanceService{
		profiles:    profiles,
		evaluations: evaluations,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Grouped returns the year/month grouped history with the overall summary. The boolean reports a cache hit.
func (s *PerformanceService) Grouped(ctx context.Context, userID string) (*models.GroupedPerformance, bool, error) {
	agg, hit, err := s.aggregate(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return &models.GroupedPerformance{
		GroupedByYearMonth: agg.Years,
		OverallPerformance: performance.BuildOverallSummary(agg.Buckets),
		Skipped:            agg.Skipped,
	}, hit, nil
}

// Hero returns the snapshot for the most recent month with evaluations.
func (s *PerformanceService) Hero(ctx context.Context, userID string) (*models.HeroSnapshot, bool, error) {
	agg, hit, err := s.aggregate(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	hero := performance.BuildHeroSnapshot(agg.Latest(), s.now())
	return &hero, hit, nil
}

// Insights returns the tips derived from the latest month and the month-over-month trend.
func (s *PerformanceService) Insights(ctx context.Context, userID string) (*models.InsightsResponse, bool, error) {
	agg, hit, err := s.aggregate(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	trend := performance.AnalyzeTrend(agg.Buckets)
	return &models.InsightsResponse{
		Insights: performance.GenerateInsights(agg.Latest(), trend),
		Trend:    trend,
	}, hit, nil
}

// Alerts reports whether any of the student's evaluations changed after since.
func (s *PerformanceService) Alerts(ctx context.Context, userID string, since *time.Time) (*models.AlertsResponse, error) {
	profile, err := s.resolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	freshness, err := loadFreshness(ctx, s.evaluations, s.metrics, models.EvaluationFilter{StudentProfileIDs: []string{profile.ID}})
	if err != nil {
		return nil, err
	}
	alerts := performance.CheckFreshness(since, freshness.LatestModification)
	return &alerts, nil
}

func (s *PerformanceService) aggregate(ctx context.Context, userID string) (performance.Aggregation, bool, error) {
	profile, err := s.resolveProfile(ctx, userID)
	if err != nil {
		return performance.Aggregation{}, false, err
	}
	filter := models.EvaluationFilter{StudentProfileIDs: []string{profile.ID}}
	freshness, err := loadFreshness(ctx, s.evaluations, s.metrics, filter)
	if err != nil {
		return performance.Aggregation{}, false, err
	}

	cacheKey := makeAnalyticsCacheKey("student", profile.ID, freshnessStamp(freshness))
	var cached performance.Aggregation
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		s.logger.Warn("read performance cache", zap.Error(err))
	} else if hit {
		return cached, true, nil
	}

	start := time.Now()
	evaluations, err := s.evaluations.List(ctx, filter)
	if err != nil {
		return performance.Aggregation{}, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluations")
	}
	s.metrics.ObserveDBQuery("evaluations_by_student", time.Since(start))

	start = time.Now()
	agg := performance.Aggregate(evaluations)
	s.metrics.ObserveAggregation("student", time.Since(start), agg.Skipped)
	logSkipped(s.logger, agg.Skipped)

	if err := s.cache.Set(ctx, cacheKey, agg, 0); err != nil {
		s.logger.Warn("cache student performance", zap.Error(err))
	}
	return agg, false, nil
}

func (s *PerformanceService) resolveProfile(ctx context.Context, userID string) (*models.StudentProfile, error) {
	if userID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing user context")
	}
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student profile")
	}
	return profile, nil
}

func logSkipped(logger *zap.Logger, skipped []models.SkippedEvaluation) {
	for _, skip := range skipped {
		logger.Warn("evaluation skipped",
			zap.String("evaluation_id", skip.EvaluationID),
			zap.String("student_profile_id", skip.StudentProfileID),
			zap.String("reason", string(skip.Reason)),
		)
	}
}
