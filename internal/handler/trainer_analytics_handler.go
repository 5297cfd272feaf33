package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/placement-analytics-api/internal/dto"
	"github.com/noah-isme/placement-analytics-api/internal/middleware"
	"github.com/noah-isme/placement-analytics-api/internal/models"
	"github.com/noah-isme/placement-analytics-api/internal/service"
	appErrors "github.com/noah-isme/placement-analytics-api/pkg/errors"
	"github.com/noah-isme/placement-analytics-api/pkg/response"
)

type trainerAnalyticsService interface {
	Analytics(ctx context.Context, query service.TrainerAnalyticsQuery) (*models.TrainerAnalyticsSummary, bool, error)
	Alerts(ctx context.Context, query service.TrainerAnalyticsQuery, since *time.Time) (*models.AlertsResponse, error)
	Export(ctx context.Context, query service.TrainerAnalyticsQuery, format service.ExportFormat) (*service.ExportFile, error)
}

// TrainerAnalyticsHandler serves cohort analytics for trainers and coordinators.
type TrainerAnalyticsHandler struct {
	service      trainerAnalyticsService
	pollInterval time.Duration
}

// NewTrainerAnalyticsHandler constructs a TrainerAnalyticsHandler.
func NewTrainerAnalyticsHandler(service trainerAnalyticsService, pollInterval time.Duration) *TrainerAnalyticsHandler {
	return &TrainerAnalyticsHandler{service: service, pollInterval: pollInterval}
}

// Analytics godoc
// @Summary Cohort performance analytics
// @Tags Trainer Analytics
// @Produce json
// @Security BearerAuth
// @Param batch query string false "Batch (case-insensitive)"
// @Param studentProfileId query string false "Student profile ID"
// @Param month query string false "Month (YYYY-MM)"
// @Param threshold query number false "Below-threshold cut-off (0-100)"
// @Param trainerId query string false "Trainer ID (coordinators only)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /trainer/analytics [get]
func (h *TrainerAnalyticsHandler) Analytics(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrUnavailable)
		return
	}
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.TrainerAnalyticsQuery
	if err := bindQuery(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	query, err := buildTrainerQuery(claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	start := time.Now()
	summary, cacheHit, err := h.service.Analytics(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, summary, middleware.FinishMeta(c, start))
}

// Alerts godoc
// @Summary Check for cohort evaluation changes since a timestamp
// @Tags Trainer Analytics
// @Produce json
// @Security BearerAuth
// @Param since query string false "Last seen modification time (RFC3339)"
// @Param batch query string false "Batch (case-insensitive)"
// @Param trainerId query string false "Trainer ID (coordinators only)"
// @Success 200 {object} response.Envelope
// @Router /trainer/analytics/alerts [get]
func (h *TrainerAnalyticsHandler) Alerts(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrUnavailable)
		return
	}
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.TrainerAlertsQuery
	if err := bindQuery(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	query, err := buildTrainerQuery(claims, req.TrainerAnalyticsQuery)
	if err != nil {
		response.Error(c, err)
		return
	}

	start := time.Now()
	alerts, err := h.service.Alerts(c.Request.Context(), query, parseSince(req.Since))
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := middleware.FinishMeta(c, start)
	if h.pollInterval > 0 {
		meta["poll_interval_seconds"] = int(h.pollInterval.Seconds())
	}
	response.JSON(c, http.StatusOK, alerts, meta)
}

// Export godoc
// @Summary Download the per-student cohort table
// @Tags Trainer Analytics
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string true "Export format" Enums(csv, pdf)
// @Param batch query string false "Batch (case-insensitive)"
// @Param month query string false "Month (YYYY-MM)"
// @Param trainerId query string false "Trainer ID (coordinators only)"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /trainer/analytics/export [get]
func (h *TrainerAnalyticsHandler) Export(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrUnavailable)
		return
	}
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var req dto.TrainerExportQuery
	if err := bindQuery(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	query, err := buildTrainerQuery(claims, req.TrainerAnalyticsQuery)
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := h.service.Export(c.Request.Context(), query, service.ExportFormat(req.Format))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Content)
}

// buildTrainerQuery scopes a request to a cohort. Trainers always see their own cohort;
// coordinators must name one.
func buildTrainerQuery(claims *models.JWTClaims, req dto.TrainerAnalyticsQuery) (service.TrainerAnalyticsQuery, error) {
	query := service.TrainerAnalyticsQuery{
		Filter: models.TrainerAnalyticsFilter{
			Batch:            req.Batch,
			StudentProfileID: req.StudentProfileID,
		},
		Threshold: req.Threshold,
	}
	if req.Month != "" {
		month, err := models.ParseMonthKey(req.Month)
		if err != nil {
			return query, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameter: month")
		}
		query.Filter.Month = month
	}

	switch claims.Role {
	case models.RoleTrainer:
		if req.TrainerID != "" && req.TrainerID != claims.UserID {
			return query, appErrors.Clone(appErrors.ErrForbidden, "trainers can only view their own cohort")
		}
		query.TrainerID = claims.UserID
	case models.RoleCoordinator:
		if req.TrainerID == "" {
			return query, appErrors.Clone(appErrors.ErrValidation, "trainerId is required")
		}
		query.TrainerID = req.TrainerID
	default:
		return query, appErrors.ErrForbidden
	}
	return query, nil
}
