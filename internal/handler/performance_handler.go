package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/placement-analytics-api/internal/dto"
	"github.com/noah-isme/placement-analytics-api/internal/middleware"
	"github.com/noah-isme/placement-analytics-api/internal/models"
	appErrors "github.com/noah-isme/placement-analytics-api/pkg/errors"
	"github.com/noah-isme/placement-analytics-api/pkg/response"
)

type performanceService interface {
	Grouped(ctx context.Context, userID string) (*models.GroupedPerformance, bool, error)
	Hero(ctx context.Context, userID string) (*models.HeroSnapshot, bool, error)
	Insights(ctx context.Context, userID string) (*models.InsightsResponse, bool, error)
	Alerts(ctx context.Context, userID string, since *time.Time) (*models.AlertsResponse, error)
}

// PerformanceHandler serves the student "My Performance" endpoints.
type PerformanceHandler struct {
	service      performanceService
	pollInterval time.Duration
}

// NewPerformanceHandler constructs a PerformanceHandler.
func NewPerformanceHandler(service performanceService, pollInterval time.Duration) *PerformanceHandler {
	return &PerformanceHandler{service: service, pollInterval: pollInterval}
}

// Grouped godoc
// @Summary Student performance grouped by year and month
// @Tags Performance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/me/performance [get]
func (h *PerformanceHandler) Grouped(c *gin.Context) {
	h.serve(c, func(ctx context.Context, userID string) (interface{}, bool, error) {
		return h.service.Grouped(ctx, userID)
	})
}

// Hero godoc
// @Summary Latest month snapshot for the dashboard hero card
// @Tags Performance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /students/me/performance/hero [get]
func (h *PerformanceHandler) Hero(c *gin.Context) {
	h.serve(c, func(ctx context.Context, userID string) (interface{}, bool, error) {
		return h.service.Hero(ctx, userID)
	})
}

// Insights godoc
// @Summary Personalised tips and month-over-month trend
// @Tags Performance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /students/me/performance/insights [get]
func (h *PerformanceHandler) Insights(c *gin.Context) {
	h.serve(c, func(ctx context.Context, userID string) (interface{}, bool, error) {
		return h.service.Insights(ctx, userID)
	})
}

// Alerts godoc
// @Summary Check for evaluation changes since a timestamp
// @Tags Performance
// @Produce json
// @Security BearerAuth
// @Param since query string false "Last seen modification time (RFC3339)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students/me/performance/alerts [get]
func (h *PerformanceHandler) Alerts(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrUnavailable)
		return
	}
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	var query dto.AlertsQuery
	if err := bindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	alerts, err := h.service.Alerts(c.Request.Context(), claims.UserID, parseSince(query.Since))
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

func (h *PerformanceHandler) serve(c *gin.Context, load func(ctx context.Context, userID string) (interface{}, bool, error)) {
	if h.service == nil {
		response.Error(c, appErrors.ErrUnavailable)
		return
	}
	claims := requireClaims(c)
	if claims == nil {
		return
	}
	start := time.Now()
	payload, cacheHit, err := load(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, payload, middleware.FinishMeta(c, start))
}
