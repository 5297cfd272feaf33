package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"go.uber.org/zap"

	"github.com/noah-isme/placement-analytics-api/internal/dto"
	"github.com/noah-isme/placement-analytics-api/internal/models"
	"github.com/noah-isme/placement-analytics-api/internal/service"
	"github.com/noah-isme/placement-analytics-api/pkg/response"
)

// ReadinessCheck probes a single dependency.
type ReadinessCheck func(ctx context.Context) error

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics   *service.MetricsService
	checks    map[string]ReadinessCheck
	hostStats func(ctx context.Context) (models.HostStats, error)
	logger    *zap.Logger
	timeout   time.Duration
}

// NewMetricsHandler constructs a metrics handler. Checks are run by Ready.
func NewMetricsHandler(metrics *service.MetricsService, checks map[string]ReadinessCheck, logger *zap.Logger) *MetricsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetricsHandler{
		metrics:   metrics,
		checks:    checks,
		hostStats: service.HostStats,
		logger:    logger,
		timeout:   2 * time.Second,
	}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// Ready godoc
// @Summary Dependency readiness
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /ready [get]
func (h *MetricsHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	result := dto.HealthResponse{Status: "ok", Dependencies: make(map[string]string, len(names))}
	status := http.StatusOK
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			result.Dependencies[name] = err.Error()
			result.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		result.Dependencies[name] = "ok"
	}
	c.JSON(status, result)
}

// System godoc
// @Summary Analytics engine counters
// @Tags System
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /analytics/system [get]
func (h *MetricsHandler) System(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	snapshot := h.metrics.Snapshot()
	if h.hostStats != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()
		if stats, err := h.hostStats(ctx); err != nil {
			h.logger.Warn("sample host stats", zap.Error(err))
		} else {
			snapshot.Host = &stats
		}
	}
	response.JSON(c, http.StatusOK, snapshot)
}
