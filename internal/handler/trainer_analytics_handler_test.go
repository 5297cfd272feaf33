package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/placement-analytics-api/internal/models"
	"github.com/noah-isme/placement-analytics-api/internal/service"
)

const (
	trainerID      = "7d0b6c9e-3f1a-4c55-8e2b-2a1f0c9d4e11"
	otherTrainerID = "0f4e2a61-9b7c-4d3e-a1f2-5c6b7d8e9f00"
)

type fakeTrainerSrv struct {
	summary    *models.TrainerAnalyticsSummary
	alerts     *models.AlertsResponse
	file       *service.ExportFile
	hit        bool
	err        error
	lastQuery  service.TrainerAnalyticsQuery
	lastFormat service.ExportFormat
	calls      int
}

func (f *fakeTrainerSrv) Analytics(_ context.Context, query service.TrainerAnalyticsQuery) (*models.TrainerAnalyticsSummary, bool, error) {
	f.calls++
	f.lastQuery = query
	return f.summary, f.hit, f.err
}

func (f *fakeTrainerSrv) Alerts(_ context.Context, query service.TrainerAnalyticsQuery, _ *time.Time) (*models.AlertsResponse, error) {
	f.calls++
	f.lastQuery = query
	return f.alerts, f.err
}

func (f *fakeTrainerSrv) Export(_ context.Context, query service.TrainerAnalyticsQuery, format service.ExportFormat) (*service.ExportFile, error) {
	f.calls++
	f.lastQuery = query
	f.lastFormat = format
	return f.file, f.err
}

func trainerClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: trainerID, Role: models.RoleTrainer}
}

func TestTrainerAnalyticsHandlerScopesTrainerToOwnCohort(t *testing.T) {
	srv := &fakeTrainerSrv{summary: &models.TrainerAnalyticsSummary{}, hit: true}
	handler := NewTrainerAnalyticsHandler(srv, 0)
	c, rec := newTestContext("/trainer/analytics?batch=2025-A&month=2025-02&threshold=55", trainerClaims())

	handler.Analytics(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, trainerID, srv.lastQuery.TrainerID)
	assert.Equal(t, "2025-A", srv.lastQuery.Filter.Batch)
	assert.Equal(t, models.MonthKey("2025-02"), srv.lastQuery.Filter.Month)
	require.NotNil(t, srv.lastQuery.Threshold)
	assert.Equal(t, 55.0, *srv.lastQuery.Threshold)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope.Meta["cache_hit"])
}

func TestTrainerAnalyticsHandlerForbidsForeignCohort(t *testing.T) {
	srv := &fakeTrainerSrv{}
	handler := NewTrainerAnalyticsHandler(srv, 0)
	c, rec := newTestContext("/trainer/analytics?trainerId="+otherTrainerID, trainerClaims())

	handler.Analytics(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, srv.calls)
}

func TestTrainerAnalyticsHandlerCoordinatorNeedsTrainer(t *testing.T) {
	srv := &fakeTrainerSrv{summary: &models.TrainerAnalyticsSummary{}}
	handler := NewTrainerAnalyticsHandler(srv, 0)
	coordinator := &models.JWTClaims{UserID: "coord-1", Role: models.RoleCoordinator}

	c, rec := newTestContext("/trainer/analytics", coordinator)
	handler.Analytics(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newTestContext("/trainer/analytics?trainerId="+otherTrainerID, coordinator)
	handler.Analytics(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, otherTrainerID, srv.lastQuery.TrainerID)
}

func TestTrainerAnalyticsHandlerValidatesQuery(t *testing.T) {
	cases := map[string]string{
		"threshold out of range": "/trainer/analytics?threshold=150",
		"threshold not a number": "/trainer/analytics?threshold=high",
		"month malformed":        "/trainer/analytics?month=2025-13",
		"student id not uuid":    "/trainer/analytics?studentProfileId=abc",
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			srv := &fakeTrainerSrv{}
			handler := NewTrainerAnalyticsHandler(srv, 0)
			c, rec := newTestContext(target, trainerClaims())

			handler.Analytics(c)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, srv.calls)
		})
	}
}

func TestTrainerAnalyticsHandlerAlerts(t *testing.T) {
	srv := &fakeTrainerSrv{alerts: &models.AlertsResponse{HasUpdates: false}}
	handler := NewTrainerAnalyticsHandler(srv, 30*time.Second)
	c, rec := newTestContext("/trainer/analytics/alerts?since=2025-03-01T10:00:00Z&batch=2025-A", trainerClaims())

	handler.Alerts(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-A", srv.lastQuery.Filter.Batch)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, float64(30), envelope.Meta["poll_interval_seconds"])
}

func TestTrainerAnalyticsHandlerExport(t *testing.T) {
	srv := &fakeTrainerSrv{file: &service.ExportFile{
		Filename:    "cohort-performance-20250301.csv",
		ContentType: "text/csv",
		Content:     []byte("Name,Roll No\n"),
	}}
	handler := NewTrainerAnalyticsHandler(srv, 0)
	c, rec := newTestContext("/trainer/analytics/export?format=csv", trainerClaims())

	handler.Export(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ExportFormatCSV, srv.lastFormat)
	assert.Equal(t, `attachment; filename="cohort-performance-20250301.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Name,Roll No\n", rec.Body.String())
}

func TestTrainerAnalyticsHandlerExportRequiresFormat(t *testing.T) {
	srv := &fakeTrainerSrv{}
	handler := NewTrainerAnalyticsHandler(srv, 0)

	c, rec := newTestContext("/trainer/analytics/export", trainerClaims())
	handler.Export(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newTestContext("/trainer/analytics/export?format=xlsx", trainerClaims())
	handler.Export(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, srv.calls)
}

func TestTrainerAnalyticsHandlerWithoutServiceIsUnavailable(t *testing.T) {
	handler := NewTrainerAnalyticsHandler(nil, 0)
	for name, endpoint := range map[string]func(*gin.Context){
		"analytics": handler.Analytics,
		"alerts":    handler.Alerts,
		"export":    handler.Export,
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := newTestContext("/trainer/analytics?format=csv", trainerClaims())
			endpoint(c)
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		})
	}
}
