package models

import "time"

// TrainerAnalyticsFilter narrows the cohort evaluation set before aggregation.
type TrainerAnalyticsFilter struct {
	Batch            string
	StudentProfileID string
	Month            MonthKey
}

// CohortSummary holds headline cohort numbers.
//
// AvgScore is the mean of every evaluation percentage in the filtered set. It is not the
// per-type weighted mean-of-months used by the student view.
type CohortSummary struct {
	TotalStudents      int     `json:"totalStudents"`
	AvgScore           float64 `json:"avgScore"`
	TotalEvaluations   int     `json:"totalEvaluations"`
	SkippedEvaluations int     `json:"skippedEvaluations"`
}

// MonthlyTrendPoint is one month of cohort-wide averages.
type MonthlyTrendPoint struct {
	Month       MonthKey `json:"month"`
	Label       string   `json:"label"`
	AvgScore    float64  `json:"avgScore"`
	Evaluations int      `json:"evaluations"`
}

// TypeBreakdownEntry is the cohort-wide average for one evaluation type.
type TypeBreakdownEntry struct {
	Type        EvaluationType `json:"type"`
	AvgScore    float64        `json:"avgScore"`
	Evaluations int            `json:"evaluations"`
}

// StudentPerformanceRow is one cohort member's standing.
type StudentPerformanceRow struct {
	StudentProfileID string   `json:"studentProfileId"`
	Name             string   `json:"name"`
	RollNo           string   `json:"rollNo"`
	Batch            string   `json:"batch"`
	AvgScore         *float64 `json:"avgScore"`
	LatestScore      *float64 `json:"latestScore"`
	Trend            *float64 `json:"trend"`
	Evaluations      int      `json:"evaluations"`
}

// CohortInsights highlights cohort members needing attention.
type CohortInsights struct {
	MostImproved           *StudentPerformanceRow  `json:"mostImproved"`
	StudentsBelowThreshold []StudentPerformanceRow `json:"studentsBelowThreshold"`
	Threshold              float64                 `json:"threshold"`
}

// TrainerAnalyticsSummary is the trainer "Analytics" payload.
type TrainerAnalyticsSummary struct {
	Summary       CohortSummary           `json:"summary"`
	MonthlyTrend  []MonthlyTrendPoint     `json:"monthlyTrend"`
	TypeBreakdown []TypeBreakdownEntry    `json:"typeBreakdown"`
	PerStudent    []StudentPerformanceRow `json:"perStudent"`
	Insights      CohortInsights          `json:"insights"`
	Skipped       []SkippedEvaluation     `json:"skipped,omitempty"`
}

// AnalyticsSystemMetrics represents system level analytics captured from instrumentation.
type AnalyticsSystemMetrics struct {
	CacheHitRatio            float64    `json:"cache_hit_ratio"`
	CacheHits                uint64     `json:"cache_hits"`
	CacheMisses              uint64     `json:"cache_misses"`
	RequestsTotal            uint64     `json:"requests_total"`
	AverageRequestDurationMs float64    `json:"average_request_duration_ms"`
	DBQueryCount             uint64     `json:"db_query_count"`
	AverageDBQueryDurationMs float64    `json:"average_db_query_duration_ms"`
	AggregationsTotal        uint64     `json:"aggregations_total"`
	SkippedEvaluationsTotal  uint64     `json:"skipped_evaluations_total"`
	Goroutines               int        `json:"goroutines"`
	Host                     *HostStats `json:"host,omitempty"`
	GeneratedAt              time.Time  `json:"generated_at"`
}

// HostStats is a point-in-time sample of the serving machine.
type HostStats struct {
	MemoryTotalBytes  uint64  `json:"memory_total_bytes"`
	MemoryUsedBytes   uint64  `json:"memory_used_bytes"`
	MemoryUsedPercent float64 `json:"memory_used_percent"`
	Load1             float64 `json:"load1"`
	Load5             float64 `json:"load5"`
	Load15            float64 `json:"load15"`
}
