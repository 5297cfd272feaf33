package models

import (
	"fmt"
	"time"
)

// Period is the week or month window an evaluation belongs to.
type Period struct {
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	PeriodLabel string    `json:"periodLabel"`
}

// MonthKey is a zero-padded "YYYY-MM" calendar month identifier.
type MonthKey string

const monthKeyLayout = "2006-01"

// NewMonthKey builds the key for the UTC calendar month containing t.
func NewMonthKey(t time.Time) MonthKey {
	return MonthKey(t.UTC().Format(monthKeyLayout))
}

// ParseMonthKey validates raw as a "YYYY-MM" key.
func ParseMonthKey(raw string) (MonthKey, error) {
	parsed, err := time.Parse(monthKeyLayout, raw)
	if err != nil || parsed.Format(monthKeyLayout) != raw {
		return "", fmt.Errorf("invalid month key %q", raw)
	}
	return MonthKey(raw), nil
}

// Start returns the first instant of the month in UTC.
func (k MonthKey) Start() time.Time {
	parsed, err := time.Parse(monthKeyLayout, string(k))
	if err != nil {
		return time.Time{}
	}
	return parsed.UTC()
}

// Year returns the calendar year of the key.
func (k MonthKey) Year() int {
	return k.Start().Year()
}

// Label renders the key as "January 2006".
func (k MonthKey) Label() string {
	return k.Start().Format("January 2006")
}

func (k MonthKey) String() string {
	return string(k)
}

// EvaluationEntry is an evaluation filed under a month with its resolved period.
type EvaluationEntry struct {
	Evaluation
	Period
	Percentage float64 `json:"percentage"`
}

// MonthStats aggregates one month of evaluations.
type MonthStats struct {
	AveragePercentage float64                    `json:"averagePercentage"`
	PerTypeAverages   map[EvaluationType]float64 `json:"perTypeAverages"`
}

// MonthBucket holds a student's evaluations and statistics for one calendar month.
type MonthBucket struct {
	MonthKey      MonthKey          `json:"monthKey"`
	Label         string            `json:"label"`
	WeeklyEntries []EvaluationEntry `json:"weeklyEntries"`
	Stats         MonthStats        `json:"stats"`
}

// HasData reports whether the bucket carries at least one per-type average.
func (b MonthBucket) HasData() bool {
	return len(b.Stats.PerTypeAverages) > 0
}

// YearBucket groups month buckets of a single calendar year.
type YearBucket struct {
	Year   int                      `json:"year"`
	Months map[MonthKey]MonthBucket `json:"months"`
}

// Performance grades derived from the overall average.
const (
	GradeExcellent        = "Excellent"
	GradeGood             = "Good"
	GradeNeedsImprovement = "Needs Improvement"
)

// MonthReference names a month together with its average.
type MonthReference struct {
	MonthKey          MonthKey `json:"monthKey"`
	Label             string   `json:"label"`
	AveragePercentage float64  `json:"averagePercentage"`
}

// OverallPerformanceSummary reduces every month of a student's history.
type OverallPerformanceSummary struct {
	AveragePercentage float64                    `json:"averagePercentage"`
	PerTypeAverages   map[EvaluationType]float64 `json:"perTypeAverages"`
	BestMonth         MonthReference             `json:"bestMonth"`
	WeakestMonth      MonthReference             `json:"weakestMonth"`
	MonthsCount       int                        `json:"monthsCount"`
	Grade             string                     `json:"grade"`
}

// TrendDirection classifies the change between two months.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

// TrendResult compares the two most recent months with data.
type TrendResult struct {
	Direction     TrendDirection `json:"direction"`
	Delta         float64        `json:"delta"`
	Label         string         `json:"label"`
	LatestMonth   MonthKey       `json:"latestMonth"`
	PreviousMonth MonthKey       `json:"previousMonth"`
	PreviousLabel string         `json:"previousLabel"`
}

// GroupedPerformance is the student "My Performance" payload.
type GroupedPerformance struct {
	GroupedByYearMonth map[int]YearBucket         `json:"groupedByYearMonth"`
	OverallPerformance *OverallPerformanceSummary `json:"overallPerformance"`
	Skipped            []SkippedEvaluation        `json:"skipped,omitempty"`
}

// PeriodStatus reports whether the hero period has closed.
type PeriodStatus string

const (
	PeriodCompleted  PeriodStatus = "COMPLETED"
	PeriodInProgress PeriodStatus = "IN_PROGRESS"
)

// HeroPeriod labels the period shown in the hero card.
type HeroPeriod struct {
	Label string `json:"label"`
}

// HeroSnapshot summarises the most recent period for the dashboard hero card.
type HeroSnapshot struct {
	Period            HeroPeriod                 `json:"period"`
	AveragePercentage *float64                   `json:"averagePercentage"`
	PerTypeAverages   map[EvaluationType]float64 `json:"perTypeAverages"`
	Status            PeriodStatus               `json:"status"`
	LastUpdated       *time.Time                 `json:"lastUpdated"`
}

// AlertsResponse answers the cheap freshness poll.
type AlertsResponse struct {
	HasUpdates  bool       `json:"hasUpdates"`
	LastUpdated *time.Time `json:"lastUpdated"`
}

// InsightsResponse carries generated tips and the trend they were derived from.
type InsightsResponse struct {
	Insights []string     `json:"insights"`
	Trend    *TrendResult `json:"trend"`
}
