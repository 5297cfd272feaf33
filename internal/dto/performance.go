package dto

// AlertsQuery carries the caller's last-seen timestamp for the freshness poll.
type AlertsQuery struct {
	Since string `form:"since" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// TrainerAnalyticsQuery filters the trainer analytics view.
type TrainerAnalyticsQuery struct {
	Batch            string   `form:"batch" validate:"omitempty,max=64"`
	StudentProfileID string   `form:"studentProfileId" validate:"omitempty,uuid"`
	Month            string   `form:"month" validate:"omitempty,datetime=2006-01"`
	Threshold        *float64 `form:"threshold" validate:"omitempty,gte=0,lte=100"`
	// TrainerID is honoured for coordinators only.
	TrainerID string `form:"trainerId" validate:"omitempty,uuid"`
}

// TrainerAlertsQuery is the trainer freshness poll.
type TrainerAlertsQuery struct {
	TrainerAnalyticsQuery
	AlertsQuery
}

// TrainerExportQuery selects the export format for the trainer per-student table.
type TrainerExportQuery struct {
	TrainerAnalyticsQuery
	Format string `form:"format" validate:"required,oneof=csv pdf"`
}

// HealthResponse reports dependency readiness.
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}
