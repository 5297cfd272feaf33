package performance

import (
	"time"

	"github.com/noah-isme/placement-analytics-api/internal/models"
)

// CheckFreshness compares the caller's last-seen timestamp with the newest evaluation
// modification. A nil since means the caller has seen nothing yet.
func CheckFreshness(since, latest *time.Time) models.AlertsResponse {
	if latest == nil {
		return models.AlertsResponse{HasUpdates: false, LastUpdated: since}
	}
	ts := latest.UTC()
	return models.AlertsResponse{
		HasUpdates:  since == nil || ts.After(*since),
		LastUpdated: &ts,
	}
}
