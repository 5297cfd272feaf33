package models

import "time"

// ApprovalStatus tracks a student's enrolment approval with a trainer.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// StudentProfile is the roster entry for a placement candidate.
type StudentProfile struct {
	ID             string         `db:"id" json:"id"`
	UserID         string         `db:"user_id" json:"userId"`
	Name           string         `db:"name" json:"name"`
	RollNo         string         `db:"roll_no" json:"rollNo"`
	Batch          string         `db:"batch" json:"batch"`
	AggregateScore *float64       `db:"aggregate_score" json:"aggregateScore,omitempty"`
	TrainerID      *string        `db:"trainer_id" json:"trainerId,omitempty"`
	ApprovalStatus ApprovalStatus `db:"approval_status" json:"approvalStatus"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updatedAt"`
}

// CohortFilter scopes the roster read for trainer analytics.
type CohortFilter struct {
	TrainerID        string
	Batch            string
	StudentProfileID string
}
