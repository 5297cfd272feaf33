package models

import "time"

// EvaluationType identifies the kind of test an evaluation records.
type EvaluationType string

const (
	EvaluationAptitude   EvaluationType = "aptitude"
	EvaluationLogical    EvaluationType = "logical"
	EvaluationMachine    EvaluationType = "machine"
	EvaluationSpringMeet EvaluationType = "spring_meet"
)

// EvaluationFrequency describes how often an evaluation type is held.
type EvaluationFrequency string

const (
	FrequencyWeekly  EvaluationFrequency = "weekly"
	FrequencyMonthly EvaluationFrequency = "monthly"
)

var evaluationFrequencies = map[EvaluationType]EvaluationFrequency{
	EvaluationAptitude:   FrequencyWeekly,
	EvaluationLogical:    FrequencyWeekly,
	EvaluationMachine:    FrequencyWeekly,
	EvaluationSpringMeet: FrequencyMonthly,
}

var evaluationLabels = map[EvaluationType]string{
	EvaluationAptitude:   "Aptitude",
	EvaluationLogical:    "Logical Reasoning",
	EvaluationMachine:    "Machine Test",
	EvaluationSpringMeet: "Spring Meet",
}

// Frequency returns the configured frequency for the type. The boolean is false for unknown types.
func (t EvaluationType) Frequency() (EvaluationFrequency, bool) {
	freq, ok := evaluationFrequencies[t]
	return freq, ok
}

// Valid reports whether the type belongs to the configured set.
func (t EvaluationType) Valid() bool {
	_, ok := evaluationFrequencies[t]
	return ok
}

// Label returns a display name, falling back to the raw key.
func (t EvaluationType) Label() string {
	if label, ok := evaluationLabels[t]; ok {
		return label
	}
	return string(t)
}

// Evaluation is one scored assessment of a student recorded by a trainer.
type Evaluation struct {
	ID               string         `db:"id" json:"id"`
	StudentProfileID string         `db:"student_profile_id" json:"studentProfileId"`
	TrainerID        string         `db:"trainer_id" json:"trainerId"`
	Type             EvaluationType `db:"type" json:"type"`
	Score            float64        `db:"score" json:"score"`
	MaxScore         float64        `db:"max_score" json:"maxScore"`
	RecordedDate     *time.Time     `db:"recorded_date" json:"recordedDate"`
	Notes            *string        `db:"notes" json:"notes,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updatedAt"`
}

// Percentage returns score/maxScore scaled to 0-100. Callers must validate maxScore first.
func (e Evaluation) Percentage() float64 {
	return e.Score * 100 / e.MaxScore
}

// EvaluationFilter scopes evaluation reads for the analytics views.
type EvaluationFilter struct {
	StudentProfileIDs []string
}

// EvaluationFreshness fingerprints a filtered evaluation set. Count changes when rows are
// deleted, which LatestModification alone cannot reveal.
type EvaluationFreshness struct {
	LatestModification *time.Time
	Count              int
}

// SkipReason explains why an evaluation was left out of aggregation.
type SkipReason string

const (
	SkipUnknownType         SkipReason = "unknown_type"
	SkipMissingRecordedDate SkipReason = "missing_recorded_date"
	SkipInvalidMaxScore     SkipReason = "invalid_max_score"
	SkipScoreOutOfRange     SkipReason = "score_out_of_range"
)

// SkippedEvaluation reports an evaluation excluded from aggregation.
type SkippedEvaluation struct {
	EvaluationID     string     `json:"evaluationId"`
	StudentProfileID string     `json:"studentProfileId"`
	Reason           SkipReason `json:"reason"`
}
