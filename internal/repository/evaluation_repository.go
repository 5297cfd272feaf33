package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/placement-analytics-api/internal/models"
)

const evaluationColumns = "id, student_profile_id, trainer_id, type, score, max_score, recorded_date, notes, created_at, updated_at"

// EvaluationRepository reads evaluation records for the analytics views.
type EvaluationRepository struct {
	db *sqlx.DB
}

// NewEvaluationRepository constructs an EvaluationRepository.
func NewEvaluationRepository(db *sqlx.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// List returns evaluations matching the filter. An empty student list yields no rows.
func (r *EvaluationRepository) List(ctx context.Context, filter models.EvaluationFilter) ([]models.Evaluation, error) {
	if len(filter.StudentProfileIDs) == 0 {
		return []models.Evaluation{}, nil
	}

	var builder strings.Builder
	builder.WriteString("SELECT " + evaluationColumns + " FROM evaluations")
	where, args := evaluationConditions(filter)
	builder.WriteString(" WHERE " + where)
	builder.WriteString(" ORDER BY recorded_date ASC, id ASC")

	var evaluations []models.Evaluation
	if err := r.db.SelectContext(ctx, &evaluations, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	if evaluations == nil {
		evaluations = []models.Evaluation{}
	}
	return evaluations, nil
}

// Freshness returns the newest updated_at and the row count of the filtered evaluations in one
// query. LatestModification is nil when no rows exist.
func (r *EvaluationRepository) Freshness(ctx context.Context, filter models.EvaluationFilter) (models.EvaluationFreshness, error) {
	if len(filter.StudentProfileIDs) == 0 {
		return models.EvaluationFreshness{}, nil
	}

	where, args := evaluationConditions(filter)
	query := "SELECT MAX(updated_at) AS latest, COUNT(*) AS total FROM evaluations WHERE " + where

	var row struct {
		Latest sql.NullTime `db:"latest"`
		Total  int          `db:"total"`
	}
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return models.EvaluationFreshness{}, fmt.Errorf("query evaluation freshness: %w", err)
	}
	freshness := models.EvaluationFreshness{Count: row.Total}
	if row.Latest.Valid {
		ts := row.Latest.Time.UTC()
		freshness.LatestModification = &ts
	}
	return freshness, nil
}

func evaluationConditions(filter models.EvaluationFilter) (string, []interface{}) {
	args := []interface{}{}
	conditions := []string{}
	if len(filter.StudentProfileIDs) == 1 {
		args = append(args, filter.StudentProfileIDs[0])
		conditions = append(conditions, fmt.Sprintf("student_profile_id = $%d", len(args)))
	} else {
		args = append(args, pq.Array(filter.StudentProfileIDs))
		conditions = append(conditions, fmt.Sprintf("student_profile_id = ANY($%d)", len(args)))
	}
	return strings.Join(conditions, " AND "), args
}
