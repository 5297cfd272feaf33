package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/placement-analytics-api/internal/models"
)

const studentProfileColumns = "id, user_id, name, roll_no, batch, aggregate_score, trainer_id, approval_status, updated_at"

// StudentProfileRepository reads student profiles and trainer cohorts.
type StudentProfileRepository struct {
	db *sqlx.DB
}

// NewStudentProfileRepository constructs a StudentProfileRepository.
func NewStudentProfileRepository(db *sqlx.DB) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

// FindByUserID resolves the profile owned by an authenticated user. Returns sql.ErrNoRows when absent.
func (r *StudentProfileRepository) FindByUserID(ctx context.Context, userID string) (*models.StudentProfile, error) {
	query := "SELECT " + studentProfileColumns + " FROM student_profiles WHERE user_id = $1 LIMIT 1"
	var profile models.StudentProfile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListCohort returns the approved students assigned to a trainer. Batch and student filters
// are applied in SQL so the roster is already narrowed before aggregation.
func (r *StudentProfileRepository) ListCohort(ctx context.Context, filter models.CohortFilter) ([]models.StudentProfile, error) {
	var builder strings.Builder
	builder.WriteString("SELECT " + studentProfileColumns + " FROM student_profiles WHERE approval_status = $1")
	args := []interface{}{models.ApprovalApproved}
	if filter.TrainerID != "" {
		args = append(args, filter.TrainerID)
		builder.WriteString(fmt.Sprintf(" AND trainer_id = $%d", len(args)))
	}
	if batch := strings.TrimSpace(filter.Batch); batch != "" {
		args = append(args, strings.ToLower(batch))
		builder.WriteString(fmt.Sprintf(" AND LOWER(TRIM(batch)) = $%d", len(args)))
	}
	if filter.StudentProfileID != "" {
		args = append(args, filter.StudentProfileID)
		builder.WriteString(fmt.Sprintf(" AND id = $%d", len(args)))
	}
	builder.WriteString(" ORDER BY name ASC, roll_no ASC, id ASC")

	var profiles []models.StudentProfile
	if err := r.db.SelectContext(ctx, &profiles, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query student cohort: %w", err)
	}
	if profiles == nil {
		profiles = []models.StudentProfile{}
	}
	return profiles, nil
}
