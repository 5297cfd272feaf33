package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/noah-isme/placement-analytics-api/internal/models"
	appErrors "github.com/noah-isme/placement-analytics-api/pkg/errors"
)

type stubCacheRepo struct {
	store map[string][]byte
	sets  int
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	s.sets++
	return nil
}

type fakeProfileRepo struct {
	byUser      map[string]*models.StudentProfile
	cohort      []models.StudentProfile
	findErr     error
	cohortErr   error
	cohortCalls []models.CohortFilter
}

func (f *fakeProfileRepo) FindByUserID(_ context.Context, userID string) (*models.StudentProfile, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	profile, ok := f.byUser[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return profile, nil
}

func (f *fakeProfileRepo) ListCohort(_ context.Context, filter models.CohortFilter) ([]models.StudentProfile, error) {
	f.cohortCalls = append(f.cohortCalls, filter)
	if f.cohortErr != nil {
		return nil, f.cohortErr
	}
	return f.cohort, nil
}

type fakeEvaluationRepo struct {
	evaluations []models.Evaluation
	latest      *time.Time
	listErr     error
	listCalls   int
	lastFilter  models.EvaluationFilter
}

func (f *fakeEvaluationRepo) List(_ context.Context, filter models.EvaluationFilter) ([]models.Evaluation, error) {
	f.listCalls++
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.matching(filter), nil
}

func (f *fakeEvaluationRepo) Freshness(_ context.Context, filter models.EvaluationFilter) (models.EvaluationFreshness, error) {
	f.lastFilter = filter
	if len(filter.StudentProfileIDs) == 0 {
		return models.EvaluationFreshness{}, nil
	}
	return models.EvaluationFreshness{LatestModification: f.latest, Count: len(f.matching(filter))}, nil
}

func (f *fakeEvaluationRepo) matching(filter models.EvaluationFilter) []models.Evaluation {
	members := make(map[string]struct{}, len(filter.StudentProfileIDs))
	for _, id := range filter.StudentProfileIDs {
		members[id] = struct{}{}
	}
	var out []models.Evaluation
	for _, eval := range f.evaluations {
		if _, ok := members[eval.StudentProfileID]; ok {
			out = append(out, eval)
		}
	}
	return out
}

func evaluation(id, studentID string, evalType models.EvaluationType, score, maxScore float64, recorded time.Time) models.Evaluation {
	return models.Evaluation{
		ID:               id,
		StudentProfileID: studentID,
		TrainerID:        "tr-1",
		Type:             evalType,
		Score:            score,
		MaxScore:         maxScore,
		RecordedDate:     &recorded,
		CreatedAt:        recorded,
		UpdatedAt:        recorded,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
