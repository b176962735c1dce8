package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
)

type evaluationRepo struct {
	s *Store
}

func (r *evaluationRepo) Create(_ context.Context, evaluation *models.Evaluation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.interviews[evaluation.InterviewID]; !ok {
		return repositories.ErrForeignKeyViolation
	}
	if _, ok := r.s.users[evaluation.UserID]; !ok {
		return repositories.ErrForeignKeyViolation
	}
	for _, existing := range r.s.evaluations {
		if existing.InterviewID == evaluation.InterviewID {
			return repositories.ErrDuplicateKey
		}
	}

	r.s.nextEvaluation++
	evaluation.ID = r.s.nextEvaluation
	if evaluation.CreatedAt.IsZero() {
		evaluation.CreatedAt = time.Now()
	}
	r.s.evaluations[evaluation.ID] = *evaluation
	return nil
}

func (r *evaluationRepo) GetByID(_ context.Context, id uint) (*models.Evaluation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	evaluation, ok := r.s.evaluations[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return &evaluation, nil
}

func (r *evaluationRepo) GetByInterview(_ context.Context, interviewID uint) (*models.Evaluation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, evaluation := range r.s.evaluations {
		if evaluation.InterviewID == interviewID {
			return &evaluation, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (r *evaluationRepo) GetByInterviews(_ context.Context, interviewIDs []uint) (map[uint]*models.Evaluation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[uint]bool, len(interviewIDs))
	for _, id := range interviewIDs {
		wanted[id] = true
	}
	result := make(map[uint]*models.Evaluation, len(interviewIDs))
	for _, evaluation := range r.s.evaluations {
		if wanted[evaluation.InterviewID] {
			result[evaluation.InterviewID] = &evaluation
		}
	}
	return result, nil
}

func (r *evaluationRepo) Update(_ context.Context, evaluation *models.Evaluation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.evaluations[evaluation.ID]; !ok {
		return repositories.ErrRecordNotFound
	}
	r.s.evaluations[evaluation.ID] = *evaluation
	return nil
}

func (r *evaluationRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.evaluations[id]; !ok {
		return repositories.ErrRecordNotFound
	}
	delete(r.s.evaluations, id)
	return nil
}

func (r *evaluationRepo) List(_ context.Context, filters repositories.EvaluationFilters) ([]*models.Evaluation, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*models.Evaluation
	for _, evaluation := range r.s.evaluations {
		if filters.UserID != nil && evaluation.UserID != *filters.UserID {
			continue
		}
		if filters.InterviewID != nil && evaluation.InterviewID != *filters.InterviewID {
			continue
		}
		if filters.MinScore != nil && evaluation.OverallScore < *filters.MinScore {
			continue
		}
		matched = append(matched, &evaluation)
	}

	slices.SortFunc(matched, func(a, b *models.Evaluation) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return page(matched, filters.Limit, filters.Offset), int64(len(matched)), nil
}

func (r *evaluationRepo) GetStats(_ context.Context) (*repositories.EvaluationStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stats := &repositories.EvaluationStats{Performance: repositories.EmptyBuckets()}
	var scoreSum int
	for _, evaluation := range r.s.evaluations {
		stats.Total++
		scoreSum += evaluation.OverallScore
		bucket := models.BucketFor(evaluation.OverallScore)
		for idx := range stats.Performance {
			if stats.Performance[idx].Name == bucket {
				stats.Performance[idx].Count++
			}
		}
	}
	if stats.Total > 0 {
		stats.AverageScore = float64(scoreSum) / float64(stats.Total)
	}
	return stats, nil
}
