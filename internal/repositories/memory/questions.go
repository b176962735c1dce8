package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
)

type questionRepo struct {
	s *Store
}

func (r *questionRepo) Create(ctx context.Context, question *models.Question) error {
	return r.CreateBatch(ctx, []*models.Question{question})
}

func (r *questionRepo) CreateBatch(_ context.Context, questions []*models.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// Validate the whole batch before inserting so it lands all-or-nothing.
	seen := make(map[[2]uint]bool, len(questions))
	for _, q := range questions {
		if _, ok := r.s.interviews[q.InterviewID]; !ok {
			return repositories.ErrForeignKeyViolation
		}
		key := [2]uint{q.InterviewID, uint(q.QuestionNumber)}
		if seen[key] || r.numberTaken(q.InterviewID, q.QuestionNumber, 0) {
			return repositories.ErrDuplicateKey
		}
		seen[key] = true
	}

	now := time.Now()
	for _, q := range questions {
		r.s.nextQuestion++
		q.ID = r.s.nextQuestion
		if q.AskedAt.IsZero() {
			q.AskedAt = now
		}
		r.s.questions[q.ID] = *q
	}
	return nil
}

func (r *questionRepo) GetByID(_ context.Context, id uint) (*models.Question, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	question, ok := r.s.questions[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return &question, nil
}

func (r *questionRepo) Update(_ context.Context, question *models.Question) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.questions[question.ID]; !ok {
		return repositories.ErrRecordNotFound
	}
	if r.numberTaken(question.InterviewID, question.QuestionNumber, question.ID) {
		return repositories.ErrDuplicateKey
	}
	r.s.questions[question.ID] = *question
	return nil
}

func (r *questionRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.questions[id]; !ok {
		return repositories.ErrRecordNotFound
	}
	delete(r.s.questions, id)
	return nil
}

func (r *questionRepo) List(_ context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*models.Question
	for _, question := range r.s.questions {
		if filters.InterviewID != nil && question.InterviewID != *filters.InterviewID {
			continue
		}
		if filters.Answered != nil && question.IsAnswered() != *filters.Answered {
			continue
		}
		matched = append(matched, &question)
	}

	slices.SortFunc(matched, func(a, b *models.Question) int {
		if c := cmp.Compare(a.QuestionNumber, b.QuestionNumber); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return page(matched, filters.Limit, filters.Offset), int64(len(matched)), nil
}

func (r *questionRepo) CountByInterview(_ context.Context, interviewID uint) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, question := range r.s.questions {
		if question.InterviewID == interviewID {
			count++
		}
	}
	return count, nil
}

func (r *questionRepo) CountByInterviews(_ context.Context, interviewIDs []uint) (map[uint]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[uint]bool, len(interviewIDs))
	for _, id := range interviewIDs {
		wanted[id] = true
	}
	counts := make(map[uint]int, len(interviewIDs))
	for _, question := range r.s.questions {
		if wanted[question.InterviewID] {
			counts[question.InterviewID]++
		}
	}
	return counts, nil
}

func (r *questionRepo) ExistsNumber(_ context.Context, interviewID uint, number int) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.numberTaken(interviewID, number, 0), nil
}

func (r *questionRepo) numberTaken(interviewID uint, number int, exceptID uint) bool {
	for id, question := range r.s.questions {
		if id != exceptID && question.InterviewID == interviewID && question.QuestionNumber == number {
			return true
		}
	}
	return false
}
