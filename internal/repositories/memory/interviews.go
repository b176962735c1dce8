package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
)

type interviewRepo struct {
	s *Store
}

func (r *interviewRepo) Create(_ context.Context, interview *models.Interview) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkReferences(interview); err != nil {
		return err
	}

	now := time.Now()
	r.s.nextInterview++
	interview.ID = r.s.nextInterview
	if interview.StartedAt.IsZero() {
		interview.StartedAt = now
	}
	if interview.CreatedAt.IsZero() {
		interview.CreatedAt = now
	}
	if interview.Status == "" {
		interview.Status = models.InterviewInProgress
	}
	r.s.interviews[interview.ID] = *interview
	return nil
}

func (r *interviewRepo) GetByID(_ context.Context, id uint) (*models.Interview, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	interview, ok := r.s.interviews[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return &interview, nil
}

func (r *interviewRepo) Update(_ context.Context, interview *models.Interview) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.interviews[interview.ID]; !ok {
		return repositories.ErrRecordNotFound
	}
	if err := r.checkReferences(interview); err != nil {
		return err
	}
	r.s.interviews[interview.ID] = *interview
	return nil
}

func (r *interviewRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.interviews[id]; !ok {
		return repositories.ErrRecordNotFound
	}
	delete(r.s.interviews, id)
	r.s.cascadeInterview(id)
	return nil
}

func (r *interviewRepo) List(_ context.Context, filters repositories.InterviewFilters) ([]*models.Interview, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	role := strings.TrimSpace(filters.Role)
	var matched []*models.Interview
	for _, interview := range r.s.interviews {
		if filters.UserID != nil && interview.UserID != *filters.UserID {
			continue
		}
		if filters.Status != nil && interview.Status != *filters.Status {
			continue
		}
		if role != "" && interview.Role != role {
			continue
		}
		matched = append(matched, &interview)
	}

	slices.SortFunc(matched, func(a, b *models.Interview) int {
		if c := b.StartedAt.Compare(a.StartedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return page(matched, filters.Limit, filters.Offset), int64(len(matched)), nil
}

func (r *interviewRepo) GetStats(_ context.Context) (*repositories.InterviewStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stats := &repositories.InterviewStats{RoleDistribution: []models.RoleCount{}}
	roleCounts := make(map[string]int64)
	var durationSum, durationCount int

	for _, interview := range r.s.interviews {
		stats.Total++
		roleCounts[interview.Role]++
		if interview.Status != models.InterviewCompleted {
			continue
		}
		stats.Completed++
		if interview.ActualDuration != nil {
			durationSum += *interview.ActualDuration
			durationCount++
		}
	}

	if durationCount > 0 {
		stats.AverageDuration = float64(durationSum) / float64(durationCount)
	}
	for role, count := range roleCounts {
		stats.RoleDistribution = append(stats.RoleDistribution, models.RoleCount{Role: role, Count: count})
	}
	slices.SortFunc(stats.RoleDistribution, func(a, b models.RoleCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Role, b.Role)
	})

	return stats, nil
}

func (r *interviewRepo) checkReferences(interview *models.Interview) error {
	if _, ok := r.s.users[interview.UserID]; !ok {
		return repositories.ErrForeignKeyViolation
	}
	if interview.ResumeID != nil {
		if _, ok := r.s.resumes[*interview.ResumeID]; !ok {
			return repositories.ErrForeignKeyViolation
		}
	}
	return nil
}
