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

type resumeRepo struct {
	s *Store
}

func (r *resumeRepo) Create(_ context.Context, resume *models.Resume) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[resume.UserID]; !ok {
		return repositories.ErrForeignKeyViolation
	}

	r.s.nextResume++
	resume.ID = r.s.nextResume
	if resume.UploadedAt.IsZero() {
		resume.UploadedAt = time.Now()
	}
	r.s.resumes[resume.ID] = *resume
	return nil
}

func (r *resumeRepo) GetByID(_ context.Context, id uint) (*models.Resume, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	resume, ok := r.s.resumes[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return &resume, nil
}

func (r *resumeRepo) ExistsByID(_ context.Context, id uint) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.resumes[id]
	return ok, nil
}

func (r *resumeRepo) Update(_ context.Context, resume *models.Resume) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.resumes[resume.ID]; !ok {
		return repositories.ErrRecordNotFound
	}
	r.s.resumes[resume.ID] = *resume
	return nil
}

func (r *resumeRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.resumes[id]; !ok {
		return repositories.ErrRecordNotFound
	}
	delete(r.s.resumes, id)

	for iid, interview := range r.s.interviews {
		if interview.ResumeID != nil && *interview.ResumeID == id {
			interview.ResumeID = nil
			r.s.interviews[iid] = interview
		}
	}
	return nil
}

func (r *resumeRepo) List(_ context.Context, filters repositories.ResumeFilters) ([]*models.Resume, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filters.Search))
	var matched []*models.Resume
	for _, resume := range r.s.resumes {
		if filters.UserID != nil && resume.UserID != *filters.UserID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(resume.FileName), search) {
			continue
		}
		matched = append(matched, &resume)
	}

	slices.SortFunc(matched, func(a, b *models.Resume) int {
		if c := b.UploadedAt.Compare(a.UploadedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return page(matched, filters.Limit, filters.Offset), int64(len(matched)), nil
}
