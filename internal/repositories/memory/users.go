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

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTaken(user.Email, 0) {
		return repositories.ErrDuplicateKey
	}

	now := time.Now()
	r.s.nextUser++
	user.ID = r.s.nextUser
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, repositories.ErrRecordNotFound
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, repositories.ErrRecordNotFound
}

func (r *userRepo) GetByIDs(_ context.Context, ids []uint) ([]*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := r.s.users[id]; ok {
			users = append(users, &user)
		}
	}
	return users, nil
}

func (r *userRepo) ExistsByID(_ context.Context, id uint) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.users[id]
	return ok, nil
}

func (r *userRepo) Update(_ context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return repositories.ErrRecordNotFound
	}
	if r.emailTaken(user.Email, user.ID) {
		return repositories.ErrDuplicateKey
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return repositories.ErrRecordNotFound
	}
	delete(r.s.users, id)

	for rid, resume := range r.s.resumes {
		if resume.UserID == id {
			delete(r.s.resumes, rid)
		}
	}
	for iid, interview := range r.s.interviews {
		if interview.UserID == id {
			delete(r.s.interviews, iid)
			r.s.cascadeInterview(iid)
		}
	}
	for eid, evaluation := range r.s.evaluations {
		if evaluation.UserID == id {
			delete(r.s.evaluations, eid)
		}
	}
	return nil
}

func (r *userRepo) List(_ context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filters.Search))
	var matched []*models.User
	for _, user := range r.s.users {
		if search != "" &&
			!strings.Contains(strings.ToLower(user.Email), search) &&
			!strings.Contains(strings.ToLower(user.FullName), search) {
			continue
		}
		if filters.Role != nil && user.Role != *filters.Role {
			continue
		}
		matched = append(matched, &user)
	}

	slices.SortFunc(matched, func(a, b *models.User) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return page(matched, filters.Limit, filters.Offset), int64(len(matched)), nil
}

func (r *userRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.s.users)), nil
}

func (r *userRepo) emailTaken(email string, exceptID uint) bool {
	for id, user := range r.s.users {
		if id != exceptID && user.Email == email {
			return true
		}
	}
	return false
}
