package postgres

import (
	"context"
	"strings"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"gorm.io/gorm"
)

type ResumePostgreSQL struct {
	db *gorm.DB
}

func NewResumePostgreSQL(db *gorm.DB) repositories.ResumeRepository {
	return &ResumePostgreSQL{db: db}
}

func (r *ResumePostgreSQL) Create(ctx context.Context, resume *models.Resume) error {
	return translateError(r.db.WithContext(ctx).Create(resume).Error)
}

func (r *ResumePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.WithContext(ctx).First(&resume, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &resume, nil
}

func (r *ResumePostgreSQL) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Resume{}).Where("id = ?", id).Count(&count).Error
	return count > 0, translateError(err)
}

func (r *ResumePostgreSQL) Update(ctx context.Context, resume *models.Resume) error {
	return translateError(r.db.WithContext(ctx).Save(resume).Error)
}

func (r *ResumePostgreSQL) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.Resume{}, id)
}

func (r *ResumePostgreSQL) List(ctx context.Context, filters repositories.ResumeFilters) ([]*models.Resume, int64, error) {
	var resumes []*models.Resume
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Resume{})
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		query = query.Where("LOWER(file_name) LIKE ?", likePattern(strings.ToLower(search)))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	query = applyPagination(query.Order("uploaded_at DESC, id DESC"), filters.Limit, filters.Offset)
	if err := query.Find(&resumes).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return resumes, total, nil
}
