package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"gorm.io/gorm"
)

type InterviewPostgreSQL struct {
	db *gorm.DB
}

func NewInterviewPostgreSQL(db *gorm.DB) repositories.InterviewRepository {
	return &InterviewPostgreSQL{db: db}
}

func (i *InterviewPostgreSQL) Create(ctx context.Context, interview *models.Interview) error {
	return translateError(i.db.WithContext(ctx).Create(interview).Error)
}

func (i *InterviewPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Interview, error) {
	var interview models.Interview
	if err := i.db.WithContext(ctx).First(&interview, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &interview, nil
}

func (i *InterviewPostgreSQL) Update(ctx context.Context, interview *models.Interview) error {
	return translateError(i.db.WithContext(ctx).Save(interview).Error)
}

func (i *InterviewPostgreSQL) Delete(ctx context.Context, id uint) error {
	return deleteByID(i.db.WithContext(ctx), &models.Interview{}, id)
}

func (i *InterviewPostgreSQL) List(ctx context.Context, filters repositories.InterviewFilters) ([]*models.Interview, int64, error) {
	var interviews []*models.Interview
	var total int64

	query := i.db.WithContext(ctx).Model(&models.Interview{})
	query = i.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	query = applyPagination(query.Order("started_at DESC, id DESC"), filters.Limit, filters.Offset)
	if err := query.Find(&interviews).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return interviews, total, nil
}

func (i *InterviewPostgreSQL) GetStats(ctx context.Context) (*repositories.InterviewStats, error) {
	stats := &repositories.InterviewStats{}
	db := i.db.WithContext(ctx)

	if err := db.Model(&models.Interview{}).Count(&stats.Total).Error; err != nil {
		return nil, translateError(err)
	}
	if err := db.Model(&models.Interview{}).
		Where("status = ?", models.InterviewCompleted).
		Count(&stats.Completed).Error; err != nil {
		return nil, translateError(err)
	}

	var avgDuration sql.NullFloat64
	if err := db.Model(&models.Interview{}).
		Select("AVG(actual_duration)").
		Where("status = ? AND actual_duration IS NOT NULL", models.InterviewCompleted).
		Scan(&avgDuration).Error; err != nil {
		return nil, translateError(err)
	}
	stats.AverageDuration = avgDuration.Float64

	stats.RoleDistribution = []models.RoleCount{}
	if err := db.Model(&models.Interview{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Order("count DESC, role ASC").
		Scan(&stats.RoleDistribution).Error; err != nil {
		return nil, translateError(err)
	}

	return stats, nil
}

func (i *InterviewPostgreSQL) applyFilters(query *gorm.DB, filters repositories.InterviewFilters) *gorm.DB {
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if role := strings.TrimSpace(filters.Role); role != "" {
		query = query.Where("role = ?", role)
	}
	return query
}
