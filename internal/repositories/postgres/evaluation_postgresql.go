package postgres

import (
	"context"
	"database/sql"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"gorm.io/gorm"
)

type EvaluationPostgreSQL struct {
	db *gorm.DB
}

func NewEvaluationPostgreSQL(db *gorm.DB) repositories.EvaluationRepository {
	return &EvaluationPostgreSQL{db: db}
}

func (e *EvaluationPostgreSQL) Create(ctx context.Context, evaluation *models.Evaluation) error {
	return translateError(e.db.WithContext(ctx).Create(evaluation).Error)
}

func (e *EvaluationPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := e.db.WithContext(ctx).First(&evaluation, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &evaluation, nil
}

func (e *EvaluationPostgreSQL) GetByInterview(ctx context.Context, interviewID uint) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := e.db.WithContext(ctx).Where("interview_id = ?", interviewID).First(&evaluation).Error; err != nil {
		return nil, translateError(err)
	}
	return &evaluation, nil
}

func (e *EvaluationPostgreSQL) GetByInterviews(ctx context.Context, interviewIDs []uint) (map[uint]*models.Evaluation, error) {
	result := make(map[uint]*models.Evaluation, len(interviewIDs))
	if len(interviewIDs) == 0 {
		return result, nil
	}

	var evaluations []*models.Evaluation
	if err := e.db.WithContext(ctx).Where("interview_id IN ?", interviewIDs).Find(&evaluations).Error; err != nil {
		return nil, translateError(err)
	}
	for _, evaluation := range evaluations {
		result[evaluation.InterviewID] = evaluation
	}
	return result, nil
}

func (e *EvaluationPostgreSQL) Update(ctx context.Context, evaluation *models.Evaluation) error {
	return translateError(e.db.WithContext(ctx).Save(evaluation).Error)
}

func (e *EvaluationPostgreSQL) Delete(ctx context.Context, id uint) error {
	return deleteByID(e.db.WithContext(ctx), &models.Evaluation{}, id)
}

func (e *EvaluationPostgreSQL) List(ctx context.Context, filters repositories.EvaluationFilters) ([]*models.Evaluation, int64, error) {
	var evaluations []*models.Evaluation
	var total int64

	query := e.db.WithContext(ctx).Model(&models.Evaluation{})
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.InterviewID != nil {
		query = query.Where("interview_id = ?", *filters.InterviewID)
	}
	if filters.MinScore != nil {
		query = query.Where("overall_score >= ?", *filters.MinScore)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	query = applyPagination(query.Order("created_at DESC, id DESC"), filters.Limit, filters.Offset)
	if err := query.Find(&evaluations).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return evaluations, total, nil
}

const bucketCase = `CASE
	WHEN overall_score >= 85 THEN 'Excellent'
	WHEN overall_score >= 70 THEN 'Good'
	WHEN overall_score >= 50 THEN 'Average'
	ELSE 'Poor' END`

func (e *EvaluationPostgreSQL) GetStats(ctx context.Context) (*repositories.EvaluationStats, error) {
	stats := &repositories.EvaluationStats{Performance: repositories.EmptyBuckets()}
	db := e.db.WithContext(ctx)

	if err := db.Model(&models.Evaluation{}).Count(&stats.Total).Error; err != nil {
		return nil, translateError(err)
	}

	var avgScore sql.NullFloat64
	if err := db.Model(&models.Evaluation{}).Select("AVG(overall_score)").Scan(&avgScore).Error; err != nil {
		return nil, translateError(err)
	}
	stats.AverageScore = avgScore.Float64

	var rows []struct {
		Bucket string
		Count  int64
	}
	if err := db.Model(&models.Evaluation{}).
		Select(bucketCase + " AS bucket, COUNT(*) AS count").
		Group("bucket").
		Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}

	for _, row := range rows {
		for idx := range stats.Performance {
			if string(stats.Performance[idx].Name) == row.Bucket {
				stats.Performance[idx].Count = row.Count
			}
		}
	}

	return stats, nil
}
