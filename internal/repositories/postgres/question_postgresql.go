package postgres

import (
	"context"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"gorm.io/gorm"
)

type QuestionPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: db}
}

func (q *QuestionPostgreSQL) Create(ctx context.Context, question *models.Question) error {
	return translateError(q.db.WithContext(ctx).Create(question).Error)
}

// CreateBatch relies on a single multi-row INSERT, so a unique violation on
// any row leaves the table untouched.
func (q *QuestionPostgreSQL) CreateBatch(ctx context.Context, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return translateError(q.db.WithContext(ctx).Create(&questions).Error)
}

func (q *QuestionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	if err := q.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &question, nil
}

func (q *QuestionPostgreSQL) Update(ctx context.Context, question *models.Question) error {
	return translateError(q.db.WithContext(ctx).Save(question).Error)
}

func (q *QuestionPostgreSQL) Delete(ctx context.Context, id uint) error {
	return deleteByID(q.db.WithContext(ctx), &models.Question{}, id)
}

func (q *QuestionPostgreSQL) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	var questions []*models.Question
	var total int64

	query := q.db.WithContext(ctx).Model(&models.Question{})
	if filters.InterviewID != nil {
		query = query.Where("interview_id = ?", *filters.InterviewID)
	}
	if filters.Answered != nil {
		if *filters.Answered {
			query = query.Where("answer_text IS NOT NULL OR answer_video_url IS NOT NULL")
		} else {
			query = query.Where("answer_text IS NULL AND answer_video_url IS NULL")
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	query = applyPagination(query.Order("question_number ASC, id ASC"), filters.Limit, filters.Offset)
	if err := query.Find(&questions).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return questions, total, nil
}

func (q *QuestionPostgreSQL) CountByInterview(ctx context.Context, interviewID uint) (int64, error) {
	var count int64
	err := q.db.WithContext(ctx).Model(&models.Question{}).
		Where("interview_id = ?", interviewID).
		Count(&count).Error
	return count, translateError(err)
}

func (q *QuestionPostgreSQL) CountByInterviews(ctx context.Context, interviewIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(interviewIDs))
	if len(interviewIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		InterviewID uint
		Count       int
	}
	if err := q.db.WithContext(ctx).Model(&models.Question{}).
		Select("interview_id, COUNT(*) AS count").
		Where("interview_id IN ?", interviewIDs).
		Group("interview_id").
		Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}

	for _, row := range rows {
		counts[row.InterviewID] = row.Count
	}
	return counts, nil
}

func (q *QuestionPostgreSQL) ExistsNumber(ctx context.Context, interviewID uint, number int) (bool, error) {
	var count int64
	err := q.db.WithContext(ctx).Model(&models.Question{}).
		Where("interview_id = ? AND question_number = ?", interviewID, number).
		Count(&count).Error
	return count > 0, translateError(err)
}
