package postgres

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"gorm.io/gorm"
)

// Store is the gorm-backed Repository.
type Store struct {
	users       repositories.UserRepository
	resumes     repositories.ResumeRepository
	interviews  repositories.InterviewRepository
	questions   repositories.QuestionRepository
	evaluations repositories.EvaluationRepository
}

// New builds every entity repository over db. db must be opened with
// TranslateError so constraint failures map onto repository errors.
func New(db *gorm.DB) repositories.Repository {
	return &Store{
		users:       NewUserPostgreSQL(db),
		resumes:     NewResumePostgreSQL(db),
		interviews:  NewInterviewPostgreSQL(db),
		questions:   NewQuestionPostgreSQL(db),
		evaluations: NewEvaluationPostgreSQL(db),
	}
}

func (s *Store) Users() repositories.UserRepository             { return s.users }
func (s *Store) Resumes() repositories.ResumeRepository         { return s.resumes }
func (s *Store) Interviews() repositories.InterviewRepository   { return s.interviews }
func (s *Store) Questions() repositories.QuestionRepository     { return s.questions }
func (s *Store) Evaluations() repositories.EvaluationRepository { return s.evaluations }
func (s *Store) Available() bool                                { return true }

// translateError maps gorm sentinel errors onto repository errors, keeping the cause.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", repositories.ErrRecordNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", repositories.ErrDuplicateKey, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", repositories.ErrForeignKeyViolation, err)
	default:
		return err
	}
}

// applyPagination applies limit/offset; a zero limit leaves the query unbounded.
func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}

// deleteByID deletes one row of model and reports a missing row as not found.
func deleteByID(db *gorm.DB, model interface{}, id uint) error {
	result := db.Delete(model, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrRecordNotFound
	}
	return nil
}

func likePattern(s string) string {
	return "%" + s + "%"
}
