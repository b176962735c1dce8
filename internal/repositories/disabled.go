package repositories

import (
	"context"

	"github.com/SAP-F-2025/interview-coach/internal/models"
)

// Disabled is the Repository used when no database is configured. Every
// operation fails with ErrDatabaseNotConfigured.
type Disabled struct{}

func NewDisabled() Repository {
	return Disabled{}
}

func (Disabled) Users() UserRepository             { return disabledUsers{} }
func (Disabled) Resumes() ResumeRepository         { return disabledResumes{} }
func (Disabled) Interviews() InterviewRepository   { return disabledInterviews{} }
func (Disabled) Questions() QuestionRepository     { return disabledQuestions{} }
func (Disabled) Evaluations() EvaluationRepository { return disabledEvaluations{} }
func (Disabled) Available() bool                   { return false }

type disabledUsers struct{}

func (disabledUsers) Create(context.Context, *models.User) error { return ErrDatabaseNotConfigured }
func (disabledUsers) GetByID(context.Context, uint) (*models.User, error) {
	return nil, ErrDatabaseNotConfigured
}
func (disabledUsers) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, ErrDatabaseNotConfigured
}
func (disabledUsers) GetByIDs(context.Context, []uint) ([]*models.User, error) {
	return nil, ErrDatabaseNotConfigured
}
func (disabledUsers) ExistsByID(context.Context, uint) (bool, error) {
	return false, ErrDatabaseNotConfigured
}
func (disabledUsers) Update(context.Context, *models.User) error { return ErrDatabaseNotConfigured }
func (disabledUsers) Delete(context.Context, uint) error         { return ErrDatabaseNotConfigured }
func (disabledUsers) List(context.Context, UserFilters) ([]*models.User, int64, error) {
	return nil, 0, ErrDatabaseNotConfigured
}
func (disabledUsers) Count(context.Context) (int64, error) { return 0, ErrDatabaseNotConfigured }

type disabledResumes struct{}

func (disabledResumes) Create(context.Context, *models.Resume) error { return ErrDatabaseNotConfigured }
func (disabledResumes) GetByID(context.Context, uint) (*models.Resume, error) {
	return nil, ErrDatabaseNotConfigured
}
func (disabledResumes) ExistsByID(context.Context, uint) (bool, error) {
	return false, ErrDatabaseNotConfigured
}
func (disabledResumes) Update(context.Context, *models.Resume) error { return ErrDatabaseNotConfigured }
func (disabledResumes) Delete(context.Context, uint) error           { return ErrDatabaseNotConfigured }
func (disabledResumes) List(context.Context, ResumeFilters) ([]*models.Resume, int64, error) {
	return nil, 0, ErrDatabaseNotConfigured
}

type disabledInterviews struct{}

func (disabledInterviews) Create(context.Context, *models.Interview) error {
	return ErrDatabaseNotConfigured
}
func (disabledInterviews) GetByID(context.Context, uint) (*models.Interview, error) {
	return nil, ErrDatabaseNotConfigured
}
func (disabledInterviews) Update(context.Context, *models.Interview) error {
	return ErrDatabaseNotConfigured
}
func (disabledInterviews) Delete(context.Context, uint) error { return ErrDatabaseNotConfigured }
func (disabledInterviews) List(context.Context, InterviewFilters) ([]*models.Interview, int64, error) {
	return nil, 0, ErrDatabaseNotConfigured
}
func (disabledInterviews) GetStats(context.Context) (*InterviewStats, error) {
	return nil, ErrDatabaseNotConfigured
}

type disabledQuestions struct{}

func (disabledQuestions) Create(context.Context, *models.Question) error {
	return ErrDatabaseNotConfigured
}
func (disabledQuestions) CreateBatch(context.Context, []*models.Question) error {
	return ErrDatabaseNotConfigured
}
func (disabledQuestions) GetByID(context.Context, uint) (*models.Question, error) {
	return nil, ErrDatabaseNotConfigured
}
func (disabledQuestions) Update(context.Context, *models.Question) error {
	return ErrDatabaseNotConfigured
}
func (disabledQuestions) Delete(context.Context, uint) error { return ErrDatabaseNotConfigured }
func (disabledQuestions) List(context.Context, QuestionFilters) ([]*models.Question, int64, error) {
	return nil, 0, ErrDatabaseNotConfigured
}
func (disabledQuestions) CountByInterview(context.Context, uint) (int64, error) {
	return 0, ErrDatabaseNotConfigured
}
func (disabledQuestions) CountByInterviews(context.Context, []uint) (map[uint]int, error) {
	return nil, ErrDatabaseNotConfigured
}
func (disabledQuestions) ExistsNumber(context.Context, uint, int) (bool, error) {
	return false, ErrDatabaseNotConfigured
}

type disabledEvaluations struct{}

func (disabledEvaluations) Create(context.Context, *models.Evaluation) error {
	return ErrDatabaseNotConfigured
}
func (disabledEvaluations) GetByID(context.Context, uint) (*models.Evaluation, error) {
	return nil, ErrDatabaseNotConfigured
}
func (disabledEvaluations) GetByInterview(context.Context, uint) (*models.Evaluation, error) {
	return nil, ErrDatabaseNotConfigured
}
func (disabledEvaluations) GetByInterviews(context.Context, []uint) (map[uint]*models.Evaluation, error) {
	return nil, ErrDatabaseNotConfigured
}
func (disabledEvaluations) Update(context.Context, *models.Evaluation) error {
	return ErrDatabaseNotConfigured
}
func (disabledEvaluations) Delete(context.Context, uint) error { return ErrDatabaseNotConfigured }
func (disabledEvaluations) List(context.Context, EvaluationFilters) ([]*models.Evaluation, int64, error) {
	return nil, 0, ErrDatabaseNotConfigured
}
func (disabledEvaluations) GetStats(context.Context) (*EvaluationStats, error) {
	return nil, ErrDatabaseNotConfigured
}
