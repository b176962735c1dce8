package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/interview-coach/internal/models"
)

// ===== REPOSITORY ERRORS =====

var (
	ErrRecordNotFound        = errors.New("record not found")
	ErrDuplicateKey          = errors.New("duplicate key")
	ErrForeignKeyViolation   = errors.New("foreign key violation")
	ErrDatabaseNotConfigured = errors.New("database is not configured: set DATABASE_URL and DATABASE_AUTH_TOKEN")
)

// ===== SHARED FILTER STRUCTS =====

// A zero Limit returns every matching row.

type UserFilters struct {
	Search string           `json:"search"`
	Role   *models.UserRole `json:"role"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

type ResumeFilters struct {
	UserID *uint  `json:"userId"`
	Search string `json:"search"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

type InterviewFilters struct {
	UserID *uint                   `json:"userId"`
	Status *models.InterviewStatus `json:"status"`
	Role   string                  `json:"role"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
}

type QuestionFilters struct {
	InterviewID *uint `json:"interviewId"`
	Answered    *bool `json:"answered"`
	Limit       int   `json:"limit"`
	Offset      int   `json:"offset"`
}

type EvaluationFilters struct {
	UserID      *uint `json:"userId"`
	InterviewID *uint `json:"interviewId"`
	MinScore    *int  `json:"minScore"`
	Limit       int   `json:"limit"`
	Offset      int   `json:"offset"`
}

// ===== SHARED STATISTICS STRUCTS =====

type InterviewStats struct {
	Total            int64              `json:"total"`
	Completed        int64              `json:"completed"`
	AverageDuration  float64            `json:"averageDuration"`
	RoleDistribution []models.RoleCount `json:"roleDistribution"`
}

type EvaluationStats struct {
	Total        int64                `json:"total"`
	AverageScore float64              `json:"averageScore"`
	Performance  []models.BucketCount `json:"performance"`
}

// ===== REPOSITORIES =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*models.User, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	Count(ctx context.Context) (int64, error)
}

type ResumeRepository interface {
	Create(ctx context.Context, resume *models.Resume) error
	GetByID(ctx context.Context, id uint) (*models.Resume, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, resume *models.Resume) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters ResumeFilters) ([]*models.Resume, int64, error)
}

type InterviewRepository interface {
	Create(ctx context.Context, interview *models.Interview) error
	GetByID(ctx context.Context, id uint) (*models.Interview, error)
	Update(ctx context.Context, interview *models.Interview) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters InterviewFilters) ([]*models.Interview, int64, error)
	GetStats(ctx context.Context) (*InterviewStats, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	// CreateBatch inserts every question in one statement or none of them.
	CreateBatch(ctx context.Context, questions []*models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters QuestionFilters) ([]*models.Question, int64, error)
	CountByInterview(ctx context.Context, interviewID uint) (int64, error)
	CountByInterviews(ctx context.Context, interviewIDs []uint) (map[uint]int, error)
	ExistsNumber(ctx context.Context, interviewID uint, number int) (bool, error)
}

type EvaluationRepository interface {
	Create(ctx context.Context, evaluation *models.Evaluation) error
	GetByID(ctx context.Context, id uint) (*models.Evaluation, error)
	GetByInterview(ctx context.Context, interviewID uint) (*models.Evaluation, error)
	GetByInterviews(ctx context.Context, interviewIDs []uint) (map[uint]*models.Evaluation, error)
	Update(ctx context.Context, evaluation *models.Evaluation) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters EvaluationFilters) ([]*models.Evaluation, int64, error)
	GetStats(ctx context.Context) (*EvaluationStats, error)
}

// Repository aggregates the entity repositories behind one capability flag.
type Repository interface {
	Users() UserRepository
	Resumes() ResumeRepository
	Interviews() InterviewRepository
	Questions() QuestionRepository
	Evaluations() EvaluationRepository
	// Available is false when no database is configured.
	Available() bool
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}

// EmptyBuckets returns every performance bucket with a zero count.
func EmptyBuckets() []models.BucketCount {
	buckets := make([]models.BucketCount, 0, len(models.PerformanceBuckets))
	for _, b := range models.PerformanceBuckets {
		buckets = append(buckets, models.BucketCount{Name: b})
	}
	return buckets
}
