package services

import (
	"context"
	"encoding/json"
	"io"
	"time"

	apperrors "github.com/SAP-F-2025/interview-coach/internal/errors"
	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
)

// ===== SERVICES =====

type UserService interface {
	List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, id uint, req *UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id uint) (*models.User, error)
}

type ResumeService interface {
	List(ctx context.Context, filters repositories.ResumeFilters) ([]*models.Resume, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Resume, error)
	Create(ctx context.Context, req *CreateResumeRequest) (*models.Resume, error)
	Update(ctx context.Context, id uint, req *UpdateResumeRequest) (*models.Resume, error)
	Delete(ctx context.Context, id uint) (*models.Resume, error)
	Upload(ctx context.Context, req *UploadResumeRequest) (*models.Resume, error)
}

type InterviewService interface {
	List(ctx context.Context, filters repositories.InterviewFilters) ([]*models.Interview, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Interview, error)
	Create(ctx context.Context, req *CreateInterviewRequest) (*models.Interview, error)
	Update(ctx context.Context, id uint, req *UpdateInterviewRequest) (*models.Interview, error)
	Delete(ctx context.Context, id uint) (*models.Interview, error)
	// Complete marks the interview completed and synthesizes its evaluation.
	Complete(ctx context.Context, id uint, req *CompleteInterviewRequest) (*CompletionResult, error)
}

type QuestionService interface {
	List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	Create(ctx context.Context, req *CreateQuestionRequest) (*models.Question, error)
	Update(ctx context.Context, id uint, req *UpdateQuestionRequest) (*models.Question, error)
	Delete(ctx context.Context, id uint) (*models.Question, error)
}

type EvaluationService interface {
	List(ctx context.Context, filters repositories.EvaluationFilters) ([]*models.Evaluation, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Evaluation, error)
	Create(ctx context.Context, req *CreateEvaluationRequest) (*models.Evaluation, error)
	Update(ctx context.Context, id uint, req *UpdateEvaluationRequest) (*models.Evaluation, error)
	Delete(ctx context.Context, id uint) (*models.Evaluation, error)
}

type GenerationService interface {
	// Generate creates the question set of an in-progress interview exactly once.
	Generate(ctx context.Context, interviewID uint) (*GenerationResult, error)
}

type AnalyticsService interface {
	Overview(ctx context.Context) (*models.AnalyticsOverview, error)
	UserPerformance(ctx context.Context, userID uint) (*models.PerformanceStats, error)
}

type ReportService interface {
	ExportInterviews(ctx context.Context, format ReportFormat) (*Report, error)
}

// ===== REQUESTS =====

type CreateUserRequest struct {
	Email     string          `json:"email" validate:"required,email_format"`
	FullName  string          `json:"fullName" validate:"required,notblank"`
	Role      models.UserRole `json:"role" validate:"omitempty,user_role"`
	AvatarURL *string         `json:"avatarUrl"`
}

type UpdateUserRequest struct {
	Email     *string          `json:"email" validate:"omitnil,email_format"`
	FullName  *string          `json:"fullName" validate:"omitnil,notblank"`
	Role      *models.UserRole `json:"role" validate:"omitnil,user_role"`
	AvatarURL *string          `json:"avatarUrl"`
}

type CreateResumeRequest struct {
	UserID         *int            `json:"userId" validate:"required,gt=0"`
	FileURL        string          `json:"fileUrl" validate:"required,notblank"`
	FileName       string          `json:"fileName" validate:"required,notblank"`
	ParsedData     json.RawMessage `json:"parsedData" validate:"omitempty,json_object"`
	SuggestedRoles json.RawMessage `json:"suggestedRoles" validate:"omitempty,json_array"`
}

type UpdateResumeRequest struct {
	FileURL        *string         `json:"fileUrl" validate:"omitnil,notblank"`
	FileName       *string         `json:"fileName" validate:"omitnil,notblank"`
	ParsedData     json.RawMessage `json:"parsedData" validate:"omitempty,json_object"`
	SuggestedRoles json.RawMessage `json:"suggestedRoles" validate:"omitempty,json_array"`
}

// UploadResumeRequest carries a multipart upload after the handler has opened it.
type UploadResumeRequest struct {
	UserID      uint
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type CreateInterviewRequest struct {
	UserID          *int                   `json:"userId" validate:"required,gt=0"`
	ResumeID        *int                   `json:"resumeId" validate:"omitnil,gt=0"`
	Role            string                 `json:"role" validate:"required,notblank"`
	TimePerQuestion *int                   `json:"timePerQuestion" validate:"required,gt=0"`
	TotalDuration   *int                   `json:"totalDuration" validate:"required,gt=0"`
	Status          models.InterviewStatus `json:"status" validate:"omitempty,interview_status"`
}

type UpdateInterviewRequest struct {
	Role           *string                 `json:"role" validate:"omitnil,notblank"`
	ActualDuration *int                    `json:"actualDuration" validate:"omitnil,gte=0"`
	Status         *models.InterviewStatus `json:"status" validate:"omitnil,interview_status"`
	CompletedAt    *time.Time              `json:"completedAt"`
}

func (r *UpdateInterviewRequest) isEmpty() bool {
	return r.Role == nil && r.ActualDuration == nil && r.Status == nil && r.CompletedAt == nil
}

type CompleteInterviewRequest struct {
	ActualDuration *int `json:"actualDuration" validate:"omitnil,gte=0"`
}

type CreateQuestionRequest struct {
	InterviewID    *int       `json:"interviewId" validate:"required,gt=0"`
	QuestionText   string     `json:"questionText" validate:"required,notblank"`
	QuestionNumber *int       `json:"questionNumber" validate:"required,gte=1"`
	AnswerText     *string    `json:"answerText"`
	AnswerVideoURL *string    `json:"answerVideoUrl"`
	TimeTaken      *int       `json:"timeTaken" validate:"omitnil,gt=0"`
	AnsweredAt     *time.Time `json:"answeredAt"`
}

type UpdateQuestionRequest struct {
	AnswerText     *string    `json:"answerText"`
	AnswerVideoURL *string    `json:"answerVideoUrl"`
	TimeTaken      *int       `json:"timeTaken" validate:"omitnil,gt=0"`
	AnsweredAt     *time.Time `json:"answeredAt"`
}

func (r *UpdateQuestionRequest) isEmpty() bool {
	return r.AnswerText == nil && r.AnswerVideoURL == nil && r.TimeTaken == nil && r.AnsweredAt == nil
}

type CreateEvaluationRequest struct {
	InterviewID            *int            `json:"interviewId" validate:"required,gt=0"`
	UserID                 *int            `json:"userId" validate:"required,gt=0"`
	CommunicationScore     *int            `json:"communicationScore" validate:"required,score"`
	ConfidenceScore        *int            `json:"confidenceScore" validate:"required,score"`
	TechnicalAccuracyScore *int            `json:"technicalAccuracyScore" validate:"required,score"`
	ResumeAlignmentScore   *int            `json:"resumeAlignmentScore" validate:"required,score"`
	PersonalityFitScore    *int            `json:"personalityFitScore" validate:"required,score"`
	OverallScore           *int            `json:"overallScore" validate:"required,score"`
	Strengths              json.RawMessage `json:"strengths" validate:"omitempty,json_array"`
	Weaknesses             json.RawMessage `json:"weaknesses" validate:"omitempty,json_array"`
	ImprovementSuggestions json.RawMessage `json:"improvementSuggestions" validate:"omitempty,json_array"`
	RoleFitRecommendation  *string         `json:"roleFitRecommendation"`
	EvaluationData         json.RawMessage `json:"evaluationData" validate:"omitempty,json_object"`
}

type UpdateEvaluationRequest struct {
	CommunicationScore     *int            `json:"communicationScore" validate:"omitnil,score"`
	ConfidenceScore        *int            `json:"confidenceScore" validate:"omitnil,score"`
	TechnicalAccuracyScore *int            `json:"technicalAccuracyScore" validate:"omitnil,score"`
	ResumeAlignmentScore   *int            `json:"resumeAlignmentScore" validate:"omitnil,score"`
	PersonalityFitScore    *int            `json:"personalityFitScore" validate:"omitnil,score"`
	OverallScore           *int            `json:"overallScore" validate:"omitnil,score"`
	Strengths              json.RawMessage `json:"strengths" validate:"omitempty,json_array"`
	Weaknesses             json.RawMessage `json:"weaknesses" validate:"omitempty,json_array"`
	ImprovementSuggestions json.RawMessage `json:"improvementSuggestions" validate:"omitempty,json_array"`
	RoleFitRecommendation  *string         `json:"roleFitRecommendation"`
	EvaluationData         json.RawMessage `json:"evaluationData" validate:"omitempty,json_object"`
}

func (r *UpdateEvaluationRequest) isEmpty() bool {
	return r.CommunicationScore == nil && r.ConfidenceScore == nil && r.TechnicalAccuracyScore == nil &&
		r.ResumeAlignmentScore == nil && r.PersonalityFitScore == nil && r.OverallScore == nil &&
		len(r.Strengths) == 0 && len(r.Weaknesses) == 0 && len(r.ImprovementSuggestions) == 0 &&
		r.RoleFitRecommendation == nil && len(r.EvaluationData) == 0
}

// ===== RESULTS =====

// GenerationSource names what produced a question set.
type GenerationSource string

const (
	SourceAI       GenerationSource = "ai"
	SourceFallback GenerationSource = "fallback"
)

type GenerationResult struct {
	Questions []*models.Question `json:"questions"`
	Count     int                `json:"count"`
	Source    GenerationSource   `json:"source"`
}

type CompletionResult struct {
	Interview  *models.Interview  `json:"interview"`
	Evaluation *models.Evaluation `json:"evaluation"`
}

type ReportFormat string

const (
	ReportXLSX ReportFormat = "xlsx"
	ReportCSV  ReportFormat = "csv"
)

// ParseReportFormat defaults an empty format to xlsx.
func ParseReportFormat(raw string) (ReportFormat, error) {
	switch ReportFormat(raw) {
	case "", ReportXLSX:
		return ReportXLSX, nil
	case ReportCSV:
		return ReportCSV, nil
	default:
		return "", ErrInvalidFormat
	}
}

type Report struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ===== FIELD CODES =====

var (
	CreateUserCodes = apperrors.CodeTable{
		"email":     {Missing: "MISSING_EMAIL", Invalid: "INVALID_EMAIL_FORMAT"},
		"fullName":  {Missing: "MISSING_FULL_NAME", Invalid: "MISSING_FULL_NAME"},
		"role":      {Invalid: "INVALID_ROLE"},
		"avatarUrl": {Invalid: "INVALID_AVATAR_URL"},
	}
	UpdateUserCodes = apperrors.CodeTable{
		"email":     {Invalid: "INVALID_EMAIL_FORMAT"},
		"fullName":  {Invalid: "INVALID_FULL_NAME"},
		"role":      {Invalid: "INVALID_ROLE"},
		"avatarUrl": {Invalid: "INVALID_AVATAR_URL"},
	}

	CreateResumeCodes = apperrors.CodeTable{
		"userId":         {Missing: "MISSING_USER_ID", Invalid: "INVALID_USER_ID"},
		"fileUrl":        {Missing: "INVALID_FILE_URL", Invalid: "INVALID_FILE_URL"},
		"fileName":       {Missing: "INVALID_FILE_NAME", Invalid: "INVALID_FILE_NAME"},
		"parsedData":     {Invalid: "INVALID_PARSED_DATA"},
		"suggestedRoles": {Invalid: "INVALID_SUGGESTED_ROLES"},
	}
	UpdateResumeCodes = apperrors.CodeTable{
		"fileUrl":        {Invalid: "INVALID_FILE_URL"},
		"fileName":       {Invalid: "INVALID_FILE_NAME"},
		"parsedData":     {Invalid: "INVALID_PARSED_DATA"},
		"suggestedRoles": {Invalid: "INVALID_SUGGESTED_ROLES"},
	}

	CreateInterviewCodes = apperrors.CodeTable{
		"userId":          {Missing: "MISSING_USER_ID", Invalid: "INVALID_USER_ID"},
		"resumeId":        {Invalid: "INVALID_RESUME_ID"},
		"role":            {Missing: "MISSING_ROLE", Invalid: "MISSING_ROLE"},
		"timePerQuestion": {Missing: "INVALID_TIME_PER_QUESTION", Invalid: "INVALID_TIME_PER_QUESTION"},
		"totalDuration":   {Missing: "INVALID_TOTAL_DURATION", Invalid: "INVALID_TOTAL_DURATION"},
		"status":          {Invalid: "INVALID_STATUS"},
	}
	UpdateInterviewCodes = apperrors.CodeTable{
		"role":           {Invalid: "INVALID_ROLE"},
		"actualDuration": {Invalid: "INVALID_ACTUAL_DURATION"},
		"status":         {Invalid: "INVALID_STATUS"},
		"completedAt":    {Invalid: "INVALID_COMPLETED_AT"},
	}
	CompleteInterviewCodes = apperrors.CodeTable{
		"actualDuration": {Invalid: "INVALID_ACTUAL_DURATION"},
	}

	CreateQuestionCodes = apperrors.CodeTable{
		"interviewId":    {Missing: "MISSING_INTERVIEW_ID", Invalid: "INVALID_INTERVIEW_ID"},
		"questionText":   {Missing: "MISSING_QUESTION_TEXT", Invalid: "INVALID_QUESTION_TEXT"},
		"questionNumber": {Missing: "MISSING_QUESTION_NUMBER", Invalid: "INVALID_QUESTION_NUMBER"},
		"answerText":     {Invalid: "INVALID_ANSWER_TEXT"},
		"answerVideoUrl": {Invalid: "INVALID_ANSWER_VIDEO_URL"},
		"timeTaken":      {Invalid: "INVALID_TIME_TAKEN"},
		"answeredAt":     {Invalid: "INVALID_ANSWERED_AT"},
	}
	UpdateQuestionCodes = apperrors.CodeTable{
		"answerText":     {Invalid: "INVALID_ANSWER_TEXT"},
		"answerVideoUrl": {Invalid: "INVALID_ANSWER_VIDEO_URL"},
		"timeTaken":      {Invalid: "INVALID_TIME_TAKEN"},
		"answeredAt":     {Invalid: "INVALID_ANSWERED_AT"},
	}

	CreateEvaluationCodes = evaluationCodes(true)
	UpdateEvaluationCodes = evaluationCodes(false)
)

func evaluationCodes(create bool) apperrors.CodeTable {
	scoreCodes := apperrors.FieldCodes{Invalid: "INVALID_SCORE"}
	if create {
		scoreCodes.Missing = "MISSING_SCORE_FIELD"
	}
	table := apperrors.CodeTable{
		"communicationScore":     scoreCodes,
		"confidenceScore":        scoreCodes,
		"technicalAccuracyScore": scoreCodes,
		"resumeAlignmentScore":   scoreCodes,
		"personalityFitScore":    scoreCodes,
		"overallScore":           scoreCodes,
		"strengths":              {Invalid: "INVALID_STRENGTHS"},
		"weaknesses":             {Invalid: "INVALID_WEAKNESSES"},
		"improvementSuggestions": {Invalid: "INVALID_IMPROVEMENT_SUGGESTIONS"},
		"roleFitRecommendation":  {Invalid: "INVALID_ROLE_FIT_RECOMMENDATION"},
		"evaluationData":         {Invalid: "INVALID_EVALUATION_DATA"},
	}
	if create {
		table["interviewId"] = apperrors.FieldCodes{Missing: "MISSING_INTERVIEW_ID", Invalid: "INVALID_INTERVIEW_ID"}
		table["userId"] = apperrors.FieldCodes{Missing: "MISSING_USER_ID", Invalid: "INVALID_USER_ID"}
	}
	return table
}
