package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/SAP-F-2025/interview-coach/internal/validator"
)

type interviewService struct {
	repo        repositories.Repository
	events      EventService
	synthesizer *EvaluationSynthesizer
	logger      *ServiceLogger
	validator   *validator.Validator
	clock       clock
}

func NewInterviewService(
	repo repositories.Repository,
	events EventService,
	synthesizer *EvaluationSynthesizer,
	logger *slog.Logger,
	validator *validator.Validator,
) InterviewService {
	return &interviewService{
		repo:        repo,
		events:      events,
		synthesizer: synthesizer,
		logger:      NewServiceLogger(logger, "interviews"),
		validator:   validator,
	}
}

func (s *interviewService) List(ctx context.Context, filters repositories.InterviewFilters) ([]*models.Interview, int64, error) {
	filters.Role = strings.TrimSpace(filters.Role)
	interviews, total, err := s.repo.Interviews().List(ctx, filters)
	if err != nil {
		return nil, 0, repoError(err, nil, "list interviews")
	}
	return interviews, total, nil
}

func (s *interviewService) GetByID(ctx context.Context, id uint) (*models.Interview, error) {
	interview, err := s.repo.Interviews().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ErrInterviewNotFound, "get interview")
	}
	return interview, nil
}

func (s *interviewService) Create(ctx context.Context, req *CreateInterviewRequest) (interview *models.Interview, err error) {
	started := time.Now()
	defer func() {
		var id uint
		if interview != nil {
			id = interview.ID
		}
		s.logger.LogOperation(ctx, "create", "interview", id, started, err)
	}()

	if err := validateRequest(s.validator, req, CreateInterviewCodes); err != nil {
		return nil, err
	}

	userID := uint(*req.UserID)
	exists, err := s.repo.Users().ExistsByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, nil, "check user")
	}
	if !exists {
		return nil, ErrUserRefNotFound
	}

	resumeID := uintPtr(req.ResumeID)
	if resumeID != nil {
		exists, err := s.repo.Resumes().ExistsByID(ctx, *resumeID)
		if err != nil {
			return nil, repoError(err, nil, "check resume")
		}
		if !exists {
			return nil, ErrResumeRefNotFound
		}
	}

	status := req.Status
	if status == "" {
		status = models.InterviewInProgress
	}
	now := s.clock.now()
	interview = &models.Interview{
		UserID:          userID,
		ResumeID:        resumeID,
		Role:            strings.TrimSpace(req.Role),
		TimePerQuestion: *req.TimePerQuestion,
		TotalDuration:   *req.TotalDuration,
		Status:          status,
		StartedAt:       now,
		CreatedAt:       now,
	}
	if status == models.InterviewCompleted {
		interview.CompletedAt = timePtr(now)
	}

	if err := s.repo.Interviews().Create(ctx, interview); err != nil {
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return nil, ErrUserRefNotFound
		}
		return nil, repoError(err, nil, "create interview")
	}

	s.events.InterviewCreated(ctx, interview)
	return interview, nil
}

func (s *interviewService) Update(ctx context.Context, id uint, req *UpdateInterviewRequest) (interview *models.Interview, err error) {
	started := time.Now()
	defer func() { s.logger.LogOperation(ctx, "update", "interview", id, started, err) }()

	if err := validateRequest(s.validator, req, UpdateInterviewCodes); err != nil {
		return nil, err
	}
	if req.isEmpty() {
		return nil, ErrNoUpdates
	}

	interview, err = s.repo.Interviews().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ErrInterviewNotFound, "get interview")
	}
	wasCompleted := interview.Status == models.InterviewCompleted

	if req.Role != nil {
		interview.Role = strings.TrimSpace(*req.Role)
	}
	if req.ActualDuration != nil {
		interview.ActualDuration = intPtr(*req.ActualDuration)
	}
	if req.Status != nil {
		interview.Status = *req.Status
	}
	if req.CompletedAt != nil {
		interview.CompletedAt = timePtr(req.CompletedAt.UTC())
	}
	if req.Status != nil && *req.Status == models.InterviewCompleted && req.CompletedAt == nil {
		interview.CompletedAt = timePtr(s.clock.now())
	}
	becameCompleted := !wasCompleted && interview.Status == models.InterviewCompleted

	if err := s.repo.Interviews().Update(ctx, interview); err != nil {
		return nil, repoError(err, ErrInterviewNotFound, "update interview")
	}

	if becameCompleted {
		s.events.InterviewCompleted(ctx, interview)
	}
	return interview, nil
}

func (s *interviewService) Delete(ctx context.Context, id uint) (interview *models.Interview, err error) {
	started := time.Now()
	defer func() { s.logger.LogOperation(ctx, "delete", "interview", id, started, err) }()

	interview, err = s.repo.Interviews().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ErrInterviewNotFound, "get interview")
	}
	if err := s.repo.Interviews().Delete(ctx, id); err != nil {
		return nil, repoError(err, ErrInterviewNotFound, "delete interview")
	}
	return interview, nil
}

func (s *interviewService) Complete(ctx context.Context, id uint, req *CompleteInterviewRequest) (result *CompletionResult, err error) {
	started := time.Now()
	defer func() { s.logger.LogOperation(ctx, "complete", "interview", id, started, err) }()

	if err := validateRequest(s.validator, req, CompleteInterviewCodes); err != nil {
		return nil, err
	}

	interview, err := s.repo.Interviews().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ErrInterviewNotFound, "get interview")
	}

	_, err = s.repo.Evaluations().GetByInterview(ctx, id)
	switch {
	case err == nil:
		return nil, ErrEvaluationExists
	case !repositories.IsNotFound(err):
		return nil, repoError(err, nil, "check evaluation")
	}

	questions, _, err := s.repo.Questions().List(ctx, repositories.QuestionFilters{InterviewID: &id})
	if err != nil {
		return nil, repoError(err, nil, "list questions")
	}
	answered := 0
	for _, q := range questions {
		if q.IsAnswered() {
			answered++
		}
	}

	becameCompleted := interview.Status != models.InterviewCompleted
	now := s.clock.now()
	if req.ActualDuration != nil {
		interview.ActualDuration = intPtr(*req.ActualDuration)
	} else if interview.ActualDuration == nil {
		elapsed := int(now.Sub(interview.StartedAt) / time.Second)
		interview.ActualDuration = intPtr(max(0, min(elapsed, interview.TotalDuration)))
	}
	interview.Status = models.InterviewCompleted
	if interview.CompletedAt == nil || becameCompleted {
		interview.CompletedAt = timePtr(now)
	}
	if err := s.repo.Interviews().Update(ctx, interview); err != nil {
		return nil, repoError(err, ErrInterviewNotFound, "update interview")
	}
	if becameCompleted {
		s.events.InterviewCompleted(ctx, interview)
	}

	evaluation := s.synthesizer.Synthesize(interview, answered, len(questions))
	evaluation.CreatedAt = now
	if err := s.repo.Evaluations().Create(ctx, evaluation); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEvaluationExists
		}
		return nil, repoError(err, nil, "create evaluation")
	}
	s.events.EvaluationCreated(ctx, evaluation)

	return &CompletionResult{Interview: interview, Evaluation: evaluation}, nil
}
