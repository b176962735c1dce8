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

type questionService struct {
	repo      repositories.Repository
	logger    *ServiceLogger
	validator *validator.Validator
	clock     clock
}

func NewQuestionService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) QuestionService {
	return &questionService{
		repo:      repo,
		logger:    NewServiceLogger(logger, "questions"),
		validator: validator,
	}
}

func (s *questionService) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	questions, total, err := s.repo.Questions().List(ctx, filters)
	if err != nil {
		return nil, 0, repoError(err, nil, "list questions")
	}
	return questions, total, nil
}

func (s *questionService) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	question, err := s.repo.Questions().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ErrQuestionNotFound, "get question")
	}
	return question, nil
}

func (s *questionService) Create(ctx context.Context, req *CreateQuestionRequest) (question *models.Question, err error) {
	started := time.Now()
	defer func() {
		var id uint
		if question != nil {
			id = question.ID
		}
		s.logger.LogOperation(ctx, "create", "question", id, started, err)
	}()

	if err := validateRequest(s.validator, req, CreateQuestionCodes); err != nil {
		return nil, err
	}

	interviewID := uint(*req.InterviewID)
	if _, err := s.repo.Interviews().GetByID(ctx, interviewID); err != nil {
		return nil, repoError(err, ErrInvalidInterviewRef, "get interview")
	}
	taken, err := s.repo.Questions().ExistsNumber(ctx, interviewID, *req.QuestionNumber)
	if err != nil {
		return nil, repoError(err, nil, "check question number")
	}
	if taken {
		return nil, ErrDuplicateQuestionNumber
	}

	now := s.clock.now()
	question = &models.Question{
		InterviewID:    interviewID,
		QuestionText:   strings.TrimSpace(req.QuestionText),
		QuestionNumber: *req.QuestionNumber,
		AskedAt:        now,
		AnswerText:     trimmedPtr(req.AnswerText),
		AnswerVideoURL: trimmedPtr(req.AnswerVideoURL),
		TimeTaken:      req.TimeTaken,
		AnsweredAt:     req.AnsweredAt,
	}
	if question.AnsweredAt == nil && question.IsAnswered() {
		question.AnsweredAt = timePtr(now)
	}

	if err := s.repo.Questions().Create(ctx, question); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, ErrDuplicateQuestionNumber
		case errors.Is(err, repositories.ErrForeignKeyViolation):
			return nil, ErrInvalidInterviewRef
		}
		return nil, repoError(err, nil, "create question")
	}
	return question, nil
}

func (s *questionService) Update(ctx context.Context, id uint, req *UpdateQuestionRequest) (question *models.Question, err error) {
	started := time.Now()
	defer func() { s.logger.LogOperation(ctx, "update", "question", id, started, err) }()

	if err := validateRequest(s.validator, req, UpdateQuestionCodes); err != nil {
		return nil, err
	}
	if req.isEmpty() {
		return nil, ErrNoUpdates
	}

	question, err = s.repo.Questions().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ErrQuestionNotFound, "get question")
	}

	hadAnsweredAt := question.AnsweredAt != nil
	answerSupplied := req.AnswerText != nil || req.AnswerVideoURL != nil
	if req.AnswerText != nil {
		question.AnswerText = trimmedPtr(req.AnswerText)
	}
	if req.AnswerVideoURL != nil {
		question.AnswerVideoURL = trimmedPtr(req.AnswerVideoURL)
	}
	if req.TimeTaken != nil {
		question.TimeTaken = intPtr(*req.TimeTaken)
	}
	if req.AnsweredAt != nil {
		question.AnsweredAt = timePtr(req.AnsweredAt.UTC())
	} else if answerSupplied && !hadAnsweredAt {
		question.AnsweredAt = timePtr(s.clock.now())
	}

	if err := s.repo.Questions().Update(ctx, question); err != nil {
		return nil, repoError(err, ErrQuestionNotFound, "update question")
	}
	return question, nil
}

func (s *questionService) Delete(ctx context.Context, id uint) (question *models.Question, err error) {
	started := time.Now()
	defer func() { s.logger.LogOperation(ctx, "delete", "question", id, started, err) }()

	question, err = s.repo.Questions().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ErrQuestionNotFound, "get question")
	}
	if err := s.repo.Questions().Delete(ctx, id); err != nil {
		return nil, repoError(err, ErrQuestionNotFound, "delete question")
	}
	return question, nil
}
