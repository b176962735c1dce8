package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/SAP-F-2025/interview-coach/internal/validator"
)

type evaluationService struct {
	repo      repositories.Repository
	events    EventService
	logger    *ServiceLogger
	validator *validator.Validator
	clock     clock
}

func NewEvaluationService(repo repositories.Repository, events EventService, logger *slog.Logger, validator *validator.Validator) EvaluationService {
	return &evaluationService{
		repo:      repo,
		events:    events,
		logger:    NewServiceLogger(logger, "evaluations"),
		validator: validator,
	}
}

func (s *evaluationService) List(ctx context.Context, filters repositories.EvaluationFilters) ([]*models.Evaluation, int64, error) {
	if filters.MinScore != nil && (*filters.MinScore < models.MinScore || *filters.MinScore > models.MaxScore) {
		return nil, 0, ErrInvalidMinScore
	}
	evaluations, total, err := s.repo.Evaluations().List(ctx, filters)
	if err != nil {
		return nil, 0, repoError(err, nil, "list evaluations")
	}
	return evaluations, total, nil
}

func (s *evaluationService) GetByID(ctx context.Context, id uint) (*models.Evaluation, error) {
	evaluation, err := s.repo.Evaluations().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ErrEvaluationNotFound, "get evaluation")
	}
	return evaluation, nil
}

func (s *evaluationService) Create(ctx context.Context, req *CreateEvaluationRequest) (evaluation *models.Evaluation, err error) {
	started := time.Now()
	defer func() {
		var id uint
		if evaluation != nil {
			id = evaluation.ID
		}
		s.logger.LogOperation(ctx, "create", "evaluation", id, started, err)
	}()

	if err := validateRequest(s.validator, req, CreateEvaluationCodes); err != nil {
		return nil, err
	}

	interviewID, userID := uint(*req.InterviewID), uint(*req.UserID)
	if _, err := s.repo.Interviews().GetByID(ctx, interviewID); err != nil {
		return nil, repoError(err, ErrEvaluationRefs, "get interview")
	}
	exists, err := s.repo.Users().ExistsByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, nil, "check user")
	}
	if !exists {
		return nil, ErrEvaluationRefs
	}

	_, err = s.repo.Evaluations().GetByInterview(ctx, interviewID)
	switch {
	case err == nil:
		return nil, ErrEvaluationExists
	case !repositories.IsNotFound(err):
		return nil, repoError(err, nil, "check evaluation")
	}

	evaluation = &models.Evaluation{
		InterviewID:            interviewID,
		UserID:                 userID,
		CommunicationScore:     *req.CommunicationScore,
		ConfidenceScore:        *req.ConfidenceScore,
		TechnicalAccuracyScore: *req.TechnicalAccuracyScore,
		ResumeAlignmentScore:   *req.ResumeAlignmentScore,
		PersonalityFitScore:    *req.PersonalityFitScore,
		OverallScore:           *req.OverallScore,
		Strengths:              jsonColumn(req.Strengths),
		Weaknesses:             jsonColumn(req.Weaknesses),
		ImprovementSuggestions: jsonColumn(req.ImprovementSuggestions),
		RoleFitRecommendation:  trimmedPtr(req.RoleFitRecommendation),
		EvaluationData:         jsonColumn(req.EvaluationData),
		CreatedAt:              s.clock.now(),
	}

	if err := s.repo.Evaluations().Create(ctx, evaluation); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, ErrEvaluationExists
		case errors.Is(err, repositories.ErrForeignKeyViolation):
			return nil, ErrEvaluationRefs
		}
		return nil, repoError(err, nil, "create evaluation")
	}

	s.events.EvaluationCreated(ctx, evaluation)
	return evaluation, nil
}

func (s *evaluationService) Update(ctx context.Context, id uint, req *UpdateEvaluationRequest) (evaluation *models.Evaluation, err error) {
	started := time.Now()
	defer func() { s.logger.LogOperation(ctx, "update", "evaluation", id, started, err) }()

	if err := validateRequest(s.validator, req, UpdateEvaluationCodes); err != nil {
		return nil, err
	}
	if req.isEmpty() {
		return nil, ErrNoUpdateFields
	}

	evaluation, err = s.repo.Evaluations().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ErrEvaluationNotFound, "get evaluation")
	}

	for _, field := range []struct {
		value  *int
		target *int
	}{
		{req.CommunicationScore, &evaluation.CommunicationScore},
		{req.ConfidenceScore, &evaluation.ConfidenceScore},
		{req.TechnicalAccuracyScore, &evaluation.TechnicalAccuracyScore},
		{req.ResumeAlignmentScore, &evaluation.ResumeAlignmentScore},
		{req.PersonalityFitScore, &evaluation.PersonalityFitScore},
		{req.OverallScore, &evaluation.OverallScore},
	} {
		if field.value != nil {
			*field.target = *field.value
		}
	}
	if len(req.Strengths) > 0 {
		evaluation.Strengths = jsonColumn(req.Strengths)
	}
	if len(req.Weaknesses) > 0 {
		evaluation.Weaknesses = jsonColumn(req.Weaknesses)
	}
	if len(req.ImprovementSuggestions) > 0 {
		evaluation.ImprovementSuggestions = jsonColumn(req.ImprovementSuggestions)
	}
	if req.RoleFitRecommendation != nil {
		evaluation.RoleFitRecommendation = trimmedPtr(req.RoleFitRecommendation)
	}
	if len(req.EvaluationData) > 0 {
		evaluation.EvaluationData = jsonColumn(req.EvaluationData)
	}

	if err := s.repo.Evaluations().Update(ctx, evaluation); err != nil {
		return nil, repoError(err, ErrEvaluationNotFound, "update evaluation")
	}
	return evaluation, nil
}

func (s *evaluationService) Delete(ctx context.Context, id uint) (evaluation *models.Evaluation, err error) {
	started := time.Now()
	defer func() { s.logger.LogOperation(ctx, "delete", "evaluation", id, started, err) }()

	evaluation, err = s.repo.Evaluations().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ErrEvaluationNotFound, "get evaluation")
	}
	if err := s.repo.Evaluations().Delete(ctx, id); err != nil {
		return nil, repoError(err, ErrEvaluationNotFound, "delete evaluation")
	}
	return evaluation, nil
}
