package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/cache"
	"github.com/SAP-F-2025/interview-coach/internal/generator"
	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
)

const (
	MinQuestions = 5
	MaxQuestions = 7

	defaultGenerationTimeout = 30 * time.Second
)

// QuestionCount is round(totalDuration / timePerQuestion) clamped to [MinQuestions, MaxQuestions].
func QuestionCount(totalDuration, timePerQuestion int) int {
	if timePerQuestion <= 0 {
		return MinQuestions
	}
	n := int(math.Round(float64(totalDuration) / float64(timePerQuestion)))
	return max(MinQuestions, min(n, MaxQuestions))
}

type GenerationConfig struct {
	// Timeout bounds one generator call.
	Timeout time.Duration
}

type generationService struct {
	repo      repositories.Repository
	generator generator.TextGenerator
	locker    cache.Locker
	events    EventService
	logger    *ServiceLogger
	timeout   time.Duration
	clock     clock
}

// NewGenerationService wires question generation. A nil generator means every
// question set comes from the fallback bank.
func NewGenerationService(
	repo repositories.Repository,
	textGenerator generator.TextGenerator,
	locker cache.Locker,
	events EventService,
	logger *slog.Logger,
	config GenerationConfig,
) GenerationService {
	if locker == nil {
		locker = cache.NewNoopLocker()
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}
	return &generationService{
		repo:      repo,
		generator: textGenerator,
		locker:    locker,
		events:    events,
		logger:    NewServiceLogger(logger, "generation"),
		timeout:   timeout,
	}
}

func (s *generationService) Generate(ctx context.Context, interviewID uint) (result *GenerationResult, err error) {
	started := time.Now()
	defer func() { s.logger.LogOperation(ctx, "generate", "questions", interviewID, started, err) }()

	interview, err := s.repo.Interviews().GetByID(ctx, interviewID)
	if err != nil {
		return nil, repoError(err, ErrInterviewNotFound, "get interview")
	}
	if interview.Status != models.InterviewInProgress {
		return nil, ErrInterviewNotInProgress
	}

	// The lock outlives a full generator call plus the insert
	release, err := s.locker.Acquire(ctx, fmt.Sprintf("generation:%d", interviewID), s.timeout+10*time.Second)
	switch {
	case errors.Is(err, cache.ErrLockHeld):
		return nil, ErrQuestionsAlreadyCreated
	case err != nil:
		s.logger.Warn(ctx, "Generation lock unavailable, relying on the unique index", "interview_id", interviewID, "error", err)
	default:
		defer release()
	}

	existing, err := s.repo.Questions().CountByInterview(ctx, interviewID)
	if err != nil {
		return nil, repoError(err, nil, "count questions")
	}
	if existing > 0 {
		return nil, ErrQuestionsAlreadyCreated
	}

	background := s.loadBackground(ctx, interview)
	count := QuestionCount(interview.TotalDuration, interview.TimePerQuestion)
	texts, source := s.produce(ctx, interview, count, background)

	now := s.clock.now()
	questions := make([]*models.Question, len(texts))
	for i, text := range texts {
		questions[i] = &models.Question{
			InterviewID:    interviewID,
			QuestionText:   text,
			QuestionNumber: i + 1,
			AskedAt:        now,
		}
	}

	if err := s.repo.Questions().CreateBatch(ctx, questions); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrQuestionsAlreadyCreated
		}
		return nil, repoError(err, nil, "create questions")
	}

	s.events.QuestionsGenerated(ctx, interviewID, len(questions), source)
	return &GenerationResult{Questions: questions, Count: len(questions), Source: source}, nil
}

// produce asks the generator first and falls back to the static bank on any failure.
func (s *generationService) produce(ctx context.Context, interview *models.Interview, count int, background *candidateBackground) ([]string, GenerationSource) {
	fallback := fallbackQuestions(interview.Role, count, background)
	if s.generator == nil {
		return fallback, SourceFallback
	}

	generated, err := s.generate(ctx, interview.Role, count, background)
	if err != nil {
		s.logger.Warn(ctx, "Question generator failed, using fallback questions",
			"interview_id", interview.ID,
			"generator", s.generator.Name(),
			"error", err)
		return fallback, SourceFallback
	}

	if len(generated) > count {
		generated = generated[:count]
	}
	return padQuestions(generated, fallback, count), SourceAI
}

func (s *generationService) generate(ctx context.Context, role string, count int, background *candidateBackground) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	content, err := s.generator.GenerateText(ctx, generationSystemPrompt, buildGenerationPrompt(role, count, background))
	if err != nil {
		return nil, err
	}
	return parseGeneratedQuestions(content)
}

func (s *generationService) loadBackground(ctx context.Context, interview *models.Interview) *candidateBackground {
	if interview.ResumeID == nil {
		return nil
	}
	resume, err := s.repo.Resumes().GetByID(ctx, *interview.ResumeID)
	if err != nil {
		if !repositories.IsNotFound(err) {
			s.logger.Warn(ctx, "Failed to load resume for generation", "resume_id", *interview.ResumeID, "error", err)
		}
		return nil
	}
	return backgroundFromResume(resume.ParsedData)
}

// padQuestions tops up a short generated list from the fallback bank, skipping duplicates.
func padQuestions(generated, fallback []string, count int) []string {
	out := make([]string, 0, count)
	seen := make(map[string]bool, count)
	for _, q := range generated {
		key := strings.ToLower(q)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, q)
	}
	for _, q := range fallback {
		if len(out) >= count {
			break
		}
		key := strings.ToLower(q)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, q)
	}
	return out
}
