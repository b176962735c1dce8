package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/cache"
	"github.com/SAP-F-2025/interview-coach/internal/events"
	"github.com/SAP-F-2025/interview-coach/internal/generator"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/SAP-F-2025/interview-coach/internal/storage"
	"github.com/SAP-F-2025/interview-coach/internal/validator"
)

// Dependencies are the collaborators shared by every service. Only Repo,
// Publisher, Store and Logger are required; the rest degrade to no-ops.
type Dependencies struct {
	Repo              repositories.Repository
	Publisher         events.EventPublisher
	Generator         generator.TextGenerator
	Cache             cache.CacheService
	Locker            cache.Locker
	Store             storage.ObjectStore
	ScoreSource       ScoreSource
	Logger            *slog.Logger
	Validator         *validator.Validator
	GenerationTimeout time.Duration
}

// ServiceManager holds the wired service set.
type ServiceManager struct {
	Users       UserService
	Resumes     ResumeService
	Interviews  InterviewService
	Questions   QuestionService
	Evaluations EvaluationService
	Generation  GenerationService
	Analytics   AnalyticsService
	Reports     ReportService
	Events      EventService
}

func NewServiceManager(deps Dependencies) *ServiceManager {
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}

	eventService := NewEventService(deps.Publisher, deps.Logger)
	synthesizer := NewEvaluationSynthesizer(deps.ScoreSource)

	return &ServiceManager{
		Users:       NewUserService(deps.Repo, eventService, deps.Logger, deps.Validator),
		Resumes:     NewResumeService(deps.Repo, deps.Store, eventService, deps.Logger, deps.Validator),
		Interviews:  NewInterviewService(deps.Repo, eventService, synthesizer, deps.Logger, deps.Validator),
		Questions:   NewQuestionService(deps.Repo, deps.Logger, deps.Validator),
		Evaluations: NewEvaluationService(deps.Repo, eventService, deps.Logger, deps.Validator),
		Generation: NewGenerationService(deps.Repo, deps.Generator, deps.Locker, eventService, deps.Logger, GenerationConfig{
			Timeout: deps.GenerationTimeout,
		}),
		Analytics: NewAnalyticsService(deps.Repo, deps.Cache, deps.Logger),
		Reports:   NewReportService(deps.Repo, deps.Logger),
		Events:    eventService,
	}
}
