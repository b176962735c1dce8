package services

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/interview-coach/internal/events"
	"github.com/SAP-F-2025/interview-coach/internal/models"
)

// EventService publishes domain events on behalf of the other services.
// Publishing is best effort: failures are logged and never returned.
type EventService interface {
	UserCreated(ctx context.Context, user *models.User)
	ResumeUploaded(ctx context.Context, resume *models.Resume, suggestedRoles []string)
	InterviewCreated(ctx context.Context, interview *models.Interview)
	InterviewCompleted(ctx context.Context, interview *models.Interview)
	QuestionsGenerated(ctx context.Context, interviewID uint, count int, source GenerationSource)
	EvaluationCreated(ctx context.Context, evaluation *models.Evaluation)
}

type eventService struct {
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewEventService(eventPublisher events.EventPublisher, logger *slog.Logger) EventService {
	return &eventService{
		eventPublisher: eventPublisher,
		logger:         NewServiceLogger(logger, "events").Logger(),
	}
}

func (s *eventService) UserCreated(ctx context.Context, user *models.User) {
	s.publish(ctx, events.NewUserCreatedEvent(user.ID, user.Email, string(user.Role)))
}

func (s *eventService) ResumeUploaded(ctx context.Context, resume *models.Resume, suggestedRoles []string) {
	s.publish(ctx, events.NewResumeUploadedEvent(resume.ID, resume.UserID, resume.FileName, suggestedRoles))
}

func (s *eventService) InterviewCreated(ctx context.Context, interview *models.Interview) {
	s.publish(ctx, events.NewInterviewCreatedEvent(
		interview.ID,
		interview.UserID,
		interview.Role,
		interview.TimePerQuestion,
		interview.TotalDuration,
	))
}

func (s *eventService) InterviewCompleted(ctx context.Context, interview *models.Interview) {
	s.publish(ctx, events.NewInterviewCompletedEvent(
		interview.ID,
		interview.UserID,
		interview.Role,
		interview.ActualDuration,
		interview.CompletedAt,
	))
}

func (s *eventService) QuestionsGenerated(ctx context.Context, interviewID uint, count int, source GenerationSource) {
	s.publish(ctx, events.NewQuestionsGeneratedEvent(interviewID, count, string(source)))
}

func (s *eventService) EvaluationCreated(ctx context.Context, evaluation *models.Evaluation) {
	s.publish(ctx, events.NewEvaluationCreatedEvent(
		evaluation.ID,
		evaluation.InterviewID,
		evaluation.UserID,
		evaluation.OverallScore,
	))
}

func (s *eventService) publish(ctx context.Context, event *events.Event) {
	if s.eventPublisher == nil {
		return
	}
	s.logger.DebugContext(ctx, "Publishing domain event", "event_type", event.Type, "event_id", event.ID)

	// Detach from request cancellation so a client disconnect does not drop the event
	if err := s.eventPublisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish domain event",
			"event_type", event.Type,
			"event_id", event.ID,
			"error", err)
	}
}
