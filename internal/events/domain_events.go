package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "interview-coach"
	EventVersion = "1.0"
)

// EventType represents the domain events published by the service
type EventType string

const (
	EventUserCreated        EventType = "user.created"
	EventResumeUploaded     EventType = "resume.uploaded"
	EventInterviewCreated   EventType = "interview.created"
	EventInterviewCompleted EventType = "interview.completed"
	EventQuestionsGenerated EventType = "questions.generated"
	EventEvaluationCreated  EventType = "evaluation.created"
)

// Event is the envelope for every published event
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type UserCreatedEvent struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type ResumeUploadedEvent struct {
	ResumeID       uint     `json:"resumeId"`
	UserID         uint     `json:"userId"`
	FileName       string   `json:"fileName"`
	SuggestedRoles []string `json:"suggestedRoles,omitempty"`
}

type InterviewCreatedEvent struct {
	InterviewID     uint   `json:"interviewId"`
	UserID          uint   `json:"userId"`
	Role            string `json:"role"`
	TimePerQuestion int    `json:"timePerQuestion"`
	TotalDuration   int    `json:"totalDuration"`
}

type InterviewCompletedEvent struct {
	InterviewID    uint       `json:"interviewId"`
	UserID         uint       `json:"userId"`
	Role           string     `json:"role"`
	ActualDuration *int       `json:"actualDuration,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

type QuestionsGeneratedEvent struct {
	InterviewID uint   `json:"interviewId"`
	Count       int    `json:"count"`
	Source      string `json:"source"`
}

type EvaluationCreatedEvent struct {
	EvaluationID uint `json:"evaluationId"`
	InterviewID  uint `json:"interviewId"`
	UserID       uint `json:"userId"`
	OverallScore int  `json:"overallScore"`
}

// Event factory functions

func newEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    EventSource,
		Version:   EventVersion,
		Data:      data,
	}
}

func NewUserCreatedEvent(userID uint, email, role string) *Event {
	return newEvent(EventUserCreated, UserCreatedEvent{UserID: userID, Email: email, Role: role})
}

func NewResumeUploadedEvent(resumeID, userID uint, fileName string, suggestedRoles []string) *Event {
	return newEvent(EventResumeUploaded, ResumeUploadedEvent{
		ResumeID:       resumeID,
		UserID:         userID,
		FileName:       fileName,
		SuggestedRoles: suggestedRoles,
	})
}

func NewInterviewCreatedEvent(interviewID, userID uint, role string, timePerQuestion, totalDuration int) *Event {
	return newEvent(EventInterviewCreated, InterviewCreatedEvent{
		InterviewID:     interviewID,
		UserID:          userID,
		Role:            role,
		TimePerQuestion: timePerQuestion,
		TotalDuration:   totalDuration,
	})
}

func NewInterviewCompletedEvent(interviewID, userID uint, role string, actualDuration *int, completedAt *time.Time) *Event {
	return newEvent(EventInterviewCompleted, InterviewCompletedEvent{
		InterviewID:    interviewID,
		UserID:         userID,
		Role:           role,
		ActualDuration: actualDuration,
		CompletedAt:    completedAt,
	})
}

func NewQuestionsGeneratedEvent(interviewID uint, count int, source string) *Event {
	return newEvent(EventQuestionsGenerated, QuestionsGeneratedEvent{
		InterviewID: interviewID,
		Count:       count,
		Source:      source,
	})
}

func NewEvaluationCreatedEvent(evaluationID, interviewID, userID uint, overallScore int) *Event {
	return newEvent(EventEvaluationCreated, EvaluationCreatedEvent{
		EvaluationID: evaluationID,
		InterviewID:  interviewID,
		UserID:       userID,
		OverallScore: overallScore,
	})
}

// GenerateEventID returns a random UUID for an event
func GenerateEventID() string {
	return uuid.NewString()
}

// PartitionKey groups events by the aggregate they belong to: the interview
// when there is one, otherwise the user.
func (e *Event) PartitionKey() string {
	switch data := e.Data.(type) {
	case InterviewCreatedEvent:
		return fmt.Sprintf("interview-%d", data.InterviewID)
	case InterviewCompletedEvent:
		return fmt.Sprintf("interview-%d", data.InterviewID)
	case QuestionsGeneratedEvent:
		return fmt.Sprintf("interview-%d", data.InterviewID)
	case EvaluationCreatedEvent:
		return fmt.Sprintf("interview-%d", data.InterviewID)
	case ResumeUploadedEvent:
		return fmt.Sprintf("user-%d", data.UserID)
	case UserCreatedEvent:
		return fmt.Sprintf("user-%d", data.UserID)
	default:
		return e.ID
	}
}
