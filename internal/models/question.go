package models

import (
	"time"
)

type Question struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	InterviewID    uint       `json:"interviewId" gorm:"not null;uniqueIndex:idx_questions_interview_number"`
	QuestionText   string     `json:"questionText" gorm:"type:text;not null"`
	QuestionNumber int        `json:"questionNumber" gorm:"not null;uniqueIndex:idx_questions_interview_number"`
	AskedAt        time.Time  `json:"askedAt"`
	AnswerText     *string    `json:"answerText" gorm:"type:text"`
	AnswerVideoURL *string    `json:"answerVideoUrl" gorm:"size:1000"`
	TimeTaken      *int       `json:"timeTaken"` // seconds
	AnsweredAt     *time.Time `json:"answeredAt"`
}

func (Question) TableName() string {
	return "questions"
}

// IsAnswered reports whether a text or video answer has been recorded.
func (q *Question) IsAnswered() bool {
	return q.AnswerText != nil || q.AnswerVideoURL != nil
}
