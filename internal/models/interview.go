package models

import (
	"time"
)

type InterviewStatus string

const (
	InterviewInProgress InterviewStatus = "in_progress"
	InterviewCompleted  InterviewStatus = "completed"
	InterviewAbandoned  InterviewStatus = "abandoned"
)

// InterviewStatuses lists the accepted statuses in display order.
var InterviewStatuses = []InterviewStatus{InterviewInProgress, InterviewCompleted, InterviewAbandoned}

func (s InterviewStatus) IsValid() bool {
	for _, status := range InterviewStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further progress is expected.
func (s InterviewStatus) IsTerminal() bool {
	return s == InterviewCompleted || s == InterviewAbandoned
}

type Interview struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	UserID          uint            `json:"userId" gorm:"not null;index"`
	ResumeID        *uint           `json:"resumeId" gorm:"index"`
	Role            string          `json:"role" gorm:"not null;size:200;index"`
	TimePerQuestion int             `json:"timePerQuestion" gorm:"not null"` // seconds
	TotalDuration   int             `json:"totalDuration" gorm:"not null"`   // seconds
	ActualDuration  *int            `json:"actualDuration"`                  // seconds
	Status          InterviewStatus `json:"status" gorm:"not null;default:in_progress;size:20;index"`
	StartedAt       time.Time       `json:"startedAt" gorm:"index"`
	CompletedAt     *time.Time      `json:"completedAt"`
	CreatedAt       time.Time       `json:"createdAt"`

	// Relations
	Resume     *Resume     `json:"-" gorm:"foreignKey:ResumeID;constraint:OnDelete:SET NULL"`
	Questions  []Question  `json:"-" gorm:"foreignKey:InterviewID;constraint:OnDelete:CASCADE"`
	Evaluation *Evaluation `json:"-" gorm:"foreignKey:InterviewID;constraint:OnDelete:CASCADE"`
}

func (Interview) TableName() string {
	return "interviews"
}
