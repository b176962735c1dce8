package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	MinScore = 0
	MaxScore = 100
)

type Evaluation struct {
	ID                     uint           `json:"id" gorm:"primaryKey"`
	InterviewID            uint           `json:"interviewId" gorm:"not null;uniqueIndex"`
	UserID                 uint           `json:"userId" gorm:"not null;index"`
	CommunicationScore     int            `json:"communicationScore" gorm:"not null"`
	ConfidenceScore        int            `json:"confidenceScore" gorm:"not null"`
	TechnicalAccuracyScore int            `json:"technicalAccuracyScore" gorm:"not null"`
	ResumeAlignmentScore   int            `json:"resumeAlignmentScore" gorm:"not null"`
	PersonalityFitScore    int            `json:"personalityFitScore" gorm:"not null"`
	OverallScore           int            `json:"overallScore" gorm:"not null;index"`
	Strengths              datatypes.JSON `json:"strengths"`
	Weaknesses             datatypes.JSON `json:"weaknesses"`
	ImprovementSuggestions datatypes.JSON `json:"improvementSuggestions"`
	RoleFitRecommendation  *string        `json:"roleFitRecommendation" gorm:"type:text"`
	EvaluationData         datatypes.JSON `json:"evaluationData"`
	CreatedAt              time.Time      `json:"createdAt" gorm:"index"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}

// StrengthList decodes Strengths, ignoring non-string entries.
func (e *Evaluation) StrengthList() []string {
	return decodeStrings(e.Strengths)
}

// WeaknessList decodes Weaknesses, ignoring non-string entries.
func (e *Evaluation) WeaknessList() []string {
	return decodeStrings(e.Weaknesses)
}

func decodeStrings(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// MustJSON marshals v for datatypes.JSON columns. It is meant for values
// that cannot fail to marshal (string slices, plain maps).
func MustJSON(v any) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return datatypes.JSON(data)
}
