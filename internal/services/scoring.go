package services

import (
	"fmt"
	"math/rand/v2"

	"github.com/SAP-F-2025/interview-coach/internal/models"
)

// ScoreSource supplies the random part of placeholder scores.
type ScoreSource interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultScoreSource draws from math/rand/v2's global generator.
func DefaultScoreSource() ScoreSource { return globalSource{} }

// Placeholder scoring: every score is its base plus a draw from [0, scoreSpread).
const (
	scoreSpread = 20

	baseCommunication   = 75
	baseConfidence      = 70
	baseTechnical       = 75
	baseResumeAlignment = 80
	basePersonalityFit  = 75
	baseOverall         = 75
)

var (
	placeholderStrengths   = []string{"Clear communication", "Good examples provided", "Confident delivery", "Relevant experience"}
	placeholderWeaknesses  = []string{"Could elaborate more on technical details", "Limited discussion of challenges"}
	placeholderSuggestions = []string{"Practice STAR method responses", "Prepare more specific examples", "Research company background"}
)

// EvaluationSynthesizer builds the evaluation recorded when an interview completes.
type EvaluationSynthesizer struct {
	source ScoreSource
}

func NewEvaluationSynthesizer(source ScoreSource) *EvaluationSynthesizer {
	if source == nil {
		source = DefaultScoreSource()
	}
	return &EvaluationSynthesizer{source: source}
}

// Synthesize scores an interview given how many of its questions were answered.
func (s *EvaluationSynthesizer) Synthesize(interview *models.Interview, answered, total int) *models.Evaluation {
	recommendation := fmt.Sprintf("Good fit for %s position. Strong communication skills and relevant experience demonstrated.", interview.Role)

	return &models.Evaluation{
		InterviewID:            interview.ID,
		UserID:                 interview.UserID,
		CommunicationScore:     s.score(baseCommunication),
		ConfidenceScore:        s.score(baseConfidence),
		TechnicalAccuracyScore: s.score(baseTechnical),
		ResumeAlignmentScore:   s.score(baseResumeAlignment),
		PersonalityFitScore:    s.score(basePersonalityFit),
		OverallScore:           s.score(baseOverall),
		Strengths:              models.MustJSON(placeholderStrengths),
		Weaknesses:             models.MustJSON(placeholderWeaknesses),
		ImprovementSuggestions: models.MustJSON(placeholderSuggestions),
		RoleFitRecommendation:  &recommendation,
		EvaluationData: models.MustJSON(map[string]any{
			"scoring":           "placeholder",
			"answeredQuestions": answered,
			"totalQuestions":    total,
		}),
	}
}

func (s *EvaluationSynthesizer) score(base int) int {
	return min(base+s.source.IntN(scoreSpread), models.MaxScore)
}
