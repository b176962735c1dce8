// Package memory is an in-process Repository with the same ordering, filter
// and constraint semantics as the postgres implementation.
package memory

import (
	"sync"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
)

// Store holds every table behind a single lock. Rows are copied in and out so
// callers never share memory with the store.
type Store struct {
	mu sync.RWMutex

	users       map[uint]models.User
	resumes     map[uint]models.Resume
	interviews  map[uint]models.Interview
	questions   map[uint]models.Question
	evaluations map[uint]models.Evaluation

	nextUser       uint
	nextResume     uint
	nextInterview  uint
	nextQuestion   uint
	nextEvaluation uint
}

func New() *Store {
	return &Store{
		users:       make(map[uint]models.User),
		resumes:     make(map[uint]models.Resume),
		interviews:  make(map[uint]models.Interview),
		questions:   make(map[uint]models.Question),
		evaluations: make(map[uint]models.Evaluation),
	}
}

func (s *Store) Users() repositories.UserRepository             { return &userRepo{s} }
func (s *Store) Resumes() repositories.ResumeRepository         { return &resumeRepo{s} }
func (s *Store) Interviews() repositories.InterviewRepository   { return &interviewRepo{s} }
func (s *Store) Questions() repositories.QuestionRepository     { return &questionRepo{s} }
func (s *Store) Evaluations() repositories.EvaluationRepository { return &evaluationRepo{s} }
func (s *Store) Available() bool                                { return true }

// page slices items by offset and limit; a zero limit keeps the rest.
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// cascadeInterview removes an interview's questions and evaluation. Caller holds the lock.
func (s *Store) cascadeInterview(interviewID uint) {
	for id, q := range s.questions {
		if q.InterviewID == interviewID {
			delete(s.questions, id)
		}
	}
	for id, e := range s.evaluations {
		if e.InterviewID == interviewID {
			delete(s.evaluations, id)
		}
	}
}
