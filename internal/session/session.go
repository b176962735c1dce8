package session

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	apperrors "github.com/SAP-F-2025/interview-coach/internal/errors"
	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/SAP-F-2025/interview-coach/internal/services"
)

// backgroundTimeout bounds the service calls made when a countdown expires.
const backgroundTimeout = 30 * time.Second

// Snapshot is the externally visible state of a session. Remaining times
// are whole time units, rounded up like a countdown display.
type Snapshot struct {
	InterviewID           uint               `json:"interviewId"`
	State                 State              `json:"state"`
	QuestionIndex         int                `json:"questionIndex"`
	QuestionCount         int                `json:"questionCount"`
	CurrentQuestion       *models.Question   `json:"currentQuestion,omitempty"`
	QuestionTimeRemaining int                `json:"questionTimeRemaining"`
	TotalTimeRemaining    int                `json:"totalTimeRemaining"`
	Source                string             `json:"source,omitempty"`
	Evaluation            *models.Evaluation `json:"evaluation,omitempty"`
	Error                 string             `json:"error,omitempty"`
}

// Session drives one interview through its timed question flow.
//
// Every change of the running timers bumps epoch; a timer callback carrying
// an older epoch is ignored, so a stopped timer that already fired has no effect.
type Session struct {
	mu sync.Mutex

	interviewID uint
	svc         *services.ServiceManager
	logger      *services.ServiceLogger
	clock       Clock
	unit        time.Duration

	state     State
	interview *models.Interview
	questions []*models.Question
	source    string
	current   int

	perQuestion    time.Duration
	questionLeft   time.Duration
	totalLeft      time.Duration
	questionActive time.Duration
	segmentStarted time.Time

	epoch         uint64
	questionTimer Timer
	totalTimer    Timer
	closed        bool

	evaluation *models.Evaluation
	failure    string
}

// advanceStep is the work captured under the lock before an answer is saved.
type advanceStep struct {
	epoch     uint64
	index     int
	question  *models.Question
	answer    string
	timeTaken int
	last      bool
}

func newSession(interviewID uint, svc *services.ServiceManager, logger *services.ServiceLogger, clock Clock, unit time.Duration) *Session {
	return &Session{
		interviewID: interviewID,
		svc:         svc,
		logger:      logger,
		clock:       clock,
		unit:        unit,
		state:       StateLoading,
	}
}

// load fetches the interview and arms nothing; the session then waits for permissions.
func (s *Session) load(ctx context.Context) error {
	interview, err := s.svc.Interviews.GetByID(ctx, s.interviewID)
	if err != nil {
		return err
	}
	if interview.Status != models.InterviewInProgress {
		return services.ErrInterviewNotInProgress
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.interview = interview
	s.perQuestion = time.Duration(interview.TimePerQuestion) * s.unit
	s.questionLeft = s.perQuestion
	s.totalLeft = time.Duration(interview.TotalDuration) * s.unit
	s.state = StateAwaitingPermissions
	return nil
}

// GrantPermissions records the camera/microphone grant and prepares the
// question set. Questions that already exist are reused.
func (s *Session) GrantPermissions(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	if s.state != StateAwaitingPermissions {
		defer s.mu.Unlock()
		return nil, invalidTransition("grant permissions", s.state)
	}
	s.state = StateQuestionsGenerating
	epoch := s.epoch
	s.mu.Unlock()

	questions, source, err := s.prepareQuestions(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.epoch != epoch {
		return s.snapshot(), nil
	}
	if err != nil {
		s.fail(err)
		return s.snapshot(), err
	}
	s.questions = questions
	s.source = source
	s.state = StateReady
	return s.snapshot(), nil
}

func (s *Session) prepareQuestions(ctx context.Context) ([]*models.Question, string, error) {
	existing, err := s.existingQuestions(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(existing) > 0 {
		return existing, "existing", nil
	}

	result, err := s.svc.Generation.Generate(ctx, s.interviewID)
	if errors.Is(err, services.ErrQuestionsAlreadyCreated) {
		// Another caller generated concurrently
		existing, err := s.existingQuestions(ctx)
		return existing, "existing", err
	}
	if err != nil {
		return nil, "", err
	}
	return result.Questions, string(result.Source), nil
}

func (s *Session) existingQuestions(ctx context.Context) ([]*models.Question, error) {
	questions, _, err := s.svc.Questions.List(ctx, repositories.QuestionFilters{InterviewID: &s.interviewID})
	return questions, err
}

// StartRecording starts the first question and both countdowns.
func (s *Session) StartRecording() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return nil, invalidTransition("start recording", s.state)
	}
	if len(s.questions) == 0 {
		return nil, invalidTransition("start recording without questions", s.state)
	}
	s.state = StateRecording
	s.arm()
	return s.snapshot(), nil
}

// Pause freezes both countdowns with their remaining time.
func (s *Session) Pause() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return nil, invalidTransition("pause", s.state)
	}
	s.freeze()
	s.state = StatePaused
	return s.snapshot(), nil
}

// Resume restarts the countdowns from where Pause left them.
func (s *Session) Resume() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePaused {
		return nil, invalidTransition("resume", s.state)
	}
	s.state = StateRecording
	s.arm()
	return s.snapshot(), nil
}

// Next records the answer to the current question and moves on, finishing
// the interview after the last question. An empty answer records DefaultAnswer.
func (s *Session) Next(ctx context.Context, answer string) (*Snapshot, error) {
	s.mu.Lock()
	if s.state != StateRecording && s.state != StatePaused {
		defer s.mu.Unlock()
		return nil, invalidTransition("advance", s.state)
	}
	step := s.beginAdvance(answer)
	s.mu.Unlock()

	return s.advance(ctx, step)
}

// Finish completes the interview immediately.
func (s *Session) Finish(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	switch s.state {
	case StateReady, StateRecording, StatePaused:
	default:
		defer s.mu.Unlock()
		return nil, invalidTransition("finish", s.state)
	}
	s.freeze()
	s.state = StateAdvancing
	epoch := s.epoch
	s.mu.Unlock()

	return s.finish(ctx, epoch)
}

// Snapshot reports the current state.
func (s *Session) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Close cancels the countdowns. Work already in flight is discarded when it returns.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimers()
	s.closed = true
}

// ===== TRANSITIONS =====

func (s *Session) beginAdvance(answer string) advanceStep {
	s.freeze()
	s.state = StateAdvancing

	if answer == "" {
		answer = DefaultAnswer
	}
	return advanceStep{
		epoch:     s.epoch,
		index:     s.current,
		question:  s.questions[s.current],
		answer:    answer,
		timeTaken: max(1, int(s.questionActive/s.unit)),
		last:      s.current >= len(s.questions)-1,
	}
}

func (s *Session) advance(ctx context.Context, step advanceStep) (*Snapshot, error) {
	// Saves outlive the request that triggered them
	ctx = context.WithoutCancel(ctx)

	answeredAt := s.clock.Now().UTC()
	saved, err := s.svc.Questions.Update(ctx, step.question.ID, &services.UpdateQuestionRequest{
		AnswerText: &step.answer,
		TimeTaken:  &step.timeTaken,
		AnsweredAt: &answeredAt,
	})
	if err != nil {
		// The flow continues; a lost answer does not block the interview
		s.logger.Warn(ctx, "Failed to save answer", "interview_id", s.interviewID, "question_id", step.question.ID, "error", err)
	}

	s.mu.Lock()
	if saved != nil && !s.closed && s.epoch == step.epoch {
		s.questions[step.index] = saved
	}
	if step.last {
		s.mu.Unlock()
		return s.finish(ctx, step.epoch)
	}
	defer s.mu.Unlock()
	if s.closed || s.epoch != step.epoch || s.state != StateAdvancing {
		return s.snapshot(), nil
	}
	s.current++
	s.questionLeft = s.perQuestion
	s.questionActive = 0
	s.state = StateRecording
	s.arm()
	return s.snapshot(), nil
}

func (s *Session) finish(ctx context.Context, epoch uint64) (*Snapshot, error) {
	s.mu.Lock()
	if s.closed || s.epoch != epoch || s.state != StateAdvancing {
		defer s.mu.Unlock()
		return s.snapshot(), nil
	}
	actual := s.actualDuration()
	s.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	result, err := s.svc.Interviews.Complete(ctx, s.interviewID, &services.CompleteInterviewRequest{ActualDuration: &actual})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.fail(err)
		return s.snapshot(), err
	}
	s.interview = result.Interview
	s.evaluation = result.Evaluation
	s.state = StateCompleted
	s.logger.Info(ctx, "Interview session completed", "interview_id", s.interviewID, "actual_duration", actual)
	return s.snapshot(), nil
}

func (s *Session) fail(err error) {
	s.stopTimers()
	s.state = StateFailed
	s.failure = err.Error()
	if apiErr, ok := apperrors.AsAPIError(err); ok {
		s.failure = apiErr.Message
	}
}

// ===== TIMERS =====

// arm starts both countdowns from their remaining time. Callers hold mu.
func (s *Session) arm() {
	s.stopTimers()
	s.segmentStarted = s.clock.Now()
	epoch := s.epoch
	s.questionTimer = s.clock.AfterFunc(s.questionLeft, func() { s.onQuestionExpired(epoch) })
	s.totalTimer = s.clock.AfterFunc(s.totalLeft, func() { s.onTotalExpired(epoch) })
}

// freeze charges the running segment to both countdowns and stops them. Callers hold mu.
func (s *Session) freeze() {
	if s.state == StateRecording {
		elapsed := s.clock.Now().Sub(s.segmentStarted)
		s.questionLeft = max(0, s.questionLeft-elapsed)
		s.totalLeft = max(0, s.totalLeft-elapsed)
		s.questionActive += elapsed
	}
	s.stopTimers()
}

func (s *Session) stopTimers() {
	s.epoch++
	if s.questionTimer != nil {
		s.questionTimer.Stop()
		s.questionTimer = nil
	}
	if s.totalTimer != nil {
		s.totalTimer.Stop()
		s.totalTimer = nil
	}
}

func (s *Session) onQuestionExpired(epoch uint64) {
	s.mu.Lock()
	if s.closed || s.epoch != epoch || s.state != StateRecording {
		s.mu.Unlock()
		return
	}
	step := s.beginAdvance("")
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
	defer cancel()
	if _, err := s.advance(ctx, step); err != nil {
		s.logger.Error(ctx, "Auto-advance failed", "interview_id", s.interviewID, "error", err)
	}
}

func (s *Session) onTotalExpired(epoch uint64) {
	s.mu.Lock()
	if s.closed || s.epoch != epoch || s.state != StateRecording {
		s.mu.Unlock()
		return
	}
	s.freeze()
	s.state = StateAdvancing
	next := s.epoch
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
	defer cancel()
	if _, err := s.finish(ctx, next); err != nil {
		s.logger.Error(ctx, "Forced finish failed", "interview_id", s.interviewID, "error", err)
	}
}

// ===== VIEW =====

// actualDuration is the elapsed part of the total countdown in whole units. Callers hold mu.
func (s *Session) actualDuration() int {
	total := time.Duration(s.interview.TotalDuration) * s.unit
	elapsed := int((total - s.totalLeft) / s.unit)
	return max(0, min(elapsed, s.interview.TotalDuration))
}

// snapshot builds the view. Callers hold mu.
func (s *Session) snapshot() *Snapshot {
	questionLeft, totalLeft := s.questionLeft, s.totalLeft
	if s.state == StateRecording {
		elapsed := s.clock.Now().Sub(s.segmentStarted)
		questionLeft = max(0, questionLeft-elapsed)
		totalLeft = max(0, totalLeft-elapsed)
	}

	snap := &Snapshot{
		InterviewID:           s.interviewID,
		State:                 s.state,
		QuestionIndex:         s.current,
		QuestionCount:         len(s.questions),
		QuestionTimeRemaining: s.units(questionLeft),
		TotalTimeRemaining:    s.units(totalLeft),
		Source:                s.source,
		Evaluation:            s.evaluation,
		Error:                 s.failure,
	}
	if s.current < len(s.questions) && !s.state.IsTerminal() {
		snap.CurrentQuestion = s.questions[s.current]
	}
	return snap
}

func (s *Session) units(d time.Duration) int {
	return int(math.Ceil(float64(d) / float64(s.unit)))
}
