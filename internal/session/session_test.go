package session

import (
	"context"
	"sync"
	"testing"
	"time"

	apperrors "github.com/SAP-F-2025/interview-coach/internal/errors"
	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/SAP-F-2025/interview-coach/internal/repositories/memory"
	"github.com/SAP-F-2025/interview-coach/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== FAKE CLOCK =====

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// Advance moves time forward, firing due timers in deadline order. Callbacks
// run synchronously and may schedule further timers.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		var next *fakeTimer
		for _, t := range c.timers {
			if t.stopped || t.fired || t.at.After(target) {
				continue
			}
			if next == nil || t.at.Before(next.at) {
				next = t
			}
		}
		if next == nil {
			break
		}
		next.fired = true
		if next.at.After(c.now) {
			c.now = next.at
		}
		c.mu.Unlock()
		next.f()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// ===== FIXTURES =====

type fixedSource int

func (f fixedSource) IntN(n int) int { return int(f) % n }

type fixture struct {
	svc     *services.ServiceManager
	manager *Manager
	clock   *fakeClock
	user    *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithRepo(t, memory.New())
}

func newFixtureWithRepo(t *testing.T, repo repositories.Repository) *fixture {
	t.Helper()
	svc := services.NewServiceManager(services.Dependencies{
		Repo:        repo,
		ScoreSource: fixedSource(0),
	})
	user, err := svc.Users.Create(context.Background(), &services.CreateUserRequest{Email: "session@example.com", FullName: "Session User"})
	require.NoError(t, err)

	clock := newFakeClock()
	manager := NewManager(svc, nil, Config{TimeUnit: time.Second, Clock: clock})
	t.Cleanup(manager.CloseAll)
	return &fixture{svc: svc, manager: manager, clock: clock, user: user}
}

func (f *fixture) interview(t *testing.T, perQuestion, total int) *models.Interview {
	t.Helper()
	uid := int(f.user.ID)
	interview, err := f.svc.Interviews.Create(context.Background(), &services.CreateInterviewRequest{
		UserID:          &uid,
		Role:            "Software Engineer",
		TimePerQuestion: &perQuestion,
		TotalDuration:   &total,
	})
	require.NoError(t, err)
	return interview
}

// recording opens a session and takes it to the first question.
func (f *fixture) recording(t *testing.T, perQuestion, total int) (*Session, *models.Interview) {
	t.Helper()
	ctx := context.Background()
	interview := f.interview(t, perQuestion, total)

	_, err := f.manager.Start(ctx, interview.ID)
	require.NoError(t, err)
	s, err := f.manager.Get(interview.ID)
	require.NoError(t, err)
	_, err = s.GrantPermissions(ctx)
	require.NoError(t, err)
	snap, err := s.StartRecording()
	require.NoError(t, err)
	require.Equal(t, StateRecording, snap.State)
	return s, interview
}

func (f *fixture) question(t *testing.T, interviewID uint, number int) *models.Question {
	t.Helper()
	questions, _, err := f.svc.Questions.List(context.Background(), repositories.QuestionFilters{InterviewID: &interviewID})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(questions), number)
	return questions[number-1]
}

// cancelAwareRepo rejects writes on a cancelled context, as the gorm store does.
type cancelAwareRepo struct {
	repositories.Repository
}

func (r cancelAwareRepo) Interviews() repositories.InterviewRepository {
	return cancelAwareInterviews{r.Repository.Interviews()}
}

func (r cancelAwareRepo) Questions() repositories.QuestionRepository {
	return cancelAwareQuestions{r.Repository.Questions()}
}

type cancelAwareInterviews struct {
	repositories.InterviewRepository
}

func (r cancelAwareInterviews) Update(ctx context.Context, interview *models.Interview) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.InterviewRepository.Update(ctx, interview)
}

type cancelAwareQuestions struct {
	repositories.QuestionRepository
}

func (r cancelAwareQuestions) Update(ctx context.Context, question *models.Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.QuestionRepository.Update(ctx, question)
}

// ===== TESTS =====

func TestSession_FullFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	interview := f.interview(t, 180, 900)

	snap, err := f.manager.Start(ctx, interview.ID)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingPermissions, snap.State)
	assert.Equal(t, 900, snap.TotalTimeRemaining)
	assert.Equal(t, 180, snap.QuestionTimeRemaining)

	s, err := f.manager.Get(interview.ID)
	require.NoError(t, err)

	snap, err = s.GrantPermissions(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateReady, snap.State)
	assert.Equal(t, 5, snap.QuestionCount)
	assert.Equal(t, "fallback", snap.Source)
	require.NotNil(t, snap.CurrentQuestion)
	assert.Equal(t, 1, snap.CurrentQuestion.QuestionNumber)

	_, err = s.StartRecording()
	require.NoError(t, err)

	f.clock.Advance(30 * time.Second)
	snap, err = s.Next(ctx, "My answer")
	require.NoError(t, err)
	assert.Equal(t, StateRecording, snap.State)
	assert.Equal(t, 1, snap.QuestionIndex)
	assert.Equal(t, 180, snap.QuestionTimeRemaining)
	assert.Equal(t, 870, snap.TotalTimeRemaining)

	first := f.question(t, interview.ID, 1)
	require.NotNil(t, first.AnswerText)
	assert.Equal(t, "My answer", *first.AnswerText)
	assert.Equal(t, 30, *first.TimeTaken)
	assert.NotNil(t, first.AnsweredAt)

	for i := 0; i < 4; i++ {
		f.clock.Advance(10 * time.Second)
		snap, err = s.Next(ctx, "")
		require.NoError(t, err)
	}
	assert.Equal(t, StateCompleted, snap.State)
	require.NotNil(t, snap.Evaluation)
	assert.Equal(t, 75, snap.Evaluation.OverallScore)
	assert.Nil(t, snap.CurrentQuestion)

	last := f.question(t, interview.ID, 5)
	assert.Equal(t, DefaultAnswer, *last.AnswerText)
	assert.Equal(t, 10, *last.TimeTaken)

	stored, err := f.svc.Interviews.GetByID(ctx, interview.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InterviewCompleted, stored.Status)
	assert.Equal(t, 70, *stored.ActualDuration)

	_, err = s.Next(ctx, "")
	assert.True(t, apperrors.HasCode(err, CodeInvalidTransition))
}

func TestSession_PauseFreezesTimers(t *testing.T) {
	f := newFixture(t)
	s, interview := f.recording(t, 180, 900)

	f.clock.Advance(50 * time.Second)
	snap, err := s.Pause()
	require.NoError(t, err)
	assert.Equal(t, StatePaused, snap.State)
	assert.Equal(t, 130, snap.QuestionTimeRemaining)
	assert.Equal(t, 850, snap.TotalTimeRemaining)

	f.clock.Advance(time.Hour)
	snap = s.Snapshot()
	assert.Equal(t, StatePaused, snap.State)
	assert.Equal(t, 130, snap.QuestionTimeRemaining)

	snap, err = s.Resume()
	require.NoError(t, err)
	assert.Equal(t, StateRecording, snap.State)

	f.clock.Advance(129 * time.Second)
	assert.Equal(t, 0, s.Snapshot().QuestionIndex)

	f.clock.Advance(time.Second)
	snap = s.Snapshot()
	assert.Equal(t, StateRecording, snap.State)
	assert.Equal(t, 1, snap.QuestionIndex)
	assert.Equal(t, 720, snap.TotalTimeRemaining)

	first := f.question(t, interview.ID, 1)
	assert.Equal(t, DefaultAnswer, *first.AnswerText)
	assert.Equal(t, 180, *first.TimeTaken)
}

func TestSession_TotalCountdownForcesFinish(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, interview := f.recording(t, 120, 300)

	f.clock.Advance(300 * time.Second)

	snap := s.Snapshot()
	assert.Equal(t, StateCompleted, snap.State)
	require.NotNil(t, snap.Evaluation)

	stored, err := f.svc.Interviews.GetByID(ctx, interview.ID)
	require.NoError(t, err)
	assert.Equal(t, 300, *stored.ActualDuration)

	answered := true
	_, count, err := f.svc.Questions.List(ctx, repositories.QuestionFilters{InterviewID: &interview.ID, Answered: &answered})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestSession_StaleTimerIgnored(t *testing.T) {
	f := newFixture(t)
	s, _ := f.recording(t, 60, 300)

	s.mu.Lock()
	stale := s.epoch
	s.mu.Unlock()

	_, err := s.Pause()
	require.NoError(t, err)

	s.onQuestionExpired(stale)
	s.onTotalExpired(stale)

	snap := s.Snapshot()
	assert.Equal(t, StatePaused, snap.State)
	assert.Equal(t, 0, snap.QuestionIndex)
}

func TestSession_InvalidTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	interview := f.interview(t, 60, 300)

	_, err := f.manager.Start(ctx, interview.ID)
	require.NoError(t, err)
	s, err := f.manager.Get(interview.ID)
	require.NoError(t, err)

	_, err = s.StartRecording()
	assert.True(t, apperrors.HasCode(err, CodeInvalidTransition))
	_, err = s.Pause()
	assert.True(t, apperrors.HasCode(err, CodeInvalidTransition))
	_, err = s.Finish(ctx)
	assert.True(t, apperrors.HasCode(err, CodeInvalidTransition))

	_, err = s.GrantPermissions(ctx)
	require.NoError(t, err)
	_, err = s.GrantPermissions(ctx)
	assert.True(t, apperrors.HasCode(err, CodeInvalidTransition))
	_, err = s.Resume()
	assert.True(t, apperrors.HasCode(err, CodeInvalidTransition))
	_, err = s.Next(ctx, "")
	assert.True(t, apperrors.HasCode(err, CodeInvalidTransition))

	snap, err := s.Finish(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, snap.State)

	stored, err := f.svc.Interviews.GetByID(ctx, interview.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, *stored.ActualDuration)
}

func TestSession_ReusesExistingQuestions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	interview := f.interview(t, 180, 900)

	_, err := f.svc.Generation.Generate(ctx, interview.ID)
	require.NoError(t, err)

	_, err = f.manager.Start(ctx, interview.ID)
	require.NoError(t, err)
	s, err := f.manager.Get(interview.ID)
	require.NoError(t, err)

	snap, err := s.GrantPermissions(ctx)
	require.NoError(t, err)
	assert.Equal(t, "existing", snap.Source)
	assert.Equal(t, 5, snap.QuestionCount)
}

func TestSession_FinishFromPause(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s, interview := f.recording(t, 180, 900)

	f.clock.Advance(95 * time.Second)
	_, err := s.Pause()
	require.NoError(t, err)

	snap, err := s.Finish(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, snap.State)

	stored, err := f.svc.Interviews.GetByID(ctx, interview.ID)
	require.NoError(t, err)
	assert.Equal(t, 95, *stored.ActualDuration)

	_, err = s.Finish(ctx)
	assert.True(t, apperrors.HasCode(err, CodeInvalidTransition))
}

func TestManager_StartAndClose(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.manager.Start(ctx, 999)
	assert.ErrorIs(t, err, services.ErrInterviewNotFound)

	_, err = f.manager.Get(999)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, f.manager.Close(999), ErrSessionNotFound)

	done := f.interview(t, 60, 300)
	_, err = f.svc.Interviews.Update(ctx, done.ID, &services.UpdateInterviewRequest{Status: ptr(models.InterviewCompleted)})
	require.NoError(t, err)
	_, err = f.manager.Start(ctx, done.ID)
	assert.ErrorIs(t, err, services.ErrInterviewNotInProgress)

	s, interview := f.recording(t, 60, 300)
	snap, err := f.manager.Start(ctx, interview.ID)
	require.NoError(t, err)
	assert.Equal(t, StateRecording, snap.State, "live session is returned as is")
	assert.Equal(t, 1, f.manager.Len())

	require.NoError(t, f.manager.Close(interview.ID))
	_, err = f.manager.Get(interview.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Closed sessions ignore their countdowns
	f.clock.Advance(time.Hour)
	assert.Equal(t, StateRecording, s.Snapshot().State)
	answered := true
	_, count, err := f.svc.Questions.List(ctx, repositories.QuestionFilters{InterviewID: &interview.ID, Answered: &answered})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestManager_RestartsFinishedSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	interview := f.interview(t, 60, 300)

	_, err := f.manager.Start(ctx, interview.ID)
	require.NoError(t, err)
	s, err := f.manager.Get(interview.ID)
	require.NoError(t, err)

	// A failing generation leaves the session failed
	s.mu.Lock()
	s.fail(services.ErrInterviewNotInProgress)
	s.mu.Unlock()
	assert.Equal(t, StateFailed, s.Snapshot().State)
	assert.Equal(t, "Interview must be in progress to generate questions", s.Snapshot().Error)

	snap, err := f.manager.Start(ctx, interview.ID)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingPermissions, snap.State)

	replaced, err := f.manager.Get(interview.ID)
	require.NoError(t, err)
	assert.NotSame(t, s, replaced)
}

func ptr[T any](v T) *T {
	return &v
}

func TestSession_NextKeepsSavedAnswer(t *testing.T) {
	f := newFixture(t)
	s, _ := f.recording(t, 180, 900)

	f.clock.Advance(12 * time.Second)
	_, err := s.Next(context.Background(), "Caching at the edge")
	require.NoError(t, err)

	s.mu.Lock()
	first := s.questions[0]
	s.mu.Unlock()
	require.NotNil(t, first.AnswerText)
	assert.Equal(t, "Caching at the edge", *first.AnswerText)
	require.NotNil(t, first.TimeTaken)
	assert.Equal(t, 12, *first.TimeTaken)
	assert.NotNil(t, first.AnsweredAt)
}

func TestSession_CompletionSurvivesCancelledRequest(t *testing.T) {
	f := newFixtureWithRepo(t, cancelAwareRepo{memory.New()})
	s, interview := f.recording(t, 60, 300)

	for i := 0; i < 4; i++ {
		_, err := s.Next(context.Background(), "")
		require.NoError(t, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	snap, err := s.Next(ctx, "Final answer")
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, snap.State)
	require.NotNil(t, snap.Evaluation)

	last := f.question(t, interview.ID, 5)
	require.NotNil(t, last.AnswerText)
	assert.Equal(t, "Final answer", *last.AnswerText)

	stored, err := f.svc.Interviews.GetByID(context.Background(), interview.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InterviewCompleted, stored.Status)
}

func TestSession_FinishSurvivesCancelledRequest(t *testing.T) {
	f := newFixtureWithRepo(t, cancelAwareRepo{memory.New()})
	s, _ := f.recording(t, 60, 300)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	snap, err := s.Finish(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, snap.State)
}
