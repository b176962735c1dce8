package services

import (
	"context"
	"sync"
	"testing"

	"github.com/SAP-F-2025/interview-coach/internal/events"
	"github.com/SAP-F-2025/interview-coach/internal/generator"
	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories/memory"
	"github.com/SAP-F-2025/interview-coach/internal/storage"
	"github.com/SAP-F-2025/interview-coach/internal/utils"
	"github.com/stretchr/testify/require"
)

// fixedSource always draws the same offset.
type fixedSource int

func (f fixedSource) IntN(n int) int { return int(f) % n }

type stubGenerator struct {
	mu          sync.Mutex
	content     string
	err         error
	calls       int
	lastPrompts [2]string
}

func (g *stubGenerator) Name() string { return "stub" }

func (g *stubGenerator) GenerateText(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.lastPrompts = [2]string{systemPrompt, userPrompt}
	return g.content, g.err
}

var _ generator.TextGenerator = (*stubGenerator)(nil)

type testEnv struct {
	services  *ServiceManager
	store     *memory.Store
	publisher *events.MockEventPublisher
}

func newTestEnv(t *testing.T, configure ...func(*Dependencies)) *testEnv {
	t.Helper()

	logger := utils.ToSlogLogger(utils.NewNopLogger())
	store := memory.New()
	publisher := events.NewMockEventPublisher(logger)
	objects, err := storage.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	deps := Dependencies{
		Repo:        store,
		Publisher:   publisher,
		Store:       objects,
		ScoreSource: fixedSource(5),
		Logger:      logger,
	}
	for _, fn := range configure {
		fn(&deps)
	}

	return &testEnv{
		services:  NewServiceManager(deps),
		store:     store,
		publisher: publisher,
	}
}

func (e *testEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := e.services.Users.Create(context.Background(), &CreateUserRequest{Email: email, FullName: "Test User"})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createInterview(t *testing.T, userID uint, role string, perQuestion, total int) *models.Interview {
	t.Helper()
	uid := int(userID)
	interview, err := e.services.Interviews.Create(context.Background(), &CreateInterviewRequest{
		UserID:          &uid,
		Role:            role,
		TimePerQuestion: &perQuestion,
		TotalDuration:   &total,
	})
	require.NoError(t, err)
	return interview
}

func ptr[T any](v T) *T {
	return &v
}
