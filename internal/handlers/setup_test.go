package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/middleware"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/SAP-F-2025/interview-coach/internal/repositories/memory"
	"github.com/SAP-F-2025/interview-coach/internal/services"
	"github.com/SAP-F-2025/interview-coach/internal/session"
	"github.com/SAP-F-2025/interview-coach/internal/storage"
	"github.com/SAP-F-2025/interview-coach/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedSource int

func (f fixedSource) IntN(n int) int { return int(f) % n }

type testServer struct {
	router   *gin.Engine
	sessions *session.Manager
}

func newTestServer(t *testing.T, repo repositories.Repository) *testServer {
	t.Helper()

	logger := utils.NewNopLogger()
	objects, err := storage.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	svc := services.NewServiceManager(services.Dependencies{
		Repo:        repo,
		Store:       objects,
		ScoreSource: fixedSource(5),
		Logger:      utils.ToSlogLogger(logger),
	})
	sessions := session.NewManager(svc, utils.ToSlogLogger(logger), session.Config{TimeUnit: time.Second})
	t.Cleanup(sessions.CloseAll)

	router := gin.New()
	router.Use(middleware.RequestID())
	NewHandlerManager(svc, sessions, repo, logger).SetupRoutes(router, RouterOptions{})

	return &testServer{router: router, sessions: sessions}
}

func newMemoryServer(t *testing.T) *testServer {
	return newTestServer(t, memory.New())
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(v)
	default:
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func requireError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	body := decodeBody[ErrorResponse](t, w)
	require.Equal(t, code, body.Code)
	require.NotEmpty(t, body.Error)
}

func (s *testServer) createUser(t *testing.T, email string) uint {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/users", map[string]any{"email": email, "fullName": "Test User"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[struct {
		ID uint `json:"id"`
	}](t, w).ID
}

func (s *testServer) createInterview(t *testing.T, userID uint, role string) uint {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/interviews", map[string]any{
		"userId":          userID,
		"role":            role,
		"timePerQuestion": 180,
		"totalDuration":   900,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[struct {
		ID uint `json:"id"`
	}](t, w).ID
}

func idPath(prefix string, id uint) string {
	return prefix + "/" + strconv.FormatUint(uint64(id), 10)
}
