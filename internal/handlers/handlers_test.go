package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/SAP-F-2025/interview-coach/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	w := newMemoryServer(t).do(t, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[map[string]any](t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "interview-coach", body["service"])
	assert.Equal(t, true, body["database"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestUserHandler_Create(t *testing.T) {
	srv := newMemoryServer(t)

	w := srv.do(t, http.MethodPost, "/api/users", map[string]any{"email": "  Alice@Example.COM ", "fullName": "Alice"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decodeBody[models.User](t, w)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"bad email", map[string]any{"email": "not-an-email", "fullName": "Bob"}, http.StatusBadRequest, "INVALID_EMAIL_FORMAT"},
		{"missing email", map[string]any{"fullName": "Bob"}, http.StatusBadRequest, "MISSING_EMAIL"},
		{"wrong type", `{"email": 5, "fullName": "Bob"}`, http.StatusBadRequest, "INVALID_EMAIL_FORMAT"},
		{"malformed", `{"email":`, http.StatusBadRequest, "INVALID_JSON"},
		{"duplicate", map[string]any{"email": "alice@example.com", "fullName": "Again"}, http.StatusBadRequest, "EMAIL_EXISTS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireError(t, srv.do(t, http.MethodPost, "/api/users", tt.body), tt.status, tt.code)
		})
	}
}

func TestUserHandler_GetByPathAndQuery(t *testing.T) {
	srv := newMemoryServer(t)
	id := srv.createUser(t, "carol@example.com")

	for _, path := range []string{idPath("/api/users", id), fmt.Sprintf("/api/users?id=%d", id)} {
		w := srv.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, id, decodeBody[models.User](t, w).ID)
	}

	requireError(t, srv.do(t, http.MethodGet, "/api/users?id=abc", nil), http.StatusBadRequest, "INVALID_ID")
	requireError(t, srv.do(t, http.MethodGet, "/api/users/0", nil), http.StatusBadRequest, "INVALID_ID")
	requireError(t, srv.do(t, http.MethodGet, "/api/users/999", nil), http.StatusNotFound, "USER_NOT_FOUND")
}

func TestUserHandler_ListPagination(t *testing.T) {
	srv := newMemoryServer(t)
	for i := 0; i < 12; i++ {
		srv.createUser(t, fmt.Sprintf("user%d@example.com", i))
	}

	w := srv.do(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "12", w.Header().Get("X-Total-Count"))
	assert.Len(t, decodeBody[[]models.User](t, w), 10)

	w = srv.do(t, http.MethodGet, "/api/users?limit=500&offset=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]models.User](t, w), 2)
}

func TestUserHandler_UpdateAndDelete(t *testing.T) {
	srv := newMemoryServer(t)
	id := srv.createUser(t, "dave@example.com")

	w := srv.do(t, http.MethodPut, idPath("/api/users", id), map[string]any{"fullName": "David"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "David", decodeBody[models.User](t, w).FullName)

	w = srv.do(t, http.MethodDelete, fmt.Sprintf("/api/users?id=%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[struct {
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}](t, w)
	assert.Equal(t, "User deleted successfully", body.Message)
	assert.Equal(t, id, body.User.ID)

	requireError(t, srv.do(t, http.MethodDelete, idPath("/api/users", id), nil), http.StatusNotFound, "USER_NOT_FOUND")
}

func TestInterviewHandler_Lifecycle(t *testing.T) {
	srv := newMemoryServer(t)
	userID := srv.createUser(t, "erin@example.com")
	id := srv.createInterview(t, userID, "Backend Engineer")

	w := srv.do(t, http.MethodPost, idPath("/api/interviews", id)+"/generate-questions", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	generated := decodeBody[services.GenerationResult](t, w)
	assert.Equal(t, 5, generated.Count)
	assert.Equal(t, services.SourceFallback, generated.Source)
	assert.Len(t, generated.Questions, 5)

	requireError(t, srv.do(t, http.MethodPost, idPath("/api/interviews", id)+"/generate-questions", nil),
		http.StatusBadRequest, "QUESTIONS_ALREADY_GENERATED")

	w = srv.do(t, http.MethodGet, fmt.Sprintf("/api/questions?interviewId=%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5", w.Header().Get("X-Total-Count"))

	first := generated.Questions[0]
	w = srv.do(t, http.MethodPut, idPath("/api/questions", first.ID), map[string]any{"answerText": "  I would shard it  ", "timeTaken": 42})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	answered := decodeBody[models.Question](t, w)
	require.NotNil(t, answered.AnswerText)
	assert.Equal(t, "I would shard it", *answered.AnswerText)
	assert.NotNil(t, answered.AnsweredAt)

	w = srv.do(t, http.MethodPost, idPath("/api/interviews", id)+"/complete", map[string]any{"actualDuration": 240})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	completed := decodeBody[services.CompletionResult](t, w)
	assert.Equal(t, models.InterviewCompleted, completed.Interview.Status)
	require.NotNil(t, completed.Interview.ActualDuration)
	assert.Equal(t, 240, *completed.Interview.ActualDuration)
	require.NotNil(t, completed.Evaluation)
	assert.Equal(t, userID, completed.Evaluation.UserID)

	requireError(t, srv.do(t, http.MethodPost, idPath("/api/interviews", id)+"/complete", nil),
		http.StatusBadRequest, "EVALUATION_EXISTS")

	w = srv.do(t, http.MethodGet, fmt.Sprintf("/api/evaluations?interviewId=%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-Total-Count"))
}

func TestInterviewHandler_UpdateCompletedStampsTime(t *testing.T) {
	srv := newMemoryServer(t)
	id := srv.createInterview(t, srv.createUser(t, "frank@example.com"), "Designer")

	w := srv.do(t, http.MethodPut, fmt.Sprintf("/api/interviews?id=%d", id), map[string]any{"status": "completed", "actualDuration": 300})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	interview := decodeBody[models.Interview](t, w)
	assert.Equal(t, models.InterviewCompleted, interview.Status)
	assert.NotNil(t, interview.CompletedAt)

	requireError(t, srv.do(t, http.MethodPut, idPath("/api/interviews", id), map[string]any{}), http.StatusBadRequest, "NO_UPDATES")
	requireError(t, srv.do(t, http.MethodPut, idPath("/api/interviews", id), `{"actualDuration":"long"}`),
		http.StatusBadRequest, "INVALID_ACTUAL_DURATION")

	w = srv.do(t, http.MethodDelete, idPath("/api/interviews", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[map[string]any](t, w)
	assert.Equal(t, "Interview deleted successfully", body["message"])
	assert.Contains(t, body, "deletedInterview")
}

func TestInterviewHandler_CreateValidation(t *testing.T) {
	srv := newMemoryServer(t)
	userID := srv.createUser(t, "gina@example.com")

	requireError(t, srv.do(t, http.MethodPost, "/api/interviews", map[string]any{
		"userId": userID, "role": " ", "timePerQuestion": 180, "totalDuration": 900,
	}), http.StatusBadRequest, "MISSING_ROLE")
	requireError(t, srv.do(t, http.MethodPost, "/api/interviews", map[string]any{
		"userId": 404, "role": "QA", "timePerQuestion": 180, "totalDuration": 900,
	}), http.StatusBadRequest, "USER_NOT_FOUND")
}

func TestListFilters_RejectMalformedValues(t *testing.T) {
	srv := newMemoryServer(t)

	requireError(t, srv.do(t, http.MethodGet, "/api/questions?interviewId=abc", nil), http.StatusBadRequest, "INVALID_INTERVIEW_ID")
	requireError(t, srv.do(t, http.MethodGet, "/api/evaluations?minScore=high", nil), http.StatusBadRequest, "INVALID_MIN_SCORE")
	requireError(t, srv.do(t, http.MethodGet, "/api/evaluations?userId=-3", nil), http.StatusBadRequest, "INVALID_USER_ID")
}

func TestAnalyticsAndReports(t *testing.T) {
	srv := newMemoryServer(t)
	userID := srv.createUser(t, "hana@example.com")
	srv.createInterview(t, userID, "Data Scientist")

	w := srv.do(t, http.MethodGet, "/api/analytics/overview", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	overview := decodeBody[map[string]any](t, w)
	assert.EqualValues(t, 1, overview["totalUsers"])
	assert.EqualValues(t, 1, overview["totalInterviews"])

	w = srv.do(t, http.MethodGet, "/api/reports/interviews?format=csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "Data Scientist")

	w = srv.do(t, http.MethodGet, "/api/reports/interviews", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")

	requireError(t, srv.do(t, http.MethodGet, "/api/reports/interviews?format=pdf", nil), http.StatusBadRequest, "INVALID_FORMAT")

	w = srv.do(t, http.MethodGet, idPath("/api/users", userID)+"/performance", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestDatabaseNotConfigured(t *testing.T) {
	srv := newTestServer(t, repositories.NewDisabled())

	requireError(t, srv.do(t, http.MethodGet, "/api/users", nil), http.StatusInternalServerError, "DATABASE_NOT_CONFIGURED")
	requireError(t, srv.do(t, http.MethodPost, "/api/users", map[string]any{"email": "a@b.co", "fullName": "A"}),
		http.StatusInternalServerError, "DATABASE_NOT_CONFIGURED")

	w := srv.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody[map[string]any](t, w)["database"])
}
