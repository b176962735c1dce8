package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionPath(interviewID uint, action string) string {
	path := fmt.Sprintf("/api/sessions/%d", interviewID)
	if action != "" {
		path += "/" + action
	}
	return path
}

func TestSessionHandler_Flow(t *testing.T) {
	srv := newMemoryServer(t)
	id := srv.createInterview(t, srv.createUser(t, "ivan@example.com"), "Product Manager")

	w := srv.do(t, http.MethodPost, sessionPath(id, ""), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, session.StateAwaitingPermissions, decodeBody[session.Snapshot](t, w).State)

	requireError(t, srv.do(t, http.MethodPost, sessionPath(id, "pause"), nil), http.StatusConflict, session.CodeInvalidTransition)

	w = srv.do(t, http.MethodPost, sessionPath(id, "permissions"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	snap := decodeBody[session.Snapshot](t, w)
	assert.Equal(t, session.StateReady, snap.State)
	assert.Equal(t, 5, snap.QuestionCount)
	require.NotNil(t, snap.CurrentQuestion)

	w = srv.do(t, http.MethodPost, sessionPath(id, "record"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, session.StateRecording, decodeBody[session.Snapshot](t, w).State)

	w = srv.do(t, http.MethodPost, sessionPath(id, "next"), map[string]any{"answerText": "Roadmaps start from users"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	snap = decodeBody[session.Snapshot](t, w)
	assert.Equal(t, session.StateRecording, snap.State)
	assert.Equal(t, 1, snap.QuestionIndex)

	w = srv.do(t, http.MethodPost, sessionPath(id, "finish"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	snap = decodeBody[session.Snapshot](t, w)
	assert.Equal(t, session.StateCompleted, snap.State)
	require.NotNil(t, snap.Evaluation)

	w = srv.do(t, http.MethodGet, idPath("/api/interviews", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.InterviewCompleted, decodeBody[models.Interview](t, w).Status)

	w = srv.do(t, http.MethodDelete, sessionPath(id, ""), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Session closed successfully", decodeBody[map[string]any](t, w)["message"])
	assert.Equal(t, 0, srv.sessions.Len())
}

func TestSessionHandler_Errors(t *testing.T) {
	srv := newMemoryServer(t)

	requireError(t, srv.do(t, http.MethodPost, sessionPath(404, ""), nil), http.StatusNotFound, "NOT_FOUND")
	requireError(t, srv.do(t, http.MethodGet, sessionPath(404, ""), nil), http.StatusNotFound, session.CodeSessionNotFound)
	requireError(t, srv.do(t, http.MethodPost, sessionPath(404, "record"), nil), http.StatusNotFound, session.CodeSessionNotFound)
	requireError(t, srv.do(t, http.MethodDelete, sessionPath(404, ""), nil), http.StatusNotFound, session.CodeSessionNotFound)
	requireError(t, srv.do(t, http.MethodPost, "/api/sessions/abc", nil), http.StatusBadRequest, "INVALID_ID")
}

func uploadRequest(t *testing.T, userID, fileName string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if userID != "" {
		require.NoError(t, writer.WriteField("userId", userID))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/resumes/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestResumeHandler_Upload(t *testing.T) {
	srv := newMemoryServer(t)
	userID := srv.createUser(t, "jules@example.com")
	uid := fmt.Sprint(userID)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, uploadRequest(t, uid, "cv.doc", []byte("legacy word document")))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resume := decodeBody[models.Resume](t, w)
	assert.Equal(t, userID, resume.UserID)
	assert.Equal(t, "cv.doc", resume.FileName)
	assert.Contains(t, resume.FileURL, "/uploads/resumes/")

	tests := []struct {
		name     string
		userID   string
		fileName string
		status   int
		code     string
	}{
		{"wrong type", uid, "cv.txt", http.StatusBadRequest, "INVALID_FILE_TYPE"},
		{"no file", uid, "", http.StatusBadRequest, "MISSING_FILE"},
		{"no user", "", "cv.pdf", http.StatusBadRequest, "MISSING_USER_ID"},
		{"unknown user", "999", "cv.doc", http.StatusBadRequest, "USER_NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.router.ServeHTTP(w, uploadRequest(t, tt.userID, tt.fileName, []byte("content")))
			requireError(t, w, tt.status, tt.code)
		})
	}

	w = srv.do(t, http.MethodGet, fmt.Sprintf("/api/resumes?userId=%d", userID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-Total-Count"))
}
