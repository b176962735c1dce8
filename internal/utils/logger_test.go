package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newBufferLogger(buf *bytes.Buffer) Logger {
	return NewSlogLogger(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var record map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &record))
	return record
}

func TestContextLoggingAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	logger.InfoContext(WithRequestID(context.Background(), "req-42"), "hello")
	assert.Equal(t, "req-42", lastRecord(t, &buf)["request_id"])

	logger.With("component", "test").WarnContext(context.Background(), "no id")
	record := lastRecord(t, &buf)
	assert.NotContains(t, record, "request_id")
	assert.Equal(t, "test", record["component"])
}

func TestLogRequestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusNotFound, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}
	for _, tt := range tests {
		logger.LogRequest(http.MethodGet, "/api/users", tt.status, 1500*time.Microsecond)
		record := lastRecord(t, &buf)
		assert.Equal(t, tt.level, record["level"])
		assert.EqualValues(t, 1, record["latency_ms"])
	}
}

func TestContextLoggerMiddleware(t *testing.T) {
	fallback := NewNopLogger()
	var got Logger

	router := gin.New()
	router.Use(ContextLogger(fallback))
	router.GET("/ping", func(c *gin.Context) {
		got = LoggerFromContext(c, nil)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, got)
	assert.NotSame(t, fallback, got)
}

func TestToSlogLogger(t *testing.T) {
	assert.NotNil(t, ToSlogLogger(NewNopLogger()))
	assert.Same(t, slog.Default(), ToSlogLogger(nil))
}
