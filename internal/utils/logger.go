package utils

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// RequestIDHeader carries the request id in and out of the service
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey stores the request id in the gin context
	RequestIDKey = "request_id"

	loggerKey = "logger"
)

// Logger is the logging surface shared by handlers, middleware and bootstrap code.
// Services take the underlying *slog.Logger (see ToSlogLogger).
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// Context variants add the request id stored by WithRequestID
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)

	With(args ...any) Logger

	// LogRequest writes one access log line, levelled by status code
	LogRequest(method, path string, statusCode int, latency time.Duration, args ...any)
	LogError(err error, msg string, args ...any)
}

// SlogLogger implements Logger on top of slog
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps logger. Its handler is decorated so context records
// carry the request id.
func NewSlogLogger(logger *slog.Logger) Logger {
	if _, ok := logger.Handler().(requestIDHandler); !ok {
		logger = slog.New(requestIDHandler{Handler: logger.Handler()})
	}
	return &SlogLogger{logger: logger}
}

// NewLogger picks JSON at info level in production and text at debug level elsewhere
func NewLogger(environment string) Logger {
	if environment == "production" {
		return NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})))
	}
	return NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}

// NewNopLogger discards everything. Used by tests.
func NewNopLogger() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (l *SlogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *SlogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *SlogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *SlogLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

func (l *SlogLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *SlogLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func (l *SlogLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

func (l *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{logger: l.logger.With(args...)}
}

func (l *SlogLogger) LogRequest(method, path string, statusCode int, latency time.Duration, args ...any) {
	level := slog.LevelInfo
	switch {
	case statusCode >= 500:
		level = slog.LevelError
	case statusCode >= 400:
		level = slog.LevelWarn
	}

	attrs := append([]any{
		"method", method,
		"path", path,
		"status_code", statusCode,
		"latency_ms", latency.Milliseconds(),
	}, args...)
	l.logger.Log(context.Background(), level, "HTTP Request", attrs...)
}

func (l *SlogLogger) LogError(err error, msg string, args ...any) {
	l.logger.Error(msg, append([]any{"error", err}, args...)...)
}

// requestIDHandler adds request_id to records logged with a request context.
type requestIDHandler struct {
	slog.Handler
}

func (h requestIDHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h requestIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return requestIDHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h requestIDHandler) WithGroup(name string) slog.Handler {
	return requestIDHandler{Handler: h.Handler.WithGroup(name)}
}

// LoggerMiddleware writes an access log line per request. Paths in
// skipPaths (health probes) are not logged.
func LoggerMiddleware(logger Logger, skipPaths ...string) gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: skipPaths,
		Formatter: func(param gin.LogFormatterParams) string {
			logger.LogRequest(
				param.Method,
				param.Path,
				param.StatusCode,
				param.Latency,
				"client_ip", param.ClientIP,
				"user_agent", param.Request.UserAgent(),
				"request_id", param.Keys[RequestIDKey],
			)
			return ""
		},
		Output: io.Discard,
	})
}

// RequestID returns the id assigned to the current request, falling back to the inbound header
func RequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDHeader)
}

type requestIDContextKey struct{}

// WithRequestID stores the request id on a context passed to services.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

// RequestIDFromContext returns the id stored by WithRequestID, if any.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

// ContextLogger stores a request-scoped logger on the gin context
func ContextLogger(logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(loggerKey, logger.With(
			"request_id", RequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		))
		c.Next()
	}
}

// LoggerFromContext returns the logger set by ContextLogger, or fallback.
func LoggerFromContext(c *gin.Context, fallback Logger) Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(Logger); ok {
			return l
		}
	}
	return fallback
}

// ToSlogLogger exposes the slog logger behind logger, for services and
// libraries that take *slog.Logger.
func ToSlogLogger(logger Logger) *slog.Logger {
	if l, ok := logger.(*SlogLogger); ok {
		return l.logger
	}
	return slog.Default()
}
