package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/utils"
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
}

func NewServiceLogger(logger *slog.Logger, service string) *ServiceLogger {
	if logger == nil {
		logger = utils.ToSlogLogger(utils.NewNopLogger())
	}
	return &ServiceLogger{logger: logger.With("service", service)}
}

// Logger exposes the underlying slog logger.
func (l *ServiceLogger) Logger() *slog.Logger {
	return l.logger
}

// ===== OPERATION LOGGING =====

// LogOperation records the outcome of one service call. Rejected requests are
// logged at warn, missing rows at info and everything else at error.
func (l *ServiceLogger) LogOperation(ctx context.Context, operation, resourceType string, resourceID uint, started time.Time, err error) {
	level := slog.LevelInfo
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		switch {
		case IsNotFound(err):
			status = "not_found"
			level = slog.LevelInfo
		case IsValidation(err):
			status = "validation_error"
			level = slog.LevelWarn
		case IsDatabaseNotConfigured(err):
			status = "database_not_configured"
			level = slog.LevelWarn
		}
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("resource_type", resourceType),
		slog.String("status", status),
		slog.Duration("duration", time.Since(started)),
	}
	if resourceID != 0 {
		attrs = append(attrs, slog.Uint64("resource_id", uint64(resourceID)))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	if requestID := utils.RequestIDFromContext(ctx); requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

func (l *ServiceLogger) Info(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *ServiceLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func (l *ServiceLogger) Error(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}
