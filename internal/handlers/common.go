package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/SAP-F-2025/interview-coach/internal/errors"
	"github.com/SAP-F-2025/interview-coach/internal/services"
	"github.com/SAP-F-2025/interview-coach/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	defaultLimit     = 10
	maxLimit         = 100
	totalCountHeader = "X-Total-Count"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return BaseHandler{
		logger: logger,
	}
}

// scoped returns the request logger set by utils.ContextLogger. Without it
// the base logger is used and the request fields are added explicitly.
func (h *BaseHandler) scoped(c *gin.Context, additionalFields []interface{}) (utils.Logger, []interface{}) {
	if logger := utils.LoggerFromContext(c, nil); logger != nil {
		return logger, additionalFields
	}
	fields := []interface{}{
		"request_id", utils.RequestID(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	return h.logger, append(fields, additionalFields...)
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	logger, fields := h.scoped(c, append([]interface{}{
		"remote_addr", c.ClientIP(),
		"user_agent", c.Request.UserAgent(),
	}, additionalFields...))
	logger.Debug(message, fields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	logger, fields := h.scoped(c, additionalFields)
	logger.LogError(err, message, fields...)
}

// LogInfo logs informational messages with context
func (h *BaseHandler) LogInfo(c *gin.Context, message string, additionalFields ...interface{}) {
	logger, fields := h.scoped(c, additionalFields)
	logger.Info(message, fields...)
}

// LogWarn logs warning messages with context
func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	logger, fields := h.scoped(c, additionalFields)
	logger.Warn(message, fields...)
}

// RespondWithError sends the standard error body
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{Error: message, Code: code})
}

// handleServiceError maps a service error onto its status and code. Unexpected
// errors are logged and reported without detail.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	if services.IsDatabaseNotConfigured(err) {
		h.LogWarn(c, "Database not configured")
		h.RespondWithError(c, http.StatusInternalServerError, apperrors.CodeDatabaseNotConfigured, services.ErrDatabaseNotConfigured.Error())
		return
	}

	if apiErr, ok := apperrors.AsAPIError(err); ok {
		if apiErr.Status >= http.StatusInternalServerError {
			h.LogError(c, err, "Request failed", "code", apiErr.Code)
		}
		h.RespondWithError(c, apiErr.Status, apiErr.Code, apiErr.Message)
		return
	}

	h.LogError(c, err, "Unexpected error")
	h.RespondWithError(c, http.StatusInternalServerError, apperrors.CodeInternal, "Internal server error")
}

// ===== REQUEST PARSING =====

// decodeJSON reads the body into dst. A value of the wrong type reports the
// field's invalid code; any other decoding failure is INVALID_JSON.
func (h *BaseHandler) decodeJSON(c *gin.Context, dst any, codes apperrors.CodeTable) bool {
	err := json.NewDecoder(c.Request.Body).Decode(dst)
	if err == nil {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		h.handleServiceError(c, codes.ForField(typeErr.Field))
		return false
	}
	h.LogWarn(c, "Invalid JSON body", "error", err.Error())
	h.RespondWithError(c, http.StatusBadRequest, apperrors.CodeInvalidJSON, "Invalid JSON body")
	return false
}

// resourceID reads the id from the path or, failing that, the id query parameter.
func (h *BaseHandler) resourceID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	if raw == "" {
		raw = c.Query("id")
	}
	return h.parseID(c, raw)
}

// pathID reads a required path parameter.
func (h *BaseHandler) pathID(c *gin.Context, param string) (uint, bool) {
	return h.parseID(c, c.Param(param))
}

func (h *BaseHandler) parseID(c *gin.Context, raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		h.RespondWithError(c, http.StatusBadRequest, apperrors.CodeInvalidID, "Valid ID is required")
		return 0, false
	}
	return uint(id), true
}

// hasIDQuery reports whether a collection request targets one record.
func hasIDQuery(c *gin.Context) bool {
	_, ok := c.GetQuery("id")
	return ok
}

// pagination parses limit and offset. Bad values fall back to the defaults.
func pagination(c *gin.Context) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = min(v, maxLimit)
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// optionalUint parses a filter. ok is false when the parameter is present but malformed.
func optionalUint(c *gin.Context, name string) (value *uint, ok bool) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		return nil, false
	}
	id := uint(v)
	return &id, true
}

// respondList writes a page and its total row count.
func respondList(c *gin.Context, items any, total int64) {
	c.Header(totalCountHeader, strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, items)
}
