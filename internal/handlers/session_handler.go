package handlers

import (
	"context"
	"net/http"

	"github.com/SAP-F-2025/interview-coach/internal/session"
	"github.com/SAP-F-2025/interview-coach/internal/utils"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	BaseHandler
	manager *session.Manager
}

func NewSessionHandler(manager *session.Manager, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler: NewBaseHandler(logger),
		manager:     manager,
	}
}

// NextRequest carries the transcribed answer to the current question
type NextRequest struct {
	AnswerText string `json:"answerText"`
}

// StartSession opens the live session of an interview
// @Router /sessions/{interviewId} [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	id, ok := h.pathID(c, "interviewId")
	if !ok {
		return
	}

	snap, err := h.manager.Start(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

// GetSession reports the state of a session
// @Router /sessions/{interviewId} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// CloseSession cancels a session and its countdowns
// @Router /sessions/{interviewId} [delete]
func (h *SessionHandler) CloseSession(c *gin.Context) {
	id, ok := h.pathID(c, "interviewId")
	if !ok {
		return
	}
	if err := h.manager.Close(id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session closed successfully"})
}

// GrantPermissions records the device grant and prepares questions
// @Router /sessions/{interviewId}/permissions [post]
func (h *SessionHandler) GrantPermissions(c *gin.Context) {
	h.transition(c, func(ctx context.Context, s *session.Session) (*session.Snapshot, error) {
		return s.GrantPermissions(ctx)
	})
}

// StartRecording starts the first question
// @Router /sessions/{interviewId}/record [post]
func (h *SessionHandler) StartRecording(c *gin.Context) {
	h.transition(c, func(_ context.Context, s *session.Session) (*session.Snapshot, error) {
		return s.StartRecording()
	})
}

// Pause freezes the countdowns
// @Router /sessions/{interviewId}/pause [post]
func (h *SessionHandler) Pause(c *gin.Context) {
	h.transition(c, func(_ context.Context, s *session.Session) (*session.Snapshot, error) {
		return s.Pause()
	})
}

// Resume restarts the countdowns
// @Router /sessions/{interviewId}/resume [post]
func (h *SessionHandler) Resume(c *gin.Context) {
	h.transition(c, func(_ context.Context, s *session.Session) (*session.Snapshot, error) {
		return s.Resume()
	})
}

// Next records the current answer and advances
// @Router /sessions/{interviewId}/next [post]
func (h *SessionHandler) Next(c *gin.Context) {
	var req NextRequest
	if c.Request.ContentLength != 0 && !h.decodeJSON(c, &req, nil) {
		return
	}
	h.transition(c, func(ctx context.Context, s *session.Session) (*session.Snapshot, error) {
		return s.Next(ctx, req.AnswerText)
	})
}

// Finish completes the interview now
// @Router /sessions/{interviewId}/finish [post]
func (h *SessionHandler) Finish(c *gin.Context) {
	h.transition(c, func(ctx context.Context, s *session.Session) (*session.Snapshot, error) {
		return s.Finish(ctx)
	})
}

func (h *SessionHandler) session(c *gin.Context) (*session.Session, bool) {
	id, ok := h.pathID(c, "interviewId")
	if !ok {
		return nil, false
	}
	s, err := h.manager.Get(id)
	if err != nil {
		h.handleServiceError(c, err)
		return nil, false
	}
	return s, true
}

func (h *SessionHandler) transition(c *gin.Context, fn func(context.Context, *session.Session) (*session.Snapshot, error)) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	snap, err := fn(c.Request.Context(), s)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
