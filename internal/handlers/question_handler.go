package handlers

import (
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/SAP-F-2025/interview-coach/internal/services"
	"github.com/SAP-F-2025/interview-coach/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	BaseHandler
	questionService services.QuestionService
}

func NewQuestionHandler(questionService services.QuestionService, logger utils.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler:     NewBaseHandler(logger),
		questionService: questionService,
	}
}

// ListQuestions lists questions, or returns one when ?id= is given
// @Router /questions [get]
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	if hasIDQuery(c) {
		h.GetQuestion(c)
		return
	}

	limit, offset := pagination(c)
	filters := repositories.QuestionFilters{Limit: limit, Offset: offset}

	interviewID, ok := optionalUint(c, "interviewId")
	if !ok {
		h.handleServiceError(c, services.ErrInvalidInterviewFilter)
		return
	}
	filters.InterviewID = interviewID
	if answered, err := strconv.ParseBool(c.Query("answered")); err == nil {
		filters.Answered = &answered
	}

	questions, total, err := h.questionService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondList(c, questions, total)
}

// GetQuestion retrieves a question by ID
// @Router /questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := h.resourceID(c)
	if !ok {
		return
	}

	question, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// CreateQuestion adds a question to an interview
// @Router /questions [post]
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req services.CreateQuestionRequest
	if !h.decodeJSON(c, &req, services.CreateQuestionCodes) {
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion records an answer or its timing
// @Router /questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, ok := h.resourceID(c)
	if !ok {
		return
	}

	var req services.UpdateQuestionRequest
	if !h.decodeJSON(c, &req, services.UpdateQuestionCodes) {
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// DeleteQuestion deletes a question
// @Router /questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := h.resourceID(c)
	if !ok {
		return
	}

	question, err := h.questionService.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Question deleted successfully",
		"question": question,
	})
}
