package handlers

import (
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/SAP-F-2025/interview-coach/internal/services"
	"github.com/SAP-F-2025/interview-coach/internal/utils"
	"github.com/gin-gonic/gin"
)

type EvaluationHandler struct {
	BaseHandler
	evaluationService services.EvaluationService
}

func NewEvaluationHandler(evaluationService services.EvaluationService, logger utils.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		BaseHandler:       NewBaseHandler(logger),
		evaluationService: evaluationService,
	}
}

// ListEvaluations lists evaluations, or returns one when ?id= is given
// @Router /evaluations [get]
func (h *EvaluationHandler) ListEvaluations(c *gin.Context) {
	if hasIDQuery(c) {
		h.GetEvaluation(c)
		return
	}

	limit, offset := pagination(c)
	filters := repositories.EvaluationFilters{Limit: limit, Offset: offset}

	userID, ok := optionalUint(c, "userId")
	if !ok {
		h.handleServiceError(c, services.ErrInvalidUserFilter)
		return
	}
	interviewID, ok := optionalUint(c, "interviewId")
	if !ok {
		h.handleServiceError(c, services.ErrInvalidInterviewFilter)
		return
	}
	filters.UserID = userID
	filters.InterviewID = interviewID

	if raw := c.Query("minScore"); raw != "" {
		minScore, err := strconv.Atoi(raw)
		if err != nil {
			h.handleServiceError(c, services.ErrInvalidMinScore)
			return
		}
		filters.MinScore = &minScore
	}

	evaluations, total, err := h.evaluationService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondList(c, evaluations, total)
}

// GetEvaluation retrieves an evaluation by ID
// @Router /evaluations/{id} [get]
func (h *EvaluationHandler) GetEvaluation(c *gin.Context) {
	id, ok := h.resourceID(c)
	if !ok {
		return
	}

	evaluation, err := h.evaluationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, evaluation)
}

// CreateEvaluation records an evaluation for an interview
// @Router /evaluations [post]
func (h *EvaluationHandler) CreateEvaluation(c *gin.Context) {
	var req services.CreateEvaluationRequest
	if !h.decodeJSON(c, &req, services.CreateEvaluationCodes) {
		return
	}

	evaluation, err := h.evaluationService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, evaluation)
}

// UpdateEvaluation applies a partial update
// @Router /evaluations/{id} [put]
func (h *EvaluationHandler) UpdateEvaluation(c *gin.Context) {
	id, ok := h.resourceID(c)
	if !ok {
		return
	}

	var req services.UpdateEvaluationRequest
	if !h.decodeJSON(c, &req, services.UpdateEvaluationCodes) {
		return
	}

	evaluation, err := h.evaluationService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, evaluation)
}

// DeleteEvaluation deletes an evaluation
// @Router /evaluations/{id} [delete]
func (h *EvaluationHandler) DeleteEvaluation(c *gin.Context) {
	id, ok := h.resourceID(c)
	if !ok {
		return
	}

	evaluation, err := h.evaluationService.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Evaluation deleted successfully",
		"evaluation": evaluation,
	})
}
