package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/interview-coach/internal/models"
	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/SAP-F-2025/interview-coach/internal/services"
	"github.com/SAP-F-2025/interview-coach/internal/utils"
	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	BaseHandler
	interviewService  services.InterviewService
	generationService services.GenerationService
}

func NewInterviewHandler(interviewService services.InterviewService, generationService services.GenerationService, logger utils.Logger) *InterviewHandler {
	return &InterviewHandler{
		BaseHandler:       NewBaseHandler(logger),
		interviewService:  interviewService,
		generationService: generationService,
	}
}

// ListInterviews lists interviews, or returns one when ?id= is given
// @Router /interviews [get]
func (h *InterviewHandler) ListInterviews(c *gin.Context) {
	if hasIDQuery(c) {
		h.GetInterview(c)
		return
	}

	limit, offset := pagination(c)
	filters := repositories.InterviewFilters{
		Role:   strings.TrimSpace(c.Query("role")),
		Limit:  limit,
		Offset: offset,
	}
	// Malformed userId and status filters are ignored
	if userID, ok := optionalUint(c, "userId"); ok {
		filters.UserID = userID
	}
	if status := models.InterviewStatus(c.Query("status")); status.IsValid() {
		filters.Status = &status
	}

	interviews, total, err := h.interviewService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondList(c, interviews, total)
}

// GetInterview retrieves an interview by ID
// @Router /interviews/{id} [get]
func (h *InterviewHandler) GetInterview(c *gin.Context) {
	id, ok := h.resourceID(c)
	if !ok {
		return
	}

	interview, err := h.interviewService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, interview)
}

// CreateInterview starts a new interview
// @Router /interviews [post]
func (h *InterviewHandler) CreateInterview(c *gin.Context) {
	var req services.CreateInterviewRequest
	if !h.decodeJSON(c, &req, services.CreateInterviewCodes) {
		return
	}

	interview, err := h.interviewService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogInfo(c, "Interview created", "interview_id", interview.ID, "role", interview.Role)
	c.JSON(http.StatusCreated, interview)
}

// UpdateInterview applies a partial update
// @Router /interviews/{id} [put]
func (h *InterviewHandler) UpdateInterview(c *gin.Context) {
	id, ok := h.resourceID(c)
	if !ok {
		return
	}

	var req services.UpdateInterviewRequest
	if !h.decodeJSON(c, &req, services.UpdateInterviewCodes) {
		return
	}

	interview, err := h.interviewService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, interview)
}

// DeleteInterview deletes an interview with its questions and evaluation
// @Router /interviews/{id} [delete]
func (h *InterviewHandler) DeleteInterview(c *gin.Context) {
	id, ok := h.resourceID(c)
	if !ok {
		return
	}

	interview, err := h.interviewService.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":          "Interview deleted successfully",
		"deletedInterview": interview,
	})
}

// GenerateQuestions creates the question set of an interview
// @Router /interviews/{id}/generate-questions [post]
func (h *InterviewHandler) GenerateQuestions(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Generating questions", "interview_id", id)

	result, err := h.generationService.Generate(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogInfo(c, "Questions generated", "interview_id", id, "count", result.Count, "source", result.Source)
	c.JSON(http.StatusCreated, result)
}

// CompleteInterview finishes an interview and records its evaluation
// @Router /interviews/{id}/complete [post]
func (h *InterviewHandler) CompleteInterview(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req services.CompleteInterviewRequest
	if c.Request.ContentLength != 0 && !h.decodeJSON(c, &req, services.CompleteInterviewCodes) {
		return
	}

	result, err := h.interviewService.Complete(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
