package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/interview-coach/internal/repositories"
	"github.com/SAP-F-2025/interview-coach/internal/services"
	"github.com/SAP-F-2025/interview-coach/internal/utils"
	"github.com/gin-gonic/gin"
)

// multipartOverhead is the slack allowed above the file limit for form fields and boundaries.
const multipartOverhead = 1 << 20

type ResumeHandler struct {
	BaseHandler
	resumeService services.ResumeService
}

func NewResumeHandler(resumeService services.ResumeService, logger utils.Logger) *ResumeHandler {
	return &ResumeHandler{
		BaseHandler:   NewBaseHandler(logger),
		resumeService: resumeService,
	}
}

// ListResumes lists résumés, or returns one when ?id= is given
// @Router /resumes [get]
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	if hasIDQuery(c) {
		h.GetResume(c)
		return
	}

	limit, offset := pagination(c)
	filters := repositories.ResumeFilters{
		Search: strings.TrimSpace(c.Query("search")),
		Limit:  limit,
		Offset: offset,
	}
	// A malformed userId is ignored
	if userID, ok := optionalUint(c, "userId"); ok {
		filters.UserID = userID
	}

	resumes, total, err := h.resumeService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	respondList(c, resumes, total)
}

// GetResume retrieves a résumé by ID
// @Router /resumes/{id} [get]
func (h *ResumeHandler) GetResume(c *gin.Context) {
	id, ok := h.resourceID(c)
	if !ok {
		return
	}

	resume, err := h.resumeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume)
}

// CreateResume records a résumé whose file is already hosted
// @Router /resumes [post]
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	var req services.CreateResumeRequest
	if !h.decodeJSON(c, &req, services.CreateResumeCodes) {
		return
	}

	resume, err := h.resumeService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resume)
}

// UploadResume stores an uploaded file and records its analysis
// @Accept multipart/form-data
// @Router /resumes/upload [post]
func (h *ResumeHandler) UploadResume(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxResumeSize+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.handleServiceError(c, services.ErrFileTooLarge)
			return
		}
		h.handleServiceError(c, services.ErrMissingFile)
		return
	}

	// An empty userId is left for the service to report as missing
	var userID uint64
	if raw := strings.TrimSpace(c.PostForm("userId")); raw != "" {
		userID, err = strconv.ParseUint(raw, 10, 32)
		if err != nil || userID == 0 {
			h.handleServiceError(c, services.CreateResumeCodes.ForField("userId"))
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer file.Close()

	h.LogRequest(c, "Uploading resume", "user_id", userID, "file_name", fileHeader.Filename, "size", fileHeader.Size)

	resume, err := h.resumeService.Upload(c.Request.Context(), &services.UploadResumeRequest{
		UserID:      uint(userID),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resume)
}

// UpdateResume applies a partial update
// @Router /resumes/{id} [put]
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	id, ok := h.resourceID(c)
	if !ok {
		return
	}

	var req services.UpdateResumeRequest
	if !h.decodeJSON(c, &req, services.UpdateResumeCodes) {
		return
	}

	resume, err := h.resumeService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume)
}

// DeleteResume deletes a résumé
// @Router /resumes/{id} [delete]
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	id, ok := h.resourceID(c)
	if !ok {
		return
	}

	resume, err := h.resumeService.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Resume deleted successfully",
		"deletedResume": resume,
	})
}
