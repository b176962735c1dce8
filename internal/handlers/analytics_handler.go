package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/interview-coach/internal/services"
	"github.com/SAP-F-2025/interview-coach/internal/utils"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	BaseHandler
	analyticsService services.AnalyticsService
	reportService    services.ReportService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService, reportService services.ReportService, logger utils.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      NewBaseHandler(logger),
		analyticsService: analyticsService,
		reportService:    reportService,
	}
}

// GetOverview returns the admin dashboard summary
// @Router /analytics/overview [get]
func (h *AnalyticsHandler) GetOverview(c *gin.Context) {
	overview, err := h.analyticsService.Overview(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// ExportInterviews downloads every interview as xlsx or csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Router /reports/interviews [get]
func (h *AnalyticsHandler) ExportInterviews(c *gin.Context) {
	format, err := services.ParseReportFormat(c.Query("format"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	report, err := h.reportService.ExportInterviews(c.Request.Context(), format)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogInfo(c, "Interview report exported", "format", format, "bytes", len(report.Data))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName))
	c.Data(http.StatusOK, report.ContentType, report.Data)
}
