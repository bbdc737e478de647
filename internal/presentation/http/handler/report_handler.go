package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/bebidas-pos/internal/application/service"
	"github.com/sangkips/bebidas-pos/internal/presentation/http/dto/response"
)

// ReportHandler handles report requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Daily handles the daily report; date defaults to today
func (h *ReportHandler) Daily(c *gin.Context) {
	report, err := h.reportService.GetDailyReport(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, report.Message, report)
}
