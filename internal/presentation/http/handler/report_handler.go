package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/vatbooks/vatbooks-api/internal/application/service"
	"github.com/vatbooks/vatbooks-api/internal/presentation/http/dto/response"
)

// ReportHandler handles reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ProfitLoss handles the profit and loss report
func (h *ReportHandler) ProfitLoss(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		response.BadRequest(c, "Invalid date range")
		return
	}

	report, err := h.reportService.ProfitLoss(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profit and loss report retrieved successfully", report)
}

// CashFlow handles the cash flow report
func (h *ReportHandler) CashFlow(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		response.BadRequest(c, "Invalid date range")
		return
	}

	report, err := h.reportService.CashFlow(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash flow report retrieved successfully", report)
}

// Categories handles the per-category breakdown report
func (h *ReportHandler) Categories(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		response.BadRequest(c, "Invalid date range")
		return
	}

	totals, err := h.reportService.CategoryBreakdown(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category breakdown retrieved successfully", totals)
}
