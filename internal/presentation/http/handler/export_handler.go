package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/application/service"
	"github.com/vatbooks/vatbooks-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles spreadsheet export HTTP requests
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Invoices handles exporting the invoice register as an xlsx workbook. The
// same query filters as the invoice list apply.
func (h *ExportHandler) Invoices(c *gin.Context) {
	filter, err := invoiceFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	file, err := h.exportService.ExportInvoices(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("invoices-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", xlsxContentType)

	if err := file.Write(c.Writer); err != nil {
		response.InternalServerError(c, "Failed to write export")
		return
	}
}

// VATReturn handles exporting a single VAT return as an xlsx workbook with a
// summary sheet and the underlying invoices.
func (h *ExportHandler) VATReturn(c *gin.Context) {
	id, err := uuid.Parse(strings.TrimSuffix(c.Param("id"), ".xlsx"))
	if err != nil {
		response.BadRequest(c, "Invalid VAT return ID")
		return
	}

	file, err := h.exportService.ExportVATReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("vat-return-%s.xlsx", id)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", xlsxContentType)

	if err := file.Write(c.Writer); err != nil {
		response.InternalServerError(c, "Failed to write export")
		return
	}
}
