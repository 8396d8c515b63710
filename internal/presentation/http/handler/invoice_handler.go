package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/application/service"
	"github.com/vatbooks/vatbooks-api/internal/domain/enum"
	"github.com/vatbooks/vatbooks-api/internal/domain/repository"
	"github.com/vatbooks/vatbooks-api/internal/presentation/http/dto/request"
	"github.com/vatbooks/vatbooks-api/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func parseInvoiceType(value string) (enum.InvoiceType, bool) {
	switch value {
	case "receivable", "Receivable":
		return enum.InvoiceTypeReceivable, true
	case "payable", "Payable":
		return enum.InvoiceTypePayable, true
	}
	return enum.InvoiceTypeReceivable, false
}

func parseInvoiceStatus(value string) (enum.InvoiceStatus, bool) {
	switch value {
	case "draft", "Draft":
		return enum.InvoiceStatusDraft, true
	case "sent", "Sent":
		return enum.InvoiceStatusSent, true
	case "paid", "Paid":
		return enum.InvoiceStatusPaid, true
	case "overdue", "Overdue":
		return enum.InvoiceStatusOverdue, true
	case "void", "Void":
		return enum.InvoiceStatusVoid, true
	}
	return enum.InvoiceStatusDraft, false
}

// invoiceFilter builds the list filter from query parameters
func invoiceFilter(c *gin.Context) (*repository.InvoiceFilter, error) {
	filter := &repository.InvoiceFilter{}

	if v := c.Query("type"); v != "" {
		typ, ok := parseInvoiceType(v)
		if !ok {
			return nil, errInvalidQuery("type")
		}
		filter.Type = &typ
	}
	if v := c.Query("status"); v != "" {
		status, ok := parseInvoiceStatus(v)
		if !ok {
			return nil, errInvalidQuery("status")
		}
		filter.Status = &status
	}
	if v := c.Query("customer_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, errInvalidQuery("customer_id")
		}
		filter.CustomerID = &id
	}
	if v := c.Query("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, errInvalidQuery("category_id")
		}
		filter.CategoryID = &id
	}
	if v := c.Query("from"); v != "" {
		from, err := parseDate(v)
		if err != nil {
			return nil, errInvalidQuery("from")
		}
		filter.DateFrom = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := parseDate(v)
		if err != nil {
			return nil, errInvalidQuery("to")
		}
		filter.DateTo = &to
	}

	return filter, nil
}

func errInvalidQuery(param string) error {
	return fmt.Errorf("invalid query parameter: %s", param)
}

// List handles listing invoices of the active company
func (h *InvoiceHandler) List(c *gin.Context) {
	filter, err := invoiceFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	params := listParams(c)
	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

func toLineInputs(lines []request.InvoiceLineRequest) []service.InvoiceLineInput {
	inputs := make([]service.InvoiceLineInput, len(lines))
	for i, l := range lines {
		inputs[i] = service.InvoiceLineInput{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			VATRate:     l.VATRate,
		}
	}
	return inputs
}

// Create handles creating an invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		Type:       req.Type,
		CustomerID: req.CustomerID,
		CategoryID: req.CategoryID,
		Number:     req.Number,
		IssueDate:  req.IssueDate,
		DueDate:    req.DueDate,
		Notes:      req.Notes,
		Lines:      toLineInputs(req.Lines),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles retrieving a single invoice with its lines
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Update handles updating an invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateInvoiceInput{
		ID:         id,
		CustomerID: req.CustomerID,
		CategoryID: req.CategoryID,
		IssueDate:  req.IssueDate,
		DueDate:    req.DueDate,
		Notes:      req.Notes,
	}
	if req.Lines != nil {
		input.Lines = toLineInputs(req.Lines)
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// UpdateStatus handles moving an invoice through its lifecycle
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice status updated successfully", invoice)
}

// Delete handles deleting a draft invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice deleted successfully", nil)
}

// Overdue handles sweeping sent invoices past their due date and returns the
// overdue list.
func (h *InvoiceHandler) Overdue(c *gin.Context) {
	result, err := h.invoiceService.SweepOverdue(c.Request.Context(), time.Now().UTC())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Overdue invoices retrieved successfully", result)
}
