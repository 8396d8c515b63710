package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/application/service"
	"github.com/vatbooks/vatbooks-api/internal/presentation/http/dto/request"
	"github.com/vatbooks/vatbooks-api/internal/presentation/http/dto/response"
)

// VATReturnHandler handles VAT return HTTP requests
type VATReturnHandler struct {
	vatReturnService *service.VATReturnService
}

// NewVATReturnHandler creates a new VAT return handler
func NewVATReturnHandler(vatReturnService *service.VATReturnService) *VATReturnHandler {
	return &VATReturnHandler{vatReturnService: vatReturnService}
}

// Create handles computing a VAT return for a period
func (h *VATReturnHandler) Create(c *gin.Context) {
	var req request.CreateVATReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	vatReturn, err := h.vatReturnService.CreateVATReturn(c.Request.Context(), &service.CreateVATReturnInput{
		Year:    req.Year,
		Quarter: req.Quarter,
		Month:   req.Month,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "VAT return computed successfully", vatReturn)
}

// List handles listing VAT returns of the active company
func (h *VATReturnHandler) List(c *gin.Context) {
	params := listParams(c)

	result, err := h.vatReturnService.ListVATReturns(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "VAT returns retrieved successfully", result)
}

// Get handles retrieving a single VAT return
func (h *VATReturnHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid VAT return ID")
		return
	}

	vatReturn, err := h.vatReturnService.GetVATReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "VAT return retrieved successfully", vatReturn)
}

// Recompute handles refreshing an open VAT return from the current invoices
func (h *VATReturnHandler) Recompute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid VAT return ID")
		return
	}

	vatReturn, err := h.vatReturnService.RecomputeVATReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "VAT return recomputed successfully", vatReturn)
}

// Finalize handles locking a VAT return against further changes
func (h *VATReturnHandler) Finalize(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid VAT return ID")
		return
	}

	vatReturn, err := h.vatReturnService.FinalizeVATReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "VAT return finalized successfully", vatReturn)
}

// Delete handles deleting an open VAT return
func (h *VATReturnHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid VAT return ID")
		return
	}

	if err := h.vatReturnService.DeleteVATReturn(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "VAT return deleted successfully", nil)
}
