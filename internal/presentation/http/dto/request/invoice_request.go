package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vatbooks/vatbooks-api/internal/domain/enum"
)

// InvoiceLineRequest represents one invoice line in a create or update request
type InvoiceLineRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
}

// CreateInvoiceRequest represents an invoice creation request
type CreateInvoiceRequest struct {
	Type       enum.InvoiceType     `json:"type"`
	CustomerID *uuid.UUID           `json:"customer_id"`
	CategoryID *uuid.UUID           `json:"category_id"`
	Number     string               `json:"number"`
	IssueDate  time.Time            `json:"issue_date" binding:"required"`
	DueDate    time.Time            `json:"due_date" binding:"required"`
	Notes      *string              `json:"notes"`
	Lines      []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest represents an invoice update request. When lines are
// present they replace the existing set entirely.
type UpdateInvoiceRequest struct {
	CustomerID *uuid.UUID           `json:"customer_id"`
	CategoryID *uuid.UUID           `json:"category_id"`
	IssueDate  *time.Time           `json:"issue_date"`
	DueDate    *time.Time           `json:"due_date"`
	Notes      *string              `json:"notes"`
	Lines      []InvoiceLineRequest `json:"lines" binding:"omitempty,min=1,dive"`
}

// UpdateInvoiceStatusRequest represents a status transition request
type UpdateInvoiceStatusRequest struct {
	Status enum.InvoiceStatus `json:"status"`
}
