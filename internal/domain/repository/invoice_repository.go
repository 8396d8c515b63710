package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
	"github.com/vatbooks/vatbooks-api/internal/domain/enum"
	"github.com/vatbooks/vatbooks-api/pkg/pagination"
)

// InvoiceFilter narrows invoice listings beyond the generic query parameters
type InvoiceFilter struct {
	Type       *enum.InvoiceType
	Status     *enum.InvoiceStatus
	CustomerID *uuid.UUID
	CategoryID *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
}

// InvoiceRepository defines the interface for invoice data operations.
// Lines are loaded and persisted together with their invoice.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*entity.Invoice, error)
	// Update replaces the invoice and its full line set
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.Params, filter *InvoiceFilter) ([]entity.Invoice, int64, error)
	// ListForPeriod returns reportable invoices whose issue date falls in
	// [start, end], without pagination. Draft and void invoices are skipped.
	ListForPeriod(ctx context.Context, start, end time.Time) ([]entity.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error
	// MarkOverdue flips sent invoices whose due date passed to overdue and
	// returns how many rows changed.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	CountByStatus(ctx context.Context, status enum.InvoiceStatus) (int64, error)
}
