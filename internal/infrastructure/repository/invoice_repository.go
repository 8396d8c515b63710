package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
	"github.com/vatbooks/vatbooks-api/internal/domain/enum"
	domainRepo "github.com/vatbooks/vatbooks-api/internal/domain/repository"
	"github.com/vatbooks/vatbooks-api/pkg/pagination"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Customer").
		Preload("Category").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByNumber(ctx context.Context, number string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&invoice, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

// Update replaces the invoice row and its entire line set in one transaction.
// Replacing all lines is simpler than diffing and invoices rarely have more
// than a handful of lines.
func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&entity.InvoiceLine{}).Error; err != nil {
			return err
		}
		for i := range invoice.Lines {
			invoice.Lines[i].ID = uuid.Nil
			invoice.Lines[i].InvoiceID = invoice.ID
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(invoice).Error
	})
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).Delete(&entity.Invoice{}, "id = ?", id).Error
}

func (r *invoiceRepository) List(ctx context.Context, params *pagination.Params, filter *domainRepo.InvoiceFilter) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{}).Scopes(CompanyScope(ctx))

	if filter != nil {
		if filter.Type != nil {
			query = query.Where("type = ?", *filter.Type)
		}
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.CustomerID != nil {
			query = query.Where("customer_id = ?", *filter.CustomerID)
		}
		if filter.CategoryID != nil {
			query = query.Where("category_id = ?", *filter.CategoryID)
		}
		if filter.DateFrom != nil {
			query = query.Where("issue_date >= ?", *filter.DateFrom)
		}
		if filter.DateTo != nil {
			query = query.Where("issue_date <= ?", *filter.DateTo)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	order := "issue_date DESC"
	if clause, ok := pagination.OrderClause(params.Sort, "number", "issue_date", "due_date", "total", "status", "created_at"); ok {
		order = clause
	}

	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Customer").
		Preload("Category").
		Order(order).
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) ListForPeriod(ctx context.Context, start, end time.Time) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).
		Where("issue_date >= ? AND issue_date <= ?", start, end).
		Where("status IN ?", []enum.InvoiceStatus{
			enum.InvoiceStatusSent,
			enum.InvoiceStatusPaid,
			enum.InvoiceStatusOverdue,
		}).
		Order("issue_date ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error {
	return r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).
		Model(&entity.Invoice{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *invoiceRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).
		Model(&entity.Invoice{}).
		Where("status = ? AND due_date < ?", enum.InvoiceStatusSent, now).
		Update("status", enum.InvoiceStatusOverdue)
	return result.RowsAffected, result.Error
}

func (r *invoiceRepository) CountByStatus(ctx context.Context, status enum.InvoiceStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).
		Model(&entity.Invoice{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
