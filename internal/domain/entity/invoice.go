package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vatbooks/vatbooks-api/internal/domain/enum"
	"github.com/vatbooks/vatbooks-api/pkg/money"
	"gorm.io/gorm"
)

// Invoice is a receivable or payable document made of ordered lines. The
// Subtotal/VATTotal/Total columns are derived: any change to the lines goes
// through Recalculate, they are never written independently.
type Invoice struct {
	ID         uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"company_id"`
	CustomerID *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CategoryID *uuid.UUID         `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Number     string             `gorm:"size:100;unique;not null" json:"number"`
	Type       enum.InvoiceType   `gorm:"default:0;index" json:"type"`
	Status     enum.InvoiceStatus `gorm:"default:0;index" json:"status"`
	IssueDate  time.Time          `gorm:"type:date;not null;index" json:"issue_date"`
	DueDate    time.Time          `gorm:"type:date;not null" json:"due_date"`
	Subtotal   decimal.Decimal    `gorm:"type:decimal(18,4);not null" json:"subtotal"`
	VATTotal   decimal.Decimal    `gorm:"type:decimal(18,4);not null;column:vat_total" json:"vat_total"`
	Total      decimal.Decimal    `gorm:"type:decimal(18,4);not null" json:"total"`
	Notes      *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	DeletedAt  gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Company  Company       `gorm:"foreignKey:CompanyID" json:"-"`
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Category *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Lines    []InvoiceLine `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (inv *Invoice) BeforeCreate(tx *gorm.DB) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceLine is a single line of an invoice. Position preserves the order
// the user entered lines in; order matters for display only, totals are
// order-independent.
type InvoiceLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Position    int             `gorm:"not null;default:0" json:"position"`
	Description string          `gorm:"size:500;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	VATRate     decimal.Decimal `gorm:"type:decimal(5,2);not null;column:vat_rate" json:"vat_rate"`
	NetAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"net_amount"`
	VATAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;column:vat_amount" json:"vat_amount"`
	GrossAmount decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"gross_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice line
func (l *InvoiceLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceLine model
func (InvoiceLine) TableName() string {
	return "invoice_lines"
}

// Recalculate recomputes every derived amount from the line inputs. Line
// amounts are kept exact; subtotal and VAT total are summed exactly and
// rounded to the minor unit once, and the grand total is defined as their
// sum so the total == subtotal + vat_total invariant holds to the cent.
func (inv *Invoice) Recalculate() error {
	lines := make([]money.Line, len(inv.Lines))
	for i, l := range inv.Lines {
		lines[i] = money.Line{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			VATRate:     l.VATRate,
		}
	}

	totals, err := money.AggregateLines(lines)
	if err != nil {
		return err
	}

	for i := range inv.Lines {
		amounts, err := money.Line{
			Quantity:  inv.Lines[i].Quantity,
			UnitPrice: inv.Lines[i].UnitPrice,
			VATRate:   inv.Lines[i].VATRate,
		}.Amounts()
		if err != nil {
			return err
		}
		inv.Lines[i].Position = i
		inv.Lines[i].NetAmount = amounts.Net
		inv.Lines[i].VATAmount = amounts.VAT
		inv.Lines[i].GrossAmount = amounts.Gross
	}

	inv.Subtotal = money.RoundMinor(totals.Subtotal)
	inv.VATTotal = money.RoundMinor(totals.VATTotal)
	inv.Total = inv.Subtotal.Add(inv.VATTotal)
	return nil
}

// IsOverdue reports whether an unpaid, issued invoice has passed its due date
func (inv *Invoice) IsOverdue(now time.Time) bool {
	if inv.Status != enum.InvoiceStatusSent && inv.Status != enum.InvoiceStatusOverdue {
		return false
	}
	return now.After(inv.DueDate)
}
