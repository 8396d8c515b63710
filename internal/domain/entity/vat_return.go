package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VAT return statuses. A finalized return is locked against recomputation.
const (
	VATReturnStatusOpen      = "open"
	VATReturnStatusFinalized = "finalized"
)

// VATReturn summarizes the VAT position for one reporting period: VAT
// charged on sales minus VAT paid on purchases. NetVATDue is derived;
// a negative value is a refund position, a positive one is payable.
type VATReturn struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	Period       string          `gorm:"size:50;not null" json:"period"` // e.g. "2026-Q1"
	StartDate    time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate      time.Time       `gorm:"type:date;not null" json:"end_date"`
	SalesVAT     decimal.Decimal `gorm:"type:decimal(18,4);not null;column:sales_vat" json:"sales_vat"`
	PurchasesVAT decimal.Decimal `gorm:"type:decimal(18,4);not null;column:purchases_vat" json:"purchases_vat"`
	NetVATDue    decimal.Decimal `gorm:"type:decimal(18,4);not null;column:net_vat_due" json:"net_vat_due"`
	Status       string          `gorm:"size:50;default:'open'" json:"status"`
	FinalizedAt  *time.Time      `json:"finalized_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new VAT return
func (v *VATReturn) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the VATReturn model
func (VATReturn) TableName() string {
	return "vat_returns"
}

// SetVAT stores the two VAT sides and rederives NetVATDue
func (v *VATReturn) SetVAT(salesVAT, purchasesVAT decimal.Decimal) {
	v.SalesVAT = salesVAT
	v.PurchasesVAT = purchasesVAT
	v.NetVATDue = salesVAT.Sub(purchasesVAT)
}

// IsRefund reports whether the period closes in a refund position
func (v *VATReturn) IsRefund() bool {
	return v.NetVATDue.IsNegative()
}

// IsFinalized reports whether the return is locked
func (v *VATReturn) IsFinalized() bool {
	return v.Status == VATReturnStatusFinalized
}
