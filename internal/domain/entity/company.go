package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company represents a business whose books are kept in the system. Every
// customer, category, invoice and VAT return belongs to exactly one company.
type Company struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Slug      string          `gorm:"size:255;unique;not null" json:"slug"`
	VATNumber *string         `gorm:"size:50" json:"vat_number,omitempty"`
	Address   *string         `gorm:"type:text" json:"address,omitempty"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	Settings  CompanySettings `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Owner   User                `gorm:"foreignKey:OwnerID" json:"-"`
	Members []CompanyMembership `gorm:"foreignKey:CompanyID" json:"-"`
}

// CompanySettings holds per-company accounting preferences.
type CompanySettings struct {
	Currency           string `json:"currency"`             // ISO 4217 code, e.g. "EUR"
	DefaultVATRate     string `json:"default_vat_rate"`     // pre-filled on new invoice lines
	VATPeriodQuarterly bool   `json:"vat_period_quarterly"` // quarterly vs monthly VAT returns
	InvoicePrefix      string `json:"invoice_prefix"`       // e.g. "INV"
}

// BeforeCreate generates a UUID before creating a new company
func (co *Company) BeforeCreate(tx *gorm.DB) error {
	if co.ID == uuid.Nil {
		co.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Company model
func (Company) TableName() string {
	return "companies"
}

// MemberUser represents a subset of user fields for membership responses
type MemberUser struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

// CompanyMembership represents a user's membership in a company
type CompanyMembership struct {
	CompanyID uuid.UUID `gorm:"type:uuid;primaryKey" json:"company_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role      string    `gorm:"size:50;default:'member'" json:"role"` // owner, admin, member
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Company Company `gorm:"foreignKey:CompanyID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`

	// Computed field for JSON response
	MemberUser *MemberUser `gorm:"-" json:"user,omitempty"`
}

// PopulateUserDetails populates the MemberUser field from the User relationship
func (cm *CompanyMembership) PopulateUserDetails() {
	if cm.User.ID != uuid.Nil {
		cm.MemberUser = &MemberUser{
			ID:        cm.User.ID,
			FirstName: cm.User.FirstName,
			LastName:  cm.User.LastName,
			Email:     cm.User.Email,
		}
	}
}

// TableName returns the table name for the CompanyMembership model
func (CompanyMembership) TableName() string {
	return "company_memberships"
}
