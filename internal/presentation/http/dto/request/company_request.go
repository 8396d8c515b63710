package request

import (
	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
)

// CreateCompanyRequest represents a company creation request
type CreateCompanyRequest struct {
	Name      string                  `json:"name" binding:"required,min=2,max=255"`
	VATNumber *string                 `json:"vat_number"`
	Address   *string                 `json:"address"`
	Settings  *entity.CompanySettings `json:"settings"`
}

// UpdateCompanyRequest represents a company update request
type UpdateCompanyRequest struct {
	Name      string                  `json:"name" binding:"omitempty,min=2,max=255"`
	VATNumber *string                 `json:"vat_number"`
	Address   *string                 `json:"address"`
	Settings  *entity.CompanySettings `json:"settings"`
}

// AddMemberRequest represents a request to add a user to a company
type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Role   string    `json:"role" binding:"omitempty,oneof=admin member"`
}

// UpdateMemberRoleRequest represents a member role change request
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin member"`
}
