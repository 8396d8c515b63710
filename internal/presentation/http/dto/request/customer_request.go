package request

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone"`
	VATNumber     *string `json:"vat_number"`
	Address       *string `json:"address"`
	AccountHolder *string `json:"account_holder"`
	AccountNumber *string `json:"account_number"`
	BankName      *string `json:"bank_name"`
	Notes         *string `json:"notes"`
}

// UpdateCustomerRequest represents a customer update request. Omitted fields
// are left unchanged.
type UpdateCustomerRequest struct {
	Name          string  `json:"name" binding:"omitempty,min=2,max=255"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone"`
	VATNumber     *string `json:"vat_number"`
	Address       *string `json:"address"`
	AccountHolder *string `json:"account_holder"`
	AccountNumber *string `json:"account_number"`
	BankName      *string `json:"bank_name"`
	Notes         *string `json:"notes"`
}
