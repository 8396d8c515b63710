package request

// CreateVATReturnRequest represents a VAT return creation request. Exactly
// one of quarter or month selects the period within the year.
type CreateVATReturnRequest struct {
	Year    int  `json:"year" binding:"required,min=2000,max=2100"`
	Quarter *int `json:"quarter"`
	Month   *int `json:"month"`
}
