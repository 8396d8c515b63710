package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
	"github.com/vatbooks/vatbooks-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations.
// All queries are scoped to the company carried in the context.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns a page of customers matching the search term, honoring
	// the descriptor's sort expression.
	List(ctx context.Context, params *pagination.Params, search string) ([]entity.Customer, int64, error)
	// CountInvoices returns the number of invoices referencing the customer
	CountInvoices(ctx context.Context, customerID uuid.UUID) (int64, error)
}
