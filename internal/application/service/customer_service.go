package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
	"github.com/vatbooks/vatbooks-api/internal/domain/repository"
	infraRepo "github.com/vatbooks/vatbooks-api/internal/infrastructure/repository"
	"github.com/vatbooks/vatbooks-api/pkg/apperror"
	"github.com/vatbooks/vatbooks-api/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name          string
	Email         *string
	Phone         *string
	VATNumber     *string
	Address       *string
	AccountHolder *string
	AccountNumber *string
	BankName      *string
	Notes         *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}

	if input.Email != nil && *input.Email != "" {
		existing, err := s.customerRepo.GetByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Customer with this email already exists")
		}
	}

	customer := &entity.Customer{
		CompanyID:     companyID,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		VATNumber:     input.VATNumber,
		Address:       input.Address,
		AccountHolder: input.AccountHolder,
		AccountNumber: input.AccountNumber,
		BankName:      input.BankName,
		Notes:         input.Notes,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers of the current company
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.Params, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID            uuid.UUID
	Name          string
	Email         *string
	Phone         *string
	VATNumber     *string
	Address       *string
	AccountHolder *string
	AccountNumber *string
	BankName      *string
	Notes         *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != "" {
		customer.Name = input.Name
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.VATNumber != nil {
		customer.VATNumber = input.VATNumber
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.AccountHolder != nil {
		customer.AccountHolder = input.AccountHolder
	}
	if input.AccountNumber != nil {
		customer.AccountNumber = input.AccountNumber
	}
	if input.BankName != nil {
		customer.BankName = input.BankName
	}
	if input.Notes != nil {
		customer.Notes = input.Notes
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer deletes a customer. Customers referenced by invoices are
// kept so historical documents stay resolvable.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}

	invoiceCount, err := s.customerRepo.CountInvoices(ctx, id)
	if err != nil {
		return err
	}
	if invoiceCount > 0 {
		return apperror.NewConflictError("Customer has invoices and cannot be deleted")
	}

	return s.customerRepo.Delete(ctx, id)
}
