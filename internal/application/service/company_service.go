package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
	"github.com/vatbooks/vatbooks-api/internal/domain/enum"
	"github.com/vatbooks/vatbooks-api/internal/domain/repository"
	"github.com/vatbooks/vatbooks-api/pkg/apperror"
	"github.com/vatbooks/vatbooks-api/pkg/pagination"
	"github.com/vatbooks/vatbooks-api/pkg/utils"
)

// CompanyService handles company-related operations
type CompanyService struct {
	companyRepo  repository.CompanyRepository
	categoryRepo repository.CategoryRepository
}

// NewCompanyService creates a new company service
func NewCompanyService(companyRepo repository.CompanyRepository, categoryRepo repository.CategoryRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo, categoryRepo: categoryRepo}
}

// DefaultCompanySettings returns the settings a new company starts with
func DefaultCompanySettings() entity.CompanySettings {
	return entity.CompanySettings{
		Currency:           "EUR",
		DefaultVATRate:     "21",
		VATPeriodQuarterly: true,
		InvoicePrefix:      "INV",
	}
}

// CreateCompanyInput represents input for creating a company
type CreateCompanyInput struct {
	Name      string
	VATNumber *string
	Address   *string
	OwnerID   uuid.UUID
	Settings  *entity.CompanySettings
}

// CreateCompany creates a new company with its owner membership and a
// starter category set.
func (s *CompanyService) CreateCompany(ctx context.Context, input *CreateCompanyInput) (*entity.Company, error) {
	slug := utils.Slugify(input.Name)
	exists, err := s.companyRepo.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewConflictError("Company with this name already exists")
	}

	settings := DefaultCompanySettings()
	if input.Settings != nil {
		settings = *input.Settings
	}

	company := &entity.Company{
		Name:      input.Name,
		Slug:      slug,
		VATNumber: input.VATNumber,
		Address:   input.Address,
		OwnerID:   input.OwnerID,
		Settings:  settings,
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	membership := &entity.CompanyMembership{
		CompanyID: company.ID,
		UserID:    input.OwnerID,
		Role:      "owner",
	}
	if err := s.companyRepo.AddMember(ctx, membership); err != nil {
		// Without the owner membership nobody can access the company, so
		// the company row must not survive either.
		_ = s.companyRepo.Delete(ctx, company.ID)
		return nil, err
	}

	s.seedCategories(ctx, company)

	return company, nil
}

// seedCategories creates the starter income/expense categories every new
// company gets. Failures are non-fatal, the user can create categories later.
func (s *CompanyService) seedCategories(ctx context.Context, company *entity.Company) {
	defaults := []struct {
		name string
		typ  enum.CategoryType
	}{
		{"Sales", enum.CategoryTypeIncome},
		{"Services", enum.CategoryTypeIncome},
		{"Office", enum.CategoryTypeExpense},
		{"Travel", enum.CategoryTypeExpense},
		{"Software", enum.CategoryTypeExpense},
	}
	for _, d := range defaults {
		_ = s.categoryRepo.Create(ctx, &entity.Category{
			CompanyID: company.ID,
			Name:      d.name,
			Slug:      company.Slug + "-" + utils.Slugify(d.name),
			Type:      d.typ,
		})
	}
}

// GetCompany retrieves a company by ID
func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}
	return company, nil
}

// GetUserCompanies retrieves the companies a user belongs to
func (s *CompanyService) GetUserCompanies(ctx context.Context, userID uuid.UUID, params *pagination.Params) (*pagination.PaginatedResult[entity.Company], error) {
	companies, total, err := s.companyRepo.GetUserCompanies(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(companies, pag), nil
}

// UpdateCompanyInput represents input for updating a company
type UpdateCompanyInput struct {
	ID        uuid.UUID
	Name      string
	VATNumber *string
	Address   *string
	Settings  *entity.CompanySettings
}

// UpdateCompany updates a company
func (s *CompanyService) UpdateCompany(ctx context.Context, input *UpdateCompanyInput) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}

	if input.Name != "" {
		company.Name = input.Name
	}
	if input.VATNumber != nil {
		company.VATNumber = input.VATNumber
	}
	if input.Address != nil {
		company.Address = input.Address
	}
	if input.Settings != nil {
		company.Settings = *input.Settings
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}

// RequireMembership verifies the user belongs to the company
func (s *CompanyService) RequireMembership(ctx context.Context, companyID, userID uuid.UUID) error {
	isMember, err := s.companyRepo.IsMember(ctx, companyID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return apperror.ErrForbidden
	}
	return nil
}

// AddMemberInput represents input for adding a user to a company
type AddMemberInput struct {
	CompanyID uuid.UUID
	UserID    uuid.UUID
	Role      string
}

// AddMember adds a user to a company
func (s *CompanyService) AddMember(ctx context.Context, input *AddMemberInput) error {
	isMember, _ := s.companyRepo.IsMember(ctx, input.CompanyID, input.UserID)
	if isMember {
		return apperror.NewConflictError("User is already a member of this company")
	}

	role := input.Role
	if role == "" {
		role = "member"
	}

	membership := &entity.CompanyMembership{
		CompanyID: input.CompanyID,
		UserID:    input.UserID,
		Role:      role,
	}

	return s.companyRepo.AddMember(ctx, membership)
}

// RemoveMember removes a user from a company. The owner cannot be removed.
func (s *CompanyService) RemoveMember(ctx context.Context, companyID, userID uuid.UUID) error {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return apperror.NewNotFoundError("Company")
	}
	if company.OwnerID == userID {
		return apperror.NewBadRequestError("The company owner cannot be removed")
	}
	return s.companyRepo.RemoveMember(ctx, companyID, userID)
}

// GetMembers retrieves all members of a company
func (s *CompanyService) GetMembers(ctx context.Context, companyID uuid.UUID) ([]entity.CompanyMembership, error) {
	members, err := s.companyRepo.GetMembers(ctx, companyID)
	if err != nil {
		return nil, err
	}

	for i := range members {
		members[i].PopulateUserDetails()
	}

	return members, nil
}

// UpdateMemberRole updates a member's role in a company
func (s *CompanyService) UpdateMemberRole(ctx context.Context, companyID, userID uuid.UUID, role string) error {
	membership, err := s.companyRepo.GetMembership(ctx, companyID, userID)
	if err != nil {
		return err
	}
	if membership == nil {
		return apperror.NewNotFoundError("Membership")
	}
	return s.companyRepo.UpdateMemberRole(ctx, companyID, userID, role)
}
