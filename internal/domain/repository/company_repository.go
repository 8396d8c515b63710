package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
	"github.com/vatbooks/vatbooks-api/pkg/pagination"
)

// CompanyRepository defines the interface for company data operations
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id uuid.UUID) error

	// GetUserCompanies retrieves all companies a user belongs to
	GetUserCompanies(ctx context.Context, userID uuid.UUID, params *pagination.Params) ([]entity.Company, int64, error)

	// SlugExists checks if a slug is already taken
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Membership management
	AddMember(ctx context.Context, membership *entity.CompanyMembership) error
	RemoveMember(ctx context.Context, companyID, userID uuid.UUID) error
	GetMembers(ctx context.Context, companyID uuid.UUID) ([]entity.CompanyMembership, error)
	IsMember(ctx context.Context, companyID, userID uuid.UUID) (bool, error)
	GetMembership(ctx context.Context, companyID, userID uuid.UUID) (*entity.CompanyMembership, error)
	UpdateMemberRole(ctx context.Context, companyID, userID uuid.UUID, role string) error
}
