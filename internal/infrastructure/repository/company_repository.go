package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
	domainRepo "github.com/vatbooks/vatbooks-api/internal/domain/repository"
	"github.com/vatbooks/vatbooks-api/pkg/pagination"
	"gorm.io/gorm"
)

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) domainRepo.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var company entity.Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &company, err
}

func (r *companyRepository) GetBySlug(ctx context.Context, slug string) (*entity.Company, error) {
	var company entity.Company
	err := r.db.WithContext(ctx).First(&company, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &company, err
}

func (r *companyRepository) Update(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Company{}, "id = ?", id).Error
}

func (r *companyRepository) GetUserCompanies(ctx context.Context, userID uuid.UUID, params *pagination.Params) ([]entity.Company, int64, error) {
	var companies []entity.Company
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Company{}).
		Joins("JOIN company_memberships ON company_memberships.company_id = companies.id").
		Where("company_memberships.user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("companies.name ASC").
		Find(&companies).Error

	return companies, total, err
}

func (r *companyRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Company{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *companyRepository) AddMember(ctx context.Context, membership *entity.CompanyMembership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *companyRepository) RemoveMember(ctx context.Context, companyID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&entity.CompanyMembership{}, "company_id = ? AND user_id = ?", companyID, userID).Error
}

func (r *companyRepository) GetMembers(ctx context.Context, companyID uuid.UUID) ([]entity.CompanyMembership, error) {
	var members []entity.CompanyMembership
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("company_id = ?", companyID).
		Find(&members).Error
	return members, err
}

func (r *companyRepository) IsMember(ctx context.Context, companyID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.CompanyMembership{}).
		Where("company_id = ? AND user_id = ?", companyID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *companyRepository) GetMembership(ctx context.Context, companyID, userID uuid.UUID) (*entity.CompanyMembership, error) {
	var membership entity.CompanyMembership
	err := r.db.WithContext(ctx).
		First(&membership, "company_id = ? AND user_id = ?", companyID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &membership, err
}

func (r *companyRepository) UpdateMemberRole(ctx context.Context, companyID, userID uuid.UUID, role string) error {
	return r.db.WithContext(ctx).
		Model(&entity.CompanyMembership{}).
		Where("company_id = ? AND user_id = ?", companyID, userID).
		Update("role", role).Error
}
