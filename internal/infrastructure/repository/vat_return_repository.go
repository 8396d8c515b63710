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

type vatReturnRepository struct {
	db *gorm.DB
}

// NewVATReturnRepository creates a new VAT return repository
func NewVATReturnRepository(db *gorm.DB) domainRepo.VATReturnRepository {
	return &vatReturnRepository{db: db}
}

func (r *vatReturnRepository) Create(ctx context.Context, vatReturn *entity.VATReturn) error {
	return r.db.WithContext(ctx).Create(vatReturn).Error
}

func (r *vatReturnRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.VATReturn, error) {
	var vatReturn entity.VATReturn
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).First(&vatReturn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &vatReturn, err
}

func (r *vatReturnRepository) GetByPeriod(ctx context.Context, period string) (*entity.VATReturn, error) {
	var vatReturn entity.VATReturn
	err := r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).First(&vatReturn, "period = ?", period).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &vatReturn, err
}

func (r *vatReturnRepository) Update(ctx context.Context, vatReturn *entity.VATReturn) error {
	return r.db.WithContext(ctx).Save(vatReturn).Error
}

func (r *vatReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(CompanyScope(ctx)).Delete(&entity.VATReturn{}, "id = ?", id).Error
}

func (r *vatReturnRepository) List(ctx context.Context, params *pagination.Params) ([]entity.VATReturn, int64, error) {
	var returns []entity.VATReturn
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.VATReturn{}).Scopes(CompanyScope(ctx))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	order := "start_date DESC"
	if clause, ok := pagination.OrderClause(params.Sort, "period", "start_date", "net_vat_due", "status"); ok {
		order = clause
	}

	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order(order).
		Find(&returns).Error

	return returns, total, err
}
