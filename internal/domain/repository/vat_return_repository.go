package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
	"github.com/vatbooks/vatbooks-api/pkg/pagination"
)

// VATReturnRepository defines the interface for VAT return data operations
type VATReturnRepository interface {
	Create(ctx context.Context, vatReturn *entity.VATReturn) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.VATReturn, error)
	// GetByPeriod finds the return for a period label such as "2026-Q1"
	GetByPeriod(ctx context.Context, period string) (*entity.VATReturn, error)
	Update(ctx context.Context, vatReturn *entity.VATReturn) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.Params) ([]entity.VATReturn, int64, error)
}
