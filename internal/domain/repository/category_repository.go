package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
	"github.com/vatbooks/vatbooks-api/pkg/pagination"
)

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.Params, search string) ([]entity.Category, int64, error)
	// ListAll returns every category of the company, for tree rendering
	// and report aggregation.
	ListAll(ctx context.Context) ([]entity.Category, error)
	// HasChildren reports whether any category points at this one as parent
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)
	// CountInvoices returns the number of invoices tagged with the category
	CountInvoices(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
