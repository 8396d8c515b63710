package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
	"github.com/vatbooks/vatbooks-api/internal/domain/enum"
	"github.com/vatbooks/vatbooks-api/internal/domain/repository"
	infraRepo "github.com/vatbooks/vatbooks-api/internal/infrastructure/repository"
	"github.com/vatbooks/vatbooks-api/pkg/apperror"
	"github.com/vatbooks/vatbooks-api/pkg/pagination"
	"github.com/vatbooks/vatbooks-api/pkg/utils"
)

// CategoryService handles category-related operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	Name     string
	Type     enum.CategoryType
	ParentID *uuid.UUID
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}

	slug := utils.Slugify(input.Name)

	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category with this name already exists")
	}

	if input.ParentID != nil {
		parent, err := s.categoryRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NewNotFoundError("Parent category")
		}
		if parent.Type != input.Type {
			return nil, apperror.NewBadRequestError("Category type must match its parent")
		}
	}

	category := &entity.Category{
		CompanyID: companyID,
		ParentID:  input.ParentID,
		Name:      input.Name,
		Slug:      slug,
		Type:      input.Type,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories lists categories of the current company
func (s *CategoryService) ListCategories(ctx context.Context, params *pagination.Params, search string) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}

// GetCategoryTree returns every category of the company flattened depth-first
// with depth annotations, for indented pickers.
func (s *CategoryService) GetCategoryTree(ctx context.Context) ([]entity.FlatCategory, error) {
	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return entity.FlattenTree(categories), nil
}

// UpdateCategoryInput represents the update category input
type UpdateCategoryInput struct {
	ID       uuid.UUID
	Name     string
	ParentID *uuid.UUID
}

// UpdateCategory updates a category
func (s *CategoryService) UpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	if input.Name != "" && input.Name != category.Name {
		newSlug := utils.Slugify(input.Name)
		if newSlug != category.Slug {
			existing, err := s.categoryRepo.GetBySlug(ctx, newSlug)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != category.ID {
				return nil, apperror.NewConflictError("Category with this name already exists")
			}
			category.Slug = newSlug
		}
		category.Name = input.Name
	}

	if input.ParentID != nil {
		if *input.ParentID == category.ID {
			return nil, apperror.NewBadRequestError("Category cannot be its own parent")
		}
		parent, err := s.categoryRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, apperror.NewNotFoundError("Parent category")
		}
		if parent.Type != category.Type {
			return nil, apperror.NewBadRequestError("Category type must match its parent")
		}
		if err := s.ensureNotDescendant(ctx, category.ID, parent); err != nil {
			return nil, err
		}
		category.ParentID = input.ParentID
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// ensureNotDescendant walks the ancestor chain of a proposed parent and
// refuses the move when the category itself appears in it, so re-parenting
// can never close a cycle in the tree.
func (s *CategoryService) ensureNotDescendant(ctx context.Context, id uuid.UUID, parent *entity.Category) error {
	seen := make(map[uuid.UUID]bool)
	for parent != nil {
		if parent.ID == id {
			return apperror.NewBadRequestError("Category cannot be moved under one of its own subcategories")
		}
		if seen[parent.ID] || parent.ParentID == nil {
			return nil
		}
		seen[parent.ID] = true
		next, err := s.categoryRepo.GetByID(ctx, *parent.ParentID)
		if err != nil {
			return err
		}
		parent = next
	}
	return nil
}

// DeleteCategory deletes a category. Categories with children or tagged
// invoices are refused so no invoice silently loses its tag.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}

	hasChildren, err := s.categoryRepo.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return apperror.NewConflictError("Category has subcategories and cannot be deleted")
	}

	invoiceCount, err := s.categoryRepo.CountInvoices(ctx, id)
	if err != nil {
		return err
	}
	if invoiceCount > 0 {
		return apperror.NewConflictError("Category is used by invoices and cannot be deleted")
	}

	return s.categoryRepo.Delete(ctx, id)
}
