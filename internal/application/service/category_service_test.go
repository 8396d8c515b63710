package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/domain/entity"
	"github.com/vatbooks/vatbooks-api/internal/domain/enum"
	"github.com/vatbooks/vatbooks-api/pkg/pagination"
)

// fakeCategoryRepo serves categories from memory, keyed by ID.
type fakeCategoryRepo struct {
	byID map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: make(map[uuid.UUID]*entity.Category)}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return r.byID[id], nil
}

func (r *fakeCategoryRepo) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	for _, c := range r.byID {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeCategoryRepo) List(ctx context.Context, params *pagination.Params, search string) ([]entity.Category, int64, error) {
	return nil, 0, nil
}

func (r *fakeCategoryRepo) ListAll(ctx context.Context) ([]entity.Category, error) {
	out := make([]entity.Category, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	for _, c := range r.byID {
		if c.ParentID != nil && *c.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) CountInvoices(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	return 0, nil
}

func expenseCategory(name, slug string, parentID *uuid.UUID) *entity.Category {
	return &entity.Category{
		ID:       uuid.New(),
		Name:     name,
		Slug:     slug,
		Type:     enum.CategoryTypeExpense,
		ParentID: parentID,
	}
}

func TestUpdateCategoryRejectsDescendantParent(t *testing.T) {
	root := expenseCategory("Office", "office", nil)
	child := expenseCategory("Supplies", "supplies", &root.ID)
	grandchild := expenseCategory("Paper", "paper", &child.ID)

	repo := newFakeCategoryRepo()
	for _, c := range []*entity.Category{root, child, grandchild} {
		repo.byID[c.ID] = c
	}
	svc := NewCategoryService(repo)

	_, err := svc.UpdateCategory(context.Background(), &UpdateCategoryInput{
		ID:       root.ID,
		ParentID: &grandchild.ID,
	})
	if err == nil {
		t.Fatal("moving a category under its own descendant must be rejected")
	}
	if root.ParentID != nil {
		t.Fatal("a rejected move must leave the category unparented")
	}
}

func TestUpdateCategoryRejectsSelfParent(t *testing.T) {
	cat := expenseCategory("Office", "office", nil)
	repo := newFakeCategoryRepo()
	repo.byID[cat.ID] = cat
	svc := NewCategoryService(repo)

	_, err := svc.UpdateCategory(context.Background(), &UpdateCategoryInput{
		ID:       cat.ID,
		ParentID: &cat.ID,
	})
	if err == nil {
		t.Fatal("a category must not be its own parent")
	}
}

func TestUpdateCategoryReparentsWithinTree(t *testing.T) {
	root := expenseCategory("Office", "office", nil)
	child := expenseCategory("Supplies", "supplies", &root.ID)
	grandchild := expenseCategory("Paper", "paper", &child.ID)

	repo := newFakeCategoryRepo()
	for _, c := range []*entity.Category{root, child, grandchild} {
		repo.byID[c.ID] = c
	}
	svc := NewCategoryService(repo)

	updated, err := svc.UpdateCategory(context.Background(), &UpdateCategoryInput{
		ID:       grandchild.ID,
		ParentID: &root.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ParentID == nil || *updated.ParentID != root.ID {
		t.Fatal("moving a leaf up the tree must be allowed")
	}
}
