package request

import (
	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/domain/enum"
)

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name     string            `json:"name" binding:"required,min=2,max=255"`
	Type     enum.CategoryType `json:"type"`
	ParentID *uuid.UUID        `json:"parent_id"`
}

// UpdateCategoryRequest represents a category update request
type UpdateCategoryRequest struct {
	Name     string     `json:"name" binding:"omitempty,min=2,max=255"`
	ParentID *uuid.UUID `json:"parent_id"`
}
