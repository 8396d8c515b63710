package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/vatbooks/vatbooks-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Category groups invoices for reporting. Categories form a tree of
// unconstrained depth via ParentID; the hierarchy is display-only, no
// computation rolls totals up the tree.
type Category struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID uuid.UUID         `gorm:"type:uuid;not null;index" json:"company_id"`
	ParentID  *uuid.UUID        `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Slug      string            `gorm:"size:255;unique;not null" json:"slug"`
	Type      enum.CategoryType `gorm:"default:0" json:"type"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Company  Company    `gorm:"foreignKey:CompanyID" json:"-"`
	Parent   *Category  `gorm:"foreignKey:ParentID" json:"-"`
	Children []Category `gorm:"foreignKey:ParentID" json:"-"`
	Invoices []Invoice  `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// FlatCategory is a category with its depth in the tree, for indented
// display in pickers and reports.
type FlatCategory struct {
	Category
	Depth int `json:"depth"`
}

// FlattenTree orders categories depth-first, parents before children.
// Categories whose parent is missing from the input are treated as roots so
// a dangling ParentID never hides a subtree. Every input category appears in
// the output exactly once: members of a parent cycle have no reachable root,
// so they are surfaced as roots instead of being dropped.
func FlattenTree(categories []Category) []FlatCategory {
	byID := make(map[uuid.UUID]bool, len(categories))
	for _, c := range categories {
		byID[c.ID] = true
	}

	children := make(map[uuid.UUID][]Category)
	var roots []Category
	for _, c := range categories {
		if c.ParentID != nil && byID[*c.ParentID] {
			children[*c.ParentID] = append(children[*c.ParentID], c)
			continue
		}
		roots = append(roots, c)
	}

	flat := make([]FlatCategory, 0, len(categories))
	seen := make(map[uuid.UUID]bool, len(categories))
	var walk func(nodes []Category, depth int)
	walk = func(nodes []Category, depth int) {
		for _, n := range nodes {
			if seen[n.ID] {
				continue
			}
			seen[n.ID] = true
			flat = append(flat, FlatCategory{Category: n, Depth: depth})
			walk(children[n.ID], depth+1)
		}
	}
	walk(roots, 0)

	for _, c := range categories {
		if !seen[c.ID] {
			walk([]Category{c}, 0)
		}
	}
	return flat
}
