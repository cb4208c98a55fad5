package models

import (
	"time"
)

// Category is a node in the category forest. Path is the URL segment used by
// the storefront; it is unique among siblings (categories sharing the same
// parent, with NULL parent acting as the root scope), not globally.
type Category struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Path     string `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_parent_path" json:"path"`
	ParentID *uint  `gorm:"uniqueIndex:idx_categories_parent_path" json:"parentId"`

	Parent   *Category  `gorm:"foreignKey:ParentID;constraint:OnDelete:RESTRICT" json:"-"`
	Products []Product  `gorm:"foreignKey:CategoryID" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Path     string `json:"path" binding:"required,max=100"`
	ParentID *uint  `json:"parentId"`
}

// UpdateCategoryRequest is the payload for renaming a category or changing its
// path. The parent is not re-parentable through this operation.
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Path string `json:"path" binding:"required,max=100"`
}
