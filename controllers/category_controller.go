package controllers

import (
	"net/http"
	"strconv"

	"motogear-backend/models"
	"motogear-backend/services"

	"github.com/gin-gonic/gin"
)

// CategoryController exposes the category admin and storefront endpoints.
type CategoryController struct {
	service services.CategoryService
	cache   *CacheManager
}

// NewCategoryController creates a new CategoryController. cache may be nil
// when Redis is not configured.
func NewCategoryController(service services.CategoryService, cache *CacheManager) *CategoryController {
	return &CategoryController{service: service, cache: cache}
}

// CreateCategory handles POST /api/admin/categories.
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and path are required"})
		return
	}

	category, svcErr := ctrl.service.CreateCategory(c.Request.Context(), &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	if ctrl.cache != nil {
		ctrl.cache.InvalidateCategories(c.Request.Context())
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": category})
}

// GetCategories handles GET /api/categories. The list is flat and ordered by
// id; clients assemble the tree from parentId links.
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	if ctrl.cache != nil {
		if cached, ok := ctrl.cache.GetCategoryList(c.Request.Context()); ok {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	categories, svcErr := ctrl.service.GetCategories(c.Request.Context())
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	if ctrl.cache != nil {
		ctrl.cache.SetCategoryListAsync(categories)
	}
	c.JSON(http.StatusOK, categories)
}

// UpdateCategory handles PUT /api/admin/categories/:id. Only the category
// list cache is invalidated; cached product details embed the category, so a
// rename stays visible there until the detail TTL expires.
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and path are required"})
		return
	}

	category, svcErr := ctrl.service.UpdateCategory(c.Request.Context(), id, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	if ctrl.cache != nil {
		ctrl.cache.InvalidateCategories(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated", "category": category})
}

// DeleteCategory handles DELETE /api/admin/categories/:id. Categories still
// referenced by products or children are reported as in use, not deleted.
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if svcErr := ctrl.service.DeleteCategory(c.Request.Context(), id); svcErr != nil {
		respondError(c, svcErr)
		return
	}

	if ctrl.cache != nil {
		ctrl.cache.InvalidateCategories(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// parseIDParam parses the :id path parameter, writing a 400 on failure.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return 0, false
	}
	return uint(id), true
}
