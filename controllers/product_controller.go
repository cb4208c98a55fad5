package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"motogear-backend/models"
	"motogear-backend/services"

	"github.com/gin-gonic/gin"
)

// MaxPageSize caps the limit query parameter.
const MaxPageSize = 100

// ProductController exposes the product admin and storefront endpoints.
type ProductController struct {
	service services.ProductService
	cache   *CacheManager
}

// NewProductController creates a new ProductController. cache may be nil
// when Redis is not configured.
func NewProductController(service services.ProductService, cache *CacheManager) *ProductController {
	return &ProductController{service: service, cache: cache}
}

// CreateProduct handles POST /api/admin/products. The payload carries the
// full initial variant set; everything is inserted atomically.
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	product, svcErr := ctrl.service.CreateProduct(c.Request.Context(), &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "product": product})
}

// GetProducts handles GET /api/products with pagination and the optional
// categoryId, styles, genders, and sizes filters. Filter parameters accept
// both repeated keys and comma-separated values.
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultPageSize)))
	if err != nil || limit < 1 {
		limit = services.DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	params := services.ListProductsParams{Page: page, Limit: limit}

	if raw := c.Query("categoryId"); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid categoryId"})
			return
		}
		id := uint(categoryID)
		params.CategoryID = &id
	}

	for _, raw := range parseArrayQuery(c, "styles") {
		style := models.ProductStyle(raw)
		if !validStyle(style) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid style: " + raw})
			return
		}
		params.Styles = append(params.Styles, style)
	}

	for _, raw := range parseArrayQuery(c, "genders") {
		gender := models.ProductGender(raw)
		if !validGender(gender) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid gender: " + raw})
			return
		}
		params.Genders = append(params.Genders, gender)
	}

	params.Sizes = parseArrayQuery(c, "sizes")

	result, svcErr := ctrl.service.GetProducts(c.Request.Context(), params)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetProductByID handles GET /api/products/:id.
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if ctrl.cache != nil {
		if cached, found := ctrl.cache.GetProduct(c.Request.Context(), id); found {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	product, svcErr := ctrl.service.GetProductByID(c.Request.Context(), id)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	if ctrl.cache != nil {
		ctrl.cache.SetProductAsync(product)
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProduct handles PUT /api/admin/products/:id. The payload must carry
// the complete desired variant set; the stored set is replaced, not merged.
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	product, svcErr := ctrl.service.UpdateProduct(c.Request.Context(), id, &req)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	if ctrl.cache != nil {
		ctrl.cache.InvalidateProduct(c.Request.Context(), id)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// DeleteProduct handles DELETE /api/admin/products/:id.
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if svcErr := ctrl.service.DeleteProduct(c.Request.Context(), id); svcErr != nil {
		respondError(c, svcErr)
		return
	}

	if ctrl.cache != nil {
		ctrl.cache.InvalidateProduct(c.Request.Context(), id)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// parseArrayQuery collects a query parameter given as repeated keys and/or
// comma-separated values into one flat list.
func parseArrayQuery(c *gin.Context, key string) []string {
	var values []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				values = append(values, trimmed)
			}
		}
	}
	return values
}

func validStyle(s models.ProductStyle) bool {
	switch s {
	case models.StyleRacing, models.StyleJacket, models.StylePants,
		models.StyleGloves, models.StyleBoots, models.StyleCasual:
		return true
	}
	return false
}

func validGender(g models.ProductGender) bool {
	switch g {
	case models.GenderMale, models.GenderFemale, models.GenderCommon:
		return true
	}
	return false
}
