package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"motogear-backend/controllers"
	"motogear-backend/models"
	"motogear-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mock CategoryService ---

type mockCategoryService struct {
	createFn func(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, *services.ServiceError)
	listFn   func(ctx context.Context) ([]models.Category, *services.ServiceError)
	updateFn func(ctx context.Context, id uint, req *models.UpdateCategoryRequest) (*models.Category, *services.ServiceError)
	deleteFn func(ctx context.Context, id uint) *services.ServiceError
}

func (m *mockCategoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, *services.ServiceError) {
	return m.createFn(ctx, req)
}
func (m *mockCategoryService) GetCategories(ctx context.Context) ([]models.Category, *services.ServiceError) {
	return m.listFn(ctx)
}
func (m *mockCategoryService) UpdateCategory(ctx context.Context, id uint, req *models.UpdateCategoryRequest) (*models.Category, *services.ServiceError) {
	return m.updateFn(ctx, id, req)
}
func (m *mockCategoryService) DeleteCategory(ctx context.Context, id uint) *services.ServiceError {
	return m.deleteFn(ctx, id)
}

// --- Helpers ---

func setupCategoryRouter(svc services.CategoryService) *gin.Engine {
	r := gin.New()
	cc := controllers.NewCategoryController(svc, nil)
	r.POST("/categories", cc.CreateCategory)
	r.GET("/categories", cc.GetCategories)
	r.PUT("/categories/:id", cc.UpdateCategory)
	r.DELETE("/categories/:id", cc.DeleteCategory)
	return r
}

// --- Tests ---

func TestController_CreateCategory_Success(t *testing.T) {
	svc := &mockCategoryService{
		createFn: func(_ context.Context, req *models.CreateCategoryRequest) (*models.Category, *services.ServiceError) {
			return &models.Category{ID: 1, Name: req.Name, Path: req.Path}, nil
		},
	}
	r := setupCategoryRouter(svc)

	body, _ := json.Marshal(models.CreateCategoryRequest{Name: "Helmets", Path: "helmets"})
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]json.RawMessage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "category")
}

func TestController_CreateCategory_MissingFields(t *testing.T) {
	r := setupCategoryRouter(&mockCategoryService{})

	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader([]byte(`{"name":"Helmets"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestController_CreateCategory_Conflict(t *testing.T) {
	svc := &mockCategoryService{
		createFn: func(_ context.Context, _ *models.CreateCategoryRequest) (*models.Category, *services.ServiceError) {
			return nil, &services.ServiceError{Kind: services.KindConflict, Message: "category path already exists in this level"}
		},
	}
	r := setupCategoryRouter(svc)

	body, _ := json.Marshal(models.CreateCategoryRequest{Name: "Helmets", Path: "helmets"})
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestController_CreateCategory_ParentNotFound(t *testing.T) {
	svc := &mockCategoryService{
		createFn: func(_ context.Context, _ *models.CreateCategoryRequest) (*models.Category, *services.ServiceError) {
			return nil, &services.ServiceError{Kind: services.KindParentNotFound, Message: "parent category not found"}
		},
	}
	r := setupCategoryRouter(svc)

	body, _ := json.Marshal(models.CreateCategoryRequest{Name: "Helmets", Path: "helmets"})
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestController_GetCategories(t *testing.T) {
	svc := &mockCategoryService{
		listFn: func(_ context.Context) ([]models.Category, *services.ServiceError) {
			return []models.Category{
				{ID: 1, Name: "Helmets", Path: "helmets"},
				{ID: 2, Name: "Gloves", Path: "gloves"},
			}, nil
		},
	}
	r := setupCategoryRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var categories []models.Category
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.Len(t, categories, 2)

	// Timestamps use the same camelCase keys as the rest of the API.
	assert.Contains(t, w.Body.String(), `"createdAt"`)
	assert.NotContains(t, w.Body.String(), `"created_at"`)
}

func TestController_UpdateCategory_InvalidID(t *testing.T) {
	r := setupCategoryRouter(&mockCategoryService{})

	body, _ := json.Marshal(models.UpdateCategoryRequest{Name: "Helmets", Path: "helmets"})
	req := httptest.NewRequest(http.MethodPut, "/categories/abc", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestController_DeleteCategory_InUse(t *testing.T) {
	svc := &mockCategoryService{
		deleteFn: func(_ context.Context, _ uint) *services.ServiceError {
			return &services.ServiceError{Kind: services.KindInUse, Message: "cannot delete category in use"}
		},
	}
	r := setupCategoryRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/categories/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cannot delete category in use", resp["error"])
}

func TestController_DeleteCategory_Success(t *testing.T) {
	svc := &mockCategoryService{
		deleteFn: func(_ context.Context, id uint) *services.ServiceError {
			assert.Equal(t, uint(3), id)
			return nil
		},
	}
	r := setupCategoryRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/categories/3", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
