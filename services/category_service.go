package services

import (
	"context"
	"errors"

	"motogear-backend/models"
	"motogear-backend/repository"

	"go.uber.org/zap"
)

// CategoryService defines the business logic for the category forest.
type CategoryService interface {
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, *ServiceError)
	GetCategories(ctx context.Context) ([]models.Category, *ServiceError)
	UpdateCategory(ctx context.Context, id uint, req *models.UpdateCategoryRequest) (*models.Category, *ServiceError)
	DeleteCategory(ctx context.Context, id uint) *ServiceError
}

type categoryServiceImpl struct {
	repo   repository.CategoryRepository
	logger *zap.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repository.CategoryRepository, logger *zap.Logger) CategoryService {
	return &categoryServiceImpl{repo: repo, logger: logger}
}

// CreateCategory creates a category after checking that the parent exists and
// that the path is free within the target sibling scope.
func (s *categoryServiceImpl) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, *ServiceError) {
	if req.ParentID != nil {
		if _, err := s.repo.FindByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, &ServiceError{Kind: KindParentNotFound, Message: "parent category not found"}
			}
			s.logger.Error("Failed to look up parent category", zap.Error(err))
			return nil, internal("failed to create category")
		}
	}

	if err := s.checkSiblingPath(ctx, req.ParentID, req.Path, 0); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:     req.Name,
		Path:     req.Path,
		ParentID: req.ParentID,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		// The composite unique index backs the pre-check up under races.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, conflict("category path already exists in this level")
		}
		s.logger.Error("Failed to create category", zap.Error(err))
		return nil, internal("failed to create category")
	}

	s.logger.Info("Category created",
		zap.Uint("id", category.ID),
		zap.String("path", category.Path),
	)
	return category, nil
}

// GetCategories returns the whole forest flat, ordered by ID ascending.
func (s *categoryServiceImpl) GetCategories(ctx context.Context) ([]models.Category, *ServiceError) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, internal("failed to list categories")
	}
	return categories, nil
}

// UpdateCategory renames a category and/or moves its path. The path is
// re-checked against the node's current siblings, excluding the node itself;
// the parent cannot be changed through this operation.
func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, id uint, req *models.UpdateCategoryRequest) (*models.Category, *ServiceError) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("category not found")
		}
		s.logger.Error("Failed to load category", zap.Uint("id", id), zap.Error(err))
		return nil, internal("failed to update category")
	}

	if req.Path != category.Path {
		if svcErr := s.checkSiblingPath(ctx, category.ParentID, req.Path, id); svcErr != nil {
			return nil, svcErr
		}
	}

	category.Name = req.Name
	category.Path = req.Path
	if err := s.repo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, conflict("category path already exists in this level")
		}
		s.logger.Error("Failed to update category", zap.Uint("id", id), zap.Error(err))
		return nil, internal("failed to update category")
	}

	return category, nil
}

// DeleteCategory deletes a category. Categories still referenced by products
// or child categories are protected by the foreign keys and reported as in
// use; nothing is deleted in that case.
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, id uint) *ServiceError {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("category not found")
		}
		s.logger.Error("Failed to load category", zap.Uint("id", id), zap.Error(err))
		return internal("failed to delete category")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return &ServiceError{Kind: KindInUse, Message: "cannot delete category in use"}
		}
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("category not found")
		}
		s.logger.Error("Failed to delete category", zap.Uint("id", id), zap.Error(err))
		return internal("failed to delete category")
	}

	s.logger.Info("Category deleted", zap.Uint("id", id))
	return nil
}

// checkSiblingPath verifies path uniqueness within one sibling scope,
// ignoring excludeID (0 excludes nothing).
func (s *categoryServiceImpl) checkSiblingPath(ctx context.Context, parentID *uint, path string, excludeID uint) *ServiceError {
	existing, err := s.repo.FindByParentAndPath(ctx, parentID, path)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		s.logger.Error("Failed to check sibling path", zap.String("path", path), zap.Error(err))
		return internal("failed to check category path")
	}
	if existing.ID != excludeID {
		return conflict("category path already exists in this level")
	}
	return nil
}
