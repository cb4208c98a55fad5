package repository

import (
	"context"

	"motogear-backend/models"

	"gorm.io/gorm"
)

// ProductFilter holds the resolved filter set for product list queries.
// Gender expansion (COMMON added alongside MALE/FEMALE) happens in the service
// layer; the repository applies the sets as given.
type ProductFilter struct {
	CategoryID *uint
	Styles     []models.ProductStyle
	Genders    []models.ProductGender
	Sizes      []string
	Offset     int
	Limit      int
}

// ProductRepository defines data-access operations for products and their
// nested color/image/size records.
type ProductRepository interface {
	// CreateWithColors inserts the product and its full variant set as one
	// transaction.
	CreateWithColors(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	// CodesInUse returns which of the given product codes already exist on
	// variants of products other than excludeProductID (0 excludes nothing).
	CodesInUse(ctx context.Context, codes []string, excludeProductID uint) ([]string, error)
	// ReplaceColors atomically deletes every color variant of the product,
	// updates its scalar fields, and inserts the supplied replacement set.
	ReplaceColors(ctx context.Context, product *models.Product, colors []models.ProductColor) error
	Delete(ctx context.Context, id uint) error
}

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository.
func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) CreateWithColors(ctx context.Context, product *models.Product) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(product).Error
	})
	return translate(err)
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Colors").
		Preload("Colors.Images").
		Preload("Colors.Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_sizes.id ASC")
		}).
		First(&p, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// List returns one page of products matching the filter plus the total match
// count, newest first.
func (r *GormProductRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if len(filter.Styles) > 0 {
		query = query.Where("style IN ?", filter.Styles)
	}
	if len(filter.Genders) > 0 {
		query = query.Where("gender IN ?", filter.Genders)
	}
	if len(filter.Sizes) > 0 {
		// Existence semantics: at least one variant carries at least one of
		// the requested size labels.
		query = query.Where(
			"products.id IN (?)",
			r.db.Model(&models.ProductSize{}).
				Select("product_colors.product_id").
				Joins("JOIN product_colors ON product_colors.id = product_sizes.product_color_id").
				Where("product_sizes.size IN ?", filter.Sizes),
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var products []models.Product
	err := query.
		Preload("Category").
		Preload("Colors").
		Preload("Colors.Images").
		Preload("Colors.Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_sizes.id ASC")
		}).
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, translate(err)
	}

	return products, total, nil
}

func (r *GormProductRepository) CodesInUse(ctx context.Context, codes []string, excludeProductID uint) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).
		Model(&models.ProductColor{}).
		Where("product_code IN ?", codes)
	if excludeProductID != 0 {
		query = query.Where("product_id <> ?", excludeProductID)
	}

	var inUse []string
	if err := query.Pluck("product_code", &inUse).Error; err != nil {
		return nil, translate(err)
	}
	return inUse, nil
}

func (r *GormProductRepository) ReplaceColors(ctx context.Context, product *models.Product, colors []models.ProductColor) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Images and sizes go with their variants via ON DELETE CASCADE.
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductColor{}).Error; err != nil {
			return err
		}

		product.Colors = nil
		if err := tx.Save(product).Error; err != nil {
			return err
		}

		for i := range colors {
			colors[i].ID = 0
			colors[i].ProductID = product.ID
		}
		if len(colors) > 0 {
			if err := tx.Create(&colors).Error; err != nil {
				return err
			}
		}
		product.Colors = colors
		return nil
	})
	return translate(err)
}

func (r *GormProductRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
