package services

import (
	"context"
	"errors"

	"motogear-backend/models"
	"motogear-backend/repository"

	"go.uber.org/zap"
)

// DefaultPageSize is used when a list request carries no limit.
const DefaultPageSize = 10

// ListProductsParams holds the parsed query parameters for product listing.
type ListProductsParams struct {
	Page       int
	Limit      int
	CategoryID *uint
	Styles     []models.ProductStyle
	Genders    []models.ProductGender
	Sizes      []string
}

// ProductService defines the business logic for the product catalog.
type ProductService interface {
	CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.Product, *ServiceError)
	GetProducts(ctx context.Context, params ListProductsParams) (*models.ProductListResponse, *ServiceError)
	GetProductByID(ctx context.Context, id uint) (*models.Product, *ServiceError)
	UpdateProduct(ctx context.Context, id uint, req *models.ProductRequest) (*models.Product, *ServiceError)
	DeleteProduct(ctx context.Context, id uint) *ServiceError
}

type productServiceImpl struct {
	repo   repository.ProductRepository
	logger *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repository.ProductRepository, logger *zap.Logger) ProductService {
	return &productServiceImpl{repo: repo, logger: logger}
}

// CreateProduct inserts a product with its full variant set in one
// transaction. Every variant's product code is checked against the whole
// catalog first; the unique index on product_code is the hard guard under
// concurrent creates.
func (s *productServiceImpl) CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.Product, *ServiceError) {
	if svcErr := s.checkProductCodes(ctx, req.Colors, 0); svcErr != nil {
		return nil, svcErr
	}

	product := buildProduct(req)
	product.Colors = buildColors(req.Colors)

	if err := s.repo.CreateWithColors(ctx, product); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			// Lost the race against a concurrent create.
			return nil, conflict("product code already in use")
		case errors.Is(err, repository.ErrForeignKeyViolation):
			return nil, notFound("category not found")
		}
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, internal("failed to create product")
	}

	s.logger.Info("Product created",
		zap.Uint("id", product.ID),
		zap.Int("colors", len(product.Colors)),
	)

	return s.materialize(ctx, product.ID)
}

// GetProducts returns one page of products matching the filters, newest
// first, with pagination metadata. A gender filter containing MALE or FEMALE
// implicitly includes COMMON so unisex gear surfaces alongside gendered gear.
func (s *productServiceImpl) GetProducts(ctx context.Context, params ListProductsParams) (*models.ProductListResponse, *ServiceError) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}

	filter := repository.ProductFilter{
		CategoryID: params.CategoryID,
		Styles:     params.Styles,
		Genders:    ExpandGenderFilter(params.Genders),
		Sizes:      params.Sizes,
		Offset:     (page - 1) * limit,
		Limit:      limit,
	}

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, internal("failed to list products")
	}
	if products == nil {
		products = []models.Product{}
	}

	lastPage := int((total + int64(limit) - 1) / int64(limit))
	return &models.ProductListResponse{
		Data: products,
		Meta: models.ProductListMeta{
			Total:    total,
			Page:     page,
			LastPage: lastPage,
		},
	}, nil
}

// GetProductByID returns the fully materialized product: category, variants,
// images, and size entries in insertion order.
func (s *productServiceImpl) GetProductByID(ctx context.Context, id uint) (*models.Product, *ServiceError) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("product not found")
		}
		s.logger.Error("Failed to load product", zap.Uint("id", id), zap.Error(err))
		return nil, internal("failed to load product")
	}
	return product, nil
}

// UpdateProduct replaces the product's scalar fields and its entire variant
// set in one transaction. Callers resend the complete desired variant set;
// nothing is diffed or merged. Codes are validated against other products
// before any row is touched so a collision cannot strand the update mid-way.
func (s *productServiceImpl) UpdateProduct(ctx context.Context, id uint, req *models.ProductRequest) (*models.Product, *ServiceError) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("product not found")
		}
		s.logger.Error("Failed to load product", zap.Uint("id", id), zap.Error(err))
		return nil, internal("failed to update product")
	}

	if svcErr := s.checkProductCodes(ctx, req.Colors, existing.ID); svcErr != nil {
		return nil, svcErr
	}

	updated := buildProduct(req)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.repo.ReplaceColors(ctx, updated, buildColors(req.Colors)); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, conflict("product code already in use")
		case errors.Is(err, repository.ErrForeignKeyViolation):
			return nil, notFound("category not found")
		}
		s.logger.Error("Failed to update product", zap.Uint("id", id), zap.Error(err))
		return nil, internal("failed to update product")
	}

	s.logger.Info("Product updated",
		zap.Uint("id", id),
		zap.Int("colors", len(req.Colors)),
	)

	return s.materialize(ctx, id)
}

// DeleteProduct removes a product; its variants, images, and sizes cascade.
func (s *productServiceImpl) DeleteProduct(ctx context.Context, id uint) *ServiceError {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("product not found")
		}
		s.logger.Error("Failed to delete product", zap.Uint("id", id), zap.Error(err))
		return internal("failed to delete product")
	}
	s.logger.Info("Product deleted", zap.Uint("id", id))
	return nil
}

// checkProductCodes rejects the request if any variant code is duplicated
// within the payload or already taken by a variant of another product.
func (s *productServiceImpl) checkProductCodes(ctx context.Context, colors []models.ColorInput, excludeProductID uint) *ServiceError {
	seen := make(map[string]bool, len(colors))
	codes := make([]string, 0, len(colors))
	for _, c := range colors {
		if seen[c.ProductCode] {
			return duplicateCode(c.ProductCode)
		}
		seen[c.ProductCode] = true
		codes = append(codes, c.ProductCode)
	}

	inUse, err := s.repo.CodesInUse(ctx, codes, excludeProductID)
	if err != nil {
		s.logger.Error("Failed to check product codes", zap.Error(err))
		return internal("failed to check product codes")
	}
	if len(inUse) > 0 {
		return duplicateCode(inUse[0])
	}
	return nil
}

func (s *productServiceImpl) materialize(ctx context.Context, id uint) (*models.Product, *ServiceError) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to reload product", zap.Uint("id", id), zap.Error(err))
		return nil, internal("failed to load product")
	}
	return product, nil
}

// ExpandGenderFilter adds COMMON to any gender set that requests MALE or
// FEMALE. A set of just COMMON is returned unchanged.
func ExpandGenderFilter(genders []models.ProductGender) []models.ProductGender {
	if len(genders) == 0 {
		return genders
	}

	hasCommon := false
	needsCommon := false
	for _, g := range genders {
		switch g {
		case models.GenderCommon:
			hasCommon = true
		case models.GenderMale, models.GenderFemale:
			needsCommon = true
		}
	}
	if needsCommon && !hasCommon {
		return append(append([]models.ProductGender{}, genders...), models.GenderCommon)
	}
	return genders
}

func buildProduct(req *models.ProductRequest) *models.Product {
	return &models.Product{
		Name:             req.Name,
		Description:      req.Description,
		Summary:          req.Summary,
		Price:            req.Price,
		CategoryID:       req.CategoryID,
		Style:            req.Style,
		Gender:           req.Gender,
		Material:         req.Material,
		SizeInfo:         req.SizeInfo,
		Manufacturer:     req.Manufacturer,
		OriginCountry:    req.OriginCountry,
		CareInstructions: req.CareInstructions,
		ManufactureDate:  req.ManufactureDate,
		QualityAssurance: req.QualityAssurance,
		AsPhone:          req.AsPhone,
		IsNew:            req.IsNew,
		IsBest:           req.IsBest,
	}
}

func buildColors(inputs []models.ColorInput) []models.ProductColor {
	colors := make([]models.ProductColor, 0, len(inputs))
	for _, in := range inputs {
		color := models.ProductColor{
			ProductCode: in.ProductCode,
			ColorName:   in.ColorName,
			HexCode:     in.HexCode,
			ColorInfo:   in.ColorInfo,
		}
		for _, url := range in.Images {
			color.Images = append(color.Images, models.ProductImage{URL: url})
		}
		for _, size := range in.Sizes {
			color.Sizes = append(color.Sizes, models.ProductSize{Size: size.Size, Stock: size.Stock})
		}
		colors = append(colors, color)
	}
	return colors
}
