package repository

import (
	"context"

	"motogear-backend/models"

	"gorm.io/gorm"
)

// InquiryRepository defines data-access operations for customer inquiries.
type InquiryRepository interface {
	// CreateWithImages inserts the inquiry and its attachment URLs as one
	// transaction and reloads the images for the response.
	CreateWithImages(ctx context.Context, inquiry *models.Inquiry) error
	FindByUser(ctx context.Context, userID uint) ([]models.Inquiry, error)
}

// GormInquiryRepository implements InquiryRepository using GORM.
type GormInquiryRepository struct {
	db *gorm.DB
}

// NewGormInquiryRepository creates a new GormInquiryRepository.
func NewGormInquiryRepository(db *gorm.DB) InquiryRepository {
	return &GormInquiryRepository{db: db}
}

func (r *GormInquiryRepository) CreateWithImages(ctx context.Context, inquiry *models.Inquiry) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(inquiry).Error
	})
	return translate(err)
}

func (r *GormInquiryRepository) FindByUser(ctx context.Context, userID uint) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	err := r.db.WithContext(ctx).
		Preload("Images").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&inquiries).Error
	if err != nil {
		return nil, translate(err)
	}
	return inquiries, nil
}
