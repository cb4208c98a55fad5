package services

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"time"

	"motogear-backend/models"
	"motogear-backend/notifier"
	"motogear-backend/repository"
	"motogear-backend/storage"

	"go.uber.org/zap"
)

// InquiryFolder is the object-storage folder for inquiry attachments.
const InquiryFolder = "inquiries"

// CreateInquiryInput carries a validated inquiry submission. Files are the
// raw multipart attachments, at most MaxInquiryFiles of them.
type CreateInquiryInput struct {
	UserID  uint
	Type    models.InquiryType
	Title   string
	Content string
	Files   []*multipart.FileHeader
}

// InquiryService defines the customer-inquiry intake flow.
type InquiryService interface {
	CreateInquiry(ctx context.Context, input *CreateInquiryInput) (*models.Inquiry, *ServiceError)
	GetMyInquiries(ctx context.Context, userID uint) ([]models.Inquiry, *ServiceError)
}

type inquiryServiceImpl struct {
	repo      repository.InquiryRepository
	uploader  storage.Uploader
	publisher notifier.Publisher
	topicArn  string
	logger    *zap.Logger
}

// NewInquiryService creates a new InquiryService. publisher may be nil when
// event notification is not configured.
func NewInquiryService(
	repo repository.InquiryRepository,
	uploader storage.Uploader,
	publisher notifier.Publisher,
	topicArn string,
	logger *zap.Logger,
) InquiryService {
	return &inquiryServiceImpl{
		repo:      repo,
		uploader:  uploader,
		publisher: publisher,
		topicArn:  topicArn,
		logger:    logger,
	}
}

// CreateInquiry uploads every attachment first and only then persists the
// inquiry with the resulting URLs in one create. A failed upload aborts with
// no database write; a failed write after successful uploads may orphan
// stored files, which is accepted — no compensating delete is attempted.
func (s *inquiryServiceImpl) CreateInquiry(ctx context.Context, input *CreateInquiryInput) (*models.Inquiry, *ServiceError) {
	if !models.ValidInquiryType(input.Type) {
		return nil, &ServiceError{Kind: KindValidation, Message: "invalid inquiry type"}
	}

	var images []models.InquiryImage
	for _, fh := range input.Files {
		file, err := fh.Open()
		if err != nil {
			s.logger.Error("Failed to open attachment", zap.String("filename", fh.Filename), zap.Error(err))
			return nil, internal("failed to read attachment")
		}

		url, err := s.uploader.Upload(ctx, file, InquiryFolder, fh.Filename, fh.Header.Get("Content-Type"))
		file.Close()
		if err != nil {
			s.logger.Error("Failed to upload attachment", zap.String("filename", fh.Filename), zap.Error(err))
			return nil, internal("failed to upload attachment")
		}
		images = append(images, models.InquiryImage{URL: url})
	}

	inquiry := &models.Inquiry{
		UserID:  input.UserID,
		Type:    input.Type,
		Title:   input.Title,
		Content: input.Content,
		Images:  images,
	}
	if err := s.repo.CreateWithImages(ctx, inquiry); err != nil {
		s.logger.Error("Failed to create inquiry", zap.Error(err))
		return nil, internal("failed to create inquiry")
	}

	s.logger.Info("Inquiry created",
		zap.Uint("id", inquiry.ID),
		zap.Uint("user_id", inquiry.UserID),
		zap.Int("images", len(inquiry.Images)),
	)

	s.publishInquiryCreated(ctx, inquiry)
	return inquiry, nil
}

// GetMyInquiries returns the user's inquiries, newest first.
func (s *inquiryServiceImpl) GetMyInquiries(ctx context.Context, userID uint) ([]models.Inquiry, *ServiceError) {
	inquiries, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list inquiries", zap.Uint("user_id", userID), zap.Error(err))
		return nil, internal("failed to list inquiries")
	}
	return inquiries, nil
}

// publishInquiryCreated publishes an inquiry_created event. Best effort;
// failures are logged, never surfaced to the caller.
func (s *inquiryServiceImpl) publishInquiryCreated(ctx context.Context, inquiry *models.Inquiry) {
	if s.publisher == nil || s.topicArn == "" {
		return
	}

	event := models.InquiryCreatedEvent{
		EventType:  "inquiry_created",
		InquiryID:  inquiry.ID,
		UserID:     inquiry.UserID,
		Type:       inquiry.Type,
		Title:      inquiry.Title,
		ImageCount: len(inquiry.Images),
		Timestamp:  time.Now(),
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("Failed to marshal inquiry_created event", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, s.topicArn, eventBytes); err != nil {
		s.logger.Error("Failed to publish inquiry_created event", zap.Error(err))
		return
	}

	s.logger.Info("Published inquiry_created event", zap.Uint("inquiry_id", inquiry.ID))
}
