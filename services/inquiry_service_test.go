package services_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"testing"

	"motogear-backend/models"
	"motogear-backend/repository"
	"motogear-backend/services"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// --- Mock Repository ---

type mockInquiryRepo struct {
	inquiries []*models.Inquiry
	nextID    uint
}

func newMockInquiryRepo() *mockInquiryRepo {
	return &mockInquiryRepo{nextID: 1}
}

func (m *mockInquiryRepo) CreateWithImages(_ context.Context, inquiry *models.Inquiry) error {
	inquiry.ID = m.nextID
	m.nextID++
	stored := *inquiry
	m.inquiries = append(m.inquiries, &stored)
	return nil
}

func (m *mockInquiryRepo) FindByUser(_ context.Context, userID uint) ([]models.Inquiry, error) {
	var result []models.Inquiry
	for i := len(m.inquiries) - 1; i >= 0; i-- {
		if m.inquiries[i].UserID == userID {
			result = append(result, *m.inquiries[i])
		}
	}
	return result, nil
}

// --- Mock Uploader ---

type stubUploader struct {
	uploaded []string
	failOn   string
}

func (s *stubUploader) Upload(_ context.Context, _ io.Reader, folder, filename, _ string) (string, error) {
	if filename == s.failOn {
		return "", errors.New("upload failed")
	}
	url := "http://assets.local/" + folder + "/" + filename
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

// --- Mock Publisher ---

type mockPublisher struct {
	messages [][]byte
	topics   []string
}

func (m *mockPublisher) Publish(_ context.Context, topicArn string, message []byte) error {
	m.topics = append(m.topics, topicArn)
	m.messages = append(m.messages, message)
	return nil
}

// --- Helpers ---

// makeFileHeaders builds real multipart file headers from in-memory content.
func makeFileHeaders(t *testing.T, filenames ...string) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range filenames {
		part, err := writer.CreateFormFile("images", name)
		assert.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	assert.NoError(t, err)
	return form.File["images"]
}

func newInquiryService(repo repository.InquiryRepository, up *stubUploader, pub *mockPublisher, topicArn string) services.InquiryService {
	if pub == nil {
		return services.NewInquiryService(repo, up, nil, topicArn, zap.NewNop())
	}
	return services.NewInquiryService(repo, up, pub, topicArn, zap.NewNop())
}

// --- Tests ---

func TestCreateInquiry(t *testing.T) {
	repo := newMockInquiryRepo()
	uploader := &stubUploader{}
	publisher := &mockPublisher{}
	svc := newInquiryService(repo, uploader, publisher, "arn:aws:sns:test:topic")

	inquiry, svcErr := svc.CreateInquiry(context.Background(), &services.CreateInquiryInput{
		UserID:  7,
		Type:    models.InquiryTypeProduct,
		Title:   "Sizing question",
		Content: "Does the Apex jacket run small?",
		Files:   makeFileHeaders(t, "photo1.jpg", "photo2.jpg"),
	})
	assert.Nil(t, svcErr)
	assert.NotZero(t, inquiry.ID)
	assert.Len(t, inquiry.Images, 2)
	assert.Len(t, uploader.uploaded, 2)

	// Uploaded URLs land on the persisted record.
	assert.Equal(t, uploader.uploaded[0], inquiry.Images[0].URL)

	// inquiry_created event went out.
	assert.Len(t, publisher.messages, 1)
	assert.Equal(t, "arn:aws:sns:test:topic", publisher.topics[0])
	var event models.InquiryCreatedEvent
	assert.NoError(t, json.Unmarshal(publisher.messages[0], &event))
	assert.Equal(t, "inquiry_created", event.EventType)
	assert.Equal(t, inquiry.ID, event.InquiryID)
	assert.Equal(t, 2, event.ImageCount)
}

func TestCreateInquiryInvalidType(t *testing.T) {
	svc := newInquiryService(newMockInquiryRepo(), &stubUploader{}, nil, "")

	_, svcErr := svc.CreateInquiry(context.Background(), &services.CreateInquiryInput{
		UserID: 7, Type: "BOGUS", Title: "t", Content: "c",
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, services.KindValidation, svcErr.Kind)
}

func TestCreateInquiryUploadFailureAbortsWrite(t *testing.T) {
	repo := newMockInquiryRepo()
	uploader := &stubUploader{failOn: "photo2.jpg"}
	svc := newInquiryService(repo, uploader, nil, "")

	_, svcErr := svc.CreateInquiry(context.Background(), &services.CreateInquiryInput{
		UserID:  7,
		Type:    models.InquiryTypeProduct,
		Title:   "Sizing question",
		Content: "Does the Apex jacket run small?",
		Files:   makeFileHeaders(t, "photo1.jpg", "photo2.jpg"),
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, services.KindInternal, svcErr.Kind)
	assert.Empty(t, repo.inquiries)
}

func TestCreateInquiryNoPublisherConfigured(t *testing.T) {
	repo := newMockInquiryRepo()
	svc := newInquiryService(repo, &stubUploader{}, nil, "")

	inquiry, svcErr := svc.CreateInquiry(context.Background(), &services.CreateInquiryInput{
		UserID: 7, Type: models.InquiryTypeEtc, Title: "t", Content: "c",
	})
	assert.Nil(t, svcErr)
	assert.NotZero(t, inquiry.ID)
	assert.Empty(t, inquiry.Images)
}

func TestGetMyInquiriesNewestFirst(t *testing.T) {
	repo := newMockInquiryRepo()
	svc := newInquiryService(repo, &stubUploader{}, nil, "")

	for _, title := range []string{"first", "second"} {
		_, svcErr := svc.CreateInquiry(context.Background(), &services.CreateInquiryInput{
			UserID: 7, Type: models.InquiryTypeOrder, Title: title, Content: "c",
		})
		assert.Nil(t, svcErr)
	}
	_, svcErr := svc.CreateInquiry(context.Background(), &services.CreateInquiryInput{
		UserID: 8, Type: models.InquiryTypeOrder, Title: "other user", Content: "c",
	})
	assert.Nil(t, svcErr)

	inquiries, svcErr := svc.GetMyInquiries(context.Background(), 7)
	assert.Nil(t, svcErr)
	assert.Len(t, inquiries, 2)
	assert.Equal(t, "second", inquiries[0].Title)
	assert.Equal(t, "first", inquiries[1].Title)
}
