package controllers

import (
	"net/http"

	"motogear-backend/middleware"
	"motogear-backend/models"
	"motogear-backend/services"

	"github.com/gin-gonic/gin"
)

const (
	// MaxInquiryFiles caps attachments per inquiry.
	MaxInquiryFiles = 5
	// MaxInquiryFileSize caps a single attachment at 10 MB.
	MaxInquiryFileSize = 10 << 20
)

// InquiryController exposes the customer-inquiry endpoints.
type InquiryController struct {
	service services.InquiryService
}

// NewInquiryController creates a new InquiryController.
func NewInquiryController(service services.InquiryService) *InquiryController {
	return &InquiryController{service: service}
}

// CreateInquiry handles POST /api/inquiries. The body is multipart form data
// with title, content, and type fields plus up to MaxInquiryFiles attachments
// under the "images" field.
func (ctrl *InquiryController) CreateInquiry(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	title := c.PostForm("title")
	content := c.PostForm("content")
	inquiryType := c.PostForm("type")
	if title == "" || content == "" || inquiryType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	files := form.File["images"]
	if len(files) > MaxInquiryFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Too many attachments, maximum is 5"})
		return
	}
	for _, fh := range files {
		if fh.Size > MaxInquiryFileSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Attachment exceeds 10MB limit: " + fh.Filename})
			return
		}
	}

	input := &services.CreateInquiryInput{
		UserID:  userID,
		Type:    models.InquiryType(inquiryType),
		Title:   title,
		Content: content,
		Files:   files,
	}

	inquiry, svcErr := ctrl.service.CreateInquiry(c.Request.Context(), input)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Inquiry created successfully", "inquiry": inquiry})
}

// GetMyInquiries handles GET /api/inquiries for the authenticated user.
func (ctrl *InquiryController) GetMyInquiries(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	inquiries, svcErr := ctrl.service.GetMyInquiries(c.Request.Context(), userID)
	if svcErr != nil {
		respondError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"inquiries": inquiries})
}
