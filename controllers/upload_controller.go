package controllers

import (
	"net/http"

	"motogear-backend/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductImageFolder is the object-storage folder for product images.
const ProductImageFolder = "products"

// UploadController exposes the admin file-upload endpoint used to stage
// product images before a product is created or updated.
type UploadController struct {
	uploader storage.Uploader
	logger   *zap.Logger
}

// NewUploadController creates a new UploadController.
func NewUploadController(uploader storage.Uploader, logger *zap.Logger) *UploadController {
	return &UploadController{uploader: uploader, logger: logger}
}

// Upload handles POST /api/admin/uploads. A single file under the "file"
// field is stored and its public URL returned.
func (ctrl *UploadController) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	file, err := fh.Open()
	if err != nil {
		ctrl.logger.Error("Failed to open uploaded file", zap.String("filename", fh.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	url, err := ctrl.uploader.Upload(c.Request.Context(), file, ProductImageFolder, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		ctrl.logger.Error("Failed to upload file", zap.String("filename", fh.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
