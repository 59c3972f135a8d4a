package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/horologe/storefront/internal/application/catalog"
	"github.com/horologe/storefront/internal/interfaces/http/dto"
)

// ImageUploader stores product and category images
type ImageUploader interface {
	MaxSize() int64
	UploadImage(ctx context.Context, folder string, data []byte, contentType string) (*catalogapp.UploadResponse, error)
}

// UploadHandler handles image uploads
type UploadHandler struct {
	BaseHandler
	uploader ImageUploader
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploader ImageUploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// Upload godoc
// @ID           uploadImage
// @Summary      Upload an image
// @Description  Stores a JPEG, PNG, WebP or GIF image and returns its public URL
// @Tags         admin-uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Image"
// @Param        folder formData string false "Target folder" default(products)
// @Success      201 {object} catalogapp.UploadResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      413 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file field is required")
		return
	}
	if limit := h.uploader.MaxSize(); limit > 0 && header.Size > limit {
		h.ErrorWithCode(c, dto.ErrCodePayloadTooLarge, "File exceeds maximum allowed size")
		return
	}

	f, err := header.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	result, err := h.uploader.UploadImage(c.Request.Context(), c.PostForm("folder"), data, contentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
