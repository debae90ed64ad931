package handler

import (
	"mime/multipart"

	"github.com/labstack/echo/v4"

	"dentmarket/internal/domain/service"
	"dentmarket/pkg/errors"
	"dentmarket/pkg/response"
)

const maxImageSize = 5 << 20 // 5MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type UploadHandler struct {
	fileService service.FileUploadService
}

func NewUploadHandler(fileService service.FileUploadService) *UploadHandler {
	return &UploadHandler{
		fileService: fileService,
	}
}

func validateImage(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > maxImageSize {
		return errors.BadRequest("Image exceeds the 5MB limit", nil)
	}
	if !allowedImageTypes[fileHeader.Header.Get("Content-Type")] {
		return errors.BadRequest("Only JPEG, PNG and WebP images are accepted", nil)
	}
	return nil
}

func (h *UploadHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.Error(c, errors.BadRequest("Image file is required", err))
	}

	if err := validateImage(fileHeader); err != nil {
		return response.Error(c, err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to open uploaded file", err))
	}
	defer src.Close()

	result, err := h.fileService.UploadFile(c.Request().Context(), src, fileHeader.Header.Get("Content-Type"), "products")
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"imageUrl":   result.URL,
		"objectName": result.ObjectName,
	})
}

func (h *UploadHandler) UploadImages(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid multipart form", err))
	}

	files := form.File["images"]
	if len(files) == 0 {
		return response.Error(c, errors.BadRequest("At least one image is required", nil))
	}
	if len(files) > 5 {
		return response.Error(c, errors.BadRequest("At most 5 images per upload", nil))
	}

	urls := make([]string, 0, len(files))
	for _, fileHeader := range files {
		if err := validateImage(fileHeader); err != nil {
			return response.Error(c, err)
		}

		src, err := fileHeader.Open()
		if err != nil {
			return response.Error(c, errors.Internal("Failed to open uploaded file", err))
		}

		result, err := h.fileService.UploadFile(c.Request().Context(), src, fileHeader.Header.Get("Content-Type"), "products")
		src.Close()
		if err != nil {
			return response.Error(c, err)
		}

		urls = append(urls, result.URL)
	}

	return response.Success(c, map[string][]string{
		"imageUrls": urls,
	})
}
