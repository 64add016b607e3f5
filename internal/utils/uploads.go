package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaydipchangani/project-management-backend/internal/constants"
	"github.com/jaydipchangani/project-management-backend/internal/storage"
)

// IsMultipart reports whether the request carries a multipart form
func IsMultipart(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEMultipartPOSTForm
}

// FormUploads opens every file sent under the files form key. The returned
// close function must be called once the uploads have been consumed.
func FormUploads(c *gin.Context) ([]storage.Upload, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, fmt.Errorf("invalid multipart form: %w", err)
	}
	return OpenUploads(form.File[constants.UploadFormKey])
}

// OpenUploads opens file headers as storage uploads
func OpenUploads(headers []*multipart.FileHeader) ([]storage.Upload, func(), error) {
	files := make([]multipart.File, 0, len(headers))
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	uploads := make([]storage.Upload, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("failed to open %s: %w", h.Filename, err)
		}
		files = append(files, f)
		uploads = append(uploads, storage.Upload{
			Filename: h.Filename,
			Size:     h.Size,
			Content:  f,
		})
	}
	return uploads, closeAll, nil
}
