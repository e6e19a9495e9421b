package rest

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wakostech/blog-backend/domain"
	"github.com/wakostech/blog-backend/internal/rest/middleware"
)

// UploadHandler accepts image uploads for blog covers, editor images and
// avatars.
type UploadHandler struct {
	Files domain.FileStore
	Users domain.UserUsecase
}

const maxUploadBytes = 5 << 20 // 5 MiB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func NewUploadHandler(files domain.FileStore, users domain.UserUsecase) *UploadHandler {
	return &UploadHandler{Files: files, Users: users}
}

// Image stores an uploaded image and returns its serving reference
func (h *UploadHandler) Image(c *gin.Context) {
	name, data, ok := h.readImage(c)
	if !ok {
		return
	}

	ref, err := h.Files.Save(c.Request.Context(), name, data)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": ref})
}

// Avatar stores an uploaded image and sets it as the caller's avatar
func (h *UploadHandler) Avatar(c *gin.Context) {
	name, data, ok := h.readImage(c)
	if !ok {
		return
	}

	userID := c.GetInt64(middleware.ContextUserKey)
	ref, err := h.Users.SetAvatar(c.Request.Context(), userID, name, data)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": ref})
}

func (h *UploadHandler) readImage(c *gin.Context) (string, []byte, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: "missing image file"})
		return "", nil, false
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, ResponseError{Message: "image too large"})
		return "", nil, false
	}
	if !allowedImageExts[strings.ToLower(filepath.Ext(file.Filename))] {
		c.JSON(http.StatusBadRequest, ResponseError{Message: "unsupported image type"})
		return "", nil, false
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
		return "", nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
		return "", nil, false
	}
	return file.Filename, data, true
}
