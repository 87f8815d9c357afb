package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/shadow-chat/internal/middleware"
	"github.com/thereayou/shadow-chat/pkg/storage"
)

type UploadHandler struct {
	store storage.ObjectStore
}

func NewUploadHandler(store storage.ObjectStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Upload принимает файл вложения, валидирует тип и размер до
// загрузки и возвращает публичный URL. Само сообщение клиент
// отправляет отдельным запросом.
func (h *UploadHandler) Upload(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")

	msgType, err := storage.ValidateAttachment(contentType, fileHeader.Size)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}
	defer file.Close()

	key := storage.ObjectKey(userID.String(), fileHeader.Filename)

	url, err := h.store.Upload(c.Request.Context(), key, file, fileHeader.Size, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":       url,
		"type":      msgType,
		"file_size": fileHeader.Size,
	})
}
