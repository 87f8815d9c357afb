package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/shadow-chat/internal/handlers/dto"
	"github.com/thereayou/shadow-chat/internal/middleware"
	"github.com/thereayou/shadow-chat/internal/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// InitUser регистрирует клиентскую личность: по знакомому ID вернёт
// существующего пользователя, по новому — создаст со случайным
// никнеймом.
func (h *UserHandler) InitUser(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.users.EnsureUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to init user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"nickname": user.Nickname,
	})
}

// GetMe возвращает информацию о текущем пользователе
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.users.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"nickname":   user.Nickname,
		"created_at": user.CreatedAt,
	})
}

// UpdateNickname меняет никнейм в базе и кэше
func (h *UserHandler) UpdateNickname(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.UpdateNicknameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nickname, err := h.users.UpdateNickname(userID, req.Nickname)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrNicknameEmpty) ||
			errors.Is(err, services.ErrNicknameTooLong) ||
			errors.Is(err, services.ErrNicknameInvalid) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"nickname": nickname})
}
