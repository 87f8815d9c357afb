package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/shadow-chat/internal/handlers/dto"
	"github.com/thereayou/shadow-chat/internal/middleware"
	"github.com/thereayou/shadow-chat/internal/models"
	"github.com/thereayou/shadow-chat/internal/services"
)

type MessageHandler struct {
	chat  *services.ChatService
	rooms *services.RoomService
	users *services.UserService
}

func NewMessageHandler(chat *services.ChatService, rooms *services.RoomService, users *services.UserService) *MessageHandler {
	return &MessageHandler{chat: chat, rooms: rooms, users: users}
}

// GetRoomMessages отдаёт историю комнаты: последние 150 или,
// с параметром before, более раннюю страницу.
func (h *MessageHandler) GetRoomMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	if !h.rooms.IsMember(userID, roomID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a member of this room"})
		return
	}

	var messages []models.Message

	if before := c.Query("before"); before != "" {
		ts, err := time.Parse(time.RFC3339, before)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid before timestamp"})
			return
		}

		limit := 0
		if l := c.Query("limit"); l != "" {
			limit, _ = strconv.Atoi(l)
		}

		messages, err = h.chat.LoadOlderMessages(roomID, ts, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
			return
		}
	} else {
		messages, err = h.chat.LoadRecentMessages(roomID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
			return
		}
	}

	result := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		result[i] = formatMessageResponse(&messages[i])
	}

	c.JSON(http.StatusOK, gin.H{"messages": result})
}

// SendMessage отправляет текстовое сообщение через HTTP
// (альтернатива WebSocket)
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	if !h.rooms.IsMember(userID, roomID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a member of this room"})
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nickname := h.users.GetUserDisplayName(userID)

	message, err := h.chat.SendTextMessage(roomID, userID, nickname, req.Content)
	if err != nil {
		c.JSON(messageErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, formatMessageResponse(message))
}

// SendAttachment отправляет сообщение-вложение: файл уже загружен
// через /uploads, сюда приходит его URL и размер.
func (h *MessageHandler) SendAttachment(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	if !h.rooms.IsMember(userID, roomID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a member of this room"})
		return
	}

	var req dto.SendAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nickname := h.users.GetUserDisplayName(userID)

	message, err := h.chat.SendAttachmentMessage(roomID, userID, nickname, req.Type, req.URL, req.FileSize)
	if err != nil {
		c.JSON(messageErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, formatMessageResponse(message))
}

func messageErrorStatus(err error) int {
	if errors.Is(err, services.ErrMessageEmpty) || errors.Is(err, services.ErrMessageTooLong) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func formatMessageResponse(msg *models.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        msg.ID,
		RoomID:    msg.RoomID,
		UserID:    msg.UserID,
		Nickname:  msg.Nickname,
		Type:      msg.Type,
		Content:   msg.Content,
		FileSize:  msg.FileSize,
		CreatedAt: msg.CreatedAt,
	}
}
