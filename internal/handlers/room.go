package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/shadow-chat/internal/handlers/dto"
	"github.com/thereayou/shadow-chat/internal/middleware"
	"github.com/thereayou/shadow-chat/internal/models"
	"github.com/thereayou/shadow-chat/internal/services"
	"github.com/thereayou/shadow-chat/internal/websocket"
)

type RoomHandler struct {
	rooms *services.RoomService
	hub   *websocket.Hub
}

func NewRoomHandler(rooms *services.RoomService, hub *websocket.Hub) *RoomHandler {
	return &RoomHandler{rooms: rooms, hub: hub}
}

// CreateRoom создает новую комнату, создатель вступает автоматически
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.rooms.CreateRoom(userID, req.Name, req.Description)
	if err != nil {
		c.JSON(roomErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, formatRoomResponse(room))
}

// GetPublicRooms возвращает список публичных комнат
func (h *RoomHandler) GetPublicRooms(c *gin.Context) {
	rooms, err := h.rooms.PublicRooms()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get rooms"})
		return
	}

	response := make([]gin.H, len(rooms))
	for i := range rooms {
		response[i] = formatRoomResponse(&rooms[i])
	}

	c.JSON(http.StatusOK, gin.H{"rooms": response})
}

// GetMyRooms возвращает комнаты текущего пользователя
func (h *RoomHandler) GetMyRooms(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	rooms, err := h.rooms.UserRooms(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get rooms"})
		return
	}

	response := make([]gin.H, len(rooms))
	for i := range rooms {
		room := formatRoomResponse(&rooms[i])
		room["online_count"] = len(h.hub.GetRoomUsers(rooms[i].ID))
		response[i] = room
	}

	c.JSON(http.StatusOK, gin.H{"rooms": response})
}

// GetRoom возвращает детали комнаты
func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	room, err := h.rooms.GetRoom(roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	memberCount, _ := h.rooms.RoomMemberCount(roomID)

	response := formatRoomResponse(room)
	response["member_count"] = memberCount
	response["online_count"] = len(h.hub.GetRoomUsers(roomID))

	c.JSON(http.StatusOK, response)
}

// UpdateRoom обновляет комнату, разрешено только создателю
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.rooms.UpdateRoom(roomID, userID, services.RoomUpdate{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		c.JSON(roomErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, formatRoomResponse(room))
}

// DeleteRoom удаляет комнату, разрешено только создателю
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	if err := h.rooms.DeleteRoom(userID, roomID); err != nil {
		c.JSON(roomErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "room deleted successfully"})
}

// JoinRoom вступает в комнату
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	if err := h.rooms.JoinRoom(userID, roomID); err != nil {
		c.JSON(roomErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "joined room successfully"})
}

// LeaveRoom выходит из комнаты
func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	if err := h.rooms.LeaveRoom(userID, roomID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to leave room"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "left room successfully"})
}

// roomErrorStatus переводит ошибки сервиса в HTTP-статусы
func roomErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotCreator):
		return http.StatusForbidden
	case errors.Is(err, services.ErrRoomNameEmpty),
		errors.Is(err, services.ErrRoomNameTooLong),
		errors.Is(err, services.ErrRoomLimit),
		errors.Is(err, services.ErrUserRoomLimit),
		errors.Is(err, services.ErrAlreadyJoined):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// formatRoomResponse форматирует ответ для комнаты
func formatRoomResponse(room *models.Room) gin.H {
	return gin.H{
		"id":          room.ID,
		"name":        room.Name,
		"description": room.Description,
		"creator_id":  room.CreatorID,
		"is_public":   room.IsPublic,
		"created_at":  room.CreatedAt,
	}
}
