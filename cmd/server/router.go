package server

import (
	"github.com/gin-gonic/gin"
	"github.com/thereayou/shadow-chat/internal/handlers"
	"github.com/thereayou/shadow-chat/internal/middleware"
)

func APIEndpoints(
	r *gin.Engine,
	roomH *handlers.RoomHandler,
	messageH *handlers.MessageHandler,
	userH *handlers.UserHandler,
	capacityH *handlers.CapacityHandler,
	uploadH *handlers.UploadHandler,
	wsH *handlers.WebSocketHandler,
) {
	api := r.Group("/api/v1", middleware.IdentityMiddleware())
	{
		// Пользователи
		api.POST("/users/init", userH.InitUser)
		api.GET("/users/me", userH.GetMe)
		api.PUT("/users/me/nickname", userH.UpdateNickname)

		// Комнаты
		api.GET("/rooms", roomH.GetPublicRooms)
		api.POST("/rooms", roomH.CreateRoom)
		api.GET("/rooms/my", roomH.GetMyRooms)
		api.GET("/rooms/:id", roomH.GetRoom)
		api.PUT("/rooms/:id", roomH.UpdateRoom)
		api.DELETE("/rooms/:id", roomH.DeleteRoom)
		api.POST("/rooms/:id/join", roomH.JoinRoom)
		api.POST("/rooms/:id/leave", roomH.LeaveRoom)

		// Сообщения
		api.GET("/rooms/:id/messages", messageH.GetRoomMessages)
		api.POST("/rooms/:id/messages", messageH.SendMessage)
		api.POST("/rooms/:id/attachments", messageH.SendAttachment)

		// Вложения
		api.POST("/uploads", uploadH.Upload)

		// Мониторинг ёмкости
		api.GET("/capacity", capacityH.GetCapacity)
		api.POST("/capacity/cleanup", capacityH.TriggerCleanup)
	}

	// WebSocket-лента
	r.GET("/ws", middleware.WSIdentityMiddleware(), wsH.HandleWebSocket)
}
