package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type SendAttachmentRequest struct {
	URL      string `json:"url" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=image video"`
	FileSize int64  `json:"file_size"`
}

type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	UserID    uuid.UUID `json:"user_id"`
	Nickname  string    `json:"nickname"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	FileSize  *int64    `json:"file_size,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MessagePayload — тело текстового сообщения в WebSocket-событии
type MessagePayload struct {
	Content string `json:"content"`
}
