package models

import (
	"time"

	"github.com/google/uuid"
)

// Типы сообщений
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeVideo = "video"
)

// Message неизменяемо после создания, его можно только удалить.
// Для image/video в Content лежит URL файла в объектном хранилище.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RoomID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	Nickname  string    `gorm:"size:20;not null"`
	Type      string    `gorm:"default:'text'"`
	Content   string    `gorm:"not null"`
	FileSize  *int64
	CreatedAt time.Time `gorm:"index"`
}
