package models

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string    `gorm:"size:50;not null"`
	Description string
	CreatorID   uuid.UUID `gorm:"type:uuid;not null"`
	IsPublic    bool      `gorm:"default:true"`
	CreatedAt   time.Time

	// Связи: удаление комнаты каскадно сносит участников и сообщения
	Members  []Membership `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	Messages []Message    `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}
