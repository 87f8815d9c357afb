package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership — запись о вступлении пользователя в комнату.
// Составной первичный ключ закрывает гонку повторного вступления
// на уровне базы, а не только клиентской проверкой.
type Membership struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

func (Membership) TableName() string {
	return "user_rooms"
}
