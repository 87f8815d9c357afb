package models

import (
	"time"

	"github.com/google/uuid"
)

// User — анонимная личность. ID генерируется на клиенте,
// сервер только зеркалирует его в таблицу users.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nickname  string    `gorm:"size:20;not null"`
	CreatedAt time.Time
}
