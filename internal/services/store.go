package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/shadow-chat/internal/models"
)

// Узкие интерфейсы над слоем database — сервисы не привязаны
// к конкретному стору, в тестах подставляются in-memory реализации.

type MessageStore interface {
	SaveMessage(message *models.Message) error
	RecentMessages(roomID uuid.UUID, limit int) ([]models.Message, error)
	OlderMessages(roomID uuid.UUID, before time.Time, limit int) ([]models.Message, error)
	CountMessages() (int64, error)
	CountAttachmentMessages() (int64, error)
	DeleteMessagesBefore(cutoff time.Time) (int64, error)
	OldestMessageIDs(limit int) ([]uuid.UUID, error)
	DeleteMessagesByID(ids []uuid.UUID) (int64, error)
	MessagesTableSize() (int64, error)
}

type RoomStore interface {
	CreateRoom(room *models.Room) error
	GetRoom(id uuid.UUID) (*models.Room, error)
	UpdateRoom(room *models.Room) error
	DeleteRoom(id uuid.UUID) error
	PublicRooms() ([]models.Room, error)
	CountPublicRooms() (int64, error)
	UserRooms(userID uuid.UUID) ([]models.Room, error)
	AddMembership(userID, roomID uuid.UUID) error
	RemoveMembership(userID, roomID uuid.UUID) error
	MembershipExists(userID, roomID uuid.UUID) (bool, error)
	CountUserRooms(userID uuid.UUID) (int64, error)
	RoomMemberCount(roomID uuid.UUID) (int64, error)
}

type UserStore interface {
	UpsertUser(user *models.User) error
	GetUser(id uuid.UUID) (*models.User, error)
	UpdateNickname(id uuid.UUID, nickname string) error
	CountUsers() (int64, error)
}

// Broadcaster рассылает событие всем подписчикам комнаты.
// Реализуется websocket-хабом.
type Broadcaster interface {
	SendToRoom(roomID uuid.UUID, message []byte)
}
