package services

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/shadow-chat/internal/models"
)

// Лимиты комнат
const (
	MaxTotalRooms  = 10 // публичных комнат всего
	MaxUserRooms   = 3  // комнат на пользователя
	maxRoomNameLen = 50
)

// RoomUpdate — частичное обновление: nil-поля не трогаются.
type RoomUpdate struct {
	Name        *string
	Description *string
	IsPublic    *bool
}

// RoomService владеет инвариантами членства: глобальный лимит комнат,
// лимит на пользователя, мутации только создателем.
// Проверки read-then-act не держат блокировок; гонку повторного
// вступления закрывает составной ключ user_rooms.
type RoomService struct {
	rooms RoomStore
}

func NewRoomService(rooms RoomStore) *RoomService {
	return &RoomService{rooms: rooms}
}

// CreateRoom создает комнату и вступает в неё создателем.
// Вставка комнаты и членства не атомарна: если вступление упало,
// комната остаётся без участников.
func (s *RoomService) CreateRoom(userID uuid.UUID, name, description string) (*models.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrRoomNameEmpty
	}
	if len([]rune(name)) > maxRoomNameLen {
		return nil, ErrRoomNameTooLong
	}

	total, err := s.rooms.CountPublicRooms()
	if err != nil || total >= MaxTotalRooms {
		if err != nil {
			log.Printf("Failed to count public rooms: %v", err)
		}
		return nil, ErrRoomLimit
	}

	joined, err := s.rooms.CountUserRooms(userID)
	if err != nil {
		log.Printf("Failed to count user rooms: %v", err)
		return nil, ErrUserRoomLimit
	}
	if joined >= MaxUserRooms {
		return nil, ErrUserRoomLimit
	}

	room := &models.Room{
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatorID:   userID,
		IsPublic:    true,
		CreatedAt:   time.Now(),
	}

	if err := s.rooms.CreateRoom(room); err != nil {
		log.Printf("Failed to create room: %v", err)
		return nil, err
	}

	if err := s.rooms.AddMembership(userID, room.ID); err != nil {
		log.Printf("Failed to join created room: %v", err)
		return nil, err
	}

	return room, nil
}

// JoinRoom вступает в комнату. Проверка существующего членства —
// защита от повторного вступления, не upsert.
func (s *RoomService) JoinRoom(userID, roomID uuid.UUID) error {
	exists, err := s.rooms.MembershipExists(userID, roomID)
	if err != nil {
		log.Printf("Failed to check membership: %v", err)
		return err
	}
	if exists {
		return ErrAlreadyJoined
	}

	joined, err := s.rooms.CountUserRooms(userID)
	if err != nil {
		log.Printf("Failed to count user rooms: %v", err)
		return err
	}
	if joined >= MaxUserRooms {
		return ErrUserRoomLimit
	}

	return s.rooms.AddMembership(userID, roomID)
}

// LeaveRoom выходит из комнаты без каких-либо проверок.
func (s *RoomService) LeaveRoom(userID, roomID uuid.UUID) error {
	return s.rooms.RemoveMembership(userID, roomID)
}

// DeleteRoom удаляет комнату. Разрешено только создателю,
// членства и сообщения сносятся каскадом в сторе.
func (s *RoomService) DeleteRoom(userID, roomID uuid.UUID) error {
	room, err := s.rooms.GetRoom(roomID)
	if err != nil {
		return ErrRoomNotFound
	}

	if room.CreatorID != userID {
		return ErrNotCreator
	}

	return s.rooms.DeleteRoom(roomID)
}

// UpdateRoom применяет частичное обновление. Разрешено только создателю.
func (s *RoomService) UpdateRoom(roomID, userID uuid.UUID, updates RoomUpdate) (*models.Room, error) {
	room, err := s.rooms.GetRoom(roomID)
	if err != nil {
		return nil, ErrRoomNotFound
	}

	if room.CreatorID != userID {
		return nil, ErrNotCreator
	}

	if updates.Name != nil {
		name := strings.TrimSpace(*updates.Name)
		if name == "" {
			return nil, ErrRoomNameEmpty
		}
		if len([]rune(name)) > maxRoomNameLen {
			return nil, ErrRoomNameTooLong
		}
		room.Name = name
	}
	if updates.Description != nil {
		room.Description = strings.TrimSpace(*updates.Description)
	}
	if updates.IsPublic != nil {
		room.IsPublic = *updates.IsPublic
	}

	if err := s.rooms.UpdateRoom(room); err != nil {
		log.Printf("Failed to update room: %v", err)
		return nil, err
	}

	return room, nil
}

func (s *RoomService) GetRoom(roomID uuid.UUID) (*models.Room, error) {
	room, err := s.rooms.GetRoom(roomID)
	if err != nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (s *RoomService) PublicRooms() ([]models.Room, error) {
	return s.rooms.PublicRooms()
}

func (s *RoomService) UserRooms(userID uuid.UUID) ([]models.Room, error) {
	return s.rooms.UserRooms(userID)
}

func (s *RoomService) RoomMemberCount(roomID uuid.UUID) (int64, error) {
	return s.rooms.RoomMemberCount(roomID)
}

func (s *RoomService) IsMember(userID, roomID uuid.UUID) bool {
	exists, err := s.rooms.MembershipExists(userID, roomID)
	if err != nil {
		log.Printf("Failed to check membership: %v", err)
		return false
	}
	return exists
}
