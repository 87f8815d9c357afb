package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/shadow-chat/internal/models"
	"gorm.io/gorm"
)

func (d *Database) CreateRoom(room *models.Room) error {
	return d.db.Create(room).Error
}

func (d *Database) GetRoom(id uuid.UUID) (*models.Room, error) {
	var room models.Room
	if err := d.db.First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (d *Database) UpdateRoom(room *models.Room) error {
	return d.db.Save(room).Error
}

// DeleteRoom удаляет комнату вместе с участниками и сообщениями.
// Каскад продублирован явной транзакцией на случай базы без
// сконфигурированных FK-ограничений.
func (d *Database) DeleteRoom(id uuid.UUID) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Message{}, "room_id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Membership{}, "room_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Room{}, "id = ?", id).Error
	})
}

func (d *Database) PublicRooms() ([]models.Room, error) {
	var rooms []models.Room
	err := d.db.
		Where("is_public = ?", true).
		Order("created_at DESC").
		Find(&rooms).Error
	return rooms, err
}

func (d *Database) CountPublicRooms() (int64, error) {
	var count int64
	err := d.db.Model(&models.Room{}).Where("is_public = ?", true).Count(&count).Error
	return count, err
}

// UserRooms возвращает комнаты, в которых состоит пользователь,
// от недавно вступивших к старым.
func (d *Database) UserRooms(userID uuid.UUID) ([]models.Room, error) {
	var rooms []models.Room
	err := d.db.
		Joins("JOIN user_rooms ON user_rooms.room_id = rooms.id").
		Where("user_rooms.user_id = ?", userID).
		Order("user_rooms.created_at DESC").
		Find(&rooms).Error
	return rooms, err
}

func (d *Database) AddMembership(userID, roomID uuid.UUID) error {
	membership := models.Membership{
		UserID:    userID,
		RoomID:    roomID,
		CreatedAt: time.Now(),
	}
	return d.db.Create(&membership).Error
}

func (d *Database) RemoveMembership(userID, roomID uuid.UUID) error {
	return d.db.Delete(&models.Membership{}, "user_id = ? AND room_id = ?", userID, roomID).Error
}

func (d *Database) MembershipExists(userID, roomID uuid.UUID) (bool, error) {
	var count int64
	err := d.db.Model(&models.Membership{}).
		Where("user_id = ? AND room_id = ?", userID, roomID).
		Count(&count).Error
	return count > 0, err
}

func (d *Database) CountUserRooms(userID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.Model(&models.Membership{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (d *Database) RoomMemberCount(roomID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.Model(&models.Membership{}).Where("room_id = ?", roomID).Count(&count).Error
	return count, err
}
