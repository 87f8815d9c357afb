package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/shadow-chat/internal/models"
)

func (d *Database) SaveMessage(message *models.Message) error {
	return d.db.Create(message).Error
}

// RecentMessages получает последние limit сообщений комнаты.
// Возвращает в порядке от старых к новым.
func (d *Database) RecentMessages(roomID uuid.UUID, limit int) ([]models.Message, error) {
	var messages []models.Message

	err := d.db.
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	reverseMessages(messages)

	return messages, nil
}

// OlderMessages — ленивая подгрузка истории до указанного времени.
func (d *Database) OlderMessages(roomID uuid.UUID, before time.Time, limit int) ([]models.Message, error) {
	var messages []models.Message

	err := d.db.
		Where("room_id = ? AND created_at < ?", roomID, before).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	reverseMessages(messages)

	return messages, nil
}

func (d *Database) CountMessages() (int64, error) {
	var count int64
	err := d.db.Model(&models.Message{}).Count(&count).Error
	return count, err
}

func (d *Database) CountAttachmentMessages() (int64, error) {
	var count int64
	err := d.db.Model(&models.Message{}).
		Where("type IN ?", []string{models.MessageTypeImage, models.MessageTypeVideo}).
		Count(&count).Error
	return count, err
}

// DeleteMessagesBefore удаляет все сообщения старше cutoff.
func (d *Database) DeleteMessagesBefore(cutoff time.Time) (int64, error) {
	res := d.db.Where("created_at < ?", cutoff).Delete(&models.Message{})
	return res.RowsAffected, res.Error
}

// OldestMessageIDs возвращает ID самых старых limit сообщений.
// Вторичная сортировка по id делает выбор детерминированным
// при одинаковых created_at.
func (d *Database) OldestMessageIDs(limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := d.db.Model(&models.Message{}).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

func (d *Database) DeleteMessagesByID(ids []uuid.UUID) (int64, error) {
	res := d.db.Where("id IN ?", ids).Delete(&models.Message{})
	return res.RowsAffected, res.Error
}

func reverseMessages(messages []models.Message) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
