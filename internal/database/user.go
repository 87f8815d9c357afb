package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/shadow-chat/internal/models"
	"gorm.io/gorm/clause"
)

// UpsertUser сохраняет пользователя; повторная вставка с тем же ID
// обновляет только никнейм.
func (d *Database) UpsertUser(user *models.User) error {
	return d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"nickname"}),
	}).Create(user).Error
}

func (d *Database) GetUser(id uuid.UUID) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) UpdateNickname(id uuid.UUID, nickname string) error {
	return d.db.Model(&models.User{}).Where("id = ?", id).Update("nickname", nickname).Error
}

func (d *Database) CountUsers() (int64, error) {
	var count int64
	err := d.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
