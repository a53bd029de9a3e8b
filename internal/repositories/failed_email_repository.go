package repositories

import (
	"errors"

	"microblog/internal/models"

	"gorm.io/gorm"
)

var ErrFailedEmailNotFound = errors.New("failed email not found")

// FailedEmailRepository хранит письма, исчерпавшие попытки отправки.
type FailedEmailRepository interface {
	Create(db *gorm.DB, msg *models.FailedEmail) error
	List(db *gorm.DB, limit int) ([]models.FailedEmail, error)
	Delete(db *gorm.DB, id string) error
}

type FailedEmailRepositoryImpl struct{}

func NewFailedEmailRepository() FailedEmailRepository {
	return &FailedEmailRepositoryImpl{}
}

func (r *FailedEmailRepositoryImpl) Create(db *gorm.DB, msg *models.FailedEmail) error {
	return db.Create(msg).Error
}

func (r *FailedEmailRepositoryImpl) List(db *gorm.DB, limit int) ([]models.FailedEmail, error) {
	var items []models.FailedEmail
	err := db.Order("created_at ASC").Limit(limit).Find(&items).Error
	return items, err
}

func (r *FailedEmailRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.FailedEmail{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFailedEmailNotFound
	}
	return nil
}
