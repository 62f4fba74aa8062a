package db

import (
	"github.com/astravine/mirelle/internal/models"
	"gorm.io/gorm"
)

type AlertRepository struct {
	database *gorm.DB
}

func NewAlertRepository(database *gorm.DB) *AlertRepository {
	return &AlertRepository{database: database}
}

func (repo *AlertRepository) Create(alert *models.Alert) error {
	return repo.database.Create(alert).Error
}

func (repo *AlertRepository) ListByUser(userID string) ([]models.Alert, error) {
	alerts := make([]models.Alert, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}
