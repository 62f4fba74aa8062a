package db

import (
	"time"

	"github.com/astravine/mirelle/internal/models"
	"gorm.io/gorm"
)

type LogEntryRepository struct {
	database *gorm.DB
}

func NewLogEntryRepository(database *gorm.DB) *LogEntryRepository {
	return &LogEntryRepository{database: database}
}

func (repo *LogEntryRepository) Create(entry *models.LogEntry) error {
	return repo.database.Create(entry).Error
}

// ListRecentByUser returns up to limit entries for the user, most recent
// first. Risk scoring reads 90, phase estimation 30, chat context 5.
func (repo *LogEntryRepository) ListRecentByUser(userID string, limit int) ([]models.LogEntry, error) {
	entries := make([]models.LogEntry, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("log_date DESC, id DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListSinceByUser returns entries dated on or after cutoff, oldest first.
func (repo *LogEntryRepository) ListSinceByUser(userID string, cutoff time.Time) ([]models.LogEntry, error) {
	entries := make([]models.LogEntry, 0)
	if err := repo.database.
		Where("user_id = ? AND log_date >= ?", userID, cutoff).
		Order("log_date ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
