package db

import (
	"github.com/astravine/mirelle/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

// UpsertLanguage creates the anonymous profile on first contact and keeps
// its language preference current afterwards.
func (repo *UserRepository) UpsertLanguage(userID string, language string) error {
	user := models.User{ID: userID, Language: language}
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"language"}),
	}).Create(&user).Error
}

// UpsertProfile additionally records the display name the chat collects.
func (repo *UserRepository) UpsertProfile(userID string, language string, firstName string) error {
	if firstName == "" {
		return repo.UpsertLanguage(userID, language)
	}
	user := models.User{ID: userID, Language: language, FirstName: firstName}
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"language", "first_name"}),
	}).Create(&user).Error
}

func (repo *UserRepository) FindByID(userID string) (models.User, bool, error) {
	user := models.User{}
	result := repo.database.Where("id = ?", userID).Limit(1).Find(&user)
	if result.Error != nil {
		return models.User{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.User{}, false, nil
	}
	return user, true, nil
}
