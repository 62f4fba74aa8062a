package db

import "gorm.io/gorm"

type Repositories struct {
	Users  *UserRepository
	Logs   *LogEntryRepository
	Alerts *AlertRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:  NewUserRepository(database),
		Logs:   NewLogEntryRepository(database),
		Alerts: NewAlertRepository(database),
	}
}
