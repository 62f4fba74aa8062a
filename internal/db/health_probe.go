package db

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// HealthProbe reports whether the backing database currently accepts
// connections. The offline queue's watcher polls it to decide when to
// replay buffered writes.
type HealthProbe struct {
	database *gorm.DB
	timeout  time.Duration
}

func NewHealthProbe(database *gorm.DB) *HealthProbe {
	return &HealthProbe{database: database, timeout: 2 * time.Second}
}

func (probe *HealthProbe) Online() bool {
	sqlDB, err := probe.database.DB()
	if err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), probe.timeout)
	defer cancel()
	return sqlDB.PingContext(ctx) == nil
}
