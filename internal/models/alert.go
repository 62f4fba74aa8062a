package models

import "time"

const (
	AlertSeverityWarning   = "warning"
	AlertSeverityEmergency = "emergency"
)

// Alert is a persisted safety notice raised by the submission rules.
type Alert struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"not null;index" json:"user_id"`
	Severity  string    `gorm:"not null" json:"severity"`
	Reason    string    `gorm:"not null" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
