package models

import "time"

// Cycle markers recognised inside symptom payloads.
const (
	TagPeriodStart = "period_start"
	TagPeriodEnd   = "period_end"
)

// LogEntry is one user-submitted or chat-extracted symptom record for a
// calendar date. Entries are append-only; the system never updates or
// deletes them.
type LogEntry struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	UserID    string         `gorm:"not null;index:idx_log_entries_user_date" json:"user_id"`
	LogDate   time.Time      `gorm:"type:date;not null;index:idx_log_entries_user_date" json:"log_date"`
	Symptoms  SymptomPayload `gorm:"type:text;not null" json:"symptoms"`
	CreatedAt time.Time      `json:"-"`
}
