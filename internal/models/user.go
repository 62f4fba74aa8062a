package models

import "time"

// User is an anonymous profile. The ID is a client-minted opaque identifier;
// there is no authentication.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Language  string    `gorm:"not null;default:en" json:"language"`
	FirstName string    `gorm:"not null;default:''" json:"first_name"`
	CreatedAt time.Time `json:"-"`
}
