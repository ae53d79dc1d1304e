package models

import "time"

// APIKey grants read access to the public catalog. Only the SHA-256 of the
// key is stored.
type APIKey struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	KeyHash   []byte    `json:"-" gorm:"uniqueIndex;not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}
