package models

import "time"

// User represents a registered account in the travel journal.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	HashedPassword string    `json:"-" gorm:"not null"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	Trips []Trip `json:"-" gorm:"foreignKey:UserID"`
}
