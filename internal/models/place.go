package models

import "time"

// Hotel, Restaurant and Activity share the same shape: a place visited in a
// city, optionally rated and reviewed. Liked is tri-state: true, false, or
// nil when no opinion was recorded.

type Hotel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Location  string    `json:"location"`
	Rating    *float64  `json:"rating"`
	Review    *string   `json:"review"`
	Liked     *bool     `json:"liked"`
	CityID    uint      `json:"cityId" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Restaurant struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Location  string    `json:"location"`
	Rating    *float64  `json:"rating"`
	Review    *string   `json:"review"`
	Liked     *bool     `json:"liked"`
	CityID    uint      `json:"cityId" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Activity struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Location  string    `json:"location"`
	Rating    *float64  `json:"rating"`
	Review    *string   `json:"review"`
	Liked     *bool     `json:"liked"`
	CityID    uint      `json:"cityId" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
