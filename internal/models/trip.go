package models

import (
	"time"

	"gorm.io/datatypes"
)

// Trip is the aggregate root of the journal: a titled journey over a set of
// countries, composed of cities with their hotels, restaurants and
// activities.
//
// A trip is either a draft (private scratch space, isDraft=true) or shared
// (public, requires start/end dates). Catalog trips are a third, internal
// breed: read-only lookup datasets never shown in listings.
//
// Countries and Cities are denormalized jsonb arrays of names, set together
// with the CitiesData rows at write time. Dates travel as ISO strings the
// way the browser client submits them.
type Trip struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	StartDate   string         `json:"startDate"`
	EndDate     string         `json:"endDate"`
	Countries   datatypes.JSON `json:"countries"`
	Cities      datatypes.JSON `json:"cities"`
	IsPublic    bool           `json:"isPublic"`
	IsDraft     bool           `json:"isDraft"`
	IsCatalog   bool           `json:"isCatalog" gorm:"index"`
	UserID      uint           `json:"userId" gorm:"index;not null"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	User       User   `json:"user" gorm:"foreignKey:UserID"`
	CitiesData []City `json:"citiesData" gorm:"foreignKey:TripID"`
}

// City belongs to exactly one trip and owns its child places. It has no
// independent lifecycle: city rows are created and deleted only as part of
// a trip write.
type City struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Country   string    `json:"country"`
	TripID    uint      `json:"tripId" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Hotels      []Hotel      `json:"hotels" gorm:"foreignKey:CityID"`
	Restaurants []Restaurant `json:"restaurants" gorm:"foreignKey:CityID"`
	Activities  []Activity   `json:"activities" gorm:"foreignKey:CityID"`
}
