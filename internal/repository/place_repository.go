package repository

import (
	"context"
	"errors"

	"github.com/Adilet2209/Travel_Journal/internal/models"
	"github.com/Adilet2209/Travel_Journal/pkg/logger"
	"gorm.io/gorm"
)

// Catalog children are ordered best-rated first; unrated rows sink to the
// bottom and ties break alphabetically. The expression is portable across
// postgres and sqlite.
const catalogOrder = "rating IS NULL, rating DESC, name ASC"

// PlaceRepository handles database operations for hotels, restaurants and
// activities, both as direct rows and as catalog lookups.
type PlaceRepository struct {
	db *gorm.DB
}

// NewPlaceRepository creates a new instance of PlaceRepository.
func NewPlaceRepository(db *gorm.DB) *PlaceRepository {
	return &PlaceRepository{db: db}
}

// GetCatalogCity finds a city belonging to a catalog trip by name and
// country, case-insensitively. Returns ErrNotFound when no catalog covers
// the city.
func (r *PlaceRepository) GetCatalogCity(ctx context.Context, name, country string) (*models.City, error) {
	var city models.City
	err := r.db.WithContext(ctx).
		Joins("JOIN trips ON trips.id = cities.trip_id").
		Where("trips.is_catalog = ?", true).
		Where("LOWER(cities.name) = LOWER(?)", name).
		Where("LOWER(cities.country) = LOWER(?)", country).
		First(&city).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("city", name).Error("Failed to look up catalog city")
		return nil, err
	}
	return &city, nil
}

// --- Hotels ---

func (r *PlaceRepository) GetHotelByID(ctx context.Context, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	err := r.db.WithContext(ctx).First(&hotel, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("hotel_id", id).Error("Failed to find hotel")
		return nil, err
	}
	return &hotel, nil
}

func (r *PlaceRepository) SaveHotel(ctx context.Context, hotel *models.Hotel) (*models.Hotel, error) {
	if err := r.db.WithContext(ctx).Save(hotel).Error; err != nil {
		logger.Log.WithError(err).WithField("hotel_id", hotel.ID).Error("Failed to save hotel")
		return nil, err
	}
	return hotel, nil
}

func (r *PlaceRepository) DeleteHotel(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Hotel{}, id).Error; err != nil {
		logger.Log.WithError(err).WithField("hotel_id", id).Error("Failed to delete hotel")
		return err
	}
	return nil
}

func (r *PlaceRepository) GetHotelsByCity(ctx context.Context, cityID uint, limit int) ([]models.Hotel, error) {
	var hotels []models.Hotel
	err := r.db.WithContext(ctx).
		Where("city_id = ?", cityID).
		Order(catalogOrder).
		Limit(limit).
		Find(&hotels).Error
	if err != nil {
		logger.Log.WithError(err).WithField("city_id", cityID).Error("Failed to fetch hotels")
		return nil, err
	}
	return hotels, nil
}

// --- Restaurants ---

func (r *PlaceRepository) GetRestaurantByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.WithContext(ctx).First(&restaurant, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("restaurant_id", id).Error("Failed to find restaurant")
		return nil, err
	}
	return &restaurant, nil
}

func (r *PlaceRepository) SaveRestaurant(ctx context.Context, restaurant *models.Restaurant) (*models.Restaurant, error) {
	if err := r.db.WithContext(ctx).Save(restaurant).Error; err != nil {
		logger.Log.WithError(err).WithField("restaurant_id", restaurant.ID).Error("Failed to save restaurant")
		return nil, err
	}
	return restaurant, nil
}

func (r *PlaceRepository) DeleteRestaurant(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Restaurant{}, id).Error; err != nil {
		logger.Log.WithError(err).WithField("restaurant_id", id).Error("Failed to delete restaurant")
		return err
	}
	return nil
}

func (r *PlaceRepository) GetRestaurantsByCity(ctx context.Context, cityID uint, limit int) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).
		Where("city_id = ?", cityID).
		Order(catalogOrder).
		Limit(limit).
		Find(&restaurants).Error
	if err != nil {
		logger.Log.WithError(err).WithField("city_id", cityID).Error("Failed to fetch restaurants")
		return nil, err
	}
	return restaurants, nil
}

// --- Activities ---

func (r *PlaceRepository) GetActivityByID(ctx context.Context, id uint) (*models.Activity, error) {
	var activity models.Activity
	err := r.db.WithContext(ctx).First(&activity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("activity_id", id).Error("Failed to find activity")
		return nil, err
	}
	return &activity, nil
}

func (r *PlaceRepository) SaveActivity(ctx context.Context, activity *models.Activity) (*models.Activity, error) {
	if err := r.db.WithContext(ctx).Save(activity).Error; err != nil {
		logger.Log.WithError(err).WithField("activity_id", activity.ID).Error("Failed to save activity")
		return nil, err
	}
	return activity, nil
}

func (r *PlaceRepository) DeleteActivity(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Activity{}, id).Error; err != nil {
		logger.Log.WithError(err).WithField("activity_id", id).Error("Failed to delete activity")
		return err
	}
	return nil
}

func (r *PlaceRepository) GetActivitiesByCity(ctx context.Context, cityID uint, limit int) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.WithContext(ctx).
		Where("city_id = ?", cityID).
		Order(catalogOrder).
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		logger.Log.WithError(err).WithField("city_id", cityID).Error("Failed to fetch activities")
		return nil, err
	}
	return activities, nil
}
