package repository

import (
	"context"
	"errors"

	"github.com/Adilet2209/Travel_Journal/internal/models"
	"github.com/Adilet2209/Travel_Journal/pkg/logger"
	"gorm.io/gorm"
)

// TripFilter narrows a trip listing. The zero value lists public,
// non-draft trips.
type TripFilter struct {
	DraftsOnly bool
	OwnerOnly  bool // list everything the user owns, drafts included
	UserID     uint // 0 = any user
	Page       int
	Limit      int
}

// TripRepository handles database operations related to trips and their
// owned city/place rows.
type TripRepository struct {
	db *gorm.DB
}

// NewTripRepository creates a new instance of TripRepository.
func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

// CreateTrip inserts a trip together with its whole city/place tree.
func (r *TripRepository) CreateTrip(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	if err := r.db.WithContext(ctx).Create(trip).Error; err != nil {
		logger.Log.WithError(err).Error("Failed to insert trip")
		return nil, err
	}

	logger.Log.WithField("trip_id", trip.ID).Info("Trip created successfully")
	return trip, nil
}

// GetTripByID fetches a trip with its user and full child tree, regardless
// of visibility. Callers apply the public/draft gate.
func (r *TripRepository) GetTripByID(ctx context.Context, id uint) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("CitiesData").
		Preload("CitiesData.Hotels").
		Preload("CitiesData.Restaurants").
		Preload("CitiesData.Activities").
		First(&trip, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("trip_id", id).Error("Failed to find trip by ID")
		return nil, err
	}
	return &trip, nil
}

// GetTrips returns one page of trips matching the filter, newest first,
// along with the total match count. Catalog trips never appear.
func (r *TripRepository) GetTrips(ctx context.Context, filter TripFilter) ([]models.Trip, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Trip{}).Where("is_catalog = ?", false)

	switch {
	case filter.DraftsOnly:
		query = query.Where("is_draft = ?", true)
	case filter.OwnerOnly:
		// no visibility clause: the owner sees drafts and shared alike
	default:
		query = query.Where("is_public = ? AND is_draft = ?", true, false)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Log.WithError(err).Error("Failed to count trips")
		return nil, 0, err
	}

	var trips []models.Trip
	err := query.
		Preload("User").
		Preload("CitiesData").
		Preload("CitiesData.Hotels").
		Preload("CitiesData.Restaurants").
		Preload("CitiesData.Activities").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&trips).Error
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch trips")
		return nil, 0, err
	}

	logger.Log.WithField("count", len(trips)).Info("Trips fetched successfully")
	return trips, total, nil
}

// ReplaceTrip atomically updates the trip's scalar fields and swaps its
// entire child tree for the supplied one. An error at any step rolls the
// whole operation back, leaving the previous children intact.
func (r *TripRepository) ReplaceTrip(ctx context.Context, id uint, fields map[string]interface{}, cities []models.City) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Trip{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}

		if err := deleteTripChildren(tx, id); err != nil {
			return err
		}

		for i := range cities {
			cities[i].ID = 0
			cities[i].TripID = id
		}
		if len(cities) > 0 {
			if err := tx.Create(&cities).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Log.WithError(err).WithField("trip_id", id).Error("Failed to replace trip")
		return err
	}

	logger.Log.WithField("trip_id", id).Info("Trip replaced successfully")
	return nil
}

// DeleteTrip removes a trip and cascades to all of its cities and their
// places inside one transaction.
func (r *TripRepository) DeleteTrip(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteTripChildren(tx, id); err != nil {
			return err
		}
		return tx.Delete(&models.Trip{}, id).Error
	})
	if err != nil {
		logger.Log.WithError(err).WithField("trip_id", id).Error("Failed to delete trip")
		return err
	}

	logger.Log.WithField("trip_id", id).Info("Trip deleted successfully")
	return nil
}

// deleteTripChildren removes every city row of the trip together with the
// hotels/restaurants/activities hanging off them. Explicit deletes rather
// than relying on FK cascade so the behavior is identical across drivers.
func deleteTripChildren(tx *gorm.DB, tripID uint) error {
	var cityIDs []uint
	if err := tx.Model(&models.City{}).Where("trip_id = ?", tripID).Pluck("id", &cityIDs).Error; err != nil {
		return err
	}
	if len(cityIDs) == 0 {
		return nil
	}

	if err := tx.Where("city_id IN ?", cityIDs).Delete(&models.Hotel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("city_id IN ?", cityIDs).Delete(&models.Restaurant{}).Error; err != nil {
		return err
	}
	if err := tx.Where("city_id IN ?", cityIDs).Delete(&models.Activity{}).Error; err != nil {
		return err
	}
	return tx.Where("trip_id = ?", tripID).Delete(&models.City{}).Error
}
