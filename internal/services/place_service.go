package services

import (
	"context"
	"errors"

	"github.com/Adilet2209/Travel_Journal/internal/models"
	"github.com/Adilet2209/Travel_Journal/internal/repository"
	"github.com/Adilet2209/Travel_Journal/pkg/apperrors"
	"github.com/Adilet2209/Travel_Journal/pkg/logger"
)

const defaultCatalogLimit = 20

// PlaceUpdateRequest carries a partial update for a hotel, restaurant or
// activity. Absent fields keep their stored values.
type PlaceUpdateRequest struct {
	Name     *string  `json:"name"`
	Location *string  `json:"location"`
	Rating   *float64 `json:"rating"`
	Review   *string  `json:"review"`
	Liked    *bool    `json:"liked"`
}

// PlaceService handles item-level place operations and catalog lookups.
//
// Item-level update/delete intentionally performs no ownership check,
// matching the shipped behavior; flagged for a product decision before
// tightening (see DESIGN.md).
type PlaceService struct {
	repo *repository.PlaceRepository
}

// NewPlaceService creates a new instance of PlaceService.
func NewPlaceService(repo *repository.PlaceRepository) *PlaceService {
	return &PlaceService{repo: repo}
}

// UpdateHotel applies a field-by-field partial update to a hotel.
func (s *PlaceService) UpdateHotel(ctx context.Context, id uint, req PlaceUpdateRequest) (*models.Hotel, error) {
	hotel, err := s.repo.GetHotelByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("hotel not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get hotel", err)
	}

	if req.Name != nil {
		hotel.Name = *req.Name
	}
	if req.Location != nil {
		hotel.Location = *req.Location
	}
	if req.Rating != nil {
		hotel.Rating = req.Rating
	}
	if req.Review != nil {
		hotel.Review = req.Review
	}
	if req.Liked != nil {
		hotel.Liked = req.Liked
	}

	updated, err := s.repo.SaveHotel(ctx, hotel)
	if err != nil {
		return nil, apperrors.Internal("failed to update hotel", err)
	}

	logger.Log.WithField("hotel_id", id).Info("Hotel updated in service layer")
	return updated, nil
}

// DeleteHotel removes a hotel by id.
func (s *PlaceService) DeleteHotel(ctx context.Context, id uint) error {
	if _, err := s.repo.GetHotelByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("hotel not found")
		}
		return apperrors.Internal("failed to get hotel", err)
	}
	if err := s.repo.DeleteHotel(ctx, id); err != nil {
		return apperrors.Internal("failed to delete hotel", err)
	}
	logger.Log.WithField("hotel_id", id).Info("Hotel deleted in service layer")
	return nil
}

// GetHotels returns catalog hotel suggestions for a city, best-rated
// first. An unknown city yields an empty list, not an error.
func (s *PlaceService) GetHotels(ctx context.Context, city, country string, limit int) ([]models.Hotel, error) {
	catalogCity, err := s.catalogCity(ctx, city, country)
	if err != nil {
		return nil, err
	}
	if catalogCity == nil {
		return []models.Hotel{}, nil
	}

	hotels, err := s.repo.GetHotelsByCity(ctx, catalogCity.ID, normalizeLimit(limit))
	if err != nil {
		return nil, apperrors.Internal("failed to fetch hotels", err)
	}
	return hotels, nil
}

// UpdateRestaurant applies a field-by-field partial update to a restaurant.
func (s *PlaceService) UpdateRestaurant(ctx context.Context, id uint, req PlaceUpdateRequest) (*models.Restaurant, error) {
	restaurant, err := s.repo.GetRestaurantByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("restaurant not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get restaurant", err)
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.Location != nil {
		restaurant.Location = *req.Location
	}
	if req.Rating != nil {
		restaurant.Rating = req.Rating
	}
	if req.Review != nil {
		restaurant.Review = req.Review
	}
	if req.Liked != nil {
		restaurant.Liked = req.Liked
	}

	updated, err := s.repo.SaveRestaurant(ctx, restaurant)
	if err != nil {
		return nil, apperrors.Internal("failed to update restaurant", err)
	}

	logger.Log.WithField("restaurant_id", id).Info("Restaurant updated in service layer")
	return updated, nil
}

// DeleteRestaurant removes a restaurant by id.
func (s *PlaceService) DeleteRestaurant(ctx context.Context, id uint) error {
	if _, err := s.repo.GetRestaurantByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("restaurant not found")
		}
		return apperrors.Internal("failed to get restaurant", err)
	}
	if err := s.repo.DeleteRestaurant(ctx, id); err != nil {
		return apperrors.Internal("failed to delete restaurant", err)
	}
	logger.Log.WithField("restaurant_id", id).Info("Restaurant deleted in service layer")
	return nil
}

// GetRestaurants returns catalog restaurant suggestions for a city.
func (s *PlaceService) GetRestaurants(ctx context.Context, city, country string, limit int) ([]models.Restaurant, error) {
	catalogCity, err := s.catalogCity(ctx, city, country)
	if err != nil {
		return nil, err
	}
	if catalogCity == nil {
		return []models.Restaurant{}, nil
	}

	restaurants, err := s.repo.GetRestaurantsByCity(ctx, catalogCity.ID, normalizeLimit(limit))
	if err != nil {
		return nil, apperrors.Internal("failed to fetch restaurants", err)
	}
	return restaurants, nil
}

// UpdateActivity applies a field-by-field partial update to an activity.
func (s *PlaceService) UpdateActivity(ctx context.Context, id uint, req PlaceUpdateRequest) (*models.Activity, error) {
	activity, err := s.repo.GetActivityByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("activity not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get activity", err)
	}

	if req.Name != nil {
		activity.Name = *req.Name
	}
	if req.Location != nil {
		activity.Location = *req.Location
	}
	if req.Rating != nil {
		activity.Rating = req.Rating
	}
	if req.Review != nil {
		activity.Review = req.Review
	}
	if req.Liked != nil {
		activity.Liked = req.Liked
	}

	updated, err := s.repo.SaveActivity(ctx, activity)
	if err != nil {
		return nil, apperrors.Internal("failed to update activity", err)
	}

	logger.Log.WithField("activity_id", id).Info("Activity updated in service layer")
	return updated, nil
}

// DeleteActivity removes an activity by id.
func (s *PlaceService) DeleteActivity(ctx context.Context, id uint) error {
	if _, err := s.repo.GetActivityByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("activity not found")
		}
		return apperrors.Internal("failed to get activity", err)
	}
	if err := s.repo.DeleteActivity(ctx, id); err != nil {
		return apperrors.Internal("failed to delete activity", err)
	}
	logger.Log.WithField("activity_id", id).Info("Activity deleted in service layer")
	return nil
}

// GetActivities returns catalog activity suggestions for a city.
func (s *PlaceService) GetActivities(ctx context.Context, city, country string, limit int) ([]models.Activity, error) {
	catalogCity, err := s.catalogCity(ctx, city, country)
	if err != nil {
		return nil, err
	}
	if catalogCity == nil {
		return []models.Activity{}, nil
	}

	activities, err := s.repo.GetActivitiesByCity(ctx, catalogCity.ID, normalizeLimit(limit))
	if err != nil {
		return nil, apperrors.Internal("failed to fetch activities", err)
	}
	return activities, nil
}

// catalogCity validates the lookup parameters and resolves the catalog
// city row, nil when no catalog covers the requested city.
func (s *PlaceService) catalogCity(ctx context.Context, city, country string) (*models.City, error) {
	if city == "" || country == "" {
		return nil, apperrors.Validation("city and country are required")
	}

	catalogCity, err := s.repo.GetCatalogCity(ctx, city, country)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Internal("failed to look up catalog city", err)
	}
	return catalogCity, nil
}

func normalizeLimit(limit int) int {
	if limit < 1 || limit > defaultCatalogLimit {
		return defaultCatalogLimit
	}
	return limit
}
