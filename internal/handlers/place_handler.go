package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Adilet2209/Travel_Journal/internal/config"
	"github.com/Adilet2209/Travel_Journal/internal/services"
	"github.com/Adilet2209/Travel_Journal/pkg/apperrors"
	log "github.com/sirupsen/logrus"
)

// PlaceHandler handles item-level hotel/restaurant/activity requests and
// the catalog suggestion lookups.
type PlaceHandler struct {
	Service *services.PlaceService
	Config  *config.Config
}

// NewPlaceHandler creates a new instance of PlaceHandler.
func NewPlaceHandler(service *services.PlaceService, cfg *config.Config) *PlaceHandler {
	return &PlaceHandler{
		Service: service,
		Config:  cfg,
	}
}

func (h *PlaceHandler) decodeUpdate(w http.ResponseWriter, r *http.Request) (uint, services.PlaceUpdateRequest, bool) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err, h.Config.IsProduction())
		return 0, services.PlaceUpdateRequest{}, false
	}
	var req services.PlaceUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode place update request")
		respondError(w, apperrors.Validation("invalid request payload"), h.Config.IsProduction())
		return 0, services.PlaceUpdateRequest{}, false
	}
	return id, req, true
}

// --- Hotels ---

// GetHotelsHandler returns catalog hotel suggestions for a city.
func (h *PlaceHandler) GetHotelsHandler(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Service.GetHotels(r.Context(),
		r.URL.Query().Get("city"), r.URL.Query().Get("country"), queryInt(r, "limit", 0))
	if err != nil {
		respondError(w, err, h.Config.IsProduction())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"hotels": hotels})
}

// UpdateHotelHandler applies a partial update to one hotel.
func (h *PlaceHandler) UpdateHotelHandler(w http.ResponseWriter, r *http.Request) {
	id, req, ok := h.decodeUpdate(w, r)
	if !ok {
		return
	}
	hotel, err := h.Service.UpdateHotel(r.Context(), id, req)
	if err != nil {
		log.WithField("hotelID", id).WithError(err).Warn("Failed to update hotel")
		respondError(w, err, h.Config.IsProduction())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"hotel": hotel})
}

// DeleteHotelHandler deletes one hotel by id.
func (h *PlaceHandler) DeleteHotelHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err, h.Config.IsProduction())
		return
	}
	if err := h.Service.DeleteHotel(r.Context(), id); err != nil {
		log.WithField("hotelID", id).WithError(err).Warn("Failed to delete hotel")
		respondError(w, err, h.Config.IsProduction())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "hotel deleted"})
}

// --- Restaurants ---

// GetRestaurantsHandler returns catalog restaurant suggestions for a city.
func (h *PlaceHandler) GetRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Service.GetRestaurants(r.Context(),
		r.URL.Query().Get("city"), r.URL.Query().Get("country"), queryInt(r, "limit", 0))
	if err != nil {
		respondError(w, err, h.Config.IsProduction())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"restaurants": restaurants})
}

// UpdateRestaurantHandler applies a partial update to one restaurant.
func (h *PlaceHandler) UpdateRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, req, ok := h.decodeUpdate(w, r)
	if !ok {
		return
	}
	restaurant, err := h.Service.UpdateRestaurant(r.Context(), id, req)
	if err != nil {
		log.WithField("restaurantID", id).WithError(err).Warn("Failed to update restaurant")
		respondError(w, err, h.Config.IsProduction())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"restaurant": restaurant})
}

// DeleteRestaurantHandler deletes one restaurant by id.
func (h *PlaceHandler) DeleteRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err, h.Config.IsProduction())
		return
	}
	if err := h.Service.DeleteRestaurant(r.Context(), id); err != nil {
		log.WithField("restaurantID", id).WithError(err).Warn("Failed to delete restaurant")
		respondError(w, err, h.Config.IsProduction())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "restaurant deleted"})
}

// --- Activities ---

// GetActivitiesHandler returns catalog activity suggestions for a city.
func (h *PlaceHandler) GetActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	activities, err := h.Service.GetActivities(r.Context(),
		r.URL.Query().Get("city"), r.URL.Query().Get("country"), queryInt(r, "limit", 0))
	if err != nil {
		respondError(w, err, h.Config.IsProduction())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"activities": activities})
}

// UpdateActivityHandler applies a partial update to one activity.
func (h *PlaceHandler) UpdateActivityHandler(w http.ResponseWriter, r *http.Request) {
	id, req, ok := h.decodeUpdate(w, r)
	if !ok {
		return
	}
	activity, err := h.Service.UpdateActivity(r.Context(), id, req)
	if err != nil {
		log.WithField("activityID", id).WithError(err).Warn("Failed to update activity")
		respondError(w, err, h.Config.IsProduction())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"activity": activity})
}

// DeleteActivityHandler deletes one activity by id.
func (h *PlaceHandler) DeleteActivityHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err, h.Config.IsProduction())
		return
	}
	if err := h.Service.DeleteActivity(r.Context(), id); err != nil {
		log.WithField("activityID", id).WithError(err).Warn("Failed to delete activity")
		respondError(w, err, h.Config.IsProduction())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "activity deleted"})
}
