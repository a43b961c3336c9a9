package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Adilet2209/Travel_Journal/internal/config"
	"github.com/Adilet2209/Travel_Journal/internal/services"
	"github.com/Adilet2209/Travel_Journal/pkg/apperrors"
	log "github.com/sirupsen/logrus"
)

// TripHandler handles HTTP requests related to trips.
type TripHandler struct {
	Service *services.TripService
	Config  *config.Config
}

// NewTripHandler creates a new instance of TripHandler.
func NewTripHandler(service *services.TripService, cfg *config.Config) *TripHandler {
	return &TripHandler{
		Service: service,
		Config:  cfg,
	}
}

// CreateTripHandler handles trip creation.
func (h *TripHandler) CreateTripHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("CreateTripHandler called")
	var req services.CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode trip creation request")
		respondError(w, apperrors.Validation("invalid request payload"), h.Config.IsProduction())
		return
	}

	trip, err := h.Service.CreateTrip(r.Context(), callerIdentity(r), req)
	if err != nil {
		log.WithError(err).Warn("Failed to create trip")
		respondError(w, err, h.Config.IsProduction())
		return
	}

	log.WithField("tripID", trip.ID).Info("Trip created successfully")
	respondJSON(w, http.StatusCreated, map[string]interface{}{"trip": trip})
}

// GetTripsHandler lists trips with pagination and filters. Anonymous
// callers see shared trips; the drafts filter needs a token.
func (h *TripHandler) GetTripsHandler(w http.ResponseWriter, r *http.Request) {
	opts := services.ListTripsOptions{
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 0),
		Drafts: r.URL.Query().Get("drafts") == "true",
		UserID: uint(queryInt(r, "userId", 0)),
	}
	if identity := callerIdentity(r); identity.UserID != 0 {
		opts.Caller = &identity
	}

	page, err := h.Service.GetTrips(r.Context(), opts)
	if err != nil {
		log.WithError(err).Warn("Failed to list trips")
		respondError(w, err, h.Config.IsProduction())
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// GetMyTripsHandler lists everything the caller owns, drafts included.
func (h *TripHandler) GetMyTripsHandler(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.GetUserTrips(r.Context(), callerIdentity(r),
		queryInt(r, "page", 1), queryInt(r, "limit", 0))
	if err != nil {
		log.WithError(err).Warn("Failed to list own trips")
		respondError(w, err, h.Config.IsProduction())
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// GetTripHandler fetches one public trip by id.
func (h *TripHandler) GetTripHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err, h.Config.IsProduction())
		return
	}

	trip, err := h.Service.GetTrip(r.Context(), id)
	if err != nil {
		respondError(w, err, h.Config.IsProduction())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"trip": trip})
}

// UpdateTripHandler handles the wholesale trip update.
func (h *TripHandler) UpdateTripHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("UpdateTripHandler called")
	id, err := pathID(r)
	if err != nil {
		respondError(w, err, h.Config.IsProduction())
		return
	}

	var req services.UpdateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode trip update request")
		respondError(w, apperrors.Validation("invalid request payload"), h.Config.IsProduction())
		return
	}

	trip, err := h.Service.UpdateTrip(r.Context(), callerIdentity(r), id, req)
	if err != nil {
		log.WithField("tripID", id).WithError(err).Warn("Failed to update trip")
		respondError(w, err, h.Config.IsProduction())
		return
	}

	log.WithField("tripID", id).Info("Trip updated successfully")
	respondJSON(w, http.StatusOK, map[string]interface{}{"trip": trip})
}

// DeleteTripHandler handles trip deletion.
func (h *TripHandler) DeleteTripHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("DeleteTripHandler called")
	id, err := pathID(r)
	if err != nil {
		respondError(w, err, h.Config.IsProduction())
		return
	}

	if err := h.Service.DeleteTrip(r.Context(), callerIdentity(r), id); err != nil {
		log.WithField("tripID", id).WithError(err).Warn("Failed to delete trip")
		respondError(w, err, h.Config.IsProduction())
		return
	}

	log.WithField("tripID", id).Info("Trip deleted successfully")
	respondJSON(w, http.StatusOK, map[string]string{"message": "trip deleted"})
}
