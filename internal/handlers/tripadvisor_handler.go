package handlers

import (
	"net/http"

	"github.com/Adilet2209/Travel_Journal/internal/config"
	"github.com/Adilet2209/Travel_Journal/internal/tripadvisor"
	"github.com/Adilet2209/Travel_Journal/pkg/apperrors"
	log "github.com/sirupsen/logrus"
)

// TripAdvisorHandler proxies the external location lookup for the browser
// client, which cannot call the upstream API directly.
type TripAdvisorHandler struct {
	Client *tripadvisor.Client
	Config *config.Config
}

// NewTripAdvisorHandler creates a new instance of TripAdvisorHandler.
func NewTripAdvisorHandler(client *tripadvisor.Client, cfg *config.Config) *TripAdvisorHandler {
	return &TripAdvisorHandler{
		Client: client,
		Config: cfg,
	}
}

// SearchHandler serves GET /tripadvisor/search. With query it runs a
// search (optionally photo-enriched); with locationId it fetches details,
// or photos when photos=true.
func (h *TripAdvisorHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := params.Get("query")
	locationID := params.Get("locationId")
	withPhotos := params.Get("photos") == "true"

	switch {
	case locationID != "" && withPhotos:
		photos, err := h.Client.GetPhotos(r.Context(), locationID)
		if err != nil {
			log.WithError(err).Error("TripAdvisor photos lookup failed")
			respondError(w, apperrors.Internal("location lookup failed", err), h.Config.IsProduction())
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"data": photos})

	case locationID != "":
		details, err := h.Client.GetDetails(r.Context(), locationID)
		if err != nil {
			log.WithError(err).Error("TripAdvisor details lookup failed")
			respondError(w, apperrors.Internal("location lookup failed", err), h.Config.IsProduction())
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"data": details})

	case query != "":
		result, err := h.Client.Search(r.Context(), query, params.Get("category"), withPhotos)
		if err != nil {
			log.WithError(err).Error("TripAdvisor search failed")
			respondError(w, apperrors.Internal("location lookup failed", err), h.Config.IsProduction())
			return
		}
		respondJSON(w, http.StatusOK, result)

	default:
		respondError(w, apperrors.Validation("query or locationId is required"), h.Config.IsProduction())
	}
}
