package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Adilet2209/Travel_Journal/internal/services"
	"github.com/Adilet2209/Travel_Journal/pkg/apperrors"
	"github.com/Adilet2209/Travel_Journal/pkg/logger"
	"github.com/Adilet2209/Travel_Journal/pkg/middleware"
	"github.com/gorilla/mux"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps an error onto its HTTP status. Internal errors are
// logged with full detail; the client sees a safe generic message in
// production.
func respondError(w http.ResponseWriter, err error, production bool) {
	status := apperrors.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Log.WithError(err).Error("Unhandled internal error")
		if production {
			message = "internal server error"
		}
	}
	respondJSON(w, status, map[string]string{"error": message})
}

// pathID extracts the numeric {id} route variable.
func pathID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperrors.Validation("invalid id")
	}
	return uint(id), nil
}

// callerIdentity converts the auth middleware's claims into the service
// layer's identity. Nil claims yield the zero identity.
func callerIdentity(r *http.Request) services.Identity {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		return services.Identity{}
	}
	return services.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
