package handlers

import (
	"net/http"

	"gorm.io/gorm"
)

// HealthHandler reports process and database liveness.
type HealthHandler struct {
	DB *gorm.DB
}

// NewHealthHandler creates a new instance of HealthHandler.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{DB: db}
}

// HealthCheckHandler serves GET /health.
func (h *HealthHandler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "down"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": "up"})
}
