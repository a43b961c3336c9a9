package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Adilet2209/Travel_Journal/internal/config"
	"github.com/Adilet2209/Travel_Journal/internal/services"
	"github.com/Adilet2209/Travel_Journal/pkg/apperrors"
	jwtutil "github.com/Adilet2209/Travel_Journal/pkg/jwt"
	log "github.com/sirupsen/logrus"
)

// UserHandler handles HTTP requests related to registration and login.
type UserHandler struct {
	Service *services.UserService
	Config  *config.Config
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		Service: service,
		Config:  cfg,
	}
}

// RegisterUserHandler handles user registration.
func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("RegisterUserHandler called")
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.WithError(err).Warn("Failed to decode registration request")
		respondError(w, apperrors.Validation("invalid request payload"), h.Config.IsProduction())
		return
	}

	user, err := h.Service.RegisterUser(r.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		log.WithError(err).Warn("Failed to register user")
		respondError(w, err, h.Config.IsProduction())
		return
	}

	log.WithField("userID", user.ID).Info("User registered successfully")
	respondJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

// LoginUserHandler handles user login and issues the session token.
func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("LoginUserHandler called")
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.WithError(err).Warn("Failed to decode login request")
		respondError(w, apperrors.Validation("invalid request payload"), h.Config.IsProduction())
		return
	}

	user, err := h.Service.AuthenticateUser(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		log.WithField("email", credentials.Email).WithError(err).Warn("Authentication failed")
		respondError(w, err, h.Config.IsProduction())
		return
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Email, user.Name, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate session token")
		respondError(w, apperrors.Internal("failed to generate token", err), h.Config.IsProduction())
		return
	}

	log.WithField("userID", user.ID).Info("User logged in successfully")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}
