package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Adilet2209/Travel_Journal/internal/config"
	"github.com/Adilet2209/Travel_Journal/internal/database"
	"github.com/Adilet2209/Travel_Journal/internal/repository"
	"github.com/Adilet2209/Travel_Journal/internal/services"
	"github.com/Adilet2209/Travel_Journal/pkg/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "handler-test-secret"

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   testJWTSecret,
		TokenExpiry: time.Hour,
		Env:         "test",
	}
}

// newTestRouter assembles the API router the same way the server does,
// backed by a throwaway database.
func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "journal.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := testConfig()

	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo)
	tripService := services.NewTripService(repository.NewTripRepository(db), userRepo)
	placeService := services.NewPlaceService(repository.NewPlaceRepository(db))

	userHandler := NewUserHandler(userService, cfg)
	tripHandler := NewTripHandler(tripService, cfg)
	placeHandler := NewPlaceHandler(placeService, cfg)
	healthHandler := NewHealthHandler(db)

	router := mux.NewRouter()
	protected := middleware.AuthMiddleware(cfg.JWTSecret)
	optional := middleware.OptionalAuthMiddleware(cfg.JWTSecret)

	router.HandleFunc("/health", healthHandler.HealthCheckHandler).Methods("GET")
	router.HandleFunc("/auth/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/auth/login", userHandler.LoginUserHandler).Methods("POST")

	router.Handle("/trips", protected(http.HandlerFunc(tripHandler.CreateTripHandler))).Methods("POST")
	router.Handle("/trips", optional(http.HandlerFunc(tripHandler.GetTripsHandler))).Methods("GET")
	router.Handle("/trips/my", protected(http.HandlerFunc(tripHandler.GetMyTripsHandler))).Methods("GET")
	router.HandleFunc("/trips/{id}", tripHandler.GetTripHandler).Methods("GET")
	router.Handle("/trips/{id}", protected(http.HandlerFunc(tripHandler.UpdateTripHandler))).Methods("PUT")
	router.Handle("/trips/{id}", protected(http.HandlerFunc(tripHandler.DeleteTripHandler))).Methods("DELETE")

	router.HandleFunc("/hotels", placeHandler.GetHotelsHandler).Methods("GET")
	router.Handle("/hotels/{id}", protected(http.HandlerFunc(placeHandler.UpdateHotelHandler))).Methods("PUT")
	router.Handle("/hotels/{id}", protected(http.HandlerFunc(placeHandler.DeleteHotelHandler))).Methods("DELETE")

	return router
}

// doJSON performs one request against the router and decodes the JSON
// response body into a generic map.
func doJSON(t *testing.T, router *mux.Router, method, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	decoded := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded),
			"response body was not JSON: %s", rec.Body.String())
	}
	return rec.Code, decoded
}

// registerAndLogin creates an account through the API and returns its
// session token.
func registerAndLogin(t *testing.T, router *mux.Router, name string) string {
	t.Helper()
	email := fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8])

	status, _ := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "password123",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email": email, "password": "password123",
	})
	require.Equal(t, http.StatusOK, status)
	token, ok := body["token"].(string)
	require.True(t, ok, "login response missing token")
	return token
}

func tripPayload() map[string]interface{} {
	return map[string]interface{}{
		"title":     "Summer in Europe",
		"countries": []string{"France"},
		"startDate": "2025-06-01",
		"endDate":   "2025-06-14",
		"citiesData": []map[string]interface{}{{
			"name":    "Paris",
			"country": "France",
			"hotels":  []map[string]interface{}{{"name": "Ritz", "rating": 5}},
		}},
	}
}

func tripID(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	trip, ok := body["trip"].(map[string]interface{})
	require.True(t, ok, "response missing trip object")
	id, ok := trip["id"].(float64)
	require.True(t, ok, "trip missing id")
	return fmt.Sprintf("%d", int(id))
}

func TestRegisterDoesNotLeakPassword(t *testing.T) {
	router := newTestRouter(t)

	status, body := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, status)

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "password123")
	require.NotContains(t, string(raw), "hashed")
}

func TestRegisterDuplicateEmailIsBadRequest(t *testing.T) {
	router := newTestRouter(t)
	payload := map[string]string{
		"name": "Alice", "email": "dup@example.com", "password": "password123",
	}

	status, _ := doJSON(t, router, http.MethodPost, "/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, router, http.MethodPost, "/auth/register", "", payload)
	require.Equal(t, http.StatusBadRequest, status)
	require.NotEmpty(t, body["error"])
}

func TestLoginWrongPassword(t *testing.T) {
	router := newTestRouter(t)

	status, _ := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.NotEmpty(t, body["error"])
}

func TestCreateTripRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	status, body := doJSON(t, router, http.MethodPost, "/trips", "", tripPayload())
	require.Equal(t, http.StatusUnauthorized, status)
	require.NotEmpty(t, body["error"])
}

func TestTripLifecycle(t *testing.T) {
	router := newTestRouter(t)
	ownerToken := registerAndLogin(t, router, "owner")
	otherToken := registerAndLogin(t, router, "other")

	status, body := doJSON(t, router, http.MethodPost, "/trips", ownerToken, tripPayload())
	require.Equal(t, http.StatusCreated, status)
	id := tripID(t, body)

	// Publicly readable without a token.
	status, body = doJSON(t, router, http.MethodGet, "/trips/"+id, "", nil)
	require.Equal(t, http.StatusOK, status)
	trip := body["trip"].(map[string]interface{})
	require.Equal(t, "Summer in Europe", trip["title"])

	// A different account cannot update it.
	update := tripPayload()
	update["title"] = "Hijacked"
	status, _ = doJSON(t, router, http.MethodPut, "/trips/"+id, otherToken, update)
	require.Equal(t, http.StatusForbidden, status)

	// Deleting needs a token, and then the owner's.
	status, _ = doJSON(t, router, http.MethodDelete, "/trips/"+id, "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, body = doJSON(t, router, http.MethodDelete, "/trips/"+id, ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "trip deleted", body["message"])

	status, _ = doJSON(t, router, http.MethodGet, "/trips/"+id, "", nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestDraftVisibility(t *testing.T) {
	router := newTestRouter(t)
	ownerToken := registerAndLogin(t, router, "owner")

	payload := map[string]interface{}{
		"title":     "Secret plans",
		"countries": []string{"Japan"},
		"isDraft":   true,
	}
	status, body := doJSON(t, router, http.MethodPost, "/trips", ownerToken, payload)
	require.Equal(t, http.StatusCreated, status)
	id := tripID(t, body)

	// Drafts never show up on the public detail route.
	status, _ = doJSON(t, router, http.MethodGet, "/trips/"+id, "", nil)
	require.Equal(t, http.StatusNotFound, status)

	// Or in the public listing.
	status, body = doJSON(t, router, http.MethodGet, "/trips", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, body["trips"])

	// The drafts filter needs a token and returns the owner's drafts.
	status, _ = doJSON(t, router, http.MethodGet, "/trips?drafts=true", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, body = doJSON(t, router, http.MethodGet, "/trips?drafts=true", ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	trips := body["trips"].([]interface{})
	require.Len(t, trips, 1)

	// And /trips/my includes drafts too.
	status, body = doJSON(t, router, http.MethodGet, "/trips/my", ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["trips"].([]interface{}), 1)
}

func TestListTripsPaginationEnvelope(t *testing.T) {
	router := newTestRouter(t)
	ownerToken := registerAndLogin(t, router, "owner")

	for i := 0; i < 3; i++ {
		status, _ := doJSON(t, router, http.MethodPost, "/trips", ownerToken, tripPayload())
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := doJSON(t, router, http.MethodGet, "/trips?page=2&limit=2", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["trips"].([]interface{}), 1)

	pagination := body["pagination"].(map[string]interface{})
	require.EqualValues(t, 3, pagination["total"])
	require.EqualValues(t, 2, pagination["page"])
	require.EqualValues(t, 2, pagination["pages"])
}

func TestHotelUpdateAndDelete(t *testing.T) {
	router := newTestRouter(t)
	ownerToken := registerAndLogin(t, router, "owner")

	status, body := doJSON(t, router, http.MethodPost, "/trips", ownerToken, tripPayload())
	require.Equal(t, http.StatusCreated, status)

	trip := body["trip"].(map[string]interface{})
	cities := trip["citiesData"].([]interface{})
	hotels := cities[0].(map[string]interface{})["hotels"].([]interface{})
	hotelID := fmt.Sprintf("%d", int(hotels[0].(map[string]interface{})["id"].(float64)))

	status, _ = doJSON(t, router, http.MethodPut, "/hotels/"+hotelID, "", map[string]string{"name": "Renamed"})
	require.Equal(t, http.StatusUnauthorized, status)

	status, body = doJSON(t, router, http.MethodPut, "/hotels/"+hotelID, ownerToken, map[string]interface{}{
		"review": "lovely stay", "liked": true,
	})
	require.Equal(t, http.StatusOK, status)
	hotel := body["hotel"].(map[string]interface{})
	require.Equal(t, "lovely stay", hotel["review"])
	require.Equal(t, "Ritz", hotel["name"])

	status, body = doJSON(t, router, http.MethodDelete, "/hotels/"+hotelID, ownerToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "hotel deleted", body["message"])

	status, _ = doJSON(t, router, http.MethodDelete, "/hotels/"+hotelID, ownerToken, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestHotelsCatalogEndpoint(t *testing.T) {
	router := newTestRouter(t)
	ownerToken := registerAndLogin(t, router, "curator")

	catalog := map[string]interface{}{
		"title":     "Singapore catalog",
		"countries": []string{"Singapore"},
		"isCatalog": true,
		"citiesData": []map[string]interface{}{{
			"name":    "Singapore",
			"country": "Singapore",
			"hotels": []map[string]interface{}{
				{"name": "Marina Bay Sands", "rating": 5},
				{"name": "Budget Inn", "rating": 3},
			},
		}},
	}
	status, _ := doJSON(t, router, http.MethodPost, "/trips", ownerToken, catalog)
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, router, http.MethodGet, "/hotels?city=Singapore&country=Singapore", "", nil)
	require.Equal(t, http.StatusOK, status)
	hotels := body["hotels"].([]interface{})
	require.Len(t, hotels, 2)
	require.Equal(t, "Marina Bay Sands", hotels[0].(map[string]interface{})["name"])

	// Missing parameters are rejected.
	status, _ = doJSON(t, router, http.MethodGet, "/hotels?city=Singapore", "", nil)
	require.Equal(t, http.StatusBadRequest, status)

	// Unknown cities come back empty, not as an error.
	status, body = doJSON(t, router, http.MethodGet, "/hotels?city=Atlantis&country=Nowhere", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, body["hotels"])
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	status, body := doJSON(t, router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body["status"])
}
