package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Adilet2209/Travel_Journal/internal/database"
	"github.com/Adilet2209/Travel_Journal/internal/models"
	"github.com/Adilet2209/Travel_Journal/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "journal.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newServices(t *testing.T) (*UserService, *TripService, *PlaceService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	userSvc := NewUserService(userRepo)
	tripSvc := NewTripService(repository.NewTripRepository(db), userRepo)
	placeSvc := NewPlaceService(repository.NewPlaceRepository(db))
	return userSvc, tripSvc, placeSvc, db
}

func registerUser(t *testing.T, svc *UserService, name string) *models.User {
	t.Helper()
	email := fmt.Sprintf("%s-%s@example.com", strings.ToLower(name), uuid.NewString()[:8])
	user, err := svc.RegisterUser(context.Background(), name, email, "password123")
	require.NoError(t, err)
	return user
}

func identityFor(user *models.User) Identity {
	return Identity{UserID: user.ID, Email: user.Email, Name: user.Name}
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }
func boolPtr(v bool) *bool        { return &v }

// sharedTripRequest is a minimal valid request for a shared (non-draft)
// trip, extended per test.
func sharedTripRequest() CreateTripRequest {
	return CreateTripRequest{
		Title:     "Summer in Europe",
		Countries: []string{"France"},
		StartDate: "2025-06-01",
		EndDate:   "2025-06-14",
	}
}
