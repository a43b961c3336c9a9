package database

import (
	"fmt"
	"time"

	"github.com/Adilet2209/Travel_Journal/internal/config"
	"github.com/Adilet2209/Travel_Journal/internal/models"
	"github.com/Adilet2209/Travel_Journal/pkg/jsonlist"
	"github.com/Adilet2209/Travel_Journal/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	maxRetries    = 10
	retryInterval = 5 * time.Second
)

// ConnectDB opens the postgres connection, retrying while the database
// comes up, and runs migrations.
func ConnectDB(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	var db *gorm.DB
	var err error
	for i := 0; i < maxRetries; i++ {
		logger.Log.Infof("Attempting to connect to database (%d/%d)", i+1, maxRetries)
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err == nil {
			break
		}
		logger.Log.WithError(err).Warnf("Database connection failed, retrying in %s", retryInterval)
		time.Sleep(retryInterval)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d retries: %w", maxRetries, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Log.Info("Connected to database")
	return db, nil
}

// Migrate creates/updates the schema and normalizes legacy rows.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Trip{},
		&models.City{},
		&models.Hotel{},
		&models.Restaurant{},
		&models.Activity{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return NormalizeListColumns(db)
}

// NormalizeListColumns rewrites trips whose countries/cities columns were
// stored double-encoded by historical writers into the canonical
// single-encoded form. Runs once at startup; no-op when everything is
// already canonical.
func NormalizeListColumns(db *gorm.DB) error {
	var trips []models.Trip
	if err := db.Select("id", "countries", "cities").Find(&trips).Error; err != nil {
		return fmt.Errorf("failed to scan trips for normalization: %w", err)
	}

	normalized := 0
	for _, trip := range trips {
		updates := map[string]interface{}{}

		if len(trip.Countries) > 0 && !jsonlist.IsCanonical(trip.Countries) {
			countries, err := jsonlist.Decode(trip.Countries)
			if err != nil {
				logger.Log.WithError(err).WithField("trip_id", trip.ID).Warn("Unparseable countries column, leaving as-is")
			} else if encoded, err := jsonlist.Encode(countries); err == nil {
				updates["countries"] = encoded
			}
		}
		if len(trip.Cities) > 0 && !jsonlist.IsCanonical(trip.Cities) {
			cities, err := jsonlist.Decode(trip.Cities)
			if err != nil {
				logger.Log.WithError(err).WithField("trip_id", trip.ID).Warn("Unparseable cities column, leaving as-is")
			} else if encoded, err := jsonlist.Encode(cities); err == nil {
				updates["cities"] = encoded
			}
		}

		if len(updates) == 0 {
			continue
		}
		if err := db.Model(&models.Trip{}).Where("id = ?", trip.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to normalize trip %d: %w", trip.ID, err)
		}
		normalized++
	}

	if normalized > 0 {
		logger.Log.WithField("count", normalized).Info("Normalized double-encoded list columns")
	}
	return nil
}
