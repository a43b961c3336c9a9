package repository

import (
	"context"
	"errors"

	"github.com/Adilet2209/Travel_Journal/internal/models"
	"github.com/Adilet2209/Travel_Journal/pkg/logger"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested row does not exist. Services
// translate it into the API-level not-found error.
var ErrNotFound = errors.New("record not found")

// UserRepository handles database operations related to users.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user row.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		logger.Log.WithError(err).Error("Failed to insert user")
		return nil, err
	}

	logger.Log.WithField("user_id", user.ID).Info("User created successfully")
	return user, nil
}

// GetUserByID fetches a user by primary key.
func (r *UserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", id).Error("Failed to find user by ID")
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail fetches a user by their unique email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Log.WithError(err).WithField("email", email).Error("Failed to find user by email")
		return nil, err
	}
	return &user, nil
}
