package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/Adilet2209/Travel_Journal/internal/models"
	"github.com/Adilet2209/Travel_Journal/internal/repository"
	"github.com/Adilet2209/Travel_Journal/pkg/apperrors"
	"github.com/sirupsen/logrus"
)

const minPasswordLength = 6

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserService encapsulates the business logic for registration and login.
type UserService struct {
	repo *repository.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// RegisterUser registers a new user after hashing their password.
func (s *UserService) RegisterUser(ctx context.Context, name, email, password string) (*models.User, error) {
	logrus.Info("Registering new user")

	if name == "" || email == "" || password == "" {
		logrus.Warn("Missing required fields during registration")
		return nil, apperrors.Validation("name, email and password are required")
	}
	if len(password) < minPasswordLength {
		logrus.Warn("Password too short during registration")
		return nil, apperrors.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if !emailRegex.MatchString(email) {
		logrus.WithField("email", email).Warn("Invalid email format during registration")
		return nil, apperrors.Validation("invalid email format")
	}

	// Check if the email is already registered
	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal("failed to register user", err)
	}
	if existing != nil {
		logrus.WithField("email", email).Warn("Email already in use")
		return nil, apperrors.Conflict("email already registered")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, apperrors.Internal("failed to register user", err)
	}

	user := &models.User{
		Name:           name,
		Email:          email,
		HashedPassword: string(hashedPwd),
	}

	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("User registration failed")
		return nil, apperrors.Internal("failed to register user", err)
	}

	logrus.WithFields(logrus.Fields{
		"userID": createdUser.ID,
		"email":  createdUser.Email,
	}).Info("User registered successfully")

	return createdUser, nil
}

// AuthenticateUser verifies the email and password and returns the user if
// credentials are valid. The failure message is deliberately identical for
// unknown users and wrong passwords.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	logrus.WithField("email", email).Info("Authenticating user")

	if email == "" || password == "" {
		return nil, apperrors.Validation("email and password are required")
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		logrus.WithField("email", email).Warn("User not found during login")
		return nil, apperrors.Auth("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", email).Warn("Invalid credentials")
		return nil, apperrors.Auth("invalid email or password")
	}

	logrus.WithField("userID", user.ID).Info("User authenticated successfully")
	return user, nil
}

// GetUser retrieves a user by their ID.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("user not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get user", err)
	}
	return user, nil
}
