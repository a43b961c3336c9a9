package services

import (
	"context"
	"errors"

	"github.com/Adilet2209/Travel_Journal/internal/models"
	"github.com/Adilet2209/Travel_Journal/internal/repository"
	"github.com/Adilet2209/Travel_Journal/pkg/apperrors"
	"github.com/Adilet2209/Travel_Journal/pkg/jsonlist"
	"github.com/Adilet2209/Travel_Journal/pkg/logger"
	"github.com/google/uuid"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

// Identity is the authenticated caller, taken from the session token —
// never from request bodies.
type Identity struct {
	UserID uint
	Email  string
	Name   string
}

// CreateTripRequest is the payload for creating a trip.
type CreateTripRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	StartDate   string             `json:"startDate"`
	EndDate     string             `json:"endDate"`
	Countries   []string           `json:"countries"`
	Cities      []string           `json:"cities"`
	CitiesData  []models.CityInput `json:"citiesData"`
	IsDraft     bool               `json:"isDraft"`
	IsCatalog   bool               `json:"isCatalog"`
}

// UpdateTripRequest is the payload for the wholesale trip update. Scalar
// fields replace the stored ones; citiesData replaces the entire child
// tree. Visibility is derived from isDraft, never taken from the client.
type UpdateTripRequest struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	StartDate   string             `json:"startDate"`
	EndDate     string             `json:"endDate"`
	Countries   []string           `json:"countries"`
	Cities      []string           `json:"cities"`
	CitiesData  []models.CityInput `json:"citiesData"`
	IsDraft     bool               `json:"isDraft"`
}

// ListTripsOptions narrows the trip listing.
type ListTripsOptions struct {
	Page   int
	Limit  int
	Drafts bool
	UserID uint // filter by owner; public listings only
	Caller *Identity
}

// Pagination describes one page of a listing.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// TripPage is one page of trips plus its page metadata.
type TripPage struct {
	Trips      []models.Trip `json:"trips"`
	Pagination Pagination    `json:"pagination"`
}

// TripService encapsulates the business logic for trips and their owned
// city/place trees.
type TripService struct {
	repo     *repository.TripRepository
	userRepo *repository.UserRepository
}

// NewTripService creates a new instance of TripService.
func NewTripService(repo *repository.TripRepository, userRepo *repository.UserRepository) *TripService {
	return &TripService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// CreateTrip validates and stores a new trip with its full child tree.
func (s *TripService) CreateTrip(ctx context.Context, identity Identity, req CreateTripRequest) (*models.Trip, error) {
	if req.Title == "" || len(req.Countries) == 0 {
		logger.Log.Warn("Missing title or countries during trip creation")
		return nil, apperrors.Validation("title and countries are required")
	}
	if !req.IsDraft && !req.IsCatalog && (req.StartDate == "" || req.EndDate == "") {
		logger.Log.Warn("Missing dates for shared trip")
		return nil, apperrors.Validation("start and end dates are required for shared trips")
	}

	user, err := s.ensureUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	countries, err := jsonlist.Encode(req.Countries)
	if err != nil {
		return nil, apperrors.Internal("failed to create trip", err)
	}
	cityNames, err := jsonlist.Encode(deriveCityNames(req.Cities, req.CitiesData))
	if err != nil {
		return nil, apperrors.Internal("failed to create trip", err)
	}

	trip := &models.Trip{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Countries:   countries,
		Cities:      cityNames,
		IsPublic:    !req.IsDraft && !req.IsCatalog,
		IsDraft:     req.IsDraft,
		IsCatalog:   req.IsCatalog,
		UserID:      user.ID,
		CitiesData:  buildCities(req.CitiesData),
	}

	created, err := s.repo.CreateTrip(ctx, trip)
	if err != nil {
		return nil, apperrors.Internal("failed to create trip", err)
	}

	full, err := s.repo.GetTripByID(ctx, created.ID)
	if err != nil {
		return nil, apperrors.Internal("failed to load created trip", err)
	}

	logger.Log.WithField("trip_id", full.ID).Info("Trip created in service layer")
	return full, nil
}

// GetTrip returns a public trip. Drafts and private trips are invisible
// through this path and come back as not found, by design.
func (s *TripService) GetTrip(ctx context.Context, id uint) (*models.Trip, error) {
	trip, err := s.repo.GetTripByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("trip not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get trip", err)
	}

	if !trip.IsPublic || trip.IsDraft || trip.IsCatalog {
		logger.Log.WithField("trip_id", id).Info("Hiding non-public trip")
		return nil, apperrors.NotFound("trip not found")
	}
	return trip, nil
}

// GetTrips returns one page of trips. The default listing is public,
// non-draft trips; the drafts filter requires authentication and is always
// scoped to the caller so nobody can list another user's drafts.
func (s *TripService) GetTrips(ctx context.Context, opts ListTripsOptions) (*TripPage, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := repository.TripFilter{Page: page, Limit: limit, UserID: opts.UserID}
	if opts.Drafts {
		if opts.Caller == nil || opts.Caller.UserID == 0 {
			return nil, apperrors.Auth("authentication required to list drafts")
		}
		filter.DraftsOnly = true
		filter.UserID = opts.Caller.UserID
	}

	trips, total, err := s.repo.GetTrips(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal("failed to fetch trips", err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &TripPage{
		Trips: trips,
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: pages,
		},
	}, nil
}

// GetUserTrips lists everything the caller owns, drafts included. Backs
// the "my trips" page.
func (s *TripService) GetUserTrips(ctx context.Context, identity Identity, page, limit int) (*TripPage, error) {
	if identity.UserID == 0 {
		return nil, apperrors.Auth("user identity required")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	trips, total, err := s.repo.GetTrips(ctx, repository.TripFilter{
		OwnerOnly: true,
		UserID:    identity.UserID,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, apperrors.Internal("failed to fetch trips", err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &TripPage{
		Trips:      trips,
		Pagination: Pagination{Total: total, Page: page, Limit: limit, Pages: pages},
	}, nil
}

// UpdateTrip replaces the trip's scalar fields and its entire child tree
// inside one transaction. Owner only. Draft-to-shared conversion happens
// here: isDraft=false with both dates set.
func (s *TripService) UpdateTrip(ctx context.Context, identity Identity, id uint, req UpdateTripRequest) (*models.Trip, error) {
	existing, err := s.repo.GetTripByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("trip not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to get trip", err)
	}

	if existing.UserID != identity.UserID {
		logger.Log.WithFields(map[string]interface{}{
			"trip_id":  id,
			"owner_id": existing.UserID,
			"user_id":  identity.UserID,
		}).Warn("Rejected trip update by non-owner")
		return nil, apperrors.Forbidden("you can only modify your own trips")
	}

	if req.Title == "" || len(req.Countries) == 0 {
		return nil, apperrors.Validation("title and countries are required")
	}
	// The lifecycle is one-way: once shared, a trip cannot go back to
	// being a draft.
	if req.IsDraft && !existing.IsDraft && !existing.IsCatalog {
		logger.Log.WithField("trip_id", id).Warn("Rejected reverting a shared trip to draft")
		return nil, apperrors.Validation("a shared trip cannot be reverted to a draft")
	}
	if !req.IsDraft && !existing.IsCatalog && (req.StartDate == "" || req.EndDate == "") {
		return nil, apperrors.Validation("start and end dates are required for shared trips")
	}

	countries, err := jsonlist.Encode(req.Countries)
	if err != nil {
		return nil, apperrors.Internal("failed to update trip", err)
	}
	cityNames, err := jsonlist.Encode(deriveCityNames(req.Cities, req.CitiesData))
	if err != nil {
		return nil, apperrors.Internal("failed to update trip", err)
	}

	fields := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"start_date":  req.StartDate,
		"end_date":    req.EndDate,
		"countries":   countries,
		"cities":      cityNames,
		"is_public":   !req.IsDraft && !existing.IsCatalog,
		"is_draft":    req.IsDraft,
	}

	if err := s.repo.ReplaceTrip(ctx, id, fields, buildCities(req.CitiesData)); err != nil {
		return nil, apperrors.Internal("failed to update trip", err)
	}

	full, err := s.repo.GetTripByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to load updated trip", err)
	}

	logger.Log.WithField("trip_id", id).Info("Trip updated in service layer")
	return full, nil
}

// DeleteTrip removes an owned trip and all of its child rows.
func (s *TripService) DeleteTrip(ctx context.Context, identity Identity, id uint) error {
	existing, err := s.repo.GetTripByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("trip not found")
	}
	if err != nil {
		return apperrors.Internal("failed to get trip", err)
	}

	if existing.UserID != identity.UserID {
		logger.Log.WithFields(map[string]interface{}{
			"trip_id":  id,
			"owner_id": existing.UserID,
			"user_id":  identity.UserID,
		}).Warn("Rejected trip deletion by non-owner")
		return apperrors.Forbidden("you can only delete your own trips")
	}

	if err := s.repo.DeleteTrip(ctx, id); err != nil {
		return apperrors.Internal("failed to delete trip", err)
	}

	logger.Log.WithField("trip_id", id).Info("Trip deleted in service layer")
	return nil
}

// ensureUser resolves the caller's user row, lazily creating one from the
// token identity when the id is not persisted yet, so the trip's owner FK
// always resolves. Lookup-then-create, idempotent per identity.
func (s *TripService) ensureUser(ctx context.Context, identity Identity) (*models.User, error) {
	if identity.UserID == 0 {
		return nil, apperrors.Auth("user identity required")
	}

	user, err := s.userRepo.GetUserByID(ctx, identity.UserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal("failed to resolve user", err)
	}

	if identity.Email != "" {
		if user, err := s.userRepo.GetUserByEmail(ctx, identity.Email); err == nil {
			return user, nil
		}
	}

	// Random sentinel instead of a real hash: the row exists only to
	// satisfy the FK and cannot be logged into.
	created, err := s.userRepo.CreateUser(ctx, &models.User{
		ID:             identity.UserID,
		Name:           identity.Name,
		Email:          identity.Email,
		HashedPassword: uuid.NewString(),
	})
	if err != nil {
		return nil, apperrors.Internal("failed to resolve user", err)
	}

	logger.Log.WithField("user_id", created.ID).Info("Lazily created user row for trip owner")
	return created, nil
}

func buildCities(inputs []models.CityInput) []models.City {
	cities := make([]models.City, 0, len(inputs))
	for _, in := range inputs {
		cities = append(cities, in.ToCity())
	}
	return cities
}

func deriveCityNames(names []string, inputs []models.CityInput) []string {
	if len(names) > 0 {
		return names
	}
	derived := make([]string, 0, len(inputs))
	for _, in := range inputs {
		derived = append(derived, in.Name)
	}
	return derived
}
