package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/picthaisky/jobmarket/internal/user"
)

// Common errors
var (
	ErrProfileNotFound      = errors.New("provider profile not found")
	ErrProfileExists        = errors.New("provider profile already exists for this user")
	ErrNotAProvider         = errors.New("user does not have the provider role")
	ErrInvalidHourlyRate    = errors.New("hourly rate must be a positive amount")
	ErrInvalidSlot          = errors.New("availability slot is invalid")
	ErrAvailabilityNotFound = errors.New("availability slot not found")
)

// Service handles provider business logic
type Service struct {
	repo    *Repository
	userSvc *user.Service
}

// NewService creates a new provider service
func NewService(repo *Repository, userSvc *user.Service) *Service {
	return &Service{repo: repo, userSvc: userSvc}
}

// Create creates a provider profile for a user with the PROVIDER role
func (s *Service) Create(ctx context.Context, req *CreateProfileRequest) (*Profile, error) {
	u, err := s.userSvc.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if u.Role != user.RoleProvider {
		return nil, ErrNotAProvider
	}

	existing, err := s.repo.GetByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProfileExists
	}

	rate, err := parseRate(req.HourlyRate)
	if err != nil {
		return nil, err
	}

	profile := &Profile{
		UserID:          req.UserID,
		Profession:      req.Profession,
		Bio:             req.Bio,
		Skills:          req.Skills,
		HourlyRate:      rate,
		Location:        req.Location,
		ProfileImageURL: req.ProfileImageURL,
	}

	created, err := s.repo.Create(ctx, profile)
	if err != nil {
		return nil, err
	}

	created.FirstName = u.FirstName
	created.LastName = u.LastName
	return created, nil
}

// GetByID retrieves a provider profile by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Profile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// GetByUserID retrieves a provider profile by the owning user's ID
func (s *Service) GetByUserID(ctx context.Context, userID int64) (*Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// List retrieves provider profiles matching the filter, with pagination
func (s *Service) List(ctx context.Context, filter ListFilter, page, perPage int) ([]*Profile, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	var minRating *decimal.Decimal
	if filter.MinRating != nil {
		r, err := decimal.NewFromString(*filter.MinRating)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid minimum rating %q: %w", *filter.MinRating, err)
		}
		minRating = &r
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, filter, minRating, perPage, offset)
}

// Update modifies an existing provider profile
func (s *Service) Update(ctx context.Context, id int64, req *UpdateProfileRequest) (*Profile, error) {
	var rate *decimal.Decimal
	if req.HourlyRate != nil {
		r, err := parseRate(*req.HourlyRate)
		if err != nil {
			return nil, err
		}
		rate = &r
	}

	p, err := s.repo.Update(ctx, id, req, rate)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// Verify marks a provider profile as verified
func (s *Service) Verify(ctx context.Context, id int64) (*Profile, error) {
	p, err := s.repo.Verify(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// RefreshRating recomputes the rating aggregates for a provider user
func (s *Service) RefreshRating(ctx context.Context, providerUserID int64) error {
	return s.repo.RefreshRating(ctx, providerUserID)
}

// AddAvailability adds a weekly availability slot to a profile
func (s *Service) AddAvailability(ctx context.Context, profileID int64, req *CreateAvailabilityRequest) (*Availability, error) {
	if _, err := s.GetByID(ctx, profileID); err != nil {
		return nil, err
	}

	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, fmt.Errorf("%w: day of week must be between 0 and 6", ErrInvalidSlot)
	}
	if !validSlotTime(req.StartTime) || !validSlotTime(req.EndTime) {
		return nil, fmt.Errorf("%w: times must be in HH:MM format", ErrInvalidSlot)
	}
	// Zero-padded HH:MM strings order lexicographically
	if req.StartTime >= req.EndTime {
		return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidSlot)
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	slot := &Availability{
		ProfileID:   profileID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: available,
	}

	return s.repo.CreateAvailability(ctx, slot)
}

// ListAvailabilities retrieves all availability slots for a profile
func (s *Service) ListAvailabilities(ctx context.Context, profileID int64) ([]*Availability, error) {
	if _, err := s.GetByID(ctx, profileID); err != nil {
		return nil, err
	}
	return s.repo.ListAvailabilities(ctx, profileID)
}

// RemoveAvailability deletes an availability slot from a profile
func (s *Service) RemoveAvailability(ctx context.Context, profileID, availabilityID int64) error {
	deleted, err := s.repo.DeleteAvailability(ctx, profileID, availabilityID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAvailabilityNotFound
	}
	return nil
}

func parseRate(raw string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidHourlyRate, raw)
	}
	if rate.IsNegative() || rate.IsZero() {
		return decimal.Decimal{}, ErrInvalidHourlyRate
	}
	return rate, nil
}

func validSlotTime(t string) bool {
	if len(t) != 5 || t[2] != ':' {
		return false
	}
	hh := t[:2]
	mm := t[3:]
	for _, c := range hh + mm {
		if c < '0' || c > '9' {
			return false
		}
	}
	return hh <= "23" && mm <= "59"
}
