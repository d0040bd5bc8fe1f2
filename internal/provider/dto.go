package provider

import "time"

// CreateProfileRequest represents the request body for creating a provider profile
type CreateProfileRequest struct {
	UserID          int64    `json:"user_id" validate:"required"`
	Profession      string   `json:"profession" validate:"required,max=100"`
	Bio             string   `json:"bio" validate:"max=2000"`
	Skills          []string `json:"skills"`
	HourlyRate      string   `json:"hourly_rate" validate:"required"`
	Location        string   `json:"location" validate:"required,max=200"`
	ProfileImageURL *string  `json:"profile_image_url,omitempty"`
}

// UpdateProfileRequest represents the request body for updating a provider profile
type UpdateProfileRequest struct {
	Profession      *string  `json:"profession,omitempty"`
	Bio             *string  `json:"bio,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	HourlyRate      *string  `json:"hourly_rate,omitempty"`
	Location        *string  `json:"location,omitempty"`
	ProfileImageURL *string  `json:"profile_image_url,omitempty"`
}

// ListFilter narrows the provider search
type ListFilter struct {
	Profession *string
	Location   *string
	MinRating  *string
}

// CreateAvailabilityRequest represents the request body for adding an availability slot
type CreateAvailabilityRequest struct {
	DayOfWeek   int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	IsAvailable *bool  `json:"is_available,omitempty"`
}

// ProfileResponse represents the response for a single provider profile
type ProfileResponse struct {
	ID              int64    `json:"id"`
	UserID          int64    `json:"user_id"`
	Profession      string   `json:"profession"`
	Bio             string   `json:"bio"`
	Skills          []string `json:"skills"`
	HourlyRate      string   `json:"hourly_rate"`
	Location        string   `json:"location"`
	ProfileImageURL *string  `json:"profile_image_url,omitempty"`
	IsVerified      bool     `json:"is_verified"`
	AverageRating   string   `json:"average_rating"`
	TotalReviews    int      `json:"total_reviews"`
	FirstName       string   `json:"first_name,omitempty"`
	LastName        string   `json:"last_name,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

// AvailabilityResponse represents the response for an availability slot
type AvailabilityResponse struct {
	ID          int64  `json:"id"`
	ProfileID   int64  `json:"profile_id"`
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

// ToResponse converts a Profile model to a ProfileResponse DTO
func (p *Profile) ToResponse() *ProfileResponse {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}

	return &ProfileResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		Profession:      p.Profession,
		Bio:             p.Bio,
		Skills:          skills,
		HourlyRate:      p.HourlyRate.StringFixed(2),
		Location:        p.Location,
		ProfileImageURL: p.ProfileImageURL,
		IsVerified:      p.IsVerified,
		AverageRating:   p.AverageRating.StringFixed(2),
		TotalReviews:    p.TotalReviews,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
}

// ToResponse converts an Availability model to an AvailabilityResponse DTO
func (a *Availability) ToResponse() *AvailabilityResponse {
	return &AvailabilityResponse{
		ID:          a.ID,
		ProfileID:   a.ProfileID,
		DayOfWeek:   a.DayOfWeek,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		IsAvailable: a.IsAvailable,
	}
}
