package provider

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile represents a service provider's public profile
type Profile struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	Profession      string          `json:"profession"`
	Bio             string          `json:"bio"`
	Skills          []string        `json:"skills"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	Location        string          `json:"location"`
	ProfileImageURL *string         `json:"profile_image_url,omitempty"`
	IsVerified      bool            `json:"is_verified"`
	AverageRating   decimal.Decimal `json:"average_rating"`
	TotalReviews    int             `json:"total_reviews"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Populated from the users join
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Availability represents a weekly recurring availability slot.
// DayOfWeek follows time.Weekday numbering, Sunday is 0.
type Availability struct {
	ID          int64     `json:"id"`
	ProfileID   int64     `json:"profile_id"`
	DayOfWeek   int       `json:"day_of_week"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}
