package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking represents a client's booking of a provider for a job
type Booking struct {
	ID         int64 `json:"id"`
	ClientID   int64 `json:"client_id"`
	ProviderID int64 `json:"provider_id"`

	JobTitle           string          `json:"job_title"`
	JobDescription     string          `json:"job_description"`
	ScheduledStartDate time.Time       `json:"scheduled_start_date"`
	ScheduledEndDate   time.Time       `json:"scheduled_end_date"`
	HourlyRate         decimal.Decimal `json:"hourly_rate"`
	EstimatedHours     decimal.Decimal `json:"estimated_hours"`
	TotalAmount        decimal.Decimal `json:"total_amount"`

	Status             Status     `json:"status"`
	AcceptedAt         *time.Time `json:"accepted_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Populated via JOIN
	ClientName   string `json:"client_name,omitempty"`
	ProviderName string `json:"provider_name,omitempty"`
}

// TotalFor computes a booking's total price from its rate and estimate,
// rounded to 2 decimal places with banker's rounding
func TotalFor(hourlyRate, estimatedHours decimal.Decimal) decimal.Decimal {
	return hourlyRate.Mul(estimatedHours).RoundBank(2)
}
