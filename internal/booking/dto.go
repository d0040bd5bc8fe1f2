package booking

import (
	"time"

	"github.com/picthaisky/jobmarket/internal/payment"
)

// CreateBookingRequest represents the request body for creating a booking
type CreateBookingRequest struct {
	ProviderID         int64     `json:"provider_id" validate:"required"`
	JobTitle           string    `json:"job_title" validate:"required,max=200"`
	JobDescription     string    `json:"job_description"`
	ScheduledStartDate time.Time `json:"scheduled_start_date" validate:"required"`
	ScheduledEndDate   time.Time `json:"scheduled_end_date" validate:"required"`
	HourlyRate         string    `json:"hourly_rate" validate:"required"`
	EstimatedHours     string    `json:"estimated_hours" validate:"required"`
}

// CompleteBookingRequest carries the payment details collected when the
// client confirms completion
type CompleteBookingRequest struct {
	PaymentMethod payment.Method `json:"payment_method" validate:"required"`
	Gateway       *string        `json:"gateway,omitempty"`
}

// CancelBookingRequest represents the request body for cancelling a booking
type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// BookingResponse represents the response for a single booking
type BookingResponse struct {
	ID                 int64   `json:"id"`
	ClientID           int64   `json:"client_id"`
	ClientName         string  `json:"client_name,omitempty"`
	ProviderID         int64   `json:"provider_id"`
	ProviderName       string  `json:"provider_name,omitempty"`
	JobTitle           string  `json:"job_title"`
	JobDescription     string  `json:"job_description"`
	ScheduledStartDate string  `json:"scheduled_start_date"`
	ScheduledEndDate   string  `json:"scheduled_end_date"`
	HourlyRate         string  `json:"hourly_rate"`
	EstimatedHours     string  `json:"estimated_hours"`
	TotalAmount        string  `json:"total_amount"`
	Status             Status  `json:"status"`
	AcceptedAt         *string `json:"accepted_at,omitempty"`
	CompletedAt        *string `json:"completed_at,omitempty"`
	CancelledAt        *string `json:"cancelled_at,omitempty"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

// ToResponse converts a Booking model to a BookingResponse DTO
func (b *Booking) ToResponse() *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID,
		ClientID:           b.ClientID,
		ClientName:         b.ClientName,
		ProviderID:         b.ProviderID,
		ProviderName:       b.ProviderName,
		JobTitle:           b.JobTitle,
		JobDescription:     b.JobDescription,
		ScheduledStartDate: b.ScheduledStartDate.Format(time.RFC3339),
		ScheduledEndDate:   b.ScheduledEndDate.Format(time.RFC3339),
		HourlyRate:         b.HourlyRate.StringFixed(2),
		EstimatedHours:     b.EstimatedHours.String(),
		TotalAmount:        b.TotalAmount.StringFixed(2),
		Status:             b.Status,
		AcceptedAt:         formatTimePtr(b.AcceptedAt),
		CompletedAt:        formatTimePtr(b.CompletedAt),
		CancelledAt:        formatTimePtr(b.CancelledAt),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
	}
}

// BookingWithPayment combines a completed booking with its payment
type BookingWithPayment struct {
	Booking *BookingResponse         `json:"booking"`
	Payment *payment.PaymentResponse `json:"payment,omitempty"`
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
