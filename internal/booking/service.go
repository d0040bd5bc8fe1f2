package booking

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/picthaisky/jobmarket/internal/payment"
)

// Common errors
var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrInvalidStatusChange = errors.New("invalid booking status change")
	ErrNotProvider         = errors.New("only the booked provider can do this")
	ErrNotClient           = errors.New("only the booking client can do this")
	ErrNotParticipant      = errors.New("only the client or provider can do this")
	ErrCannotBookSelf      = errors.New("cannot book yourself")
	ErrInvalidAmount       = errors.New("hourly rate and estimated hours must be positive")
	ErrInvalidSchedule     = errors.New("scheduled end must be after start")
)

// Service handles booking business logic. Completing a booking hands the
// total amount to the payment service for settlement.
type Service struct {
	repo       *Repository
	paymentSvc *payment.Service
}

// NewService creates a new booking service with dependencies injected
func NewService(repo *Repository, paymentSvc *payment.Service) *Service {
	return &Service{
		repo:       repo,
		paymentSvc: paymentSvc,
	}
}

// Create creates a new booking for a client
func (s *Service) Create(ctx context.Context, clientID int64, req *CreateBookingRequest) (*Booking, error) {
	if clientID == req.ProviderID {
		return nil, ErrCannotBookSelf
	}
	if !req.ScheduledEndDate.After(req.ScheduledStartDate) {
		return nil, ErrInvalidSchedule
	}

	hourlyRate, err := decimal.NewFromString(req.HourlyRate)
	if err != nil {
		return nil, ErrInvalidAmount
	}
	estimatedHours, err := decimal.NewFromString(req.EstimatedHours)
	if err != nil {
		return nil, ErrInvalidAmount
	}
	if !hourlyRate.IsPositive() || !estimatedHours.IsPositive() {
		return nil, ErrInvalidAmount
	}

	b := &Booking{
		ClientID:           clientID,
		ProviderID:         req.ProviderID,
		JobTitle:           req.JobTitle,
		JobDescription:     req.JobDescription,
		ScheduledStartDate: req.ScheduledStartDate,
		ScheduledEndDate:   req.ScheduledEndDate,
		HourlyRate:         hourlyRate,
		EstimatedHours:     estimatedHours,
		TotalAmount:        TotalFor(hourlyRate, estimatedHours),
		Status:             StatusPending,
	}

	return s.repo.Create(ctx, b)
}

// GetByID retrieves a booking by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// ListByUser retrieves a user's bookings with optional status filter
func (s *Service) ListByUser(ctx context.Context, userID int64, status *Status, page, perPage int) ([]*Booking, int, error) {
	if status != nil && !status.Valid() {
		return nil, 0, ErrInvalidStatusChange
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByUser(ctx, userID, status, perPage, offset)
}

// Accept lets the booked provider accept a pending booking
func (s *Service) Accept(ctx context.Context, id, userID int64) (*Booking, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.ProviderID != userID {
		return nil, ErrNotProvider
	}

	accepted, err := s.repo.Accept(ctx, id)
	if err != nil {
		return nil, err
	}
	if accepted == nil {
		return nil, ErrInvalidStatusChange
	}
	return accepted, nil
}

// Start lets the provider mark an accepted booking as in progress
func (s *Service) Start(ctx context.Context, id, userID int64) (*Booking, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.ProviderID != userID {
		return nil, ErrNotProvider
	}

	started, err := s.repo.Start(ctx, id)
	if err != nil {
		return nil, err
	}
	if started == nil {
		return nil, ErrInvalidStatusChange
	}
	return started, nil
}

// Complete lets the client confirm the job is done. The booking total
// becomes the gross amount of a new payment, and the settlement ledger
// (payment, commission, withholding tax) is written in the same step.
func (s *Service) Complete(ctx context.Context, id, userID int64, req *CompleteBookingRequest) (*Booking, *payment.Payment, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	transition, err := completionStep(b, userID)
	if err != nil {
		return nil, nil, err
	}

	completed := b
	if transition {
		completed, err = s.repo.Complete(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		if completed == nil {
			return nil, nil, ErrInvalidStatusChange
		}
	}

	p, err := s.paymentSvc.Capture(ctx, payment.CaptureParams{
		BookingID: completed.ID,
		Gross:     completed.TotalAmount,
		Method:    req.PaymentMethod,
		Gateway:   req.Gateway,
	})
	if err != nil {
		return nil, nil, err
	}

	return completed, p, nil
}

// completionStep decides what a completion request must do for a booking
// in its current state: transition then capture, or capture only. The
// status update and the capture run in separate database transactions, so
// a booking can end up COMPLETED with the capture failed; a repeat
// Complete call on such a booking retries just the capture instead of
// failing the status guard.
func completionStep(b *Booking, userID int64) (transition bool, err error) {
	if b.ClientID != userID {
		return false, ErrNotClient
	}
	if b.Status == StatusCompleted {
		return false, nil
	}
	if !b.Status.CanTransitionTo(StatusCompleted) {
		return false, ErrInvalidStatusChange
	}
	return true, nil
}

// Cancel lets either party cancel a booking that has not started yet
func (s *Service) Cancel(ctx context.Context, id, userID int64, reason string) (*Booking, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.ClientID != userID && b.ProviderID != userID {
		return nil, ErrNotParticipant
	}

	cancelled, err := s.repo.Cancel(ctx, id, reason)
	if err != nil {
		return nil, err
	}
	if cancelled == nil {
		return nil, ErrInvalidStatusChange
	}
	return cancelled, nil
}

// Dispute lets the client dispute a completed booking
func (s *Service) Dispute(ctx context.Context, id, userID int64) (*Booking, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.ClientID != userID {
		return nil, ErrNotClient
	}

	disputed, err := s.repo.Dispute(ctx, id)
	if err != nil {
		return nil, err
	}
	if disputed == nil {
		return nil, ErrInvalidStatusChange
	}
	return disputed, nil
}
