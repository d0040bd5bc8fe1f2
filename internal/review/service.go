package review

import (
	"context"
	"errors"
	"log"

	"github.com/picthaisky/jobmarket/internal/booking"
	"github.com/picthaisky/jobmarket/internal/provider"
)

// Common errors
var (
	ErrReviewNotFound     = errors.New("review not found")
	ErrReviewExists       = errors.New("booking already has a review")
	ErrBookingNotReviewed = errors.New("only completed bookings can be reviewed")
	ErrNotBookingClient   = errors.New("only the booking client can leave a review")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
)

// Service handles review business logic
type Service struct {
	repo        *Repository
	bookingSvc  *booking.Service
	providerSvc *provider.Service
}

// NewService creates a new review service
func NewService(repo *Repository, bookingSvc *booking.Service, providerSvc *provider.Service) *Service {
	return &Service{repo: repo, bookingSvc: bookingSvc, providerSvc: providerSvc}
}

// Create records a review for a completed booking and refreshes the
// provider's rating aggregates
func (s *Service) Create(ctx context.Context, reviewerID int64, req *CreateReviewRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	b, err := s.bookingSvc.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.ClientID != reviewerID {
		return nil, ErrNotBookingClient
	}
	if b.Status != booking.StatusCompleted && b.Status != booking.StatusDisputed {
		return nil, ErrBookingNotReviewed
	}

	existing, err := s.repo.GetByBookingID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReviewExists
	}

	rv := &Review{
		BookingID:  req.BookingID,
		ReviewerID: reviewerID,
		RevieweeID: b.ProviderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	created, err := s.repo.Create(ctx, rv)
	if err != nil {
		return nil, err
	}

	// The review is committed; a failed aggregate refresh is recoverable
	// on the next review, so it only gets logged
	if err := s.providerSvc.RefreshRating(ctx, b.ProviderID); err != nil {
		log.Printf("failed to refresh rating for provider %d: %v", b.ProviderID, err)
	}

	return created, nil
}

// GetByID retrieves a review by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Review, error) {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv == nil {
		return nil, ErrReviewNotFound
	}
	return rv, nil
}

// GetByBookingID retrieves the review for a booking
func (s *Service) GetByBookingID(ctx context.Context, bookingID int64) (*Review, error) {
	rv, err := s.repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if rv == nil {
		return nil, ErrReviewNotFound
	}
	return rv, nil
}

// ListByProvider retrieves reviews received by a provider, with pagination
func (s *Service) ListByProvider(ctx context.Context, providerUserID int64, page, perPage int) ([]*Review, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByReviewee(ctx, providerUserID, perPage, offset)
}
