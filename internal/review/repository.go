package review

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles database operations for reviews
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new review repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const reviewColumns = `
	r.id, r.booking_id, r.reviewer_id, r.reviewee_id, r.rating, r.comment, r.created_at,
	u.first_name || ' ' || u.last_name AS reviewer_name`

func scanReview(row interface{ Scan(...interface{}) error }) (*Review, error) {
	var rv Review
	err := row.Scan(
		&rv.ID, &rv.BookingID, &rv.ReviewerID, &rv.RevieweeID,
		&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.ReviewerName,
	)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// Create inserts a new review
func (r *Repository) Create(ctx context.Context, rv *Review) (*Review, error) {
	query := `
		INSERT INTO reviews (booking_id, reviewer_id, reviewee_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		rv.BookingID, rv.ReviewerID, rv.RevieweeID, rv.Rating, rv.Comment,
	).Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return rv, nil
}

// GetByID retrieves a review by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.reviewer_id
		WHERE r.id = $1`

	rv, err := scanReview(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return rv, nil
}

// GetByBookingID retrieves the review for a booking
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.reviewer_id
		WHERE r.booking_id = $1`

	rv, err := scanReview(r.db.QueryRowContext(ctx, query, bookingID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return rv, nil
}

// ListByReviewee retrieves reviews received by a provider, newest first
func (r *Repository) ListByReviewee(ctx context.Context, revieweeID int64, limit, offset int) ([]*Review, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE reviewee_id = $1`, revieweeID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		JOIN users u ON u.id = r.reviewer_id
		WHERE r.reviewee_id = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, revieweeID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	return reviews, total, rows.Err()
}
