package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles booking data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new booking repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const bookingColumns = `
	bk.id, bk.client_id, bk.provider_id, bk.job_title, bk.job_description,
	bk.scheduled_start_date, bk.scheduled_end_date, bk.hourly_rate, bk.estimated_hours, bk.total_amount,
	bk.status, bk.accepted_at, bk.completed_at, bk.cancelled_at, bk.cancellation_reason,
	bk.created_at, bk.updated_at,
	c.first_name || ' ' || c.last_name, p.first_name || ' ' || p.last_name
`

const bookingJoins = `
	FROM bookings bk
	JOIN users c ON bk.client_id = c.id
	JOIN users p ON bk.provider_id = p.id
`

func scanBooking(row interface{ Scan(...interface{}) error }) (*Booking, error) {
	b := &Booking{}
	err := row.Scan(
		&b.ID,
		&b.ClientID,
		&b.ProviderID,
		&b.JobTitle,
		&b.JobDescription,
		&b.ScheduledStartDate,
		&b.ScheduledEndDate,
		&b.HourlyRate,
		&b.EstimatedHours,
		&b.TotalAmount,
		&b.Status,
		&b.AcceptedAt,
		&b.CompletedAt,
		&b.CancelledAt,
		&b.CancellationReason,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.ClientName,
		&b.ProviderName,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Create inserts a new booking
func (r *Repository) Create(ctx context.Context, b *Booking) (*Booking, error) {
	query := `
		INSERT INTO bookings (client_id, provider_id, job_title, job_description,
		                      scheduled_start_date, scheduled_end_date, hourly_rate, estimated_hours, total_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	created := *b
	err := r.db.QueryRowContext(ctx, query,
		b.ClientID, b.ProviderID, b.JobTitle, b.JobDescription,
		b.ScheduledStartDate, b.ScheduledEndDate, b.HourlyRate, b.EstimatedHours, b.TotalAmount, b.Status,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return &created, nil
}

// GetByID retrieves a booking by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	query := `SELECT ` + bookingColumns + bookingJoins + ` WHERE bk.id = $1`

	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

// ListByUser retrieves bookings where the user is client or provider,
// optionally filtered by status, newest first
func (r *Repository) ListByUser(ctx context.Context, userID int64, status *Status, limit, offset int) ([]*Booking, int, error) {
	var statusArg interface{}
	if status != nil {
		statusArg = string(*status)
	}

	var total int
	countQuery := `
		SELECT COUNT(*) FROM bookings
		WHERE (client_id = $1 OR provider_id = $1)
		  AND ($2::text IS NULL OR status = $2)
	`
	if err := r.db.QueryRowContext(ctx, countQuery, userID, statusArg).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	query := `
		SELECT ` + bookingColumns + bookingJoins + `
		WHERE (bk.client_id = $1 OR bk.provider_id = $1)
		  AND ($2::text IS NULL OR bk.status = $2)
		ORDER BY bk.created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.QueryContext(ctx, query, userID, statusArg, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, rows.Err()
}

// transition updates a booking's status only if its current status is one
// of the expected ones; extra is an additional SET clause for timestamps
// and reasons
func (r *Repository) transition(ctx context.Context, id int64, to Status, extra string, args []interface{}, from ...Status) (*Booking, error) {
	fromValues := make([]string, len(from))
	for i, s := range from {
		fromValues[i] = string(s)
	}

	params := []interface{}{id, string(to), pq.Array(fromValues)}
	params = append(params, args...)

	query := `
		UPDATE bookings bk
		SET status = $2, updated_at = NOW()` + extra + `
		FROM users c, users p
		WHERE bk.id = $1 AND bk.status = ANY($3)
		  AND bk.client_id = c.id AND bk.provider_id = p.id
		RETURNING ` + bookingColumns + `
	`

	b, err := scanBooking(r.db.QueryRowContext(ctx, query, params...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to transition booking to %s: %w", to, err)
	}
	return b, nil
}

// Accept transitions a pending booking to ACCEPTED
func (r *Repository) Accept(ctx context.Context, id int64) (*Booking, error) {
	return r.transition(ctx, id, StatusAccepted, ", accepted_at = NOW()", nil, StatusPending)
}

// Start transitions an accepted booking to IN_PROGRESS
func (r *Repository) Start(ctx context.Context, id int64) (*Booking, error) {
	return r.transition(ctx, id, StatusInProgress, "", nil, StatusAccepted)
}

// Complete transitions an in-progress booking to COMPLETED
func (r *Repository) Complete(ctx context.Context, id int64) (*Booking, error) {
	return r.transition(ctx, id, StatusCompleted, ", completed_at = NOW()", nil, StatusInProgress)
}

// Cancel transitions a pending or accepted booking to CANCELLED
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) (*Booking, error) {
	return r.transition(ctx, id, StatusCancelled, ", cancelled_at = NOW(), cancellation_reason = $4", []interface{}{reason}, StatusPending, StatusAccepted)
}

// Dispute transitions a completed booking to DISPUTED
func (r *Repository) Dispute(ctx context.Context, id int64) (*Booking, error) {
	return r.transition(ctx, id, StatusDisputed, "", nil, StatusCompleted)
}
