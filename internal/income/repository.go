package income

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles tax document persistence and income aggregation
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new income repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateDocument inserts a new tax document
func (r *Repository) CreateDocument(ctx context.Context, doc *TaxDocument) (*TaxDocument, error) {
	query := `
		INSERT INTO tax_documents (provider_id, booking_id, document_type, document_number, year, amount, issued_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	created := *doc
	err := r.db.QueryRowContext(ctx, query,
		doc.ProviderID, doc.BookingID, doc.DocumentType, doc.DocumentNumber, doc.Year, doc.Amount, doc.IssuedDate,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create tax document: %w", err)
	}

	return &created, nil
}

// GetDocumentByID retrieves a tax document by its ID
func (r *Repository) GetDocumentByID(ctx context.Context, id int64) (*TaxDocument, error) {
	query := `
		SELECT id, provider_id, booking_id, document_type, document_number, year, amount, issued_date, created_at
		FROM tax_documents
		WHERE id = $1
	`

	doc := &TaxDocument{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.ProviderID,
		&doc.BookingID,
		&doc.DocumentType,
		&doc.DocumentNumber,
		&doc.Year,
		&doc.Amount,
		&doc.IssuedDate,
		&doc.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tax document: %w", err)
	}

	return doc, nil
}

// GetDocumentByBookingAndType retrieves the document of a given type for a booking
func (r *Repository) GetDocumentByBookingAndType(ctx context.Context, bookingID int64, docType DocumentType) (*TaxDocument, error) {
	query := `
		SELECT id, provider_id, booking_id, document_type, document_number, year, amount, issued_date, created_at
		FROM tax_documents
		WHERE booking_id = $1 AND document_type = $2
	`

	doc := &TaxDocument{}
	err := r.db.QueryRowContext(ctx, query, bookingID, docType).Scan(
		&doc.ID,
		&doc.ProviderID,
		&doc.BookingID,
		&doc.DocumentType,
		&doc.DocumentNumber,
		&doc.Year,
		&doc.Amount,
		&doc.IssuedDate,
		&doc.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tax document by booking: %w", err)
	}

	return doc, nil
}

// ListDocumentsByProvider retrieves tax documents for a provider,
// optionally limited to a year, newest first
func (r *Repository) ListDocumentsByProvider(ctx context.Context, providerID int64, year *int, limit, offset int) ([]*TaxDocument, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(*) FROM tax_documents
		WHERE provider_id = $1 AND ($2::int IS NULL OR year = $2)
	`
	if err := r.db.QueryRowContext(ctx, countQuery, providerID, year).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tax documents: %w", err)
	}

	query := `
		SELECT id, provider_id, booking_id, document_type, document_number, year, amount, issued_date, created_at
		FROM tax_documents
		WHERE provider_id = $1 AND ($2::int IS NULL OR year = $2)
		ORDER BY issued_date DESC, id DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.QueryContext(ctx, query, providerID, year, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tax documents: %w", err)
	}
	defer rows.Close()

	var docs []*TaxDocument
	for rows.Next() {
		doc := &TaxDocument{}
		if err := rows.Scan(
			&doc.ID,
			&doc.ProviderID,
			&doc.BookingID,
			&doc.DocumentType,
			&doc.DocumentNumber,
			&doc.Year,
			&doc.Amount,
			&doc.IssuedDate,
			&doc.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan tax document: %w", err)
		}
		docs = append(docs, doc)
	}

	return docs, total, rows.Err()
}

// GetYearlySummary aggregates a provider's released payments for a year
func (r *Repository) GetYearlySummary(ctx context.Context, providerID int64, year int) (*Summary, error) {
	query := `
		SELECT
			COALESCE(SUM(p.amount), 0),
			COALESCE(SUM(p.commission_amount), 0),
			COALESCE(SUM(p.withholding_tax_amount), 0),
			COALESCE(SUM(p.net_amount), 0),
			COUNT(*)
		FROM payments p
		JOIN bookings b ON p.booking_id = b.id
		WHERE b.provider_id = $1
		  AND p.status = 'RELEASED'
		  AND EXTRACT(YEAR FROM p.released_at) = $2
	`

	summary := &Summary{ProviderID: providerID, Year: year}
	err := r.db.QueryRowContext(ctx, query, providerID, year).Scan(
		&summary.TotalGrossIncome,
		&summary.TotalCommission,
		&summary.TotalWithholdingTax,
		&summary.TotalNetIncome,
		&summary.TotalCompletedBookings,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get income summary: %w", err)
	}

	return summary, nil
}
