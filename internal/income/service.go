package income

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrDocumentNotFound    = errors.New("tax document not found")
	ErrInvalidDocumentType = errors.New("invalid tax document type")
	ErrNegativeAmount      = errors.New("document amount cannot be negative")
)

// Service handles provider income summaries and tax documents
type Service struct {
	repo *Repository
}

// NewService creates a new income service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// documentNumber builds a unique human-readable document number,
// e.g. PND3-2026-1A2B3C4D
func documentNumber(docType DocumentType, year int) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%d-%s", docType, year, suffix)
}

// IssueWithholdingCertificate issues the PND3 certificate that accompanies
// a released payment. Issuing twice for the same booking returns the
// existing certificate instead of creating a duplicate.
func (s *Service) IssueWithholdingCertificate(ctx context.Context, providerID, bookingID int64, amount decimal.Decimal, year int) (*TaxDocument, error) {
	existing, err := s.repo.GetDocumentByBookingAndType(ctx, bookingID, DocumentTypePND3)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	return s.issue(ctx, providerID, bookingID, DocumentTypePND3, amount, year)
}

// IssueDocument issues an invoice or receipt for a booking
func (s *Service) IssueDocument(ctx context.Context, providerID, bookingID int64, docType DocumentType, amount decimal.Decimal, year int) (*TaxDocument, error) {
	if !docType.Valid() {
		return nil, ErrInvalidDocumentType
	}
	return s.issue(ctx, providerID, bookingID, docType, amount, year)
}

func (s *Service) issue(ctx context.Context, providerID, bookingID int64, docType DocumentType, amount decimal.Decimal, year int) (*TaxDocument, error) {
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	now := time.Now().UTC()
	if year == 0 {
		year = now.Year()
	}

	doc := &TaxDocument{
		ProviderID:     providerID,
		BookingID:      bookingID,
		DocumentType:   docType,
		DocumentNumber: documentNumber(docType, year),
		Year:           year,
		Amount:         amount,
		IssuedDate:     now,
	}

	return s.repo.CreateDocument(ctx, doc)
}

// GetDocumentByID retrieves a tax document by its ID
func (s *Service) GetDocumentByID(ctx context.Context, id int64) (*TaxDocument, error) {
	doc, err := s.repo.GetDocumentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

// ListDocuments retrieves a provider's tax documents with pagination
func (s *Service) ListDocuments(ctx context.Context, providerID int64, year *int, page, perPage int) ([]*TaxDocument, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListDocumentsByProvider(ctx, providerID, year, perPage, offset)
}

// GetYearlySummary aggregates a provider's income for one year from
// released payments
func (s *Service) GetYearlySummary(ctx context.Context, providerID int64, year int) (*Summary, error) {
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	return s.repo.GetYearlySummary(ctx, providerID, year)
}
