package income

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType represents the kind of tax document issued to a provider
type DocumentType string

const (
	// DocumentTypePND3 is the Thai withholding-tax certificate issued
	// when escrowed funds are released to a provider.
	DocumentTypePND3    DocumentType = "PND3"
	DocumentTypeInvoice DocumentType = "INVOICE"
	DocumentTypeReceipt DocumentType = "RECEIPT"
)

// Valid reports whether the document type is known
func (d DocumentType) Valid() bool {
	switch d {
	case DocumentTypePND3, DocumentTypeInvoice, DocumentTypeReceipt:
		return true
	}
	return false
}

// TaxDocument represents a tax document issued to a provider for a booking
type TaxDocument struct {
	ID             int64           `json:"id"`
	ProviderID     int64           `json:"provider_id"`
	BookingID      int64           `json:"booking_id"`
	DocumentType   DocumentType    `json:"document_type"`
	DocumentNumber string          `json:"document_number"`
	Year           int             `json:"year"`
	Amount         decimal.Decimal `json:"amount"`
	IssuedDate     time.Time       `json:"issued_date"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Summary is a provider's income totals for one year, aggregated from
// released payments. It is derived from the ledger, not stored.
type Summary struct {
	ProviderID             int64           `json:"provider_id"`
	Year                   int             `json:"year"`
	TotalGrossIncome       decimal.Decimal `json:"total_gross_income"`
	TotalCommission        decimal.Decimal `json:"total_commission"`
	TotalWithholdingTax    decimal.Decimal `json:"total_withholding_tax"`
	TotalNetIncome         decimal.Decimal `json:"total_net_income"`
	TotalCompletedBookings int             `json:"total_completed_bookings"`
}
