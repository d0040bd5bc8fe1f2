package income

import "time"

// IssueDocumentRequest asks for an invoice or receipt to be issued
type IssueDocumentRequest struct {
	ProviderID   int64        `json:"provider_id" validate:"required"`
	BookingID    int64        `json:"booking_id" validate:"required"`
	DocumentType DocumentType `json:"document_type" validate:"required"`
	Amount       string       `json:"amount" validate:"required"`
	Year         int          `json:"year,omitempty"`
}

// TaxDocumentResponse represents a tax document in API responses
type TaxDocumentResponse struct {
	ID             int64        `json:"id"`
	ProviderID     int64        `json:"provider_id"`
	BookingID      int64        `json:"booking_id"`
	DocumentType   DocumentType `json:"document_type"`
	DocumentNumber string       `json:"document_number"`
	Year           int          `json:"year"`
	Amount         string       `json:"amount"`
	IssuedDate     string       `json:"issued_date"`
}

// ToResponse converts a TaxDocument model to its DTO
func (d *TaxDocument) ToResponse() *TaxDocumentResponse {
	return &TaxDocumentResponse{
		ID:             d.ID,
		ProviderID:     d.ProviderID,
		BookingID:      d.BookingID,
		DocumentType:   d.DocumentType,
		DocumentNumber: d.DocumentNumber,
		Year:           d.Year,
		Amount:         d.Amount.StringFixed(2),
		IssuedDate:     d.IssuedDate.Format(time.RFC3339),
	}
}

// SummaryResponse represents a provider's yearly income summary
type SummaryResponse struct {
	ProviderID             int64  `json:"provider_id"`
	Year                   int    `json:"year"`
	TotalGrossIncome       string `json:"total_gross_income"`
	TotalCommission        string `json:"total_commission"`
	TotalWithholdingTax    string `json:"total_withholding_tax"`
	TotalNetIncome         string `json:"total_net_income"`
	TotalCompletedBookings int    `json:"total_completed_bookings"`
}

// ToResponse converts a Summary model to its DTO
func (s *Summary) ToResponse() *SummaryResponse {
	return &SummaryResponse{
		ProviderID:             s.ProviderID,
		Year:                   s.Year,
		TotalGrossIncome:       s.TotalGrossIncome.StringFixed(2),
		TotalCommission:        s.TotalCommission.StringFixed(2),
		TotalWithholdingTax:    s.TotalWithholdingTax.StringFixed(2),
		TotalNetIncome:         s.TotalNetIncome.StringFixed(2),
		TotalCompletedBookings: s.TotalCompletedBookings,
	}
}
