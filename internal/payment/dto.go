package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/picthaisky/jobmarket/internal/payment/settle"
)

// MarkPaidRequest records the gateway's capture confirmation
type MarkPaidRequest struct {
	GatewayTransactionID *string `json:"gateway_transaction_id,omitempty"`
}

// RefundRequest asks for a paid or held payment to be returned to the client
type RefundRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// PaymentResponse represents the response for a single payment.
// Monetary amounts are rendered with two decimal places.
type PaymentResponse struct {
	ID                   int64   `json:"id"`
	BookingID            int64   `json:"booking_id"`
	Amount               string  `json:"amount"`
	CommissionAmount     string  `json:"commission_amount"`
	WithholdingTaxAmount string  `json:"withholding_tax_amount"`
	NetAmount            string  `json:"net_amount"`
	Status               Status  `json:"status"`
	Method               Method  `json:"payment_method"`
	Gateway              *string `json:"gateway,omitempty"`
	GatewayTransactionID *string `json:"gateway_transaction_id,omitempty"`
	PaidAt               *string `json:"paid_at,omitempty"`
	ReleasedAt           *string `json:"released_at,omitempty"`
	CreatedAt            string  `json:"created_at"`
}

// ToResponse converts a Payment model to a PaymentResponse DTO
func (p *Payment) ToResponse() *PaymentResponse {
	return &PaymentResponse{
		ID:                   p.ID,
		BookingID:            p.BookingID,
		Amount:               p.Amount.StringFixed(2),
		CommissionAmount:     p.CommissionAmount.StringFixed(2),
		WithholdingTaxAmount: p.WithholdingTaxAmount.StringFixed(2),
		NetAmount:            p.NetAmount.StringFixed(2),
		Status:               p.Status,
		Method:               p.Method,
		Gateway:              p.Gateway,
		GatewayTransactionID: p.GatewayTransactionID,
		PaidAt:               formatTimePtr(p.PaidAt),
		ReleasedAt:           formatTimePtr(p.ReleasedAt),
		CreatedAt:            p.CreatedAt.Format(time.RFC3339),
	}
}

// TransactionResponse represents one ledger line in API responses
type TransactionResponse struct {
	ID          int64           `json:"id"`
	PaymentID   int64           `json:"payment_id"`
	Type        TransactionType `json:"type"`
	Amount      string          `json:"amount"`
	Description string          `json:"description"`
	Reference   *string         `json:"reference,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

// ToResponse converts a Transaction model to a TransactionResponse DTO
func (t *Transaction) ToResponse() *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		PaymentID:   t.PaymentID,
		Type:        t.Type,
		Amount:      t.Amount.StringFixed(2),
		Description: t.Description,
		Reference:   t.Reference,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}

// CalculationResponse represents a settlement breakdown preview
type CalculationResponse struct {
	GrossAmount          string `json:"gross_amount"`
	CommissionAmount     string `json:"commission_amount"`
	WithholdingTaxAmount string `json:"withholding_tax_amount"`
	NetAmount            string `json:"net_amount"`
}

// NewCalculationResponse converts an engine calculation to its DTO
func NewCalculationResponse(calc settle.Calculation) *CalculationResponse {
	return &CalculationResponse{
		GrossAmount:          calc.Gross.StringFixed(2),
		CommissionAmount:     calc.Commission.StringFixed(2),
		WithholdingTaxAmount: calc.WithholdingTax.StringFixed(2),
		NetAmount:            calc.Net.StringFixed(2),
	}
}

// ParseAmount parses a monetary amount from its API string form
func ParseAmount(value string) (decimal.Decimal, error) {
	return decimal.NewFromString(value)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
