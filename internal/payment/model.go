package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/picthaisky/jobmarket/internal/payment/settle"
)

// Method represents how the client paid
type Method string

const (
	MethodCreditCard   Method = "CREDIT_CARD"
	MethodDebitCard    Method = "DEBIT_CARD"
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodMobileWallet Method = "MOBILE_WALLET"
	MethodOther        Method = "OTHER"
)

// Valid reports whether the method is one of the known payment methods
func (m Method) Valid() bool {
	switch m {
	case MethodCreditCard, MethodDebitCard, MethodBankTransfer, MethodMobileWallet, MethodOther:
		return true
	}
	return false
}

// Payment represents the escrowed payment for a completed booking.
// Each booking has at most one payment. A payment is never deleted,
// only transitioned through statuses.
type Payment struct {
	ID        int64 `json:"id"`
	BookingID int64 `json:"booking_id"`

	Amount               decimal.Decimal `json:"amount"`
	CommissionAmount     decimal.Decimal `json:"commission_amount"`
	WithholdingTaxAmount decimal.Decimal `json:"withholding_tax_amount"`
	NetAmount            decimal.Decimal `json:"net_amount"`

	Status               Status  `json:"status"`
	Method               Method  `json:"payment_method"`
	Gateway              *string `json:"gateway,omitempty"`
	GatewayTransactionID *string `json:"gateway_transaction_id,omitempty"`

	PaidAt     *time.Time `json:"paid_at,omitempty"`
	ReleasedAt *time.Time `json:"released_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Populated via JOIN
	ProviderID int64 `json:"provider_id,omitempty"`
	ClientID   int64 `json:"client_id,omitempty"`
}

// Amounts returns the payment's stored monetary breakdown in the form
// the settlement engine consumes
func (p *Payment) Amounts() settle.PaymentAmounts {
	return settle.PaymentAmounts{
		PaymentID:      p.ID,
		Gross:          p.Amount,
		Commission:     p.CommissionAmount,
		WithholdingTax: p.WithholdingTaxAmount,
		Net:            p.NetAmount,
	}
}

// TransactionType identifies the kind of ledger transaction
type TransactionType string

const (
	TransactionTypePayment        TransactionType = TransactionType(settle.EntryTypePayment)
	TransactionTypeCommission     TransactionType = TransactionType(settle.EntryTypeCommission)
	TransactionTypeWithholdingTax TransactionType = TransactionType(settle.EntryTypeWithholdingTax)
	TransactionTypeRelease        TransactionType = TransactionType(settle.EntryTypeRelease)
	TransactionTypeRefund         TransactionType = TransactionType(settle.EntryTypeRefund)
)

// Transaction is one line of the append-only ledger for a payment.
// Once inserted it is immutable; the repository exposes no update or
// delete for transactions.
type Transaction struct {
	ID          int64           `json:"id"`
	PaymentID   int64           `json:"payment_id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Reference   *string         `json:"reference,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// fromEntry converts an engine ledger entry into a persistable transaction
func fromEntry(entry settle.Entry) *Transaction {
	return &Transaction{
		PaymentID:   entry.PaymentID,
		Type:        TransactionType(entry.Type),
		Amount:      entry.Amount,
		Description: entry.Description,
		CreatedAt:   entry.CreatedAt,
	}
}
