package settle

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType identifies the kind of monetary movement a ledger entry records
type EntryType string

const (
	EntryTypePayment        EntryType = "PAYMENT"
	EntryTypeCommission     EntryType = "COMMISSION"
	EntryTypeWithholdingTax EntryType = "WITHHOLDING_TAX"
	EntryTypeRelease        EntryType = "RELEASE"
	// EntryTypeRefund is a recognized ledger entry kind, but refunds are
	// raised by an external/manual process; the engine never produces one.
	EntryTypeRefund EntryType = "REFUND"
)

// Entry is a single ledger line produced by the engine for the caller to
// persist. Entries are append-only once stored.
type Entry struct {
	PaymentID   int64           `json:"payment_id"`
	Type        EntryType       `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PaymentAmounts carries the stored monetary breakdown of a payment into
// entry production. The amounts are whatever Calculate returned when the
// payment was captured; the engine does not recompute them.
type PaymentAmounts struct {
	PaymentID      int64
	Gross          decimal.Decimal
	Commission     decimal.Decimal
	WithholdingTax decimal.Decimal
	Net            decimal.Decimal
}

func (a PaymentAmounts) validate() error {
	if a.PaymentID <= 0 {
		return ErrNoPaymentID
	}
	for _, amount := range []decimal.Decimal{a.Gross, a.Commission, a.WithholdingTax, a.Net} {
		if amount.IsNegative() {
			return fmt.Errorf("payment %d: %w", a.PaymentID, ErrNegativeAmount)
		}
	}
	return nil
}
