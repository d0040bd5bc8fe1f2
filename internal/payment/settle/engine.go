package settle

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrRateOutOfRange = errors.New("rate must be between 0 and 1")
	ErrNoPaymentID    = errors.New("payment id is required")
)

// pnd3DocTag identifies the Thai withholding-tax certificate form
// referenced by withholding-tax ledger entries.
const pnd3DocTag = "PND3"

var oneHundred = decimal.NewFromInt(100)

// Rates holds the settlement policy rates as fractions in [0,1].
// They are configuration, not compile-time constants, so rates can change
// per deployment without a rebuild.
type Rates struct {
	Commission     decimal.Decimal
	WithholdingTax decimal.Decimal
}

// Validate checks that both rates are within [0,1]
func (r Rates) Validate() error {
	for _, rate := range []decimal.Decimal{r.Commission, r.WithholdingTax} {
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
			return ErrRateOutOfRange
		}
	}
	return nil
}

// Calculation is the breakdown of a gross amount into commission,
// withholding tax and the net payable to the provider.
// Invariant: Net = Gross - Commission - WithholdingTax, exactly.
type Calculation struct {
	Gross          decimal.Decimal `json:"gross"`
	Commission     decimal.Decimal `json:"commission"`
	WithholdingTax decimal.Decimal `json:"withholding_tax"`
	Net            decimal.Decimal `json:"net"`
}

// Engine computes settlement breakdowns and produces ledger entries.
// It is stateless apart from its configured rates and is safe for
// concurrent use; every call operates only on its inputs.
type Engine struct {
	rates Rates
}

// NewEngine creates a settlement engine with the given policy rates
func NewEngine(rates Rates) (*Engine, error) {
	if err := rates.Validate(); err != nil {
		return nil, err
	}
	return &Engine{rates: rates}, nil
}

// Rates returns the policy rates the engine was configured with
func (e *Engine) Rates() Rates {
	return e.rates
}

// Calculate splits a gross amount into commission, withholding tax and net.
// Commission and tax are rounded to 2 decimal places using banker's
// rounding; net is the exact remainder so the parts always sum back to
// the gross amount.
func (e *Engine) Calculate(gross decimal.Decimal) (Calculation, error) {
	if gross.IsNegative() {
		return Calculation{}, fmt.Errorf("gross %s: %w", gross, ErrNegativeAmount)
	}

	commission := gross.Mul(e.rates.Commission).RoundBank(2)
	withholdingTax := gross.Mul(e.rates.WithholdingTax).RoundBank(2)
	net := gross.Sub(commission).Sub(withholdingTax)

	return Calculation{
		Gross:          gross,
		Commission:     commission,
		WithholdingTax: withholdingTax,
		Net:            net,
	}, nil
}

// PaymentEntries produces the three ledger entries recorded when a client
// payment is captured, in fixed order: the gross payment received, the
// platform commission deducted and the withholding tax deducted.
// The caller persists the entries; nothing is written here.
func (e *Engine) PaymentEntries(amounts PaymentAmounts) ([]Entry, error) {
	if err := amounts.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entries := []Entry{
		{
			PaymentID:   amounts.PaymentID,
			Type:        EntryTypePayment,
			Amount:      amounts.Gross,
			Description: "Payment received from client",
			CreatedAt:   now,
		},
		{
			PaymentID:   amounts.PaymentID,
			Type:        EntryTypeCommission,
			Amount:      amounts.Commission,
			Description: fmt.Sprintf("Platform commission (%s%%)", e.rates.Commission.Mul(oneHundred)),
			CreatedAt:   now,
		},
		{
			PaymentID:   amounts.PaymentID,
			Type:        EntryTypeWithholdingTax,
			Amount:      amounts.WithholdingTax,
			Description: fmt.Sprintf("Withholding tax %s%% (%s)", e.rates.WithholdingTax.Mul(oneHundred), pnd3DocTag),
			CreatedAt:   now,
		},
	}

	return entries, nil
}

// ReleaseEntry produces the single ledger entry recorded when escrowed
// funds are released to the provider. The amount is the payment's stored
// net amount, never recomputed.
//
// No idempotence check happens here: calling this twice yields two
// entries. The caller must gate release on the payment's status before
// invoking it.
func (e *Engine) ReleaseEntry(amounts PaymentAmounts) (Entry, error) {
	if err := amounts.validate(); err != nil {
		return Entry{}, err
	}

	return Entry{
		PaymentID:   amounts.PaymentID,
		Type:        EntryTypeRelease,
		Amount:      amounts.Net,
		Description: fmt.Sprintf("Payment released to provider (Net: %s)", amounts.Net.StringFixed(2)),
		CreatedAt:   time.Now().UTC(),
	}, nil
}
