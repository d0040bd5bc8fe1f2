package settle

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRates() Rates {
	return Rates{
		Commission:     decimal.NewFromFloat(0.10),
		WithholdingTax: decimal.NewFromFloat(0.03),
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(defaultRates())
	require.NoError(t, err)
	return engine
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNewEngineRejectsInvalidRates(t *testing.T) {
	tests := []struct {
		name  string
		rates Rates
	}{
		{"negative commission", Rates{Commission: dec("-0.10"), WithholdingTax: dec("0.03")}},
		{"commission above one", Rates{Commission: dec("1.01"), WithholdingTax: dec("0.03")}},
		{"negative withholding tax", Rates{Commission: dec("0.10"), WithholdingTax: dec("-0.03")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(tt.rates)
			assert.ErrorIs(t, err, ErrRateOutOfRange)
		})
	}
}

func TestCalculate(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name           string
		gross          string
		commission     string
		withholdingTax string
		net            string
	}{
		{"round amount", "1000.00", "100", "30", "870.00"},
		{"zero", "0", "0", "0", "0"},
		{"small amount", "0.01", "0", "0", "0.01"},
		{"uneven amount", "123.45", "12.34", "3.70", "107.41"},
		{"large amount", "99999.99", "10000.00", "3000.00", "86999.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := engine.Calculate(dec(tt.gross))
			require.NoError(t, err)

			assert.True(t, calc.Gross.Equal(dec(tt.gross)), "gross = %s", calc.Gross)
			assert.True(t, calc.Commission.Equal(dec(tt.commission)), "commission = %s", calc.Commission)
			assert.True(t, calc.WithholdingTax.Equal(dec(tt.withholdingTax)), "withholding tax = %s", calc.WithholdingTax)
			assert.True(t, calc.Net.Equal(dec(tt.net)), "net = %s", calc.Net)
		})
	}
}

func TestCalculatePartsSumToGross(t *testing.T) {
	engine := newTestEngine(t)

	for _, gross := range []string{"0", "0.01", "0.05", "1", "33.33", "123.45", "1000.00", "54321.09"} {
		calc, err := engine.Calculate(dec(gross))
		require.NoError(t, err)

		sum := calc.Commission.Add(calc.WithholdingTax).Add(calc.Net)
		assert.True(t, sum.Equal(calc.Gross), "gross %s: parts sum to %s", gross, sum)
	}
}

func TestCalculateIsPure(t *testing.T) {
	engine := newTestEngine(t)

	first, err := engine.Calculate(dec("456.78"))
	require.NoError(t, err)
	second, err := engine.Calculate(dec("456.78"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculateRejectsNegativeGross(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Calculate(dec("-100.00"))
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestCalculateWithCustomRates(t *testing.T) {
	engine, err := NewEngine(Rates{Commission: dec("0.25"), WithholdingTax: dec("0.05")})
	require.NoError(t, err)

	calc, err := engine.Calculate(dec("200.00"))
	require.NoError(t, err)

	assert.True(t, calc.Commission.Equal(dec("50.00")))
	assert.True(t, calc.WithholdingTax.Equal(dec("10.00")))
	assert.True(t, calc.Net.Equal(dec("140.00")))
}

func testAmounts() PaymentAmounts {
	return PaymentAmounts{
		PaymentID:      42,
		Gross:          dec("1000.00"),
		Commission:     dec("100.00"),
		WithholdingTax: dec("30.00"),
		Net:            dec("870.00"),
	}
}

func TestPaymentEntries(t *testing.T) {
	engine := newTestEngine(t)

	entries, err := engine.PaymentEntries(testAmounts())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, EntryTypePayment, entries[0].Type)
	assert.Equal(t, EntryTypeCommission, entries[1].Type)
	assert.Equal(t, EntryTypeWithholdingTax, entries[2].Type)

	assert.True(t, entries[0].Amount.Equal(dec("1000.00")))
	assert.True(t, entries[1].Amount.Equal(dec("100.00")))
	assert.True(t, entries[2].Amount.Equal(dec("30.00")))

	assert.Equal(t, "Payment received from client", entries[0].Description)
	assert.Equal(t, "Platform commission (10%)", entries[1].Description)
	assert.Equal(t, "Withholding tax 3% (PND3)", entries[2].Description)

	for _, entry := range entries {
		assert.Equal(t, int64(42), entry.PaymentID)
		assert.WithinDuration(t, time.Now().UTC(), entry.CreatedAt, time.Second)
	}

	// Timestamps must be non-decreasing in ledger order.
	assert.False(t, entries[1].CreatedAt.Before(entries[0].CreatedAt))
	assert.False(t, entries[2].CreatedAt.Before(entries[1].CreatedAt))
}

func TestPaymentEntriesValidation(t *testing.T) {
	engine := newTestEngine(t)

	noID := testAmounts()
	noID.PaymentID = 0
	_, err := engine.PaymentEntries(noID)
	assert.ErrorIs(t, err, ErrNoPaymentID)

	negative := testAmounts()
	negative.Commission = dec("-1.00")
	_, err = engine.PaymentEntries(negative)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestReleaseEntry(t *testing.T) {
	engine := newTestEngine(t)

	entry, err := engine.ReleaseEntry(testAmounts())
	require.NoError(t, err)

	assert.Equal(t, int64(42), entry.PaymentID)
	assert.Equal(t, EntryTypeRelease, entry.Type)
	assert.True(t, entry.Amount.Equal(dec("870.00")))
	assert.Equal(t, "Payment released to provider (Net: 870.00)", entry.Description)
	assert.WithinDuration(t, time.Now().UTC(), entry.CreatedAt, time.Second)
}

func TestReleaseEntryUsesStoredNet(t *testing.T) {
	engine := newTestEngine(t)

	// Net deliberately inconsistent with the other amounts: the engine
	// must take the stored value as-is, not recompute it.
	amounts := testAmounts()
	amounts.Net = dec("500.00")

	entry, err := engine.ReleaseEntry(amounts)
	require.NoError(t, err)
	assert.True(t, entry.Amount.Equal(dec("500.00")))
}

func TestReleaseEntryRejectsNegativeNet(t *testing.T) {
	engine := newTestEngine(t)

	amounts := testAmounts()
	amounts.Net = dec("-870.00")

	_, err := engine.ReleaseEntry(amounts)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}
