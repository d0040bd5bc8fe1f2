package income

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDocumentTypeValid(t *testing.T) {
	for _, d := range []DocumentType{DocumentTypePND3, DocumentTypeInvoice, DocumentTypeReceipt} {
		assert.True(t, d.Valid(), "%s", d)
	}
	assert.False(t, DocumentType("W2").Valid())
}

func TestDocumentNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^PND3-2026-[0-9A-F]{8}$`)

	number := documentNumber(DocumentTypePND3, 2026)
	assert.Regexp(t, pattern, number)

	// Numbers must be unique across calls.
	assert.NotEqual(t, number, documentNumber(DocumentTypePND3, 2026))
}

func TestSummaryToResponse(t *testing.T) {
	summary := &Summary{
		ProviderID:             7,
		Year:                   2026,
		TotalGrossIncome:       decimal.RequireFromString("15000"),
		TotalCommission:        decimal.RequireFromString("1500"),
		TotalWithholdingTax:    decimal.RequireFromString("450"),
		TotalNetIncome:         decimal.RequireFromString("13050"),
		TotalCompletedBookings: 12,
	}

	resp := summary.ToResponse()
	assert.Equal(t, "15000.00", resp.TotalGrossIncome)
	assert.Equal(t, "1500.00", resp.TotalCommission)
	assert.Equal(t, "450.00", resp.TotalWithholdingTax)
	assert.Equal(t, "13050.00", resp.TotalNetIncome)
	assert.Equal(t, 12, resp.TotalCompletedBookings)
}
