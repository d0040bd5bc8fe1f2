package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.CommissionRate.Equal(decimal.NewFromFloat(0.10)))
	assert.True(t, cfg.WithholdingTaxRate.Equal(decimal.NewFromFloat(0.03)))
}

func TestLoadRatesFromEnv(t *testing.T) {
	t.Setenv("COMMISSION_RATE", "0.15")
	t.Setenv("WITHHOLDING_TAX_RATE", "0.05")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.CommissionRate.Equal(decimal.NewFromFloat(0.15)))
	assert.True(t, cfg.WithholdingTaxRate.Equal(decimal.NewFromFloat(0.05)))
}

func TestLoadRejectsInvalidRates(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "ten percent"},
		{"negative", "-0.10"},
		{"above one", "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("COMMISSION_RATE", tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
