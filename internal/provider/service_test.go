package provider

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRate(t *testing.T) {
	t.Run("accepts positive amounts", func(t *testing.T) {
		rate, err := parseRate("350.50")
		require.NoError(t, err)
		assert.True(t, rate.Equal(decimal.RequireFromString("350.50")))
	})

	t.Run("rejects zero", func(t *testing.T) {
		_, err := parseRate("0")
		assert.ErrorIs(t, err, ErrInvalidHourlyRate)
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := parseRate("-10.00")
		assert.ErrorIs(t, err, ErrInvalidHourlyRate)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := parseRate("abc")
		assert.ErrorIs(t, err, ErrInvalidHourlyRate)
	})
}

func TestValidSlotTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, v := range valid {
		assert.True(t, validSlotTime(v), v)
	}

	invalid := []string{"", "9:30", "24:00", "12:60", "12-30", "12:3a", "120:30"}
	for _, v := range invalid {
		assert.False(t, validSlotTime(v), v)
	}
}
