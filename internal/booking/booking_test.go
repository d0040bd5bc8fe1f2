package booking

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusAccepted))
	assert.True(t, StatusAccepted.CanTransitionTo(StatusInProgress))
	assert.True(t, StatusInProgress.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusCompleted.CanTransitionTo(StatusDisputed))

	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusAccepted.CanTransitionTo(StatusCancelled))

	// Work that has started cannot be cancelled, only completed.
	assert.False(t, StatusInProgress.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusPending.CanTransitionTo(StatusCompleted))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusAccepted))
	assert.False(t, StatusDisputed.CanTransitionTo(StatusCompleted))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusInProgress.Valid())
	assert.False(t, Status("DONE").Valid())
}

func TestCompletionStep(t *testing.T) {
	t.Run("transitions an in-progress booking", func(t *testing.T) {
		b := &Booking{ClientID: 1, ProviderID: 2, Status: StatusInProgress}

		transition, err := completionStep(b, 1)
		assert.NoError(t, err)
		assert.True(t, transition)
	})

	t.Run("retries only the capture when already completed", func(t *testing.T) {
		// A completed booking whose payment capture failed must not be
		// stuck behind the status guard.
		b := &Booking{ClientID: 1, ProviderID: 2, Status: StatusCompleted}

		transition, err := completionStep(b, 1)
		assert.NoError(t, err)
		assert.False(t, transition)
	})

	t.Run("only the client can complete", func(t *testing.T) {
		b := &Booking{ClientID: 1, ProviderID: 2, Status: StatusInProgress}

		_, err := completionStep(b, 2)
		assert.ErrorIs(t, err, ErrNotClient)
	})

	t.Run("rejects bookings that never started", func(t *testing.T) {
		for _, status := range []Status{StatusPending, StatusAccepted, StatusCancelled, StatusDisputed} {
			b := &Booking{ClientID: 1, ProviderID: 2, Status: status}

			_, err := completionStep(b, 1)
			assert.ErrorIs(t, err, ErrInvalidStatusChange, "status %s", status)
		}
	})
}

func TestTotalFor(t *testing.T) {
	tests := []struct {
		name  string
		rate  string
		hours string
		total string
	}{
		{"whole hours", "500.00", "8", "4000.00"},
		{"fractional hours", "350.50", "2.5", "876.25"},
		{"rounding needed", "333.33", "1.5", "500.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := TotalFor(decimal.RequireFromString(tt.rate), decimal.RequireFromString(tt.hours))
			assert.True(t, total.Equal(decimal.RequireFromString(tt.total)), "total = %s", total)
		})
	}
}
