package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusHappyPath(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusPaid))
	assert.True(t, StatusPaid.CanTransitionTo(StatusHeld))
	assert.True(t, StatusHeld.CanTransitionTo(StatusReleased))
}

func TestStatusRefundPaths(t *testing.T) {
	assert.True(t, StatusPaid.CanTransitionTo(StatusRefunded))
	assert.True(t, StatusHeld.CanTransitionTo(StatusRefunded))
	assert.False(t, StatusPending.CanTransitionTo(StatusRefunded))
	assert.False(t, StatusReleased.CanTransitionTo(StatusRefunded))
}

func TestStatusFailurePaths(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusPaid, StatusHeld} {
		assert.True(t, s.CanTransitionTo(StatusFailed), "%s should be able to fail", s)
	}
	for _, s := range []Status{StatusReleased, StatusRefunded, StatusFailed} {
		assert.False(t, s.CanTransitionTo(StatusFailed), "%s is terminal", s)
	}
}

func TestStatusNoSkippingStates(t *testing.T) {
	assert.False(t, StatusPending.CanTransitionTo(StatusHeld))
	assert.False(t, StatusPending.CanTransitionTo(StatusReleased))
	assert.False(t, StatusPaid.CanTransitionTo(StatusReleased))
}

func TestStatusTerminalStates(t *testing.T) {
	for _, s := range []Status{StatusReleased, StatusRefunded, StatusFailed} {
		assert.True(t, s.IsTerminal(), "%s", s)
	}
	for _, s := range []Status{StatusPending, StatusPaid, StatusHeld} {
		assert.False(t, s.IsTerminal(), "%s", s)
	}
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusHeld.Valid())
	assert.False(t, Status("ESCROWED").Valid())
	assert.False(t, Status("").IsTerminal())
}

func TestMethodValid(t *testing.T) {
	for _, m := range []Method{MethodCreditCard, MethodDebitCard, MethodBankTransfer, MethodMobileWallet, MethodOther} {
		assert.True(t, m.Valid(), "%s", m)
	}
	assert.False(t, Method("CASH").Valid())
}
