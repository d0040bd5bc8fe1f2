package payment

// Status represents the lifecycle state of a payment
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusPaid     Status = "PAID"
	StatusHeld     Status = "HELD" // in escrow
	StatusReleased Status = "RELEASED"
	StatusRefunded Status = "REFUNDED"
	StatusFailed   Status = "FAILED"
)

// statusTransitions is the payment state machine. Happy path is
// PENDING -> PAID -> HELD -> RELEASED; a paid or held payment can be
// refunded, and any non-terminal payment can fail.
var statusTransitions = map[Status][]Status{
	StatusPending:  {StatusPaid, StatusFailed},
	StatusPaid:     {StatusHeld, StatusRefunded, StatusFailed},
	StatusHeld:     {StatusReleased, StatusRefunded, StatusFailed},
	StatusReleased: {},
	StatusRefunded: {},
	StatusFailed:   {},
}

// Valid reports whether the status is a known payment status
func (s Status) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsTerminal reports whether no further transitions are allowed
func (s Status) IsTerminal() bool {
	next, ok := statusTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether moving from s to next is allowed
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
