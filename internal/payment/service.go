package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/picthaisky/jobmarket/internal/income"
	"github.com/picthaisky/jobmarket/internal/payment/settle"
)

// Common errors
var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentExists       = errors.New("booking already has a payment")
	ErrInvalidMethod       = errors.New("invalid payment method")
	ErrInvalidStatusChange = errors.New("invalid payment status change")
)

// Service handles payment workflow and ledger business logic. The
// settlement engine does all monetary calculation; this service owns the
// status state machine and persistence orchestration around it.
type Service struct {
	repo      *Repository
	engine    *settle.Engine
	incomeSvc *income.Service
}

// NewService creates a new payment service with dependencies injected
func NewService(repo *Repository, engine *settle.Engine, incomeSvc *income.Service) *Service {
	return &Service{
		repo:      repo,
		engine:    engine,
		incomeSvc: incomeSvc,
	}
}

// Engine exposes the settlement engine for read-only breakdown previews
func (s *Service) Engine() *settle.Engine {
	return s.engine
}

// CaptureParams carries everything needed to create the payment for a
// completed booking
type CaptureParams struct {
	BookingID int64
	Gross     decimal.Decimal
	Method    Method
	Gateway   *string
}

// Capture creates the payment for a completed booking: it runs the
// settlement calculation, stores the breakdown on a new PENDING payment
// and appends the payment/commission/withholding-tax ledger transactions,
// all atomically.
func (s *Service) Capture(ctx context.Context, params CaptureParams) (*Payment, error) {
	if !params.Method.Valid() {
		return nil, ErrInvalidMethod
	}

	existing, err := s.repo.GetByBookingID(ctx, params.BookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPaymentExists
	}

	calc, err := s.engine.Calculate(params.Gross)
	if err != nil {
		return nil, err
	}

	p := &Payment{
		BookingID:            params.BookingID,
		Amount:               calc.Gross,
		CommissionAmount:     calc.Commission,
		WithholdingTaxAmount: calc.WithholdingTax,
		NetAmount:            calc.Net,
		Status:               StatusPending,
		Method:               params.Method,
		Gateway:              params.Gateway,
	}

	created, err := s.repo.Capture(ctx, p, func(paymentID int64) ([]*Transaction, error) {
		amounts := p.Amounts()
		amounts.PaymentID = paymentID

		entries, err := s.engine.PaymentEntries(amounts)
		if err != nil {
			return nil, err
		}

		transactions := make([]*Transaction, len(entries))
		for i, entry := range entries {
			transactions[i] = fromEntry(entry)
		}
		return transactions, nil
	})
	if err != nil {
		return nil, err
	}

	capturesTotal.Inc()
	return created, nil
}

// Preview returns the settlement breakdown for a gross amount without
// creating anything
func (s *Service) Preview(ctx context.Context, gross decimal.Decimal) (settle.Calculation, error) {
	return s.engine.Calculate(gross)
}

// MarkPaid records that the payment gateway captured the client's funds
func (s *Service) MarkPaid(ctx context.Context, id int64, gatewayTransactionID *string) (*Payment, error) {
	p, err := s.repo.MarkPaid(ctx, id, gatewayTransactionID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, s.transitionFailure(ctx, id)
	}
	return p, nil
}

// Hold moves a paid payment into escrow
func (s *Service) Hold(ctx context.Context, id int64) (*Payment, error) {
	p, err := s.repo.Hold(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, s.transitionFailure(ctx, id)
	}
	return p, nil
}

// Release pays out the escrowed net amount to the provider. The HELD
// status guard inside the repository is the idempotence proof: a second
// release attempt finds no held payment and fails instead of appending a
// duplicate release transaction.
func (s *Service) Release(ctx context.Context, id int64) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	if !p.Status.CanTransitionTo(StatusReleased) {
		return nil, ErrInvalidStatusChange
	}

	entry, err := s.engine.ReleaseEntry(p.Amounts())
	if err != nil {
		return nil, err
	}

	txn := fromEntry(entry)
	reference := "RLS-" + uuid.NewString()
	txn.Reference = &reference

	released, err := s.repo.Release(ctx, id, txn)
	if err != nil {
		return nil, err
	}
	if released == nil {
		// Lost the race to another releaser.
		return nil, ErrInvalidStatusChange
	}

	// The release is committed at this point; a certificate failure must
	// not undo it. The document can be re-issued through the income API.
	releasesTotal.Inc()

	year := time.Now().UTC().Year()
	if released.ReleasedAt != nil {
		year = released.ReleasedAt.Year()
	}
	if _, err := s.incomeSvc.IssueWithholdingCertificate(ctx, released.ProviderID, released.BookingID, released.WithholdingTaxAmount, year); err != nil {
		log.Printf("payment %d released but PND3 issuance failed: %v", id, err)
	}

	return released, nil
}

// Refund returns a paid or held payment to the client and records the
// refund in the ledger. Refund amounts are not computed by the settlement
// engine; the full gross amount goes back.
func (s *Service) Refund(ctx context.Context, id int64, reason string) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	if !p.Status.CanTransitionTo(StatusRefunded) {
		return nil, ErrInvalidStatusChange
	}

	reference := "RFD-" + uuid.NewString()
	txn := &Transaction{
		PaymentID:   p.ID,
		Type:        TransactionTypeRefund,
		Amount:      p.Amount,
		Description: fmt.Sprintf("Refund to client: %s", reason),
		Reference:   &reference,
		CreatedAt:   time.Now().UTC(),
	}

	refunded, err := s.repo.Refund(ctx, id, txn)
	if err != nil {
		return nil, err
	}
	if refunded == nil {
		return nil, ErrInvalidStatusChange
	}

	refundsTotal.Inc()
	return refunded, nil
}

// Fail marks a non-terminal payment as failed
func (s *Service) Fail(ctx context.Context, id int64) (*Payment, error) {
	p, err := s.repo.Fail(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, s.transitionFailure(ctx, id)
	}
	return p, nil
}

// GetByID retrieves a payment by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

// GetByBookingID retrieves the payment owned by a booking
func (s *Service) GetByBookingID(ctx context.Context, bookingID int64) (*Payment, error) {
	p, err := s.repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

// List retrieves payments with optional status filter and pagination
func (s *Service) List(ctx context.Context, status *Status, page, perPage int) ([]*Payment, int, error) {
	if status != nil && !status.Valid() {
		return nil, 0, ErrInvalidStatusChange
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, status, perPage, offset)
}

// ListTransactions retrieves the append-only ledger for a payment
func (s *Service) ListTransactions(ctx context.Context, paymentID int64) ([]*Transaction, error) {
	p, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	return s.repo.ListTransactions(ctx, paymentID)
}

// transitionFailure tells a missing payment apart from an out-of-order
// transition after a guarded update matched nothing
func (s *Service) transitionFailure(ctx context.Context, id int64) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPaymentNotFound
	}
	return ErrInvalidStatusChange
}
