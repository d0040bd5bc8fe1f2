package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles payment and ledger persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new payment repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

const paymentColumns = `
	p.id, p.booking_id, p.amount, p.commission_amount, p.withholding_tax_amount, p.net_amount,
	p.status, p.payment_method, p.gateway, p.gateway_transaction_id,
	p.paid_at, p.released_at, p.created_at, p.updated_at,
	b.provider_id, b.client_id
`

func scanPayment(row interface{ Scan(...interface{}) error }) (*Payment, error) {
	p := &Payment{}
	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.Amount,
		&p.CommissionAmount,
		&p.WithholdingTaxAmount,
		&p.NetAmount,
		&p.Status,
		&p.Method,
		&p.Gateway,
		&p.GatewayTransactionID,
		&p.PaidAt,
		&p.ReleasedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.ProviderID,
		&p.ClientID,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Capture inserts a new payment and its initial ledger transactions in a
// single database transaction. The ledger callback receives the generated
// payment ID so the transactions can reference it.
func (r *Repository) Capture(ctx context.Context, p *Payment, ledger func(paymentID int64) ([]*Transaction, error)) (*Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin capture: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO payments (booking_id, amount, commission_amount, withholding_tax_amount, net_amount,
		                      status, payment_method, gateway, gateway_transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	created := *p
	err = tx.QueryRowContext(ctx, query,
		p.BookingID, p.Amount, p.CommissionAmount, p.WithholdingTaxAmount, p.NetAmount,
		p.Status, p.Method, p.Gateway, p.GatewayTransactionID,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		// Two concurrent captures for one booking both pass the service's
		// existence check; the loser lands on the booking_id UNIQUE
		// constraint here.
		if isUniqueViolation(err) {
			return nil, ErrPaymentExists
		}
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	transactions, err := ledger(created.ID)
	if err != nil {
		return nil, err
	}
	for _, txn := range transactions {
		if err := insertTransaction(ctx, tx, txn); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit capture: %w", err)
	}

	return &created, nil
}

// GetByID retrieves a payment by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments p
		JOIN bookings b ON p.booking_id = b.id
		WHERE p.id = $1
	`

	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return p, nil
}

// GetByBookingID retrieves the payment owned by a booking
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments p
		JOIN bookings b ON p.booking_id = b.id
		WHERE p.booking_id = $1
	`

	p, err := scanPayment(r.db.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment by booking: %w", err)
	}
	return p, nil
}

// List retrieves payments, optionally filtered by status, newest first
func (r *Repository) List(ctx context.Context, status *Status, limit, offset int) ([]*Payment, int, error) {
	var statusArg interface{}
	if status != nil {
		statusArg = string(*status)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM payments WHERE ($1::text IS NULL OR status = $1)`
	if err := r.db.QueryRowContext(ctx, countQuery, statusArg).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	query := `
		SELECT ` + paymentColumns + `
		FROM payments p
		JOIN bookings b ON p.booking_id = b.id
		WHERE ($1::text IS NULL OR p.status = $1)
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, statusArg, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, total, rows.Err()
}

// transition updates a payment's status only if its current status is one
// of the expected ones, returning nil when no row matched. The guarded
// UPDATE is what serializes concurrent writers per payment.
func (r *Repository) transition(ctx context.Context, tx *sql.Tx, id int64, to Status, from ...Status) (*Payment, error) {
	fromValues := make([]string, len(from))
	for i, s := range from {
		fromValues[i] = string(s)
	}

	extra := ""
	switch to {
	case StatusPaid:
		extra = ", paid_at = NOW()"
	case StatusReleased:
		extra = ", released_at = NOW()"
	}

	query := `
		UPDATE payments p
		SET status = $2, updated_at = NOW()` + extra + `
		FROM bookings b
		WHERE p.id = $1 AND p.booking_id = b.id AND p.status = ANY($3)
		RETURNING ` + paymentColumns + `
	`

	var row interface{ Scan(...interface{}) error }
	if tx != nil {
		row = tx.QueryRowContext(ctx, query, id, to, pq.Array(fromValues))
	} else {
		row = r.db.QueryRowContext(ctx, query, id, to, pq.Array(fromValues))
	}

	p, err := scanPayment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to transition payment to %s: %w", to, err)
	}
	return p, nil
}

// MarkPaid transitions a pending payment to PAID and records the gateway
// transaction reference
func (r *Repository) MarkPaid(ctx context.Context, id int64, gatewayTransactionID *string) (*Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin mark-paid: %w", err)
	}
	defer tx.Rollback()

	p, err := r.transition(ctx, tx, id, StatusPaid, StatusPending)
	if err != nil || p == nil {
		return p, err
	}

	if gatewayTransactionID != nil {
		update := `UPDATE payments SET gateway_transaction_id = $2 WHERE id = $1`
		if _, err := tx.ExecContext(ctx, update, id, gatewayTransactionID); err != nil {
			return nil, fmt.Errorf("failed to record gateway transaction id: %w", err)
		}
		p.GatewayTransactionID = gatewayTransactionID
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit mark-paid: %w", err)
	}
	return p, nil
}

// Hold transitions a paid payment into escrow
func (r *Repository) Hold(ctx context.Context, id int64) (*Payment, error) {
	return r.transition(ctx, nil, id, StatusHeld, StatusPaid)
}

// Fail transitions a non-terminal payment to FAILED
func (r *Repository) Fail(ctx context.Context, id int64) (*Payment, error) {
	return r.transition(ctx, nil, id, StatusFailed, StatusPending, StatusPaid, StatusHeld)
}

// Release transitions a held payment to RELEASED and appends the release
// ledger transaction atomically. The status guard makes a second release
// attempt fail instead of producing a duplicate ledger entry.
func (r *Repository) Release(ctx context.Context, id int64, txn *Transaction) (*Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin release: %w", err)
	}
	defer tx.Rollback()

	p, err := r.transition(ctx, tx, id, StatusReleased, StatusHeld)
	if err != nil || p == nil {
		return p, err
	}

	if err := insertTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit release: %w", err)
	}
	return p, nil
}

// Refund transitions a paid or held payment to REFUNDED and appends the
// refund ledger transaction atomically
func (r *Repository) Refund(ctx context.Context, id int64, txn *Transaction) (*Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin refund: %w", err)
	}
	defer tx.Rollback()

	p, err := r.transition(ctx, tx, id, StatusRefunded, StatusPaid, StatusHeld)
	if err != nil || p == nil {
		return p, err
	}

	if err := insertTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit refund: %w", err)
	}
	return p, nil
}

// insertTransaction appends one immutable ledger transaction
func insertTransaction(ctx context.Context, tx *sql.Tx, txn *Transaction) error {
	query := `
		INSERT INTO transactions (payment_id, type, amount, description, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := tx.QueryRowContext(ctx, query,
		txn.PaymentID, txn.Type, txn.Amount, txn.Description, txn.Reference, txn.CreatedAt,
	).Scan(&txn.ID)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// ListTransactions retrieves the full ledger for a payment in insertion order
func (r *Repository) ListTransactions(ctx context.Context, paymentID int64) ([]*Transaction, error) {
	query := `
		SELECT id, payment_id, type, amount, description, reference, created_at
		FROM transactions
		WHERE payment_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*Transaction
	for rows.Next() {
		txn := &Transaction{}
		if err := rows.Scan(
			&txn.ID,
			&txn.PaymentID,
			&txn.Type,
			&txn.Amount,
			&txn.Description,
			&txn.Reference,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}
