package wallet

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

var _ RepositoryInterface = (*Repository)(nil)

// GetWallet returns the wallet for a user. A user who never transacted gets a
// zero-balance wallet rather than a not-found error; the row is created on
// first credit.
func (r *Repository) GetWallet(ctx context.Context, userID string) (*Wallet, error) {
	query := `
		SELECT user_id, balance, updated_at
		FROM carebridge.wallets
		WHERE user_id = $1
	`

	var w Wallet
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&w.UserID, &w.Balance, &w.UpdatedAt)
	if err == sql.ErrNoRows {
		return &Wallet{UserID: userID, Balance: 0, UpdatedAt: time.Now()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet: %w", err)
	}
	return &w, nil
}

// Credit adds funds to a wallet and appends a ledger entry in one transaction.
func (r *Repository) Credit(ctx context.Context, userID string, amount float64, reason, reference string) (*Wallet, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	upsert := `
		INSERT INTO carebridge.wallets (user_id, balance, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = carebridge.wallets.balance + EXCLUDED.balance,
		    updated_at = EXCLUDED.updated_at
		RETURNING user_id, balance, updated_at
	`

	var w Wallet
	if err := tx.QueryRowContext(ctx, upsert, userID, amount, now).Scan(&w.UserID, &w.Balance, &w.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}

	insert := `
		INSERT INTO carebridge.wallet_transactions
		(id, user_id, kind, amount, reason, reference, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.ExecContext(ctx, insert,
		uuid.New().String(), userID, KindCredit, amount, reason, reference, w.Balance, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert wallet transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &w, nil
}

// ListTransactions returns the most recent ledger entries for a user.
func (r *Repository) ListTransactions(ctx context.Context, userID string, limit int) ([]Transaction, error) {
	query := `
		SELECT id, user_id, kind, amount, reason, COALESCE(reference, ''), balance, created_at
		FROM carebridge.wallet_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet transactions: %w", err)
	}
	defer rows.Close()

	var entries []Transaction
	for rows.Next() {
		var t Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.Kind, &t.Amount, &t.Reason, &t.Reference, &t.Balance, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet transaction: %w", err)
		}
		entries = append(entries, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet transactions: %w", err)
	}

	return entries, nil
}

// GetInvoiceByAppointment returns the invoice paid for an appointment.
func (r *Repository) GetInvoiceByAppointment(ctx context.Context, appointmentID string) (*Invoice, error) {
	query := `
		SELECT id, appointment_id, user_id, amount, method, status, created_at
		FROM carebridge.invoices
		WHERE appointment_id = $1
	`

	var inv Invoice
	err := r.db.QueryRowContext(ctx, query, appointmentID).Scan(
		&inv.ID, &inv.AppointmentID, &inv.UserID, &inv.Amount, &inv.Method, &inv.Status, &inv.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice: %w", err)
	}
	return &inv, nil
}

// CreateInvoice records a payment made for an appointment.
func (r *Repository) CreateInvoice(ctx context.Context, inv Invoice) (*Invoice, error) {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.Status == "" {
		inv.Status = InvoicePaid
	}

	query := `
		INSERT INTO carebridge.invoices
		(id, appointment_id, user_id, amount, method, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, appointment_id, user_id, amount, method, status, created_at
	`

	var created Invoice
	err := r.db.QueryRowContext(ctx, query,
		inv.ID, inv.AppointmentID, inv.UserID, inv.Amount, inv.Method, inv.Status, time.Now()).
		Scan(&created.ID, &created.AppointmentID, &created.UserID, &created.Amount,
			&created.Method, &created.Status, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert invoice: %w", err)
	}
	return &created, nil
}

// MarkInvoiceRefunded flips a paid invoice to refunded.
func (r *Repository) MarkInvoiceRefunded(ctx context.Context, invoiceID string) error {
	query := `
		UPDATE carebridge.invoices
		SET status = $1
		WHERE id = $2 AND status = $3
	`

	result, err := r.db.ExecContext(ctx, query, InvoiceRefunded, invoiceID, InvoicePaid)
	if err != nil {
		return fmt.Errorf("failed to mark invoice refunded: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}
