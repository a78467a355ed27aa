package wallet

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/CareBridge-Health/scheduling-service/internal/messaging"
)

// RefundRate is the share of an online payment returned to the patient's
// wallet when a paid appointment is canceled. The remaining 5% covers the
// payment-gateway fee.
const RefundRate = 0.95

const defaultTransactionLimit = 50

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

// NewService wires the wallet business logic. publisher may be nil; events
// are then skipped.
func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, publisher: publisher}
}

var _ ServiceInterface = (*Service)(nil)

func (s *Service) GetWallet(ctx context.Context, userID string) (*Wallet, error) {
	return s.repo.GetWallet(ctx, userID)
}

// Deposit credits a top-up to the user's wallet.
func (s *Service) Deposit(ctx context.Context, userID string, amount float64) (*Wallet, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	w, err := s.repo.Credit(ctx, userID, amount, ReasonDeposit, "")
	if err != nil {
		return nil, fmt.Errorf("failed to deposit: %w", err)
	}

	s.publishCredited(ctx, userID, amount, ReasonDeposit, "", w.Balance)
	log.Printf("✓ Wallet deposit of %.2f for user %s (balance %.2f)", amount, userID, w.Balance)
	return w, nil
}

func (s *Service) ListTransactions(ctx context.Context, userID string, limit int) ([]Transaction, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultTransactionLimit
	}
	return s.repo.ListTransactions(ctx, userID, limit)
}

// RecordPayment stores the invoice for a paid appointment. Called when the
// payment gateway confirms an online payment, or by the front desk for cash.
func (s *Service) RecordPayment(ctx context.Context, appointmentID, userID string, amount float64, method string) (*Invoice, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if method != MethodOnline && method != MethodCash {
		return nil, fmt.Errorf("%w %q", ErrUnknownMethod, method)
	}

	inv, err := s.repo.CreateInvoice(ctx, Invoice{
		AppointmentID: appointmentID,
		UserID:        userID,
		Amount:        amount,
		Method:        method,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	log.Printf("✓ Recorded %s payment of %.2f for appointment %s", method, amount, appointmentID)
	return inv, nil
}

// IssueRefundForAppointment credits 95% of the online payment back to the
// patient's wallet when their appointment is canceled. Cash payments and
// unpaid appointments are not refunded here. Already-refunded invoices are a
// no-op so a replayed cancellation cannot double-credit.
func (s *Service) IssueRefundForAppointment(ctx context.Context, appointmentID string) error {
	inv, err := s.repo.GetInvoiceByAppointment(ctx, appointmentID)
	if errors.Is(err, ErrInvoiceNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up invoice: %w", err)
	}

	if inv.Method != MethodOnline || inv.Status != InvoicePaid {
		return nil
	}

	if err := s.repo.MarkInvoiceRefunded(ctx, inv.ID); err != nil {
		if errors.Is(err, ErrInvoiceNotFound) {
			// another cancel beat us to it
			return nil
		}
		return fmt.Errorf("failed to mark invoice refunded: %w", err)
	}

	amount := math.Round(inv.Amount*RefundRate*100) / 100
	w, err := s.repo.Credit(ctx, inv.UserID, amount, ReasonRefund, appointmentID)
	if err != nil {
		return fmt.Errorf("failed to credit refund: %w", err)
	}

	s.publishCredited(ctx, inv.UserID, amount, ReasonRefund, appointmentID, w.Balance)
	log.Printf("✓ Refunded %.2f to user %s for canceled appointment %s", amount, inv.UserID, appointmentID)
	return nil
}

func (s *Service) publishCredited(ctx context.Context, userID string, amount float64, reason, reference string, balance float64) {
	if s.publisher == nil {
		return
	}
	event := messaging.NewWalletCreditedEvent(userID, amount, reason, reference, balance)
	if err := s.publisher.Publish(ctx, messaging.EventWalletCredited, event); err != nil {
		log.Printf("Warning: failed to publish wallet.credited event: %v", err)
	}
}
