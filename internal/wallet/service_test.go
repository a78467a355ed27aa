package wallet

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockRepository implements RepositoryInterface for testing
type mockRepository struct {
	getWalletFunc           func(ctx context.Context, userID string) (*Wallet, error)
	creditFunc              func(ctx context.Context, userID string, amount float64, reason, reference string) (*Wallet, error)
	listTransactionsFunc    func(ctx context.Context, userID string, limit int) ([]Transaction, error)
	getInvoiceFunc          func(ctx context.Context, appointmentID string) (*Invoice, error)
	createInvoiceFunc       func(ctx context.Context, inv Invoice) (*Invoice, error)
	markInvoiceRefundedFunc func(ctx context.Context, invoiceID string) error
}

func (m *mockRepository) GetWallet(ctx context.Context, userID string) (*Wallet, error) {
	if m.getWalletFunc != nil {
		return m.getWalletFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) Credit(ctx context.Context, userID string, amount float64, reason, reference string) (*Wallet, error) {
	if m.creditFunc != nil {
		return m.creditFunc(ctx, userID, amount, reason, reference)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListTransactions(ctx context.Context, userID string, limit int) ([]Transaction, error) {
	if m.listTransactionsFunc != nil {
		return m.listTransactionsFunc(ctx, userID, limit)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) GetInvoiceByAppointment(ctx context.Context, appointmentID string) (*Invoice, error) {
	if m.getInvoiceFunc != nil {
		return m.getInvoiceFunc(ctx, appointmentID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) CreateInvoice(ctx context.Context, inv Invoice) (*Invoice, error) {
	if m.createInvoiceFunc != nil {
		return m.createInvoiceFunc(ctx, inv)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) MarkInvoiceRefunded(ctx context.Context, invoiceID string) error {
	if m.markInvoiceRefundedFunc != nil {
		return m.markInvoiceRefundedFunc(ctx, invoiceID)
	}
	return errors.New("not implemented")
}

// mockPublisher records published events
type mockPublisher struct {
	events []string
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, eventData interface{}) error {
	m.events = append(m.events, routingKey)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func TestService_Deposit(t *testing.T) {
	var creditedAmount float64
	var creditedReason string
	repo := &mockRepository{
		creditFunc: func(ctx context.Context, userID string, amount float64, reason, reference string) (*Wallet, error) {
			creditedAmount = amount
			creditedReason = reason
			return &Wallet{UserID: userID, Balance: 150, UpdatedAt: time.Now()}, nil
		},
	}
	publisher := &mockPublisher{}
	service := NewService(repo, publisher)

	w, err := service.Deposit(context.Background(), "user-1", 150)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if creditedAmount != 150 || creditedReason != ReasonDeposit {
		t.Errorf("Expected credit of 150 as deposit, got %.2f as %s", creditedAmount, creditedReason)
	}
	if w.Balance != 150 {
		t.Errorf("Expected balance 150, got %.2f", w.Balance)
	}
	if len(publisher.events) != 1 || publisher.events[0] != "wallet.credited" {
		t.Errorf("Expected wallet.credited event, got %v", publisher.events)
	}
}

func TestService_Deposit_InvalidAmount(t *testing.T) {
	service := NewService(&mockRepository{}, nil)

	for _, amount := range []float64{0, -10} {
		if _, err := service.Deposit(context.Background(), "user-1", amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Deposit(%.2f): expected ErrInvalidAmount, got: %v", amount, err)
		}
	}
}

func TestService_IssueRefund_CreditsNinetyFivePercent(t *testing.T) {
	var refundedInvoice string
	var creditedAmount float64
	var creditedRef string
	repo := &mockRepository{
		getInvoiceFunc: func(ctx context.Context, appointmentID string) (*Invoice, error) {
			return &Invoice{
				ID:            "inv-1",
				AppointmentID: appointmentID,
				UserID:        "patient-1",
				Amount:        200,
				Method:        MethodOnline,
				Status:        InvoicePaid,
			}, nil
		},
		markInvoiceRefundedFunc: func(ctx context.Context, invoiceID string) error {
			refundedInvoice = invoiceID
			return nil
		},
		creditFunc: func(ctx context.Context, userID string, amount float64, reason, reference string) (*Wallet, error) {
			creditedAmount = amount
			creditedRef = reference
			return &Wallet{UserID: userID, Balance: amount}, nil
		},
	}
	publisher := &mockPublisher{}
	service := NewService(repo, publisher)

	if err := service.IssueRefundForAppointment(context.Background(), "appt-1"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if refundedInvoice != "inv-1" {
		t.Errorf("Expected invoice inv-1 marked refunded, got '%s'", refundedInvoice)
	}
	if creditedAmount != 190 {
		t.Errorf("Expected 95%% refund of 190, got %.2f", creditedAmount)
	}
	if creditedRef != "appt-1" {
		t.Errorf("Expected refund reference 'appt-1', got '%s'", creditedRef)
	}
	if len(publisher.events) != 1 || publisher.events[0] != "wallet.credited" {
		t.Errorf("Expected wallet.credited event, got %v", publisher.events)
	}
}

func TestService_IssueRefund_NoInvoiceIsNoOp(t *testing.T) {
	repo := &mockRepository{
		getInvoiceFunc: func(ctx context.Context, appointmentID string) (*Invoice, error) {
			return nil, ErrInvoiceNotFound
		},
	}
	service := NewService(repo, nil)

	if err := service.IssueRefundForAppointment(context.Background(), "appt-unpaid"); err != nil {
		t.Errorf("Expected nil for unpaid appointment, got: %v", err)
	}
}

func TestService_IssueRefund_CashNotRefunded(t *testing.T) {
	credited := false
	repo := &mockRepository{
		getInvoiceFunc: func(ctx context.Context, appointmentID string) (*Invoice, error) {
			return &Invoice{ID: "inv-2", Method: MethodCash, Status: InvoicePaid, Amount: 100}, nil
		},
		creditFunc: func(ctx context.Context, userID string, amount float64, reason, reference string) (*Wallet, error) {
			credited = true
			return &Wallet{}, nil
		},
	}
	service := NewService(repo, nil)

	if err := service.IssueRefundForAppointment(context.Background(), "appt-2"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if credited {
		t.Error("Expected no wallet credit for a cash invoice")
	}
}

func TestService_IssueRefund_AlreadyRefundedIsNoOp(t *testing.T) {
	credited := false
	repo := &mockRepository{
		getInvoiceFunc: func(ctx context.Context, appointmentID string) (*Invoice, error) {
			return &Invoice{ID: "inv-3", Method: MethodOnline, Status: InvoiceRefunded, Amount: 100}, nil
		},
		creditFunc: func(ctx context.Context, userID string, amount float64, reason, reference string) (*Wallet, error) {
			credited = true
			return &Wallet{}, nil
		},
	}
	service := NewService(repo, nil)

	if err := service.IssueRefundForAppointment(context.Background(), "appt-3"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if credited {
		t.Error("Expected no second credit for an already refunded invoice")
	}
}

func TestService_IssueRefund_RoundsToCents(t *testing.T) {
	var creditedAmount float64
	repo := &mockRepository{
		getInvoiceFunc: func(ctx context.Context, appointmentID string) (*Invoice, error) {
			return &Invoice{ID: "inv-4", UserID: "u1", Method: MethodOnline, Status: InvoicePaid, Amount: 33.33}, nil
		},
		markInvoiceRefundedFunc: func(ctx context.Context, invoiceID string) error { return nil },
		creditFunc: func(ctx context.Context, userID string, amount float64, reason, reference string) (*Wallet, error) {
			creditedAmount = amount
			return &Wallet{UserID: userID, Balance: amount}, nil
		},
	}
	service := NewService(repo, nil)

	if err := service.IssueRefundForAppointment(context.Background(), "appt-4"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	// 33.33 * 0.95 = 31.6635 -> 31.66
	if creditedAmount != 31.66 {
		t.Errorf("Expected refund rounded to 31.66, got %v", creditedAmount)
	}
}

func TestService_RecordPayment(t *testing.T) {
	repo := &mockRepository{
		createInvoiceFunc: func(ctx context.Context, inv Invoice) (*Invoice, error) {
			inv.ID = "inv-new"
			inv.Status = InvoicePaid
			inv.CreatedAt = time.Now()
			return &inv, nil
		},
	}
	service := NewService(repo, nil)

	inv, err := service.RecordPayment(context.Background(), "appt-5", "patient-2", 120, MethodOnline)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if inv.Status != InvoicePaid {
		t.Errorf("Expected status paid, got '%s'", inv.Status)
	}

	if _, err := service.RecordPayment(context.Background(), "appt-5", "patient-2", 120, "card"); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("Expected ErrUnknownMethod, got: %v", err)
	}
	if _, err := service.RecordPayment(context.Background(), "appt-5", "patient-2", 0, MethodOnline); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Expected ErrInvalidAmount, got: %v", err)
	}
}

func TestService_ListTransactions_ClampsLimit(t *testing.T) {
	var gotLimit int
	repo := &mockRepository{
		listTransactionsFunc: func(ctx context.Context, userID string, limit int) ([]Transaction, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	service := NewService(repo, nil)

	if _, err := service.ListTransactions(context.Background(), "u1", 0); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotLimit != defaultTransactionLimit {
		t.Errorf("Expected default limit %d, got %d", defaultTransactionLimit, gotLimit)
	}

	if _, err := service.ListTransactions(context.Background(), "u1", 500); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotLimit != defaultTransactionLimit {
		t.Errorf("Expected oversized limit clamped to %d, got %d", defaultTransactionLimit, gotLimit)
	}
}
