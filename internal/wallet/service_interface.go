package wallet

import "context"

// ServiceInterface defines the wallet business logic contract
type ServiceInterface interface {
	GetWallet(ctx context.Context, userID string) (*Wallet, error)
	Deposit(ctx context.Context, userID string, amount float64) (*Wallet, error)
	ListTransactions(ctx context.Context, userID string, limit int) ([]Transaction, error)
	RecordPayment(ctx context.Context, appointmentID, userID string, amount float64, method string) (*Invoice, error)
	IssueRefundForAppointment(ctx context.Context, appointmentID string) error
}
