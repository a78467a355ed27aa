package wallet

import "context"

// RepositoryInterface defines the wallet data access contract
type RepositoryInterface interface {
	GetWallet(ctx context.Context, userID string) (*Wallet, error)
	Credit(ctx context.Context, userID string, amount float64, reason, reference string) (*Wallet, error)
	ListTransactions(ctx context.Context, userID string, limit int) ([]Transaction, error)
	GetInvoiceByAppointment(ctx context.Context, appointmentID string) (*Invoice, error)
	CreateInvoice(ctx context.Context, inv Invoice) (*Invoice, error)
	MarkInvoiceRefunded(ctx context.Context, invoiceID string) error
}
