package wallet

import "time"

// Transaction kinds
const (
	KindCredit = "credit"
	KindDebit  = "debit"
)

// Credit reasons
const (
	ReasonDeposit = "deposit"
	ReasonRefund  = "refund"
)

// Invoice payment methods
const (
	MethodOnline = "online"
	MethodCash   = "cash"
)

// Invoice statuses
const (
	InvoicePaid     = "paid"
	InvoiceRefunded = "refunded"
)

// Wallet holds a user's current balance.
type Wallet struct {
	UserID    string    `json:"user_id"`
	Balance   float64   `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Transaction is one ledger entry on a wallet.
type Transaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Kind      string    `json:"kind"`
	Amount    float64   `json:"amount"`
	Reason    string    `json:"reason"`
	Reference string    `json:"reference,omitempty"`
	Balance   float64   `json:"balance"` // balance after this entry
	CreatedAt time.Time `json:"created_at"`
}

// Invoice records a payment made for an appointment. Refunds on cancel are
// issued against the paid invoice, not the appointment itself.
type Invoice struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointment_id"`
	UserID        string    `json:"user_id"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// DepositRequest is the payload for a wallet top-up.
type DepositRequest struct {
	Amount float64 `json:"amount"`
}

// PaymentRequest is the payload confirming a payment for an appointment.
type PaymentRequest struct {
	AppointmentID string  `json:"appointment_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
}

// InvoiceResponse wraps an invoice for API responses.
type InvoiceResponse struct {
	Success bool     `json:"success"`
	Invoice *Invoice `json:"invoice"`
}

// WalletResponse wraps a wallet for API responses.
type WalletResponse struct {
	Success bool    `json:"success"`
	Wallet  *Wallet `json:"wallet"`
}

// TransactionListResponse wraps the ledger for API responses.
type TransactionListResponse struct {
	Success      bool          `json:"success"`
	Transactions []Transaction `json:"transactions"`
	Total        int           `json:"total"`
}
