package wallet

import "errors"

var (
	ErrWalletNotFound  = errors.New("wallet not found")
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrUnknownMethod   = errors.New("unknown payment method")
)
