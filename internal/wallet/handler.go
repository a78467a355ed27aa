package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/CareBridge-Health/scheduling-service/internal/auth"
)

// MetricsRecorder interface for recording wallet operation metrics
type MetricsRecorder interface {
	RecordWalletOperation(ctx context.Context, operation string)
}

type Handler struct {
	service ServiceInterface
	metrics MetricsRecorder
}

func NewHandler(service ServiceInterface) *Handler {
	return NewHandlerWithMetrics(service, nil)
}

// NewHandlerWithMetrics constructs a handler that records operation counters.
func NewHandlerWithMetrics(service ServiceInterface, metrics MetricsRecorder) *Handler {
	return &Handler{service: service, metrics: metrics}
}

func (h *Handler) recordOperation(ctx context.Context, operation string) {
	if h.metrics != nil {
		h.metrics.RecordWalletOperation(ctx, operation)
	}
}

// GetWallet returns the authenticated user's wallet.
func (h *Handler) GetWallet(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	wallet, err := h.service.GetWallet(r.Context(), principal.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(WalletResponse{Success: true, Wallet: wallet})
}

// ListTransactions returns the authenticated user's ledger, newest first.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.service.ListTransactions(r.Context(), principal.UserID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TransactionListResponse{
		Success:      true,
		Transactions: entries,
		Total:        len(entries),
	})
}

// Deposit credits a top-up to the authenticated user's wallet.
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	wallet, err := h.service.Deposit(r.Context(), principal.UserID, req.Amount)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "deposit_failed", err.Error())
		return
	}

	h.recordOperation(r.Context(), "deposit")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(WalletResponse{Success: true, Wallet: wallet})
}

// RecordPayment stores the confirmed payment for an appointment on behalf of
// the authenticated user. Refunds on cancel are issued against this invoice.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	if req.AppointmentID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID is required")
		return
	}

	inv, err := h.service.RecordPayment(r.Context(), req.AppointmentID, principal.UserID, req.Amount, req.Method)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrUnknownMethod) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "payment_failed", err.Error())
		return
	}

	h.recordOperation(r.Context(), "payment")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(InvoiceResponse{Success: true, Invoice: inv})
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
