package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/CareBridge-Health/scheduling-service/internal/appointment"
	"github.com/CareBridge-Health/scheduling-service/internal/auth"
	"github.com/gorilla/mux"
)

// MetricsRecorder interface for recording shift registration metrics
type MetricsRecorder interface {
	RecordAttendanceOperation(ctx context.Context, operation string)
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
		h.metrics.RecordAttendanceOperation(ctx, operation)
	}
}

// GetOptions returns the shift option set for the registration screen.
func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(OptionsResponse{Shifts: ShiftOptions})
}

// Register claims a shift for the authenticated doctor.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}
	if principal.Username == "" {
		respondError(w, http.StatusBadRequest, "missing_username", "Username not found in token")
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	reg, err := h.service.Register(r.Context(), principal.Username, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicate):
			respondError(w, http.StatusConflict, "duplicate_registration", err.Error())
		case errors.Is(err, ErrUnknownShift),
			errors.Is(err, appointment.ErrInvalidDate),
			errors.Is(err, appointment.ErrBadFormat):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "registration_failed", err.Error())
		}
		return
	}

	h.recordOperation(r.Context(), "register")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(RegistrationResponse{
		Success:      true,
		Message:      "Shift registered successfully",
		Registration: reg,
	})
}

// ListMine returns the authenticated doctor's registrations.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	regs, err := h.service.ListMine(r.Context(), principal.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RegistrationListResponse{
		Success:       true,
		Registrations: regs,
		Total:         len(regs),
	})
}

// Cancel withdraws one of the authenticated doctor's registrations.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Registration ID is required")
		return
	}

	if err := h.service.Cancel(r.Context(), id, principal.Username); err != nil {
		if errors.Is(err, ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "cancel_failed", err.Error())
		return
	}

	h.recordOperation(r.Context(), "cancel")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Shift registration canceled",
	})
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
