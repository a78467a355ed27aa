package videocall

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/CareBridge-Health/scheduling-service/internal/appointment"
	"github.com/gorilla/mux"
)

// MetricsRecorder interface for recording call session metrics
type MetricsRecorder interface {
	RecordCallOperation(ctx context.Context, operation string)
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
		h.metrics.RecordCallOperation(ctx, operation)
	}
}

// StartCall opens (or rejoins) the call session for an appointment.
func (h *Handler) StartCall(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["id"]
	if appointmentID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID is required")
		return
	}

	session, err := h.service.Start(r.Context(), appointmentID)
	if err != nil {
		respondServiceError(w, err, "call_start_failed")
		return
	}

	h.recordOperation(r.Context(), "start")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SessionResponse{
		Success: true,
		Message: "Call session ready",
		Session: session,
	})
}

// GetCall returns the active session's join info for an appointment.
func (h *Handler) GetCall(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["id"]
	if appointmentID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID is required")
		return
	}

	session, err := h.service.GetActive(r.Context(), appointmentID)
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SessionResponse{Success: true, Session: session})
}

// EndCall closes a call session.
func (h *Handler) EndCall(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Session ID is required")
		return
	}

	session, err := h.service.End(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err, "call_end_failed")
		return
	}

	h.recordOperation(r.Context(), "end")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SessionResponse{
		Success: true,
		Message: "Call session ended",
		Session: session,
	})
}

func respondServiceError(w http.ResponseWriter, err error, fallbackType string) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, appointment.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ErrSessionEnded):
		respondError(w, http.StatusConflict, "session_ended", err.Error())
	case errors.Is(err, ErrNotOnline), errors.Is(err, ErrNotConfirmed):
		respondError(w, http.StatusConflict, "call_not_allowed", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, fallbackType, err.Error())
	}
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
