package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/CareBridge-Health/scheduling-service/internal/auth"
	"github.com/CareBridge-Health/scheduling-service/internal/pagination"
	"github.com/gorilla/mux"
)

// MetricsRecorder interface for recording appointment operation metrics
type MetricsRecorder interface {
	RecordAppointmentOperation(ctx context.Context, operation string)
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
		h.metrics.RecordAppointmentOperation(ctx, operation)
	}
}

// GetOptions returns the configured type and status option sets for the
// appointment form.
func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(OptionsResponse{
		Types:    TypeOptions,
		Statuses: StatusOptions,
	})
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var draft Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	created, err := h.service.CreateAppointment(r.Context(), draft)
	if err != nil {
		respondServiceError(w, err, "creation_failed")
		return
	}

	h.recordOperation(r.Context(), "create")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment created successfully",
		Appointment: created,
	})
}

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.ListAppointments(r.Context(), listQueryFromRequest(r))
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ListMyAppointments lists the authenticated doctor's own appointments.
func (h *Handler) ListMyAppointments(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}
	if principal.Username == "" {
		respondError(w, http.StatusBadRequest, "missing_username", "Username not found in token")
		return
	}

	response, err := h.service.ListDoctorAppointments(r.Context(), principal.Username, listQueryFromRequest(r))
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID is required")
		return
	}

	rec, err := h.service.GetAppointment(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment retrieved successfully",
		Appointment: rec,
	})
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID is required")
		return
	}

	var draft Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	updated, err := h.service.UpdateAppointment(r.Context(), id, draft)
	if err != nil {
		respondServiceError(w, err, "update_failed")
		return
	}

	h.recordOperation(r.Context(), "update")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment updated successfully",
		Appointment: updated,
	})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID is required")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	updated, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, err, "status_update_failed")
		return
	}

	h.recordOperation(r.Context(), "status_update")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment status updated successfully",
		Appointment: updated,
	})
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Appointment ID is required")
		return
	}

	if err := h.service.DeleteAppointment(r.Context(), id); err != nil {
		respondServiceError(w, err, "deletion_failed")
		return
	}

	h.recordOperation(r.Context(), "delete")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Appointment deleted successfully",
	})
}

// ImportFromBooking pulls the authenticated doctor's appointments from the
// external booking API into the local store.
func (h *Handler) ImportFromBooking(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	doctor := r.URL.Query().Get("doctor")
	if doctor == "" {
		doctor = principal.Username
	}
	if doctor == "" {
		respondError(w, http.StatusBadRequest, "missing_doctor", "Doctor name is required")
		return
	}

	imported, err := h.service.ImportFromBooking(r.Context(), doctor)
	if err != nil {
		respondServiceError(w, err, "import_failed")
		return
	}

	h.recordOperation(r.Context(), "import")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"message":  "Appointments imported successfully",
		"imported": imported,
	})
}

func listQueryFromRequest(r *http.Request) ListQuery {
	return ListQuery{
		Search: r.URL.Query().Get("search"),
		Date:   r.URL.Query().Get("date"),
		Params: pagination.ParseParams(r),
	}
}

// respondServiceError maps service-layer errors onto HTTP statuses. Field
// validation failures return 422 with the per-field messages so the form can
// render them inline.
func respondServiceError(w http.ResponseWriter, err error, fallbackType string) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":  "validation_error",
			"errors": verr.Fields,
		})
		return
	}
	switch {
	case errors.Is(err, ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		respondError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, ErrInvalidEnum), errors.Is(err, ErrInvalidDate), errors.Is(err, ErrOutOfRange), errors.Is(err, ErrBadFormat):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
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
