package appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CareBridge-Health/scheduling-service/internal/auth"
	"github.com/gorilla/mux"
)

// mockService implements ServiceInterface for testing
type mockService struct {
	createFunc       func(ctx context.Context, draft Draft) (*Record, error)
	getFunc          func(ctx context.Context, id string) (*Record, error)
	listFunc         func(ctx context.Context, q ListQuery) (*PaginatedAppointmentListResponse, error)
	listDoctorFunc   func(ctx context.Context, doctor string, q ListQuery) (*PaginatedAppointmentListResponse, error)
	updateFunc       func(ctx context.Context, id string, draft Draft) (*Record, error)
	updateStatusFunc func(ctx context.Context, id, status string) (*Record, error)
	deleteFunc       func(ctx context.Context, id string) error
	importFunc       func(ctx context.Context, doctor string) (int, error)
}

func (m *mockService) CreateAppointment(ctx context.Context, draft Draft) (*Record, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, draft)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) GetAppointment(ctx context.Context, id string) (*Record, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) ListAppointments(ctx context.Context, q ListQuery) (*PaginatedAppointmentListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, q)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) ListDoctorAppointments(ctx context.Context, doctor string, q ListQuery) (*PaginatedAppointmentListResponse, error) {
	if m.listDoctorFunc != nil {
		return m.listDoctorFunc(ctx, doctor, q)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) UpdateAppointment(ctx context.Context, id string, draft Draft) (*Record, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, draft)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) UpdateStatus(ctx context.Context, id, status string) (*Record, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) DeleteAppointment(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockService) ImportFromBooking(ctx context.Context, doctor string) (int, error) {
	if m.importFunc != nil {
		return m.importFunc(ctx, doctor)
	}
	return 0, errors.New("not implemented")
}

func doctorContext(r *http.Request) *http.Request {
	principal := &auth.Principal{
		UserID:   "user-1",
		Username: "dr.chi",
		Roles:    []string{"DOCTOR"},
	}
	return r.WithContext(auth.ContextWithPrincipal(r.Context(), principal))
}

func TestCreateAppointment_Handler_Success(t *testing.T) {
	service := &mockService{
		createFunc: func(ctx context.Context, draft Draft) (*Record, error) {
			rec, _ := Normalize(draft)
			rec.ID = "apt-1"
			return rec, nil
		},
	}
	handler := NewHandler(service)

	body, _ := json.Marshal(validDraft())
	req := httptest.NewRequest("POST", "/appointments", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateAppointment(w, doctorContext(req))

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp AppointmentSuccessResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success || resp.Appointment == nil || resp.Appointment.ID != "apt-1" {
		t.Errorf("Unexpected response: %+v", resp)
	}
	if resp.Appointment.Date != "2025-02-20" {
		t.Errorf("Expected ISO date in response, got %s", resp.Appointment.Date)
	}
}

// mockMetrics records appointment operation counters
type mockMetrics struct {
	operations []string
}

func (m *mockMetrics) RecordAppointmentOperation(ctx context.Context, operation string) {
	m.operations = append(m.operations, operation)
}

func TestCreateAppointment_Handler_RecordsOperationMetric(t *testing.T) {
	service := &mockService{
		createFunc: func(ctx context.Context, draft Draft) (*Record, error) {
			rec, _ := Normalize(draft)
			rec.ID = "apt-1"
			return rec, nil
		},
	}
	metrics := &mockMetrics{}
	handler := NewHandlerWithMetrics(service, metrics)

	body, _ := json.Marshal(validDraft())
	req := httptest.NewRequest("POST", "/appointments", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateAppointment(w, doctorContext(req))

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", w.Code)
	}
	if len(metrics.operations) != 1 || metrics.operations[0] != "create" {
		t.Errorf("Expected create operation recorded, got %v", metrics.operations)
	}

	// failed creates are not counted
	service.createFunc = func(ctx context.Context, draft Draft) (*Record, error) {
		return nil, &ValidationError{Fields: FieldErrors{FieldDate: "Date is required"}}
	}
	req = httptest.NewRequest("POST", "/appointments", bytes.NewReader(body))
	handler.CreateAppointment(httptest.NewRecorder(), doctorContext(req))

	if len(metrics.operations) != 1 {
		t.Errorf("Expected no metric for a rejected create, got %v", metrics.operations)
	}
}

func TestCreateAppointment_Handler_FieldErrors(t *testing.T) {
	service := &mockService{
		createFunc: func(ctx context.Context, draft Draft) (*Record, error) {
			return nil, &ValidationError{Fields: FieldErrors{
				FieldDate: "Date must be in DD/MM/YYYY format",
				FieldTime: "Time must be in HH:MM format",
			}}
		},
	}
	handler := NewHandler(service)

	req := httptest.NewRequest("POST", "/appointments", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()

	handler.CreateAppointment(w, doctorContext(req))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d", w.Code)
	}

	var resp struct {
		Error  string            `json:"error"`
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Error != "validation_error" {
		t.Errorf("Expected validation_error, got %s", resp.Error)
	}
	if len(resp.Errors) != 2 {
		t.Errorf("Expected 2 field errors, got %v", resp.Errors)
	}
}

func TestCreateAppointment_Handler_InvalidJSON(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest("POST", "/appointments", bytes.NewReader([]byte(`{bad`)))
	w := httptest.NewRecorder()

	handler.CreateAppointment(w, doctorContext(req))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestListAppointments_Handler_PassesQuery(t *testing.T) {
	var gotQuery ListQuery
	service := &mockService{
		listFunc: func(ctx context.Context, q ListQuery) (*PaginatedAppointmentListResponse, error) {
			gotQuery = q
			return &PaginatedAppointmentListResponse{Success: true, Appointments: []Record{}}, nil
		},
	}
	handler := NewHandler(service)

	req := httptest.NewRequest("GET", "/appointments?search=an&date=20/02/2025&page=2&limit=10", nil)
	w := httptest.NewRecorder()

	handler.ListAppointments(w, doctorContext(req))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if gotQuery.Search != "an" || gotQuery.Date != "20/02/2025" {
		t.Errorf("Unexpected query: %+v", gotQuery)
	}
	if gotQuery.Params.Page != 2 || gotQuery.Params.Limit != 10 {
		t.Errorf("Unexpected pagination: %+v", gotQuery.Params)
	}
}

func TestListMyAppointments_Handler_UsesPrincipalUsername(t *testing.T) {
	var gotDoctor string
	service := &mockService{
		listDoctorFunc: func(ctx context.Context, doctor string, q ListQuery) (*PaginatedAppointmentListResponse, error) {
			gotDoctor = doctor
			return &PaginatedAppointmentListResponse{Success: true}, nil
		},
	}
	handler := NewHandler(service)

	req := httptest.NewRequest("GET", "/appointments/mine", nil)
	w := httptest.NewRecorder()

	handler.ListMyAppointments(w, doctorContext(req))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if gotDoctor != "dr.chi" {
		t.Errorf("Expected doctor from token, got %q", gotDoctor)
	}
}

func TestListMyAppointments_Handler_Unauthenticated(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest("GET", "/appointments/mine", nil)
	w := httptest.NewRecorder()

	handler.ListMyAppointments(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}
}

func TestGetAppointment_Handler_NotFound(t *testing.T) {
	service := &mockService{
		getFunc: func(ctx context.Context, id string) (*Record, error) {
			return nil, ErrNotFound
		},
	}
	handler := NewHandler(service)

	req := httptest.NewRequest("GET", "/appointments/missing", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "missing"})
	w := httptest.NewRecorder()

	handler.GetAppointment(w, doctorContext(req))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestUpdateStatus_Handler_Conflict(t *testing.T) {
	service := &mockService{
		updateStatusFunc: func(ctx context.Context, id, status string) (*Record, error) {
			return nil, ErrInvalidTransition
		},
	}
	handler := NewHandler(service)

	body, _ := json.Marshal(UpdateStatusRequest{Status: StatusPending})
	req := httptest.NewRequest("PATCH", "/appointments/apt-1/status", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "apt-1"})
	w := httptest.NewRecorder()

	handler.UpdateStatus(w, doctorContext(req))

	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for illegal transition, got %d", w.Code)
	}
}

func TestDeleteAppointment_Handler_Success(t *testing.T) {
	service := &mockService{
		deleteFunc: func(ctx context.Context, id string) error {
			return nil
		},
	}
	handler := NewHandler(service)

	req := httptest.NewRequest("DELETE", "/appointments/apt-1", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "apt-1"})
	w := httptest.NewRecorder()

	handler.DeleteAppointment(w, doctorContext(req))

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}

func TestImportFromBooking_Handler(t *testing.T) {
	service := &mockService{
		importFunc: func(ctx context.Context, doctor string) (int, error) {
			if doctor != "dr.chi" {
				t.Errorf("Expected doctor from token, got %q", doctor)
			}
			return 3, nil
		},
	}
	handler := NewHandler(service)

	req := httptest.NewRequest("POST", "/appointments/import", nil)
	w := httptest.NewRecorder()

	handler.ImportFromBooking(w, doctorContext(req))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp["imported"] != float64(3) {
		t.Errorf("Expected imported 3, got %v", resp["imported"])
	}
}

func TestGetOptions_Handler(t *testing.T) {
	handler := NewHandler(&mockService{})

	req := httptest.NewRequest("GET", "/appointments/options", nil)
	w := httptest.NewRecorder()

	handler.GetOptions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp OptionsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Types) != 2 || len(resp.Statuses) != 4 {
		t.Errorf("Unexpected option sets: %+v", resp)
	}
}
