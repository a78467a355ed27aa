package videocall

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

// mockService implements ServiceInterface for handler testing
type mockService struct {
	startFunc     func(ctx context.Context, appointmentID string) (*Session, error)
	getActiveFunc func(ctx context.Context, appointmentID string) (*Session, error)
	endFunc       func(ctx context.Context, sessionID string) (*Session, error)
}

func (m *mockService) Start(ctx context.Context, appointmentID string) (*Session, error) {
	if m.startFunc != nil {
		return m.startFunc(ctx, appointmentID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) GetActive(ctx context.Context, appointmentID string) (*Session, error) {
	if m.getActiveFunc != nil {
		return m.getActiveFunc(ctx, appointmentID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) End(ctx context.Context, sessionID string) (*Session, error) {
	if m.endFunc != nil {
		return m.endFunc(ctx, sessionID)
	}
	return nil, errors.New("not implemented")
}

func TestHandler_StartCall(t *testing.T) {
	service := &mockService{
		startFunc: func(ctx context.Context, appointmentID string) (*Session, error) {
			return &Session{
				ID:            "sess-1",
				AppointmentID: appointmentID,
				RoomCode:      "room-1",
				JoinURL:       DefaultConferenceBaseURL + "/room-1",
				Status:        SessionActive,
			}, nil
		},
	}
	handler := NewHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/appointments/appt-1/call", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "appt-1"})
	rr := httptest.NewRecorder()

	handler.StartCall(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp SessionResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success || resp.Session.JoinURL == "" {
		t.Errorf("Unexpected response: %+v", resp)
	}
}

func TestHandler_StartCall_NotOnline(t *testing.T) {
	service := &mockService{
		startFunc: func(ctx context.Context, appointmentID string) (*Session, error) {
			return nil, ErrNotOnline
		},
	}
	handler := NewHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/appointments/appt-1/call", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "appt-1"})
	rr := httptest.NewRecorder()

	handler.StartCall(rr, req)

	if rr.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rr.Code)
	}
}

func TestHandler_GetCall_NotFound(t *testing.T) {
	service := &mockService{
		getActiveFunc: func(ctx context.Context, appointmentID string) (*Session, error) {
			return nil, ErrNotFound
		},
	}
	handler := NewHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/appointments/appt-1/call", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "appt-1"})
	rr := httptest.NewRecorder()

	handler.GetCall(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestHandler_EndCall_AlreadyEnded(t *testing.T) {
	service := &mockService{
		endFunc: func(ctx context.Context, sessionID string) (*Session, error) {
			return nil, ErrSessionEnded
		},
	}
	handler := NewHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/calls/sess-1/end", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "sess-1"})
	rr := httptest.NewRecorder()

	handler.EndCall(rr, req)

	if rr.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rr.Code)
	}
}
