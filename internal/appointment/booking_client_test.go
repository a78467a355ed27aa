package appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBookingClient_FetchAppointments(t *testing.T) {
	var gotDoctor string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDoctor = r.URL.Query().Get("doctor")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"_id": "bk-1", "date": "2025-02-20T00:00:00Z", "time": "09:30", "type": "online", "status": "pending"}]`))
	}))
	defer server.Close()

	t.Setenv("BOOKING_API_URL", server.URL)
	client, err := NewBookingClient()
	if err != nil {
		t.Fatalf("Failed to create booking client: %v", err)
	}

	records, err := client.FetchAppointments(context.Background(), "dr.chi")
	if err != nil {
		t.Fatalf("FetchAppointments failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != "bk-1" {
		t.Fatalf("Expected one record bk-1, got %+v", records)
	}
	if gotDoctor != "dr.chi" {
		t.Errorf("Expected doctor query param 'dr.chi', got '%s'", gotDoctor)
	}
}

func TestBookingClient_EscapesDoctorName(t *testing.T) {
	var gotDoctor string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDoctor = r.URL.Query().Get("doctor")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	t.Setenv("BOOKING_API_URL", server.URL)
	client, err := NewBookingClient()
	if err != nil {
		t.Fatalf("Failed to create booking client: %v", err)
	}

	// a name with spaces and an ampersand must survive the query string intact
	if _, err := client.FetchAppointments(context.Background(), "dr. tran & partners"); err != nil {
		t.Fatalf("FetchAppointments failed: %v", err)
	}
	if gotDoctor != "dr. tran & partners" {
		t.Errorf("Expected doctor query param round trip, got '%s'", gotDoctor)
	}
}

func TestBookingClient_MissingConfig(t *testing.T) {
	t.Setenv("BOOKING_API_URL", "")
	if _, err := NewBookingClient(); err == nil {
		t.Error("Expected error without BOOKING_API_URL")
	}
}

func TestBookingClient_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	t.Setenv("BOOKING_API_URL", server.URL)
	client, err := NewBookingClient()
	if err != nil {
		t.Fatalf("Failed to create booking client: %v", err)
	}

	if _, err := client.FetchAppointments(context.Background(), "dr.chi"); err == nil {
		t.Error("Expected error for non-200 booking response")
	}
}
