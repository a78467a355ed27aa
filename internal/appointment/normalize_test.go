package appointment

import (
	"errors"
	"testing"
)

func TestNormalize_ConvertsDisplayDateToISO(t *testing.T) {
	draft := validDraft()
	draft.ID = "apt-001"
	draft.Date = "05/01/2025"

	rec, err := Normalize(draft)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if rec.Date != "2025-01-05" {
		t.Errorf("Expected date 2025-01-05, got %s", rec.Date)
	}
	if rec.ID != "apt-001" {
		t.Errorf("Expected original ID preserved, got %s", rec.ID)
	}
	if rec.PatientAge != 34 {
		t.Errorf("Expected age 34, got %d", rec.PatientAge)
	}
}

func TestNormalize_RoundTripsRealDates(t *testing.T) {
	cases := map[string]string{
		"01/01/2025": "2025-01-01",
		"29/02/2024": "2024-02-29",
		"31/12/1999": "1999-12-31",
		"15/08/2030": "2030-08-15",
	}
	for display, iso := range cases {
		draft := validDraft()
		draft.Date = display
		rec, err := Normalize(draft)
		if err != nil {
			t.Errorf("Expected %s to normalize, got error: %v", display, err)
			continue
		}
		if rec.Date != iso {
			t.Errorf("Expected %s -> %s, got %s", display, iso, rec.Date)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	draft := validDraft()
	rec, err := Normalize(draft)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// Feed the normalized date back through; it must not shift.
	draft.Date = rec.Date
	again, err := Normalize(draft)
	if err != nil {
		t.Fatalf("Expected already-ISO date to normalize, got: %v", err)
	}
	if again.Date != rec.Date {
		t.Errorf("Expected stable date %s, got %s after second pass", rec.Date, again.Date)
	}
}

func TestNormalize_DefendsAgainstBadDates(t *testing.T) {
	for _, date := range []string{"", "  ", "31/02/2025", "2025-02-31", "soon", "1/2/2025"} {
		draft := validDraft()
		draft.Date = date
		if _, err := Normalize(draft); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("Expected ErrInvalidDate for %q, got: %v", date, err)
		}
	}
}

func TestNormalize_BadAge(t *testing.T) {
	draft := validDraft()
	draft.PatientAge = "old"
	if _, err := Normalize(draft); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Expected ErrOutOfRange for non-numeric age, got: %v", err)
	}
}

func TestNormalize_TrimsTextFields(t *testing.T) {
	draft := validDraft()
	draft.PatientName = "  Nguyen Van An  "
	draft.Notes = " bring previous scans "

	rec, err := Normalize(draft)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if rec.PatientName != "Nguyen Van An" {
		t.Errorf("Expected trimmed patient name, got %q", rec.PatientName)
	}
	if rec.Notes != "bring previous scans" {
		t.Errorf("Expected trimmed notes, got %q", rec.Notes)
	}
}
