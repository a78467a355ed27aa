package attendance

import "time"

// Shift values
const (
	ShiftMorning   = "morning"
	ShiftAfternoon = "afternoon"
	ShiftEvening   = "evening"
)

// Shift option set for the registration screen, in display order.
var ShiftOptions = []Option{
	{Value: ShiftMorning, Label: "Morning (07:00 - 12:00)"},
	{Value: ShiftAfternoon, Label: "Afternoon (12:00 - 17:00)"},
	{Value: ShiftEvening, Label: "Evening (17:00 - 21:00)"},
}

// Option pairs a stored value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ValidShift reports whether the value is a known shift.
func ValidShift(value string) bool {
	for _, o := range ShiftOptions {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Registration is one doctor's claim on a shift for a calendar day.
type Registration struct {
	ID        string    `json:"id"`
	Doctor    string    `json:"doctor"`
	Date      string    `json:"date"` // ISO calendar date (YYYY-MM-DD)
	Shift     string    `json:"shift"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterRequest is the registration payload. Date arrives in the form's
// DD/MM/YYYY format and is normalized before storage.
type RegisterRequest struct {
	Date  string `json:"date"`
	Shift string `json:"shift"`
}

// RegistrationResponse wraps a single registration for API responses.
type RegistrationResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message,omitempty"`
	Registration *Registration `json:"registration,omitempty"`
}

// RegistrationListResponse wraps a doctor's registrations.
type RegistrationListResponse struct {
	Success       bool           `json:"success"`
	Registrations []Registration `json:"registrations"`
	Total         int            `json:"total"`
}

// OptionsResponse carries the shift option set.
type OptionsResponse struct {
	Shifts []Option `json:"shifts"`
}
