package appointment

import "time"

// Appointment types and statuses as they appear on the wire and in the database.
const (
	TypeOnSite = "on-site"
	TypeOnline = "online"

	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCanceled  = "canceled"
	StatusCompleted = "completed"
)

// Option is a {value,label} pair for a form select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TypeOptions and StatusOptions are the configured option sets for the
// appointment form. Loaded once, read-only thereafter.
var TypeOptions = []Option{
	{Value: TypeOnSite, Label: "On-site"},
	{Value: TypeOnline, Label: "Online"},
}

var StatusOptions = []Option{
	{Value: StatusPending, Label: "Pending"},
	{Value: StatusConfirmed, Label: "Confirmed"},
	{Value: StatusCanceled, Label: "Canceled"},
	{Value: StatusCompleted, Label: "Completed"},
}

func optionValues(opts []Option) []string {
	values := make([]string, 0, len(opts))
	for _, o := range opts {
		values = append(values, o.Value)
	}
	return values
}

func containsOption(opts []Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Draft is the in-progress appointment form state. Date uses the display
// format DD/MM/YYYY and PatientAge is the raw text input; both are converted
// by Normalize once the draft validates.
type Draft struct {
	ID             string `json:"id,omitempty"`
	PatientName    string `json:"patient_name"`
	PatientAge     string `json:"patient_age"`
	PatientDisease string `json:"patient_disease"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Type           string `json:"type"`
	Status         string `json:"status"`
	Reason         string `json:"reason"`
	Doctor         string `json:"doctor"`
	Notes          string `json:"notes,omitempty"`
}

// Record is the persistence-ready appointment shape. Date is an ISO calendar
// date (YYYY-MM-DD).
type Record struct {
	ID             string     `json:"id"`
	PatientName    string     `json:"patient_name"`
	PatientAge     int        `json:"patient_age"`
	PatientDisease string     `json:"patient_disease"`
	Date           string     `json:"date"`
	Time           string     `json:"time"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	Reason         string     `json:"reason"`
	Doctor         string     `json:"doctor"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// UpdateStatusRequest changes only the appointment status, subject to the
// transition table.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AppointmentSuccessResponse is the envelope for single-record responses.
type AppointmentSuccessResponse struct {
	Success     bool    `json:"success"`
	Message     string  `json:"message"`
	Appointment *Record `json:"appointment,omitempty"`
}

// OptionsResponse returns the configured form option sets.
type OptionsResponse struct {
	Types    []Option `json:"types"`
	Statuses []Option `json:"statuses"`
}
