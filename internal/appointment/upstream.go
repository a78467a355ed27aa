package appointment

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Placeholders for nested upstream fields that were never filled in. The
// booking API omits patientId/doctorId (or their nested userId) for records
// created before registration completed; those must surface as labels, not
// nulls.
const (
	PlaceholderName    = "N/A"
	PlaceholderMissing = "not yet provided"
)

// upstreamUser is the nested userId object of the booking API.
type upstreamUser struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type upstreamPatient struct {
	UserID  *upstreamUser `json:"userId"`
	Age     int           `json:"age"`
	Disease string        `json:"disease"`
}

type upstreamDoctor struct {
	UserID *upstreamUser `json:"userId"`
}

// UpstreamRecord is the appointment shape returned by the external booking
// API. Date is an ISO datetime, not a bare calendar date.
type UpstreamRecord struct {
	ID        string           `json:"_id"`
	PatientID *upstreamPatient `json:"patientId"`
	Date      string           `json:"date"`
	Time      string           `json:"time"`
	Type      string           `json:"type"`
	Reason    string           `json:"reason"`
	DoctorID  *upstreamDoctor  `json:"doctorId"`
	Notes     string           `json:"notes"`
	Status    string           `json:"status"`
}

// DecodeUpstreamList reads a JSON array of booking-API appointments.
func DecodeUpstreamList(r io.Reader) ([]Record, error) {
	var raw []UpstreamRecord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode booking records: %w", err)
	}
	records := make([]Record, 0, len(raw))
	for _, u := range raw {
		records = append(records, u.ToRecord())
	}
	return records, nil
}

// ToRecord maps an upstream record to the local shape, defaulting missing
// nested fields instead of propagating them as empty.
func (u UpstreamRecord) ToRecord() Record {
	rec := Record{
		ID:             u.ID,
		PatientName:    PlaceholderName,
		PatientDisease: PlaceholderMissing,
		Date:           upstreamDate(u.Date),
		Time:           u.Time,
		Type:           u.Type,
		Status:         u.Status,
		Reason:         u.Reason,
		Doctor:         PlaceholderName,
		Notes:          u.Notes,
	}
	if u.PatientID != nil {
		rec.PatientAge = u.PatientID.Age
		if u.PatientID.Disease != "" {
			rec.PatientDisease = u.PatientID.Disease
		}
		if u.PatientID.UserID != nil && u.PatientID.UserID.Username != "" {
			rec.PatientName = u.PatientID.UserID.Username
		}
	}
	if u.DoctorID != nil && u.DoctorID.UserID != nil && u.DoctorID.UserID.Username != "" {
		rec.Doctor = u.DoctorID.UserID.Username
	}
	return rec
}

// upstreamDate reduces the booking API's ISO datetime to a civil date. The
// date part is taken as-is, in the timestamp's own calendar day, with no
// timezone conversion.
func upstreamDate(value string) string {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Format("2006-01-02")
	}
	if len(value) >= 10 && isoDatePattern.MatchString(value[:10]) {
		return value[:10]
	}
	return value
}
