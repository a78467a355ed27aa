package appointment

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Normalize converts a validated draft into a persistence-ready Record.
//
// The date is rebuilt from explicit day/month/year components and
// re-serialized as an ISO calendar date (YYYY-MM-DD). Dates are treated as
// civil dates in UTC throughout: no local-time construction and no manual
// hour offsets, so a date never shifts across a timezone boundary between
// save and load. Normalize is idempotent: a date already in ISO form passes
// through unchanged.
//
// It does not trust upstream validation: a blank or unparsable date fails
// with ErrInvalidDate even though Validate should have caught it first. The
// original record ID, when present, is preserved verbatim.
func Normalize(draft Draft) (*Record, error) {
	isoDate, err := normalizeDate(draft.Date)
	if err != nil {
		return nil, err
	}

	age, err := strconv.Atoi(strings.TrimSpace(draft.PatientAge))
	if err != nil {
		return nil, fmt.Errorf("patient age %q is not a number: %w", draft.PatientAge, ErrOutOfRange)
	}

	return &Record{
		ID:             draft.ID,
		PatientName:    strings.TrimSpace(draft.PatientName),
		PatientAge:     age,
		PatientDisease: strings.TrimSpace(draft.PatientDisease),
		Date:           isoDate,
		Time:           draft.Time,
		Type:           draft.Type,
		Status:         draft.Status,
		Reason:         strings.TrimSpace(draft.Reason),
		Doctor:         strings.TrimSpace(draft.Doctor),
		Notes:          strings.TrimSpace(draft.Notes),
	}, nil
}

// NormalizeDate converts a DD/MM/YYYY form date to the ISO storage form. The
// shift-registration screen shares the appointment form's date rule, so the
// conversion is exported rather than duplicated there.
func NormalizeDate(value string) (string, error) {
	return normalizeDate(value)
}

// normalizeDate accepts DD/MM/YYYY or an already-normalized YYYY-MM-DD and
// returns the ISO form. Both paths verify calendar consistency via component
// round trip.
func normalizeDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("date is blank: %w", ErrInvalidDate)
	}

	var day, month, year int
	switch {
	case datePattern.MatchString(value):
		day, _ = strconv.Atoi(value[0:2])
		month, _ = strconv.Atoi(value[3:5])
		year, _ = strconv.Atoi(value[6:10])
	case isoDatePattern.MatchString(value):
		year, _ = strconv.Atoi(value[0:4])
		month, _ = strconv.Atoi(value[5:7])
		day, _ = strconv.Atoi(value[8:10])
	default:
		return "", fmt.Errorf("date %q is not DD/MM/YYYY or YYYY-MM-DD: %w", value, ErrInvalidDate)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return "", fmt.Errorf("date %q is not a valid calendar date: %w", value, ErrInvalidDate)
	}
	return t.Format("2006-01-02"), nil
}
