package appointment

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Field names used by ValidateField and in FieldErrors keys. They match the
// JSON names of Draft.
const (
	FieldPatientName    = "patient_name"
	FieldPatientAge     = "patient_age"
	FieldPatientDisease = "patient_disease"
	FieldDate           = "date"
	FieldTime           = "time"
	FieldType           = "type"
	FieldStatus         = "status"
	FieldReason         = "reason"
	FieldDoctor         = "doctor"
	FieldNotes          = "notes"
)

const (
	MinPatientAge = 1
	MaxPatientAge = 120
)

var (
	datePattern    = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern    = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// ValidateField validates a single form field value. It is pure: the caller
// decides when to re-run it and how to merge the result into a FieldErrors
// set. A nil return means the value is acceptable for that field.
//
// Clearing the date or time field is not an error here: those two fields
// treat "empty" as untouched, and the required check happens only at submit
// time in Validate. Fields with no rule are always valid.
func ValidateField(field, value string) error {
	switch field {
	case FieldPatientName:
		return validateRequired(field, value, "Patient name is required")
	case FieldPatientDisease:
		return validateRequired(field, value, "Disease is required")
	case FieldReason:
		return validateRequired(field, value, "Reason is required")
	case FieldDoctor:
		return validateRequired(field, value, "Doctor is required")
	case FieldPatientAge:
		return validateAge(value)
	case FieldDate:
		if value == "" {
			return nil
		}
		return validateDate(value)
	case FieldTime:
		if value == "" {
			return nil
		}
		return validateTime(value)
	case FieldType:
		return validateEnum(field, value, TypeOptions, "Appointment type")
	case FieldStatus:
		return validateEnum(field, value, StatusOptions, "Status")
	default:
		return nil
	}
}

// Validate runs the full submit-time pass over a draft and returns a freshly
// built FieldErrors. Unlike the per-field pass, a blank date or time is an
// error here: the draft is only submittable when every required field is set.
func Validate(draft Draft) FieldErrors {
	fe := FieldErrors{}

	fields := map[string]string{
		FieldPatientName:    draft.PatientName,
		FieldPatientAge:     draft.PatientAge,
		FieldPatientDisease: draft.PatientDisease,
		FieldDate:           draft.Date,
		FieldTime:           draft.Time,
		FieldType:           draft.Type,
		FieldStatus:         draft.Status,
		FieldReason:         draft.Reason,
		FieldDoctor:         draft.Doctor,
	}
	for field, value := range fields {
		if err := ValidateField(field, value); err != nil {
			fe.add(err.(*FieldError))
		}
	}

	if strings.TrimSpace(draft.Date) == "" {
		fe.add(newFieldError(FieldDate, ErrRequiredField, "Date is required"))
	}
	if strings.TrimSpace(draft.Time) == "" {
		fe.add(newFieldError(FieldTime, ErrRequiredField, "Time is required"))
	}

	return fe
}

func validateRequired(field, value, message string) error {
	if strings.TrimSpace(value) == "" {
		return newFieldError(field, ErrRequiredField, message)
	}
	return nil
}

func validateAge(value string) error {
	age, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return newFieldError(FieldPatientAge, ErrOutOfRange, "Age must be a whole number")
	}
	if age < MinPatientAge || age > MaxPatientAge {
		return newFieldError(FieldPatientAge, ErrOutOfRange, "Age must be between 1 and 120")
	}
	return nil
}

// validateDate checks the DD/MM/YYYY pattern, then reconstructs the calendar
// date from its components and verifies the round trip. time.Date normalizes
// overflow (31/02 rolls into March), so an exact component match is what
// rejects impossible dates.
func validateDate(value string) error {
	if !datePattern.MatchString(value) {
		return newFieldError(FieldDate, ErrBadFormat, "Date must be in DD/MM/YYYY format")
	}
	day, _ := strconv.Atoi(value[0:2])
	month, _ := strconv.Atoi(value[3:5])
	year, _ := strconv.Atoi(value[6:10])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return newFieldError(FieldDate, ErrInvalidDate, "Date is not a valid calendar date")
	}
	return nil
}

func validateTime(value string) error {
	if !timePattern.MatchString(value) {
		return newFieldError(FieldTime, ErrBadFormat, "Time must be in HH:MM format")
	}
	hour, _ := strconv.Atoi(value[0:2])
	minute, _ := strconv.Atoi(value[3:5])
	if hour > 23 || minute > 59 {
		return newFieldError(FieldTime, ErrOutOfRange, "Time must be between 00:00 and 23:59")
	}
	return nil
}

func validateEnum(field, value string, opts []Option, label string) error {
	if strings.TrimSpace(value) == "" {
		return newFieldError(field, ErrRequiredField, label+" is required")
	}
	if !containsOption(opts, value) {
		return newFieldError(field, ErrInvalidEnum, label+" must be one of: "+strings.Join(optionValues(opts), ", "))
	}
	return nil
}
