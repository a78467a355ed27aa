package messaging

import (
	"fmt"
	"time"
)

// Event routing keys as constants
const (
	// Appointment events
	EventAppointmentCreated       = "appointment.created"
	EventAppointmentUpdated       = "appointment.updated"
	EventAppointmentDeleted       = "appointment.deleted"
	EventAppointmentStatusChanged = "appointment.status_changed"

	// Wallet events
	EventWalletCredited = "wallet.credited"

	// Attendance events
	EventAttendanceRegistered = "attendance.registered"
	EventAttendanceCanceled   = "attendance.canceled"

	// Video call events
	EventCallStarted = "call.started"
	EventCallEnded   = "call.ended"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     fmt.Sprintf("%d", time.Now().UnixNano()),
		Timestamp:   time.Now().UTC(), // Explicitly set to UTC
		ServiceName: "scheduling-service",
	}
}

// AppointmentCreatedEvent is published when an appointment is booked.
type AppointmentCreatedEvent struct {
	BaseEvent
	Data AppointmentCreatedData `json:"data"`
}

type AppointmentCreatedData struct {
	AppointmentID string `json:"appointment_id"`
	PatientName   string `json:"patient_name"`
	Doctor        string `json:"doctor"`
	Date          string `json:"date"` // ISO calendar date
	Time          string `json:"time"`
	Type          string `json:"type"`
	Status        string `json:"status"`
}

func NewAppointmentCreatedEvent(id, patientName, doctor, date, timeOfDay, typ, status string) AppointmentCreatedEvent {
	return AppointmentCreatedEvent{
		BaseEvent: NewBaseEvent(EventAppointmentCreated),
		Data: AppointmentCreatedData{
			AppointmentID: id,
			PatientName:   patientName,
			Doctor:        doctor,
			Date:          date,
			Time:          timeOfDay,
			Type:          typ,
			Status:        status,
		},
	}
}

// AppointmentUpdatedEvent is published after a full record update.
type AppointmentUpdatedEvent struct {
	BaseEvent
	Data AppointmentUpdatedData `json:"data"`
}

type AppointmentUpdatedData struct {
	AppointmentID string `json:"appointment_id"`
	Doctor        string `json:"doctor"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Status        string `json:"status"`
}

func NewAppointmentUpdatedEvent(id, doctor, date, timeOfDay, status string) AppointmentUpdatedEvent {
	return AppointmentUpdatedEvent{
		BaseEvent: NewBaseEvent(EventAppointmentUpdated),
		Data: AppointmentUpdatedData{
			AppointmentID: id,
			Doctor:        doctor,
			Date:          date,
			Time:          timeOfDay,
			Status:        status,
		},
	}
}

// AppointmentStatusChangedEvent is published on a status transition.
type AppointmentStatusChangedEvent struct {
	BaseEvent
	Data AppointmentStatusChangedData `json:"data"`
}

type AppointmentStatusChangedData struct {
	AppointmentID string `json:"appointment_id"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
}

func NewAppointmentStatusChangedEvent(id, oldStatus, newStatus string) AppointmentStatusChangedEvent {
	return AppointmentStatusChangedEvent{
		BaseEvent: NewBaseEvent(EventAppointmentStatusChanged),
		Data: AppointmentStatusChangedData{
			AppointmentID: id,
			OldStatus:     oldStatus,
			NewStatus:     newStatus,
		},
	}
}

// AppointmentDeletedEvent is published when an appointment is removed.
type AppointmentDeletedEvent struct {
	BaseEvent
	Data AppointmentDeletedData `json:"data"`
}

type AppointmentDeletedData struct {
	AppointmentID string    `json:"appointment_id"`
	DeletedAt     time.Time `json:"deleted_at"`
}

func NewAppointmentDeletedEvent(id string) AppointmentDeletedEvent {
	return AppointmentDeletedEvent{
		BaseEvent: NewBaseEvent(EventAppointmentDeleted),
		Data: AppointmentDeletedData{
			AppointmentID: id,
			DeletedAt:     time.Now().UTC(),
		},
	}
}

// WalletCreditedEvent is published when a wallet receives funds.
type WalletCreditedEvent struct {
	BaseEvent
	Data WalletCreditedData `json:"data"`
}

type WalletCreditedData struct {
	UserID    string  `json:"user_id"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason"` // "deposit" or "refund"
	Reference string  `json:"reference,omitempty"`
	Balance   float64 `json:"balance"`
}

func NewWalletCreditedEvent(userID string, amount float64, reason, reference string, balance float64) WalletCreditedEvent {
	return WalletCreditedEvent{
		BaseEvent: NewBaseEvent(EventWalletCredited),
		Data: WalletCreditedData{
			UserID:    userID,
			Amount:    amount,
			Reason:    reason,
			Reference: reference,
			Balance:   balance,
		},
	}
}

// AttendanceRegisteredEvent is published when a doctor registers a shift.
type AttendanceRegisteredEvent struct {
	BaseEvent
	Data AttendanceRegisteredData `json:"data"`
}

type AttendanceRegisteredData struct {
	RegistrationID string `json:"registration_id"`
	Doctor         string `json:"doctor"`
	Date           string `json:"date"` // ISO calendar date
	Shift          string `json:"shift"`
}

func NewAttendanceRegisteredEvent(id, doctor, date, shift string) AttendanceRegisteredEvent {
	return AttendanceRegisteredEvent{
		BaseEvent: NewBaseEvent(EventAttendanceRegistered),
		Data: AttendanceRegisteredData{
			RegistrationID: id,
			Doctor:         doctor,
			Date:           date,
			Shift:          shift,
		},
	}
}

// AttendanceCanceledEvent is published when a shift registration is withdrawn.
type AttendanceCanceledEvent struct {
	BaseEvent
	Data AttendanceRegisteredData `json:"data"`
}

func NewAttendanceCanceledEvent(id, doctor, date, shift string) AttendanceCanceledEvent {
	return AttendanceCanceledEvent{
		BaseEvent: NewBaseEvent(EventAttendanceCanceled),
		Data: AttendanceRegisteredData{
			RegistrationID: id,
			Doctor:         doctor,
			Date:           date,
			Shift:          shift,
		},
	}
}

// CallStartedEvent is published when a video call session opens.
type CallStartedEvent struct {
	BaseEvent
	Data CallSessionData `json:"data"`
}

// CallEndedEvent is published when a video call session closes.
type CallEndedEvent struct {
	BaseEvent
	Data CallSessionData `json:"data"`
}

type CallSessionData struct {
	SessionID     string `json:"session_id"`
	AppointmentID string `json:"appointment_id"`
	RoomCode      string `json:"room_code"`
}

func NewCallStartedEvent(sessionID, appointmentID, roomCode string) CallStartedEvent {
	return CallStartedEvent{
		BaseEvent: NewBaseEvent(EventCallStarted),
		Data: CallSessionData{
			SessionID:     sessionID,
			AppointmentID: appointmentID,
			RoomCode:      roomCode,
		},
	}
}

func NewCallEndedEvent(sessionID, appointmentID, roomCode string) CallEndedEvent {
	return CallEndedEvent{
		BaseEvent: NewBaseEvent(EventCallEnded),
		Data: CallSessionData{
			SessionID:     sessionID,
			AppointmentID: appointmentID,
			RoomCode:      roomCode,
		},
	}
}
