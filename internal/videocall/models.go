package videocall

import "time"

// Session statuses
const (
	SessionActive = "active"
	SessionEnded  = "ended"
)

// Session is one video-call room attached to an online appointment. At most
// one active session exists per appointment.
type Session struct {
	ID            string     `json:"id"`
	AppointmentID string     `json:"appointment_id"`
	RoomCode      string     `json:"room_code"`
	JoinURL       string     `json:"join_url"`
	Status        string     `json:"status"`
	StartedAt     time.Time  `json:"started_at"`
	EndedAt       *time.Time `json:"ended_at,omitempty"`
}

// SessionResponse wraps a session for API responses.
type SessionResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Session *Session `json:"session,omitempty"`
}
