package videocall

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/CareBridge-Health/scheduling-service/internal/appointment"
	"github.com/CareBridge-Health/scheduling-service/internal/messaging"
	"github.com/google/uuid"
)

// DefaultConferenceBaseURL is the external conferencing frontend that hosts
// the rooms. Override with CONFERENCE_BASE_URL.
const DefaultConferenceBaseURL = "https://meet.carebridge-health.dev"

// AppointmentGetter resolves the appointment a call belongs to.
type AppointmentGetter interface {
	GetAppointment(ctx context.Context, id string) (*appointment.Record, error)
}

type Service struct {
	repo         RepositoryInterface
	appointments AppointmentGetter
	publisher    messaging.PublisherInterface
	baseURL      string
}

// NewService wires the call session business logic. publisher may be nil;
// events are then skipped.
func NewService(repo RepositoryInterface, appointments AppointmentGetter, publisher messaging.PublisherInterface) *Service {
	baseURL := os.Getenv("CONFERENCE_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultConferenceBaseURL
	}

	return &Service{
		repo:         repo,
		appointments: appointments,
		publisher:    publisher,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
	}
}

var _ ServiceInterface = (*Service)(nil)

// Start opens a call session for an online, confirmed appointment. When the
// appointment already has an active session that session is returned, so a
// second participant pressing "start" joins the same room instead of forking
// a new one.
func (s *Service) Start(ctx context.Context, appointmentID string) (*Session, error) {
	rec, err := s.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if rec.Type != appointment.TypeOnline {
		return nil, fmt.Errorf("appointment %s: %w", appointmentID, ErrNotOnline)
	}
	if rec.Status != appointment.StatusConfirmed {
		return nil, fmt.Errorf("appointment %s is %s: %w", appointmentID, rec.Status, ErrNotConfirmed)
	}

	if existing, err := s.repo.GetActiveByAppointment(ctx, appointmentID); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	roomCode := uuid.New().String()
	session, err := s.repo.Create(ctx, Session{
		AppointmentID: appointmentID,
		RoomCode:      roomCode,
		JoinURL:       s.baseURL + "/" + roomCode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create call session: %w", err)
	}

	if s.publisher != nil {
		event := messaging.NewCallStartedEvent(session.ID, session.AppointmentID, session.RoomCode)
		if err := s.publisher.Publish(ctx, messaging.EventCallStarted, event); err != nil {
			log.Printf("Warning: failed to publish call.started event: %v", err)
		}
	}

	log.Printf("✓ Started call session %s for appointment %s", session.ID, appointmentID)
	return session, nil
}

// GetActive returns the appointment's active session.
func (s *Service) GetActive(ctx context.Context, appointmentID string) (*Session, error) {
	return s.repo.GetActiveByAppointment(ctx, appointmentID)
}

// End closes a session.
func (s *Service) End(ctx context.Context, sessionID string) (*Session, error) {
	session, err := s.repo.End(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := messaging.NewCallEndedEvent(session.ID, session.AppointmentID, session.RoomCode)
		if err := s.publisher.Publish(ctx, messaging.EventCallEnded, event); err != nil {
			log.Printf("Warning: failed to publish call.ended event: %v", err)
		}
	}

	log.Printf("✓ Ended call session %s", session.ID)
	return session, nil
}
