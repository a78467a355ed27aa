package videocall

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

var _ RepositoryInterface = (*Repository)(nil)

const sessionColumns = `id, appointment_id, room_code, join_url, status, started_at, ended_at`

func (r *Repository) Create(ctx context.Context, session Session) (*Session, error) {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	query := `
		INSERT INTO carebridge.call_sessions
		(id, appointment_id, room_code, join_url, status, started_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + sessionColumns + `
	`

	row := r.db.QueryRowContext(ctx, query,
		session.ID, session.AppointmentID, session.RoomCode, session.JoinURL, SessionActive, time.Now())
	created, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert call session: %w", err)
	}
	return created, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM carebridge.call_sessions
		WHERE id = $1
	`

	session, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query call session: %w", err)
	}
	return session, nil
}

// GetActiveByAppointment returns the appointment's active session, if any.
func (r *Repository) GetActiveByAppointment(ctx context.Context, appointmentID string) (*Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM carebridge.call_sessions
		WHERE appointment_id = $1 AND status = $2
	`

	session, err := scanSession(r.db.QueryRowContext(ctx, query, appointmentID, SessionActive))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query active call session: %w", err)
	}
	return session, nil
}

// End closes an active session. Ending an already-ended session returns
// ErrSessionEnded.
func (r *Repository) End(ctx context.Context, id string) (*Session, error) {
	query := `
		UPDATE carebridge.call_sessions
		SET status = $1, ended_at = $2
		WHERE id = $3 AND status = $4
		RETURNING ` + sessionColumns + `
	`

	session, err := scanSession(r.db.QueryRowContext(ctx, query, SessionEnded, time.Now(), id, SessionActive))
	if err == sql.ErrNoRows {
		if _, getErr := r.Get(ctx, id); getErr == nil {
			return nil, ErrSessionEnded
		}
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to end call session: %w", err)
	}
	return session, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*Session, error) {
	var s Session
	var endedAt sql.NullTime
	err := row.Scan(&s.ID, &s.AppointmentID, &s.RoomCode, &s.JoinURL, &s.Status, &s.StartedAt, &endedAt)
	if err != nil {
		return nil, err
	}
	if endedAt.Valid {
		s.EndedAt = &endedAt.Time
	}
	return &s, nil
}
