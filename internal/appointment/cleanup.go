package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"
)

// RetentionPeriod defines how long soft-deleted appointments are retained
// before the cleanup job purges them (1 year).
const RetentionPeriod = 365 * 24 * time.Hour

// CleanupService permanently deletes appointments whose soft-delete has
// passed the retention window.
type CleanupService struct {
	db *sql.DB
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(db *sql.DB) *CleanupService {
	return &CleanupService{db: db}
}

// CleanupExpiredAppointments hard-deletes appointments soft-deleted before
// the retention cutoff and returns how many rows were purged. Call sessions
// for purged appointments go with them.
func (s *CleanupService) CleanupExpiredAppointments(ctx context.Context) (int, error) {
	cutoffDate := time.Now().Add(-RetentionPeriod)
	log.Printf("Starting cleanup of appointments deleted before %s", cutoffDate.Format(time.RFC3339))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sessionQuery := `
		DELETE FROM carebridge.call_sessions
		WHERE appointment_id IN (
			SELECT id FROM carebridge.appointments
			WHERE deleted_at IS NOT NULL AND deleted_at < $1
		)
	`
	if _, err := tx.ExecContext(ctx, sessionQuery, cutoffDate); err != nil {
		return 0, fmt.Errorf("failed to delete expired call sessions: %w", err)
	}

	query := `
		DELETE FROM carebridge.appointments
		WHERE deleted_at IS NOT NULL AND deleted_at < $1
	`
	result, err := tx.ExecContext(ctx, query, cutoffDate)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired appointments: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if rows == 0 {
		log.Println("No expired appointments found for cleanup")
		return 0, nil
	}

	log.Printf("✓ Permanently deleted %d expired appointments", rows)
	return int(rows), nil
}

// GetExpiredAppointmentsCount returns how many appointments are eligible for
// cleanup.
func (s *CleanupService) GetExpiredAppointmentsCount(ctx context.Context) (int, error) {
	cutoffDate := time.Now().Add(-RetentionPeriod)

	var count int
	query := `
		SELECT COUNT(*)
		FROM carebridge.appointments
		WHERE deleted_at IS NOT NULL AND deleted_at < $1
	`

	err := s.db.QueryRowContext(ctx, query, cutoffDate).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count expired appointments: %w", err)
	}

	return count, nil
}
